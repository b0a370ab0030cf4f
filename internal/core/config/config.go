package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var v *viper.Viper
var cfg *Config

// Config App-wide configuration
type Config struct {
	App       AppConfig       `mapstructure:"-"`
	Database  DatabaseConfig  `mapstructure:"-"`
	Redis     RedisConfig     `mapstructure:"-"`
	Cache     CacheConfig     `mapstructure:"-"`
	Board     BoardConfig     `mapstructure:"-"`
	Snowflake SnowflakeConfig `mapstructure:"-"`
	Logging   LoggingConfig   `mapstructure:"-"`
	Security  SecurityConfig  `mapstructure:"-"`
}

// AppConfig Application Configuration
type AppConfig struct {
	Host    string
	Port    int
	Mode    string
	BaseURL string
}

// DatabaseConfig MySQL Database Configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Username        string
	Password        string
	Name            string
	TablePrefix     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// RedisConfig Redis Configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// CacheConfig Collection cache configuration
type CacheConfig struct {
	Provider       string // memory | redis
	RefreshTimeout int    // 集合刷新超时(秒), 0 表示不限制
	SnapshotTTL    int    // redis 快照过期时间(秒)
	TrackerWindow  int    // 浏览/点击去重窗口(分钟)
}

// BoardConfig Board behaviour defaults
type BoardConfig struct {
	EmoticonsFile string
	OnlineWindow  int // 在线判定窗口(分钟)
}

// SnowflakeConfig Snowflake Configuration
type SnowflakeConfig struct {
	WorkerID int64
}

// LoggingConfig Logging Configuration
type LoggingConfig struct {
	Level      string
	Output     string
	Filename   string
	MaxSize    int
	MaxAge     int
	MaxBackups int
}

// SecurityConfig Security Configuration
type SecurityConfig struct {
	MgtAllowIPs []string // mgt 接口 IP 白名单
	RateLimit   int
}

// Init Initialize configuration with Viper
func Init(configPath string) error {
	v = viper.New()
	cfg = &Config{}

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	setDefaults()

	// 环境变量覆盖
	v.SetEnvPrefix("BOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvs()

	return parseConfig()
}

// setDefaults 设置默认值
func setDefaults() {
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.base_url", "")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.table_prefix", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 300)

	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("cache.provider", "memory")
	v.SetDefault("cache.refresh_timeout", 10)
	v.SetDefault("cache.snapshot_ttl", 3600)
	v.SetDefault("cache.tracker_window", 30)

	v.SetDefault("board.emoticons_file", "")
	v.SetDefault("board.online_window", 15)

	v.SetDefault("snowflake.worker_id", 0)

	v.SetDefault("security.mgt_allow_ips", []string{"127.0.0.1", "::1"})
	v.SetDefault("security.rate_limit", 100)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.output", "stdout")
}

// bindEnvs 绑定环境变量
func bindEnvs() {
	v.BindEnv("database.host", "BOARD_DATABASE_HOST")
	v.BindEnv("database.port", "BOARD_DATABASE_PORT")
	v.BindEnv("database.username", "BOARD_DATABASE_USERNAME")
	v.BindEnv("database.password", "BOARD_DATABASE_PASSWORD")
	v.BindEnv("database.name", "BOARD_DATABASE_NAME")
	v.BindEnv("database.table_prefix", "BOARD_DATABASE_TABLE_PREFIX")

	v.BindEnv("redis.host", "BOARD_REDIS_HOST")
	v.BindEnv("redis.port", "BOARD_REDIS_PORT")
	v.BindEnv("redis.password", "BOARD_REDIS_PASSWORD")

	v.BindEnv("cache.provider", "BOARD_CACHE_PROVIDER")
}

// parseConfig 解析配置到结构体
func parseConfig() error {
	cfg.App.Host = v.GetString("app.host")
	cfg.App.Port = v.GetInt("app.port")
	cfg.App.Mode = v.GetString("app.mode")
	cfg.App.BaseURL = strings.TrimSpace(v.GetString("app.base_url"))

	cfg.Database.Driver = v.GetString("database.driver")
	cfg.Database.Host = v.GetString("database.host")
	cfg.Database.Port = v.GetInt("database.port")
	cfg.Database.Username = v.GetString("database.username")
	cfg.Database.Password = v.GetString("database.password")
	cfg.Database.Name = v.GetString("database.name")
	cfg.Database.TablePrefix = v.GetString("database.table_prefix")
	cfg.Database.MaxOpenConns = v.GetInt("database.max_open_conns")
	cfg.Database.MaxIdleConns = v.GetInt("database.max_idle_conns")
	cfg.Database.ConnMaxLifetime = v.GetInt("database.conn_max_lifetime")

	cfg.Redis.Host = v.GetString("redis.host")
	cfg.Redis.Port = v.GetInt("redis.port")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.Redis.PoolSize = v.GetInt("redis.pool_size")

	cfg.Cache.Provider = v.GetString("cache.provider")
	cfg.Cache.RefreshTimeout = v.GetInt("cache.refresh_timeout")
	cfg.Cache.SnapshotTTL = v.GetInt("cache.snapshot_ttl")
	cfg.Cache.TrackerWindow = v.GetInt("cache.tracker_window")

	cfg.Board.EmoticonsFile = v.GetString("board.emoticons_file")
	cfg.Board.OnlineWindow = v.GetInt("board.online_window")

	cfg.Snowflake.WorkerID = v.GetInt64("snowflake.worker_id")

	cfg.Logging.Level = v.GetString("logging.level")
	cfg.Logging.Output = v.GetString("logging.output")
	cfg.Logging.Filename = v.GetString("logging.filename")
	cfg.Logging.MaxSize = v.GetInt("logging.max_size")
	cfg.Logging.MaxAge = v.GetInt("logging.max_age")
	cfg.Logging.MaxBackups = v.GetInt("logging.max_backups")

	cfg.Security.MgtAllowIPs = v.GetStringSlice("security.mgt_allow_ips")
	cfg.Security.RateLimit = v.GetInt("security.rate_limit")

	return nil
}

// Get 获取配置实例
func Get() *Config {
	return cfg
}

// GetDSN Get MySQL DSN
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Username, c.Password, c.Host, c.Port, c.Name)
}

// GetRedisAddr Get Redis address
func (c *RedisConfig) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetServerAddr Get server address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
