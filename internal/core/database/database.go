package database

import (
	"context"
	"time"

	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/core/config"
	"github.com/samwilcox/nextboard-sub000/internal/core/logger"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

var db *DB

// Statement 由 sqlbuilder 构建的参数化语句
type Statement struct {
	Query  string
	Values []any
}

// Result 执行结果
type Result struct {
	InsertID     int64
	RowsAffected int64
}

// DB 数据库访问句柄，同时作为集合缓存的数据来源
type DB struct {
	conn   *sqlx.DB
	prefix string
}

// Init Initialize database connection
func Init(cfg *config.DatabaseConfig) error {
	conn, err := sqlx.Connect(cfg.Driver, cfg.GetDSN())
	if err != nil {
		logger.Error("failed to connect database", logger.ErrorField(err))
		return err
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	db = &DB{conn: conn, prefix: cfg.TablePrefix}

	logger.Info("database initialized",
		logger.String("host", cfg.Host),
		logger.Int("port", cfg.Port),
		logger.String("database", cfg.Name))

	return nil
}

// Get Get database instance
func Get() *DB {
	return db
}

// Close Close database connection
func Close() error {
	if db != nil {
		return db.conn.Close()
	}
	return nil
}

// Ping Check database connection
func Ping() error {
	if db == nil {
		return nil
	}
	return db.conn.Ping()
}

// Exec 执行参数化语句
func (d *DB) Exec(ctx context.Context, st Statement) (Result, error) {
	res, err := d.conn.ExecContext(ctx, st.Query, st.Values...)
	if err != nil {
		return Result{}, err
	}
	insertID, _ := res.LastInsertId()
	affected, _ := res.RowsAffected()
	return Result{InsertID: insertID, RowsAffected: affected}, nil
}

// LoadCollection 整表读取为原始记录，实现 cache.Source
// []byte 统一转为 string，类型转换由 repository 层处理
func (d *DB) LoadCollection(ctx context.Context, name string) ([]cache.Record, error) {
	rows, err := d.conn.QueryxContext(ctx, "SELECT * FROM "+d.prefix+name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]cache.Record, 0, 64)
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		records = append(records, cache.Record(row))
	}
	return records, rows.Err()
}
