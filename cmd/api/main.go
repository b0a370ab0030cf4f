package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/samwilcox/nextboard-sub000/internal/api/mgt"
	v1 "github.com/samwilcox/nextboard-sub000/internal/api/v1"
	"github.com/samwilcox/nextboard-sub000/internal/cache"
	"github.com/samwilcox/nextboard-sub000/internal/core/config"
	"github.com/samwilcox/nextboard-sub000/internal/core/database"
	"github.com/samwilcox/nextboard-sub000/internal/core/logger"
	"github.com/samwilcox/nextboard-sub000/internal/core/settings"
	"github.com/samwilcox/nextboard-sub000/internal/core/snowflake"
	"github.com/samwilcox/nextboard-sub000/internal/middleware"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/sqlbuilder"
	"github.com/samwilcox/nextboard-sub000/internal/pkg/tracker"
	"github.com/samwilcox/nextboard-sub000/internal/repository"
	"github.com/samwilcox/nextboard-sub000/internal/service"
)

func main() {
	// 1. 加载配置 (Viper)
	if err := config.Init("."); err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Get()

	// 2. 初始化 Logger
	if err := logger.Init(&cfg.Logging); err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting nextboard...")

	// 3. 初始化 MySQL
	if err := database.Init(&cfg.Database); err != nil {
		logger.Error("Failed to init database", logger.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	// 4. 初始化 Redis (快照镜像，memory provider 下不连接)
	var redisClient *redis.Client
	if cfg.Cache.Provider == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetRedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		defer redisClient.Close()
	}

	// 5. 初始化集合缓存并预热
	if err := cache.Init(&cfg.Cache, database.Get(), redisClient); err != nil {
		logger.Error("Failed to init cache", logger.String("error", err.Error()))
		os.Exit(1)
	}
	provider := cache.Get()

	warmCtx, warmCancel := context.WithTimeout(context.Background(), 60*time.Second)
	if warmer, ok := provider.(interface{ Warm(context.Context) error }); ok {
		if err := warmer.Warm(warmCtx); err != nil {
			logger.Error("Failed to warm cache", logger.String("error", err.Error()))
			warmCancel()
			os.Exit(1)
		}
	}
	warmCancel()

	// 6. 加载设置表与表情
	if err := settings.Init(provider, cfg.Board.EmoticonsFile); err != nil {
		logger.Error("Failed to load settings", logger.String("error", err.Error()))
		os.Exit(1)
	}

	// 7. 初始化 Snowflake
	if err := snowflake.Init(&cfg.Snowflake); err != nil {
		logger.Error("Failed to init snowflake", logger.String("error", err.Error()))
		os.Exit(1)
	}

	// 8. 浏览/点击去重窗口
	viewTracker, err := tracker.New(time.Duration(cfg.Cache.TrackerWindow) * time.Minute)
	if err != nil {
		logger.Error("Failed to init tracker", logger.String("error", err.Error()))
		os.Exit(1)
	}
	defer viewTracker.Close()

	// 9. 初始化 Repository
	groupRepo := repository.NewGroupRepository(provider)
	memberRepo := repository.NewMemberRepository(provider, groupRepo)
	categoryRepo := repository.NewCategoryRepository(provider)
	forumRepo := repository.NewForumRepository(provider)
	topicRepo := repository.NewTopicRepository(provider)
	postRepo := repository.NewPostRepository(provider)
	tagRepo := repository.NewTagRepository(provider)
	sessionRepo := repository.NewSessionRepository(provider)
	likeRepo := repository.NewLikeRepository(provider)
	attachmentRepo := repository.NewAttachmentRepository(provider)
	settingRepo := repository.NewSettingRepository(provider)

	// 10. 初始化 Service
	db := database.Get()
	// 驱动不受支持在启动期就报出来，不留到请求里 panic
	if _, err := sqlbuilder.New(cfg.Database.Driver, cfg.Database.TablePrefix); err != nil {
		logger.Error("Failed to init sql builder", logger.String("error", err.Error()))
		os.Exit(1)
	}
	stmt := func() *sqlbuilder.Builder {
		return sqlbuilder.MustNew(cfg.Database.Driver, cfg.Database.TablePrefix)
	}
	onlineWindow := time.Duration(cfg.Board.OnlineWindow) * time.Minute

	likeSvc := service.NewLikeService(provider, db, stmt)
	followSvc := service.NewFollowService(provider, db, stmt)
	topicSvc := service.NewTopicService(provider, db, stmt, topicRepo, forumRepo, postRepo, viewTracker)
	forumSvc := service.NewForumService(provider, db, stmt, categoryRepo, forumRepo, topicRepo, postRepo, viewTracker)
	pollSvc := service.NewPollService(provider, db, stmt, topicRepo)
	onlineSvc := service.NewOnlineService(provider, db, stmt, sessionRepo, memberRepo, forumRepo, topicRepo, onlineWindow)
	memberSvc := service.NewMemberService(provider, db, stmt, memberRepo, sessionRepo)
	sessionSvc := service.NewSessionService(provider, db, stmt, sessionRepo, onlineWindow)
	statsSvc := service.NewStatsService(provider, memberRepo)
	tagSvc := service.NewTagService(tagRepo, topicRepo)
	perms := service.NewPassThroughPermissions()

	// 11. 初始化 Handler
	forumHandler := v1.NewForumHandler(forumSvc, forumRepo, topicRepo)
	topicHandler := v1.NewTopicHandler(topicSvc, pollSvc, topicRepo, postRepo, perms)
	contentHandler := v1.NewContentHandler(likeSvc, followSvc, likeRepo, perms)
	postHandler := v1.NewPostHandler(postRepo, attachmentRepo)
	boardHandler := v1.NewBoardHandler(onlineSvc, statsSvc, tagSvc)
	memberHandler := v1.NewMemberHandler(memberSvc, memberRepo)
	sessionHandler := v1.NewSessionHandler(sessionSvc)

	cacheMgtHandler := mgt.NewCacheHandler(provider)
	settingsMgtHandler := mgt.NewSettingsHandler(provider, settingRepo)
	sessionMgtHandler := mgt.NewSessionHandler(sessionSvc)

	// 12. 创建 IP 限制器
	rateLimiter := middleware.NewIPLimiter(cfg.Security.RateLimit, 60)

	// 13. 注册路由
	gin.SetMode(cfg.App.Mode)
	router := gin.New()

	// Middleware
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RateLimitMW(rateLimiter))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Health Check (跳过访问者解析)
	router.GET("/health", func(c *gin.Context) {
		if err := database.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	// Root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    "nextboard",
			"status":  "running",
			"version": "1.0.0",
		})
	})

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public API (v1)
	v1Group := router.Group("/api/v1")
	v1Group.Use(middleware.VisitorMW(memberSvc))
	{
		// Session
		v1Group.POST("/session/touch", sessionHandler.Touch)

		// Forum
		v1Group.GET("/forums/tree", forumHandler.Tree)
		v1Group.GET("/forum/:fid", forumHandler.Get)
		v1Group.GET("/forum/:fid/redirect", forumHandler.Redirect)

		// Topic
		v1Group.GET("/topic/:tid", topicHandler.Get)
		v1Group.POST("/topic/:tid/posts", topicHandler.CreatePost)
		v1Group.GET("/topic/:tid/poll", topicHandler.GetPoll)
		v1Group.POST("/topic/:tid/poll/vote", topicHandler.Vote)

		// Post
		v1Group.GET("/post/:pid", postHandler.Get)

		// Content (like/follow)
		v1Group.GET("/content/:type/:cid", contentHandler.Status)
		v1Group.GET("/content/:type/:cid/likes", contentHandler.Likes)
		v1Group.POST("/content/:type/:cid/like", contentHandler.Like)
		v1Group.DELETE("/content/:type/:cid/like", contentHandler.Unlike)
		v1Group.POST("/content/:type/:cid/follow", contentHandler.Follow)
		v1Group.DELETE("/content/:type/:cid/follow", contentHandler.Unfollow)

		// Member
		v1Group.GET("/member/:mid", memberHandler.Get)
		v1Group.GET("/member/:mid/visitors", memberHandler.Visitors)

		// Board
		v1Group.GET("/online", boardHandler.WhosOnline)
		v1Group.GET("/stats", boardHandler.Stats)
		v1Group.GET("/tags", boardHandler.Tags)
		v1Group.GET("/emoticons", boardHandler.Emoticons)
	}

	// Management API (mgt) - 强制 IP 白名单
	mgtGroup := router.Group("/api/mgt")
	mgtGroup.Use(middleware.MgtWhitelistMW())
	{
		mgtGroup.GET("/cache", cacheMgtHandler.Status)
		mgtGroup.POST("/cache/refresh", cacheMgtHandler.Refresh)
		mgtGroup.GET("/settings/:name", settingsMgtHandler.Get)
		mgtGroup.POST("/settings/reload", settingsMgtHandler.Reload)
		mgtGroup.POST("/sessions/prune", sessionMgtHandler.Prune)
	}

	// 14. 启动 HTTP Server
	srv := &http.Server{
		Addr:    cfg.App.GetServerAddr(),
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", logger.String("error", err.Error()))
		}
	}()

	// pprof Server (可选，用于性能分析)
	go func() {
		logger.Info("PProf server starting", logger.String("addr", "localhost:6060"))
		if err := http.ListenAndServe("localhost:6060", nil); err != nil && err != http.ErrServerClosed {
			logger.Error("PProf server error", logger.String("error", err.Error()))
		}
	}()

	// Graceful shutdown (优雅关闭)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logger.String("error", err.Error()))
	}

	database.Close()
	if redisClient != nil {
		redisClient.Close()
	}
	logger.Sync()

	logger.Info("Server exited gracefully")
}
