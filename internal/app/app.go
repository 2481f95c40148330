package app

import (
	"context"
	"errors"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/controller"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/internal/view"
	"interview_prep_backend/pkg/configwatcher"
	"interview_prep_backend/pkg/database"
	"interview_prep_backend/pkg/logger"
	"interview_prep_backend/pkg/monitoring"
	"interview_prep_backend/pkg/security"
	"interview_prep_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Sessions        *service.SessionManager
	tracer          *sdktrace.TracerProvider
	memoryStore     *service.MemorySessionStore
	configCallbacks []func(*config.Config)
}

type services struct {
	auth      *service.AuthService
	storage   *service.StorageService
	resume    *service.ResumeService
	interview *service.InterviewService
}

type controllers struct {
	auth      *controller.AuthController
	dashboard *controller.DashboardController
	resume    *controller.ResumeController
	interview *controller.InterviewController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initServices(cfg *config.Config, db *gorm.DB) *services {
	s := &services{}

	userRepo := repository.NewUserRepository(db)
	s.auth = service.NewAuthService(userRepo, cfg.Auth.BcryptCost)
	s.storage = service.NewStorageService(&cfg.Storage)
	s.resume = service.NewResumeService(s.storage, service.MockResumeAnalyzer{})

	scorer := service.NewWordCountScorer()
	if cfg.Interview.WordThreshold > 0 {
		scorer.Threshold = cfg.Interview.WordThreshold
		scorer.LongPoints = cfg.Interview.LongPoints
		scorer.ShortPoints = cfg.Interview.ShortPoints
	}
	s.interview = service.NewInterviewService(scorer, cfg.Interview.DefaultRole)

	return s
}

func (a *App) initControllers(s *services, cfg *config.Config, db *gorm.DB) *controllers {
	cookie := controller.CookieOptions{
		Name:   cfg.Session.CookieName,
		MaxAge: int(cfg.Session.ExpireTime / time.Second),
		Secure: cfg.Session.Secure,
	}

	return &controllers{
		auth:      controller.NewAuthController(s.auth, a.Sessions, cookie),
		dashboard: controller.NewDashboardController(),
		resume:    controller.NewResumeController(s.resume, a.Sessions, cfg.Storage.MaxUploadMB),
		interview: controller.NewInterviewController(s.interview, a.Sessions),
		health:    controller.NewHealthController(db, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New 用已经建立的连接组装应用，rdb 为 nil 时会话保存在进程内存中。测试直接调用
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	gin.SetMode(cfg.Server.Mode)

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	var store service.SessionStore
	if rdb != nil {
		store = service.NewRedisSessionStore(rdb)
	} else {
		app.memoryStore = service.NewMemorySessionStore()
		store = app.memoryStore
	}
	app.Sessions = service.NewSessionManager(store, cfg.Session.Secret, cfg.Session.ExpireTime)

	// 监控初始化
	monitoring.Init()

	services := app.initServices(cfg, db)
	controllers := app.initControllers(services, cfg, db)

	router := gin.Default()
	router.SetHTMLTemplate(view.Templates())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	return app
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	gormLevel := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		gormLevel = gormlogger.Info
	}

	db, err := database.InitDB(&cfg.Database, gormLevel)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("Failed to migrate database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Session.Store == util.SessionStoreRedis {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
			log.Fatalf("Failed to initialize redis: %v", err)
		}
	}

	app := New(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	// 配置热更新：目前只调整日志级别
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetLevel(newCfg.Server.Mode)
		logger.Log.Info("Log level updated", zap.String("level", logger.Level().String()))
	})

	return app
}

func (a *App) startBackgroundTasks(ctx context.Context) {
	if a.memoryStore != nil {
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if n := a.memoryStore.PurgeExpired(); n > 0 {
						logger.Log.Debug("purged expired sessions", zap.Int("count", n))
					}
				}
			}
		}()
	}

	if a.Config.ConfigFile != "" {
		go func() {
			err := configwatcher.WatchConfig(ctx, a.Config.ConfigFile, func(newCfg *config.Config) {
				for _, cb := range a.configCallbacks {
					cb(newCfg)
				}
			})
			if err != nil {
				logger.Log.Error("config watcher stopped", zap.Error(err))
			}
		}()
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	a.startBackgroundTasks(ctx)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
