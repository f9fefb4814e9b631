package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"secquest_backend/internal/config"
	"secquest_backend/internal/controller"
	"secquest_backend/internal/repository"
	"secquest_backend/internal/service"
	"secquest_backend/pkg/configwatcher"
	"secquest_backend/pkg/database"
	"secquest_backend/pkg/lock"
	"secquest_backend/pkg/logger"
	"secquest_backend/pkg/monitoring"
	"secquest_backend/pkg/security"
	"secquest_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	settings        *service.SettingsStore
	tracer          *sdktrace.TracerProvider
	stopBackground  context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	progress *repository.ProgressRepository
	content  *repository.ContentRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	content     *service.ContentService
	progress    *service.ProgressService
	leaderboard *service.LeaderboardService
	recalc      *service.StreakRecalcService
}

type controllers struct {
	auth        *controller.AuthController
	content     *controller.ContentController
	progress    *controller.ProgressController
	leaderboard *controller.LeaderboardController
	admin       *controller.AdminController
	payment     *controller.PaymentController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		progress: repository.NewProgressRepository(db),
		content:  repository.NewContentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	// Redis 未启用时任务锁退化为进程内锁
	var locker lock.Locker = lock.NewLocalLocker()
	if rdb != nil {
		locker = lock.NewRedisLocker(rdb, "secquest:lock:")
	}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.progress, a.settings)
	s.content = service.NewContentService(repos.content, repos.progress, rdb)
	s.progress = service.NewProgressService(repos.progress, s.content, a.settings)
	s.leaderboard = service.NewLeaderboardService(repos.user)
	s.recalc = service.NewStreakRecalcService(repos.user, repos.progress, locker, a.settings)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.user),
		content:     controller.NewContentController(s.content),
		progress:    controller.NewProgressController(s.progress),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		admin:       controller.NewAdminController(s.recalc),
		payment:     controller.NewPaymentController(s.user),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window, security.ClientIPKey))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// applyConfig 热更新时只替换进度参数，其余配置需要重启
func (a *App) applyConfig(cfg *config.Config) {
	ps, err := service.NewProgressSettings(cfg.Progress)
	if err != nil {
		logger.Log.Error("进度参数无效，保留旧配置", zap.Error(err))
		return
	}
	a.settings.Store(ps)
	logger.Log.Info("进度参数已更新",
		zap.String("timezone", ps.Location.String()),
		zap.Int("exercise_points", ps.ExercisePoints),
		zap.Int("quiz_passing_score", ps.QuizPassingScore))
}

func (a *App) startBackgroundTasks(ctx context.Context, s *services, interval time.Duration) {
	if interval <= 0 {
		logger.Log.Info("连续学习天数定时重算已关闭")
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				summary, err := s.recalc.RecalculateAll(ctx)
				if err != nil {
					logger.Log.Error("定时重算连续学习天数失败", zap.Error(err))
					continue
				}
				logger.Log.Info("定时重算连续学习天数完成",
					zap.Int("total", summary.TotalUsers),
					zap.Int("updated", summary.UpdatedUsers),
					zap.Int("failed", len(summary.Failures)))
			}
		}
	}()
}

// newApp 组装依赖与路由，不启动任何后台任务
func newApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	ps, err := service.NewProgressSettings(cfg.Progress)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		settings: service.NewSettingsStore(ps),
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services, db, rdb)

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, repos, cfg)
	app.RegisterConfigCallback(app.applyConfig)

	return app, nil
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode != gin.ReleaseMode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式默认不迁移，需要显式 -migrate
	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	}

	monitoring.Init()

	app, err := newApp(cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to build application", zap.Error(err))
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("secquest-progress", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

// WatchConfig 监听配置文件变化，回调按注册顺序执行
func (a *App) WatchConfig(ctx context.Context, configDir string) error {
	return configwatcher.Watch(ctx, filepath.Join(configDir, "config.yaml"), func(cfg *config.Config) {
		for _, cb := range a.configCallbacks {
			cb(cfg)
		}
	})
}

func (a *App) Run(configDir string) {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopBackground = cancel

	if err := a.WatchConfig(ctx, configDir); err != nil {
		logger.Log.Warn("配置热更新不可用", zap.Error(err))
	}
	a.startBackgroundTasks(ctx, a.services, a.Config.Progress.RecalcInterval)

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	a.stopBackground()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(shutdownCtx)

	logger.Log.Info("Server exiting")
}

// Close 释放 tracer、Redis 与数据库连接
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// RecalcService 供命令行工具复用同一套组装逻辑
func (a *App) RecalcService() *service.StreakRecalcService {
	return a.services.recalc
}

func (a *App) LeaderboardService() *service.LeaderboardService {
	return a.services.leaderboard
}
