package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"journalx/internal/ai"
	"journalx/internal/auth"
	"journalx/internal/cache"
	"journalx/internal/config"
	cronrunner "journalx/internal/cron"
	"journalx/internal/db"
	"journalx/internal/handler"
	"journalx/internal/live"
	"journalx/internal/logger"
	"journalx/internal/notification"
	gormrepository "journalx/internal/repository/gorm"
	"journalx/internal/service"
	"journalx/internal/storage"

	_ "journalx/docs"
)

func main() {
	cfgPath := os.Getenv("JX_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("JX_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	secret := os.Getenv(cfg.Auth.SecretEnv)
	if secret == "" {
		logger.Fatal("auth secret missing", zap.String("env", cfg.Auth.SecretEnv))
	}
	jwt := auth.JWT{Secret: []byte(secret), TokenTTL: cfg.Auth.TokenTTL}

	var cacheStore cache.Store
	if strings.EqualFold(cfg.Cache.Backend, "redis") {
		cacheStore = cache.NewRedisStore(&redis.Options{
			Addr: cfg.Cache.RedisAddr,
			DB:   cfg.Cache.RedisDB,
		})
	} else {
		cacheStore = cache.NewMemoryStore()
	}

	textClient, err := ai.NewTextClient(cfg.AI.Text)
	if err != nil {
		logger.Fatal("text model client init failed", zap.Error(err))
	}
	visionClient, err := ai.NewVisionClient(cfg.AI.Vision)
	if err != nil {
		logger.Fatal("vision model client init failed", zap.Error(err))
	}

	storageClient := &storage.Client{
		BaseURL: cfg.Storage.BaseURL,
		Bucket:  cfg.Storage.Bucket,
		APIKey:  os.Getenv(cfg.Storage.APIKeyEnv),
		Cache:   cacheStore,
		URLTTL:  cfg.Storage.URLTTL,
		HTTP:    &http.Client{Timeout: cfg.Storage.Timeout},
	}

	store := gormrepository.New(dbConn.Gorm)
	hub := live.NewHub(logger)

	entrySvc := &service.EntryService{Repo: store, Text: textClient, Logger: logger}
	analysisSvc := &service.AnalysisService{Repo: store, Vision: visionClient, Storage: storageClient, Logger: logger}
	ledgerSvc := &service.LedgerService{Repo: store, Logger: logger}
	socialSvc := &service.SocialService{Repo: store, Hub: hub, Logger: logger}
	alertSvc := &service.AlertService{
		Repo:          store,
		Logger:        logger,
		AlertsEnabled: cfg.Alerts.Enabled,
		Telegram:      notification.TelegramSender{HTTP: &http.Client{Timeout: 10 * time.Second}},
		TelegramToken: os.Getenv(cfg.Alerts.TelegramTokenEnv),
		Webhook:       notification.WebhookSender{HTTP: &http.Client{Timeout: 10 * time.Second}},
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	// Routes registered before the auth middleware stay public.
	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	handler.RegisterDocs(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.Use(auth.Middleware(jwt))

	entryHandler := &handler.EntryHandler{Entries: entrySvc, Analysis: analysisSvc, Logger: logger}
	entryHandler.Register(engine)
	socialHandler := &handler.SocialHandler{Social: socialSvc, Hub: hub, Logger: logger}
	socialHandler.Register(engine)
	settingsHandler := &handler.SettingsHandler{Repo: store, Ledger: ledgerSvc, Logger: logger}
	settingsHandler.Register(engine)
	profileHandler := &handler.ProfileHandler{Repo: store, Logger: logger}
	profileHandler.Register(engine)
	newsletterHandler := &handler.NewsletterHandler{Repo: store, Enabled: cfg.Newsletter.Enabled, Logger: logger}
	newsletterHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		_, err := cronRunner.Add(cfg.Cron.BalanceSnapshot, func(ctx context.Context) {
			if err := alertSvc.Run(ctx); err != nil {
				logger.Warn("balance sweep failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register balance snapshot failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
