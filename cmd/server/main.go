package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	assistantapp "github.com/fuadmd/WHH-SBG/internal/application/assistant"
	forumapp "github.com/fuadmd/WHH-SBG/internal/application/forum"
	identityapp "github.com/fuadmd/WHH-SBG/internal/application/identity"
	marketplaceapp "github.com/fuadmd/WHH-SBG/internal/application/marketplace"
	mediaapp "github.com/fuadmd/WHH-SBG/internal/application/media"
	notificationapp "github.com/fuadmd/WHH-SBG/internal/application/notification"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/auth"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/config"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/event"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/genai"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/logger"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/persistence"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/realtime"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/storage"
	"github.com/fuadmd/WHH-SBG/internal/interfaces/http/handler"
	"github.com/fuadmd/WHH-SBG/internal/interfaces/http/middleware"
	"github.com/fuadmd/WHH-SBG/internal/interfaces/http/router"
)

const appVersion = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SBG Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	postRepo := persistence.NewGormPostRepository(db.DB)
	commentRepo := persistence.NewGormCommentRepository(db.DB)
	reactionRepo := persistence.NewGormReactionRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	businessRepo := persistence.NewGormBusinessRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Realtime hub for live notification delivery
	hub := realtime.NewHub(cfg.Realtime.ClientBuffer, log)
	defer hub.Close()

	// Optional Redis bridge for cross-instance fan-out
	var bridge *realtime.RedisBridge
	if cfg.Redis.Enabled {
		bridge, err = realtime.NewRedisBridge(cfg.Redis, cfg.Realtime.RedisChannel, hub,
			realtime.WithBridgeLogger(log),
		)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		go func() {
			if err := bridge.Subscribe(context.Background()); err != nil {
				log.Error("Redis bridge subscription ended", zap.Error(err))
			}
		}()
		defer func() {
			if err := bridge.Close(); err != nil {
				log.Error("Error closing Redis bridge", zap.Error(err))
			}
		}()
		log.Info("Redis bridge started", zap.String("channel", cfg.Realtime.RedisChannel))
	}
	livePublisher := realtime.NewNotificationPublisher(hub, bridge)

	// Object storage for uploaded media
	var objectStorage mediaapp.ObjectStorageService
	switch cfg.Storage.Provider {
	case "s3":
		objectStorage, err = storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		log.Info("S3 object storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	default:
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Using stub object storage; uploads are not persisted")
	}

	mediaService := mediaapp.NewService(objectStorage)
	if cfg.Storage.MaxUploadSize > 0 {
		policy := mediaapp.DefaultServiceConfig()
		policy.MaxUploadSize = cfg.Storage.MaxUploadSize
		mediaService.SetConfig(policy)
	}

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, log)
	moderationService := identityapp.NewModerationService(userRepo, log)

	// Forum services
	postService := forumapp.NewPostService(postRepo, commentRepo, reactionRepo, notificationRepo, userRepo, eventBus)
	commentService := forumapp.NewCommentService(commentRepo, postRepo, userRepo, eventBus)
	reactionService := forumapp.NewReactionService(reactionRepo, postRepo, userRepo, eventBus)

	// Notification services
	dispatcher := notificationapp.NewDispatcher(notificationRepo, userRepo, livePublisher, log)
	inboxService := notificationapp.NewInboxService(notificationRepo)

	// Marketplace services
	businessService := marketplaceapp.NewBusinessService(businessRepo, userRepo, eventBus)
	productService := marketplaceapp.NewProductService(productRepo, businessRepo, userRepo, eventBus)
	searchService := marketplaceapp.NewSearchService(businessRepo)

	// Business assistant (optional)
	var assistantService *assistantapp.Service
	if cfg.GenAI.Enabled {
		genaiClient, err := genai.NewClient(cfg.GenAI, genai.WithClientLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize GenAI client", zap.Error(err))
		}
		assistantService = assistantapp.NewService(genaiClient, businessRepo, log)
		log.Info("Business assistant enabled", zap.String("model", cfg.GenAI.Model))
	}

	// Forum events -> notification dispatch
	forumEventHandler := notificationapp.NewForumEventHandler(dispatcher, postRepo, commentRepo, log)
	eventBus.Subscribe(forumEventHandler)
	log.Info("Event handlers registered",
		zap.Strings("forum_events", forumEventHandler.EventTypes()),
	)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests
	// 5. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Register route groups
	r := router.NewRouter(engine, jwtService).
		Register(handler.NewSystemHandler(cfg.App.Name, appVersion)).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewModerationHandler(moderationService)).
		Register(handler.NewPostHandler(postService)).
		Register(handler.NewCommentHandler(commentService)).
		Register(handler.NewReactionHandler(reactionService)).
		Register(handler.NewNotificationHandler(inboxService, hub, cfg.Realtime.HeartbeatInterval)).
		Register(handler.NewMarketplaceHandler(searchService)).
		Register(handler.NewBusinessHandler(businessService)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewMediaHandler(mediaService))
	if assistantService != nil {
		r.Register(handler.NewAssistantHandler(assistantService))
	}
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
