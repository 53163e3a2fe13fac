package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/dispatchiq/backend/internal/application/catalog"
	complianceapp "github.com/dispatchiq/backend/internal/application/compliance"
	identityapp "github.com/dispatchiq/backend/internal/application/identity"
	onboardingapp "github.com/dispatchiq/backend/internal/application/onboarding"
	propertyapp "github.com/dispatchiq/backend/internal/application/property"
	walletapp "github.com/dispatchiq/backend/internal/application/wallet"
	workforceapp "github.com/dispatchiq/backend/internal/application/workforce"
	workorderapp "github.com/dispatchiq/backend/internal/application/workorder"
	"github.com/dispatchiq/backend/internal/infrastructure/auth"
	"github.com/dispatchiq/backend/internal/infrastructure/config"
	"github.com/dispatchiq/backend/internal/infrastructure/event"
	"github.com/dispatchiq/backend/internal/infrastructure/logger"
	"github.com/dispatchiq/backend/internal/infrastructure/persistence"
	"github.com/dispatchiq/backend/internal/infrastructure/storage"
	"github.com/dispatchiq/backend/internal/interfaces/http/handler"
	"github.com/dispatchiq/backend/internal/interfaces/http/middleware"
	"github.com/dispatchiq/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting DispatchIQ Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
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

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	technicianRepo := persistence.NewGormTechnicianRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	serviceTypeRepo := persistence.NewGormServiceTypeRepository(db.DB)
	workOrderRepo := persistence.NewGormWorkOrderRepository(db.DB)
	evidenceRepo := persistence.NewGormEvidenceRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	payoutMethodRepo := persistence.NewGormPayoutMethodRepository(db.DB)

	// Initialize JWT service and token blacklist. Redis backs the
	// blacklist; an in-memory fallback keeps single-instance
	// deployments working without it.
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Initialize object storage for evidence and compliance uploads.
	// Without an endpoint or credentials configured, uploads are held
	// in memory so local development works without S3 or MinIO.
	var objectStorage storage.ObjectStorage
	if cfg.Storage.Endpoint != "" || cfg.Storage.AccessKey != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage ready", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		log.Warn("No object storage configured, using in-memory storage")
		objectStorage = storage.NewStubObjectStorage()
	}

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Initialize application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, eventBus, log)
	onboardingService := onboardingapp.NewService(
		userRepo, companyRepo, propertyRepo, technicianRepo, vendorRepo, eventBus, log,
	)
	catalogService := catalogapp.NewService(categoryRepo, serviceTypeRepo, log)
	propertyService := propertyapp.NewService(propertyRepo, unitRepo, vendorRepo, log)
	workforceService := workforceapp.NewService(technicianRepo, propertyRepo, log)
	workOrderService := workorderapp.NewService(
		workOrderRepo, evidenceRepo, propertyRepo, unitRepo,
		technicianRepo, serviceTypeRepo, objectStorage, eventBus, log,
	)
	complianceService := complianceapp.NewService(documentRepo, technicianRepo, objectStorage, log)
	walletService := walletapp.NewService(
		accountRepo, transactionRepo, payoutMethodRepo, technicianRepo, eventBus, log,
	)

	// Register event handlers for cross-context integration.
	// Work order completion -> technician wallet payout credit.
	workOrderCompletedHandler := walletapp.NewWorkOrderCompletedHandler(walletService, log)
	eventBus.Subscribe(workOrderCompletedHandler)
	log.Info("Event handlers registered",
		zap.Strings("work_order_completed_events", workOrderCompletedHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(authService),
		Onboarding: handler.NewOnboardingHandler(onboardingService),
		Catalog:    handler.NewCatalogHandler(catalogService),
		Property:   handler.NewPropertyHandler(propertyService),
		Workforce:  handler.NewWorkforceHandler(workforceService),
		WorkOrder:  handler.NewWorkOrderHandler(workOrderService),
		Compliance: handler.NewComplianceHandler(complianceService),
		Wallet:     handler.NewWalletHandler(walletService),
		System:     handler.NewSystemHandler(cfg.App.Name, version),
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

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
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. Metrics - Record request metrics (if enabled)
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	var metrics *middleware.HTTPMetrics
	if cfg.Metrics.Enabled {
		metrics = middleware.NewHTTPMetrics()
		engine.Use(metrics.Middleware())
	}

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check and metrics endpoints (outside API versioning,
	// registered before the JWT middleware so they stay public)
	engine.GET("/health", healthHandler(db))
	if metrics != nil {
		engine.GET(cfg.Metrics.Path, metrics.Handler())
	}

	// JWT authentication for API routes, with the credential and
	// verification endpoints left public
	engine.Use(middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/signup",
			"/api/v1/auth/signin",
			"/api/v1/auth/refresh",
			"/api/v1/auth/verify-email",
			"/api/v1/auth/resend-verification",
		},
		SkipPathPrefixes: []string{
			"/api/v1/system",
		},
		Logger: log,
	}))

	// A stricter limiter for the credential endpoints, keyed by client
	// IP since these requests carry no company claim
	var authMiddleware []gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authMiddleware = append(authMiddleware, middleware.RateLimitByKey(authLimiter, func(c *gin.Context) string {
			return c.ClientIP()
		}))
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}

	// Register API routes
	router.Setup(router.NewRouter(engine, router.WithAPIVersion("v1")), handlers, authMiddleware...)

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
