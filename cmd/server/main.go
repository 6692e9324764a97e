package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/grafica/backend/internal/application/catalog"
	financeapp "github.com/grafica/backend/internal/application/finance"
	identityapp "github.com/grafica/backend/internal/application/identity"
	partnerapp "github.com/grafica/backend/internal/application/partner"
	productionapp "github.com/grafica/backend/internal/application/production"
	reportapp "github.com/grafica/backend/internal/application/report"
	tradeapp "github.com/grafica/backend/internal/application/trade"
	"github.com/grafica/backend/internal/infrastructure/auth"
	"github.com/grafica/backend/internal/infrastructure/cache"
	"github.com/grafica/backend/internal/infrastructure/config"
	"github.com/grafica/backend/internal/infrastructure/event"
	"github.com/grafica/backend/internal/infrastructure/identityprovider"
	"github.com/grafica/backend/internal/infrastructure/logger"
	"github.com/grafica/backend/internal/infrastructure/persistence"
	"github.com/grafica/backend/internal/infrastructure/realtime"
	"github.com/grafica/backend/internal/infrastructure/telemetry"
	"github.com/grafica/backend/internal/interfaces/http/handler"
	"github.com/grafica/backend/internal/interfaces/http/middleware"
	"github.com/grafica/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Grafica backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry
	otelProviders, err := telemetry.Setup(ctx, cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	meter := otelProviders.Meter()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if db.Driver == "sqlite" {
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Failed to create SQLite schema", zap.Error(err))
		}
	}
	dbSystem := "postgresql"
	if db.Driver == "sqlite" {
		dbSystem = "sqlite"
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:  cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBSystem: dbSystem,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", db.Driver))

	// Redis is optional; without it sessions and revocations stay in process
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	sessionOpts := []cache.SessionStoreFactoryOption{cache.WithLogger(log)}
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		sessionOpts = append(sessionOpts, cache.WithRedisClient(redisClient))
	}

	provider, err := identityprovider.New(ctx, cfg.Identity, log)
	if err != nil {
		log.Fatal("Failed to initialize identity provider", zap.Error(err))
	}

	// Repositories
	txManager := persistence.NewGormTransactionManager(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	membershipRepo := persistence.NewGormMembershipRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	serviceOrderRepo := persistence.NewGormServiceOrderRepository(db.DB)
	purchaseListRepo := persistence.NewGormPurchaseListRepository(db.DB)
	productionRepo := persistence.NewGormProductionOrderRepository(db.DB)
	receivableRepo := persistence.NewGormReceivableRepository(db.DB)
	payableRepo := persistence.NewGormPayableRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	activeStore := cache.NewSessionStoreFactory(cfg.Session,
		persistence.NewGormActiveTenantStore(db.DB), sessionOpts...).CreateStore()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, provider, jwtService, blacklist, log)
	tenantService := identityapp.NewTenantService(tenantRepo, membershipRepo, activeStore, txManager, log)
	memberService := identityapp.NewMemberService(userRepo, membershipRepo, provider, txManager, log)
	accessService := identityapp.NewAccessService(membershipRepo)

	quoteService := tradeapp.NewQuoteService(quoteRepo, serviceOrderRepo, receivableRepo, clientRepo, txManager, log)
	serviceOrderService := tradeapp.NewServiceOrderService(serviceOrderRepo, clientRepo, txManager, log)
	purchaseListService := tradeapp.NewPurchaseListService(purchaseListRepo, serviceOrderRepo, log)
	productionService := productionapp.NewService(productionRepo, clientRepo, quoteRepo, txManager, log)
	receivableService := financeapp.NewReceivableService(receivableRepo, clientRepo, categoryRepo, log)
	payableService := financeapp.NewPayableService(payableRepo, supplierRepo, categoryRepo, log)
	clientService := partnerapp.NewClientService(clientRepo, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	ledgerService := reportapp.NewLedgerService(reportRepo, reportRepo, log)

	// Events: board subscribers and workflow counters
	eventBus := event.NewInMemoryEventBus(log)
	hub := realtime.NewHub(realtime.Options{
		AllowedOrigins: cfg.Realtime.AllowedOrigins,
		WriteTimeout:   cfg.Realtime.WriteTimeout,
		PingInterval:   cfg.Realtime.PingInterval,
	}, log)
	go hub.Run(ctx)
	if cfg.Realtime.Enabled {
		eventBus.Subscribe(hub)
	}
	workflowMetrics, err := telemetry.NewWorkflowMetrics(meter)
	if err != nil {
		log.Fatal("Failed to register workflow metrics", zap.Error(err))
	}
	eventBus.Subscribe(workflowMetrics)

	quoteService.SetEventPublisher(eventBus)
	serviceOrderService.SetEventPublisher(eventBus)
	purchaseListService.SetEventPublisher(eventBus)
	productionService.SetEventPublisher(eventBus)

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		log.Fatal("Failed to register HTTP metrics", zap.Error(err))
	}
	engine.Use(
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Tracing(cfg.Telemetry.ServiceName, otelProviders.TracingEnabled()),
		middleware.SpanEnricher(),
		httpMetrics,
		middleware.Secure(),
		middleware.CORS(cfg.HTTP),
		middleware.BodyLimit(cfg.HTTP.MaxBodyBytes),
	)

	guards := router.Guards{
		Authenticate: middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
			Validator:   jwtService,
			Revocations: blacklist,
			Logger:      log,
		}),
		AuthenticateStream: middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
			Validator:       jwtService,
			Revocations:     blacklist,
			AllowQueryToken: true,
			Logger:          log,
		}),
		Tenant: middleware.TenantMiddleware(middleware.TenantMiddlewareConfig{
			Resolver: tenantService,
			Logger:   log,
		}),
		AuthRateLimit: middleware.RateLimit(middleware.NewRateLimiter(cfg.HTTP.AuthRateLimit, cfg.HTTP.AuthRateWindow)),
		Module: func(modulePath string) gin.HandlerFunc {
			return middleware.RequireModule(middleware.PermissionConfig{Gate: accessService, Logger: log}, modulePath)
		},
	}

	checks := map[string]handler.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Tenant:       handler.NewTenantHandler(tenantService, accessService),
		Member:       handler.NewMemberHandler(memberService),
		Quote:        handler.NewQuoteHandler(quoteService),
		ServiceOrder: handler.NewServiceOrderHandler(serviceOrderService),
		PurchaseList: handler.NewPurchaseListHandler(purchaseListService),
		Production:   handler.NewProductionHandler(productionService),
		Receivable:   handler.NewReceivableHandler(receivableService),
		Payable:      handler.NewPayableHandler(payableService),
		Client:       handler.NewPartyHandler(clientService),
		Supplier:     handler.NewPartyHandler(supplierService),
		Product:      handler.NewProductHandler(productService),
		Category:     handler.NewCategoryHandler(categoryService),
		Report:       handler.NewReportHandler(ledgerService),
		BoardStream:  handler.NewBoardStreamHandler(hub),
		System:       handler.NewSystemHandler(version, checks),
	}

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(router.Registrars(router.APIGroups(handlers, guards))...).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := otelProviders.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down telemetry", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
