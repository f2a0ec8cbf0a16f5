package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"movigo/internal/app"
	"movigo/internal/config"
	"movigo/internal/fare"
	"movigo/internal/handler"
	"movigo/internal/postgres"
	internalRedis "movigo/internal/redis"
	"movigo/internal/repository/kv"
	"movigo/internal/service"
	"movigo/internal/store"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the datastore drivers can be
	// instrumented.
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			logger.Warn("failed to initialize New Relic", zap.Error(err))
			nrApp = nil
		} else {
			logger.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	// Pick the durable store backend.
	var (
		durable     store.Store
		redisClient *goredis.Client
		locks       internalRedis.LockStoreInterface
	)

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		durable = postgres.NewStore(db)
		logger.Info("using PostgreSQL document store")

	case config.BackendMemory:
		durable = store.NewMemory()
		logger.Info("using in-memory store; data will not survive a restart")

	default:
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		durable = internalRedis.NewStore(redisClient)
		locks = internalRedis.NewLockStore(redisClient)
		logger.Info("using Redis store", zap.String("addr", cfg.Redis.Addr))
	}

	server := wireServer(durable, redisClient, locks, nrApp, cfg, logger)

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	durable store.Store,
	redisClient *goredis.Client,
	locks internalRedis.LockStoreInterface,
	nrApp *newrelic.Application,
	cfg *config.Config,
	logger *zap.Logger,
) *http.Server {
	// Repositories.
	stationRepo := kv.NewStationRepository(durable)
	transportRepo := kv.NewTransportRepository(durable, stationRepo)
	userRepo := kv.NewUserRepository(durable)
	rentalRepo := kv.NewRentalRepository(durable)
	paymentRepo := kv.NewPaymentRepository(durable)
	sessionRepo := kv.NewSessionRepository(durable)

	// Pricing.
	calculator := fare.NewCalculator()
	pricing := fare.NewPricingService(nil)

	// Services.
	rentalService := service.NewRentalService(rentalRepo, transportRepo, stationRepo, userRepo, calculator, locks, logger)
	paymentService := service.NewPaymentService(paymentRepo, rentalRepo, service.NewMockGateway(), logger)
	cartService := service.NewCartService(pricing)
	statsService := service.NewStatsService(stationRepo, transportRepo, userRepo, rentalRepo, paymentRepo)

	// Handlers.
	stationHandler := handler.NewStationHandler(stationRepo)
	transportHandler := handler.NewTransportHandler(transportRepo)
	userHandler := handler.NewUserHandler(userRepo)
	rentalHandler := handler.NewRentalHandler(rentalService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	pricingHandler := handler.NewPricingHandler(pricing, calculator, cartService)
	sessionHandler := handler.NewSessionHandler(sessionRepo, userRepo)
	statsHandler := handler.NewStatsHandler(statsService, stationRepo, transportRepo, userRepo, rentalRepo, paymentRepo)

	router := app.NewRouter(app.RouterDeps{
		StationHandler:   stationHandler,
		TransportHandler: transportHandler,
		UserHandler:      userHandler,
		RentalHandler:    rentalHandler,
		PaymentHandler:   paymentHandler,
		PricingHandler:   pricingHandler,
		SessionHandler:   sessionHandler,
		StatsHandler:     statsHandler,
		RedisClient:      redisClient,
		NewRelicApp:      nrApp,
		Logger:           logger,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
