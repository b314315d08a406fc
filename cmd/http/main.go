package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rafaelleal24/smartpantry/internal/adapters/config"
	"github.com/rafaelleal24/smartpantry/internal/adapters/http"
	"github.com/rafaelleal24/smartpantry/internal/adapters/http/controllers"
	"github.com/rafaelleal24/smartpantry/internal/adapters/metrics"
	"github.com/rafaelleal24/smartpantry/internal/adapters/mongo"
	"github.com/rafaelleal24/smartpantry/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/smartpantry/internal/adapters/outbox"
	"github.com/rafaelleal24/smartpantry/internal/adapters/rabbitmq"
	"github.com/rafaelleal24/smartpantry/internal/adapters/redis"
	"github.com/rafaelleal24/smartpantry/internal/adapters/scheduler"
	"github.com/rafaelleal24/smartpantry/internal/core/domain"
	"github.com/rafaelleal24/smartpantry/internal/core/logger"
	"github.com/rafaelleal24/smartpantry/internal/core/service"
)

// @title       SmartPantry API
// @version     1.0
// @description Pantry inventory with expiry tracking

// @host     localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	if err := logger.Initialize(cfg.Logger.Endpoint, cfg.Logger.ServiceName, cfg.Logger.IsProduction, cfg.Logger.Level); err != nil {
		// logger not available yet, fall back to stderr
		fmt.Println("failed to initialize logger: " + err.Error())
		os.Exit(1)
	}

	// cancellable context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal(ctx, "JWT_SECRET is required", nil, nil)
	}

	// initialize database connection
	mongoClient, err := mongo.NewConnection(cfg.Mongo)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to MongoDB", err, nil)
	}
	defer mongo.Disconnect(mongoClient)
	logger.Info(ctx, "Connected to MongoDB", map[string]any{"database": cfg.Mongo.Database})

	// initialize redis connection
	redisClient, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to Redis", err, nil)
	}
	defer redisClient.Close()
	logger.Info(ctx, "Connected to Redis", nil)

	// initialize rabbitmq connection
	broker, err := rabbitmq.NewRabbitMQAdapter(cfg.RabbitMQ)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to RabbitMQ", err, nil)
	}
	defer broker.Close()
	logger.Info(ctx, "Connected to RabbitMQ", nil)

	// initialize database and repos
	database := mongoClient.Database(cfg.Mongo.Database)
	productRepository := repository.NewProductRepository(database)
	categoryRepository := repository.NewCategoryRepository(database)
	outboxRepository := repository.NewOutboxRepository(database)
	txManager := mongo.NewTransactionManager(mongoClient)
	eventRecorder := outbox.NewRecorder(outboxRepository)

	// caches, locks and rate limiter
	categoryCache := redis.NewCache[domain.Category](redisClient, "pantry")
	idempotencyCache := redis.NewCache[service.IdempotencyEntry[domain.Product]](redisClient, "idempotency-cache")
	sweepLock := redis.NewLock(redisClient)
	rateLimiter := redis.NewRateLimiter(redisClient)

	// metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	sweepMetrics := metrics.NewSweepMetrics(registry)

	// outbox handler (uses cancellable context)
	outboxHandler := outbox.NewHandler(outboxRepository, broker, cfg.Outbox)
	go outboxHandler.Start(ctx)
	logger.Info(ctx, "Outbox handler started", map[string]any{"interval": cfg.Outbox.Interval.String(), "batch_size": cfg.Outbox.BatchSize})

	// services
	calendar := service.NewCalendar(cfg.Sweep.Location)
	categoryService := service.NewCategoryService(categoryRepository, categoryCache)
	accessGuard := service.NewAccessGuard(productRepository)
	idempotencyService := service.NewIdempotencyService(idempotencyCache, cfg.Idempotency.TTL, cfg.Idempotency.PollInterval, cfg.Idempotency.PollTimeout)
	productService := service.NewProductService(productRepository, categoryService, accessGuard, idempotencyService, txManager, eventRecorder, calendar)
	sweeper := metrics.NewInstrumentedSweeper(service.NewSweeperService(productRepository, txManager, eventRecorder), sweepMetrics)

	// sweep scheduler
	sweepScheduler := scheduler.NewScheduler(sweeper, sweepLock, calendar, cfg.Sweep)
	go func() {
		if err := sweepScheduler.Start(ctx); err != nil {
			logger.Fatal(ctx, "Failed to start sweep scheduler", err, map[string]any{"schedule": cfg.Sweep.Schedule})
		}
	}()

	// controllers
	productController := controllers.NewProductController(productService)
	sweepController := controllers.NewSweepController(sweeper, calendar)
	healthController := controllers.NewHealthController([]controllers.HealthChecker{
		{Name: "mongodb", Check: func(ctx context.Context) error { return mongo.Ping(ctx, mongoClient) }},
		{Name: "redis", Optional: true, Check: func(ctx context.Context) error { return redisClient.Ping(ctx) }},
		{Name: "rabbitmq", Check: func(ctx context.Context) error { return broker.HealthCheck() }},
	})

	// router
	router := http.NewRouter(healthController, productController, sweepController, rateLimiter, cfg.Auth, registry)

	// graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", map[string]interface{}{"signal": sig.String()})
		cancel()
	}()

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port})
	serveErr := router.ListenAndServe(ctx, cfg.HTTP)
	if serveErr != nil {
		logger.Error(ctx, "HTTP server stopped with error", serveErr, nil)
	}

	// the server has drained, flush what it logged on the way down
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := logger.Shutdown(shutdownCtx); err != nil {
		fmt.Println("logger shutdown error: " + err.Error())
	}

	if serveErr != nil {
		os.Exit(1)
	}
}
