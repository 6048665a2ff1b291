package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/rafaelleal24/storefront/docs"
	"github.com/rafaelleal24/storefront/internal/adapters/config"
	"github.com/rafaelleal24/storefront/internal/adapters/http"
	"github.com/rafaelleal24/storefront/internal/adapters/http/controllers"
	"github.com/rafaelleal24/storefront/internal/adapters/mongo"
	"github.com/rafaelleal24/storefront/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/storefront/internal/adapters/outbox"
	"github.com/rafaelleal24/storefront/internal/adapters/payment"
	"github.com/rafaelleal24/storefront/internal/adapters/rabbitmq"
	"github.com/rafaelleal24/storefront/internal/adapters/redis"
	"github.com/rafaelleal24/storefront/internal/core/domain"
	"github.com/rafaelleal24/storefront/internal/core/logger"
	"github.com/rafaelleal24/storefront/internal/core/service"
)

// @title       Storefront API
// @version     1.0
// @description Public catalog, admin catalog management and checkout

// @host     localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	err := logger.Initialize(logger.Options{
		CollectorEndpoint: cfg.Logger.Endpoint,
		ServiceName:       cfg.Logger.ServiceName,
		IsProduction:      cfg.Logger.IsProduction,
		Level:             logger.ParseLevel(cfg.Logger.Level),
	})
	if err != nil {
		// logger not available yet, fall back to stderr
		fmt.Fprintln(os.Stderr, "failed to initialize logger: "+err.Error())
		os.Exit(1)
	}

	// cancellable context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	adminPasswordHash, err := resolveAdminPasswordHash(cfg.Admin)
	if err != nil {
		logger.Fatal(ctx, "Invalid admin configuration", err, nil)
	}

	paymentGateway, err := payment.NewGateway(cfg.Payment)
	if err != nil {
		logger.Fatal(ctx, "Invalid payment configuration", err, nil)
	}
	logger.Info(ctx, "Payment gateway configured", map[string]any{"provider": cfg.Payment.Provider})

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
	outboxRepository := repository.NewOutboxRepository(database)
	txManager := mongo.NewTransactionManager(mongoClient)

	// caches and rate limiter
	sessionCache := redis.NewCache[domain.AdminSession](redisClient, "admin-session")
	idempotencyCache := redis.NewCache[service.IdempotencyEntry[domain.CheckoutResult]](redisClient, "checkout-idempotency")
	rateLimiter := redis.NewRateLimiter(redisClient)

	// outbox handler (uses cancellable context)
	outboxHandler := outbox.NewHandler(outboxRepository, broker, cfg.Outbox)
	go outboxHandler.Start(ctx)
	logger.Info(ctx, "Outbox handler started", map[string]any{"interval": cfg.Outbox.Interval.String(), "batch_size": cfg.Outbox.BatchSize})

	// services
	authService := service.NewAuthService(sessionCache, cfg.Admin.Username, adminPasswordHash, cfg.Admin.SessionTTL)
	productService := service.NewProductService(productRepository, outboxRepository, txManager, authService)
	idempotencyService := service.NewIdempotencyService(idempotencyCache, cfg.Checkout.IdempotencyTTL, cfg.Checkout.PollInterval, cfg.Checkout.PollTimeout)
	checkoutService := service.NewCheckoutService(productRepository, paymentGateway, broker, idempotencyService, cfg.Store.Currency, cfg.Store.VATRate)

	// controllers
	productController := controllers.NewProductController(productService)
	authController := controllers.NewAuthController(authService)
	checkoutController := controllers.NewCheckoutController(checkoutService)
	docsController := controllers.NewDocsController()
	healthController := controllers.NewHealthController([]controllers.HealthChecker{
		{Name: "mongodb", Check: func(ctx context.Context) error { return mongo.Ping(ctx, mongoClient) }},
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx) }},
		{Name: "rabbitmq", Check: func(ctx context.Context) error { return broker.HealthCheck() }},
	})

	// router
	router := http.NewRouter(healthController, productController, authController, checkoutController, docsController, rateLimiter, cfg.RateLimit)

	// graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", map[string]any{"signal": sig.String()})
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := logger.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintln(os.Stderr, "logger shutdown error: "+err.Error())
		}
	}()

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port})
	err = router.ListenAndServe(ctx, cfg.HTTP)
	if err != nil {
		logger.Fatal(ctx, "Failed to start HTTP server", err, nil)
	}
}

func resolveAdminPasswordHash(cfg config.AdminConfig) (string, error) {
	if cfg.Username == "" {
		return "", errors.New("ADMIN_USERNAME is required")
	}
	if cfg.PasswordHash != "" {
		return cfg.PasswordHash, nil
	}
	if cfg.Password == "" {
		return "", errors.New("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD is required")
	}
	return service.HashAdminPassword(cfg.Password)
}
