package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/common/auth"
	apperrors "storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/common/middleware"
	"storefront-service/controllers"
	"storefront-service/database"
	awspkg "storefront-service/pkg/aws"
	"storefront-service/repository"
	"storefront-service/routes"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	log := logger.Initialize(envOrDefault(cfg))
	defer log.Sync()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	// --- 1. Storage ---
	mongo, err := database.ConnectWithConfig(cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	productRepo := repository.NewProductRepository(mongo.DB)
	categoryRepo := repository.NewCategoryRepository(mongo.DB)
	orderRepo := repository.NewOrderRepository(mongo.DB)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongo.EnsureIndexes(indexCtx, productRepo, categoryRepo, orderRepo); err != nil {
		zap.L().Fatal("Failed to ensure indexes", zap.Error(err))
	}
	cancelIndexes()

	redisClient := newRedisClient(cfg.RedisURL)
	cache := controllers.NewCacheManager(redisClient)

	// --- 2. AWS integrations (optional) ---
	var publisher services.EventPublisher
	var metrics *awspkg.MetricsClient
	if cfg.OrderTopicArn != "" || cfg.CloudWatchEnabled {
		awsCfg, err := awspkg.LoadAWSConfig(context.Background())
		if err != nil {
			zap.L().Warn("AWS config unavailable, order events and metrics disabled", zap.Error(err))
		} else {
			if cfg.OrderTopicArn != "" {
				publisher = awspkg.NewSNSClient(awsCfg)
			}
			metrics = awspkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, cfg.CloudWatchEnabled)
		}
	}

	// --- 3. Dependency Injection ---
	productService := services.NewProductService(productRepo, categoryRepo)
	categoryService := services.NewCategoryService(categoryRepo, productRepo)
	paymentService := services.NewPaymentService(
		services.NewStripeGateway(cfg.StripeSecretKey),
		orderRepo,
		publisher,
		cfg.OrderTopicArn,
		cfg.StripeCurrency,
	)

	orderService := services.NewOrderService(orderRepo)

	productController := controllers.NewProductController(productService, cache)
	categoryController := controllers.NewCategoryController(categoryService, cache)
	paymentController := controllers.NewPaymentController(paymentService)
	orderController := controllers.NewOrderController(orderService)

	// --- 4. HTTP Server & Middleware ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = 32 << 20
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware(middleware.ParseOrigins(cfg.AllowedOrigins)))
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitBurst))
	r.Use(middleware.MetricsMiddleware(metrics, "storefront-service"))
	r.Use(apperrors.ErrorMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the storefront API"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	routes.RegisterRoutes(r, productController, categoryController, paymentController, orderController,
		auth.NewTokenValidator(cfg.JWTSecret))

	// --- 5. Graceful Shutdown ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("Storefront service starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down storefront service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Server forced to shutdown", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zap.L().Error("Failed to close Redis", zap.Error(err))
		}
	}
	if err := mongo.Close(); err != nil {
		zap.L().Error("Failed to close MongoDB", zap.Error(err))
	}

	zap.L().Info("Storefront service stopped gracefully")
}

// newRedisClient returns nil when no URL is configured, which disables response caching.
func newRedisClient(redisURL string) *redis.Client {
	if redisURL == "" {
		zap.L().Info("REDIS_URL not set, response cache disabled")
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		zap.L().Warn("Failed to parse REDIS_URL, response cache disabled", zap.Error(err))
		return nil
	}
	return redis.NewClient(opts)
}

func envOrDefault(cfg *Config) string {
	if cfg == nil {
		return getEnv("DEV_MODE", "development")
	}
	return cfg.Env
}
