package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Kamleshja/pims-service/config"
	"github.com/Kamleshja/pims-service/internal/auth"
	"github.com/Kamleshja/pims-service/pkg/broker"
	"github.com/Kamleshja/pims-service/pkg/cache"
	"github.com/Kamleshja/pims-service/pkg/database/postgres"
	"github.com/Kamleshja/pims-service/pkg/logger"

	catRepoPkg "github.com/Kamleshja/pims-service/internal/category/repository"

	invH "github.com/Kamleshja/pims-service/internal/inventory/handler"
	invListenerPkg "github.com/Kamleshja/pims-service/internal/inventory/listener"
	invRepoPkg "github.com/Kamleshja/pims-service/internal/inventory/repository"
	invUCPkg "github.com/Kamleshja/pims-service/internal/inventory/usecase"

	priceH "github.com/Kamleshja/pims-service/internal/pricing/handler"
	priceRepoPkg "github.com/Kamleshja/pims-service/internal/pricing/repository"
	priceUCPkg "github.com/Kamleshja/pims-service/internal/pricing/usecase"

	prodPkg "github.com/Kamleshja/pims-service/internal/product"
	prodH "github.com/Kamleshja/pims-service/internal/product/handler"
	prodRepoPkg "github.com/Kamleshja/pims-service/internal/product/repository"
	prodUCPkg "github.com/Kamleshja/pims-service/internal/product/usecase"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5. Initialize Kafka Consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 6. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	priceRepo := priceRepoPkg.NewPGRepository(db)

	// 7. Initialize UseCases
	listingCache := prodPkg.NewListingCache(redisClient)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, catRepo, listingCache, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, appLogger)
	priceUC := priceUCPkg.NewPricingUseCase(priceRepo, redisClient, listingCache, appLogger)

	// 8. Start Order Listener
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	invListener := invListenerPkg.NewInventoryListener(kafkaConsumer, invUC, appLogger)
	go invListener.Start(ctx)

	// 9. Initialize Handlers and Router
	invHandler := invH.NewInventoryHandler(invUC, appLogger)
	priceHandler := priceH.NewPricingHandler(priceUC, appLogger)
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)

	if cfg.Server.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1", auth.RequireUser())
	{
		v1.POST("/inventory/adjust", invHandler.AdjustStock)
		v1.GET("/inventory/history", invHandler.GetHistory)
		v1.GET("/inventory/low-stock", invHandler.GetLowStock)

		v1.POST("/products", prodHandler.Create)
		v1.GET("/products", prodHandler.List)
		v1.PUT("/products/:id/price", priceHandler.UpdatePrice)
		v1.POST("/products/bulk-price", priceHandler.BulkUpdatePrice)
	}

	// 10. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
