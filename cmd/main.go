package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/storecore/catalog-service/internal/cache"
	"github.com/storecore/catalog-service/internal/events"
	"github.com/storecore/catalog-service/internal/handler"
	"github.com/storecore/catalog-service/internal/repository"
	"github.com/storecore/catalog-service/internal/service"
	"github.com/storecore/catalog-service/pkg/config"
	"github.com/storecore/catalog-service/pkg/middleware"
	pkgtls "github.com/storecore/catalog-service/pkg/tls"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	productRepo, err := newRepository(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create repository", zap.Error(err))
	}

	var publisher service.EventPublisher
	if cfg.KafkaBrokers != "" {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer producer.Close()
		publisher = producer
		logger.Info("Kafka producer enabled",
			zap.String("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	}

	productService := service.NewProductService(productRepo, publisher, logger)
	productHandler := handler.NewProductHandler(productService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/products", productHandler.CreateProduct)
		v1.GET("/products", productHandler.GetAllProducts)
		v1.GET("/products/:id", productHandler.GetProduct)
		v1.PUT("/products/:id", productHandler.UpdateProduct)
		v1.DELETE("/products/:id", productHandler.DeleteProduct)
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	tlsCfg, err := pkgtls.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load TLS config", zap.Error(err))
	}
	tlsConfig, err := pkgtls.LoadTLSConfig(tlsCfg, logger)
	if err != nil {
		logger.Fatal("Failed to load TLS configuration", zap.Error(err))
	}
	if tlsConfig != nil {
		srv.TLSConfig = tlsConfig
		defer pkgtls.Cleanup()
		go pkgtls.WatchCertificates(logger)
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port), zap.Bool("tls", tlsConfig != nil))
		var err error
		if tlsConfig != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = lvl
	return zapCfg.Build()
}

// newRepository picks the product store from configuration. Local mode
// keeps everything in memory; otherwise DynamoDB backs the catalog,
// optionally fronted by a Redis cache.
func newRepository(cfg *config.Config, logger *zap.Logger) (repository.ProductRepository, error) {
	if cfg.LocalMode {
		logger.Info("Using in-memory repository")
		return repository.NewMemoryRepository(), nil
	}

	dynamoClient, err := repository.NewDynamoDBClient(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Using DynamoDB repository",
		zap.String("table", cfg.ProductTableName),
		zap.String("region", cfg.AWSRegion))

	var repo repository.ProductRepository = repository.NewDynamoRepository(dynamoClient, cfg.ProductTableName)

	if cfg.CacheEnabled {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		repo = repository.NewCachedRepository(repo, cache.NewRedisCache(redisClient), logger)
		logger.Info("Redis cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	return repo, nil
}
