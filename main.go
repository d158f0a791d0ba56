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

	"github.com/princekenny23/primepos-sub004/config"
	"github.com/princekenny23/primepos-sub004/database"
	"github.com/princekenny23/primepos-sub004/hold"
	"github.com/princekenny23/primepos-sub004/kafka"
	"github.com/princekenny23/primepos-sub004/logger"
	"github.com/princekenny23/primepos-sub004/repository"
	"github.com/princekenny23/primepos-sub004/routes"
	"github.com/princekenny23/primepos-sub004/scanner"
	"github.com/princekenny23/primepos-sub004/session"
)

func main() {

	// Load environment configuration
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	// Backing stores
	redisClient := database.NewRedisClient(cfg.RedisURL)
	mongoDB, err := database.NewMongoDatabase(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer database.CloseMongo(mongoDB)

	catalog := repository.NewCatalogRepository(mongoDB)
	orders := repository.NewOrderRepository(mongoDB)

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	registry := session.NewRegistry(session.Deps{
		Catalog: catalog,
		HoldKV:  hold.NewRedisKV(redisClient),
		TaxRate: cfg.TaxRate,
		ScanDefault: scanner.Settings{
			MinLength:       cfg.ScanMinLength,
			SuffixKey:       cfg.ScanSuffixKey,
			InterKeyTimeout: cfg.ScanInterKeyTimeout,
			Enabled:         cfg.ScanEnabled,
		},
		Logger: logger.Log,
	})

	// Initialize Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	routes.Register(router, registry, orders, producer, cfg, logger.Log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Order Entry Service is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	log.Println("Server shutdown complete.")
}
