package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"resource-hub-backend/config"
	"resource-hub-backend/internal/api"
	"resource-hub-backend/internal/booking"
	"resource-hub-backend/internal/csvio"
	"resource-hub-backend/internal/db"
	"resource-hub-backend/internal/embed"
	"resource-hub-backend/internal/notification"
	"resource-hub-backend/internal/predict"
	"resource-hub-backend/internal/search"
	"resource-hub-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "resource-hub ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if cfg.Search.EmbedURL == "" {
		logger.Fatalf("search.embed_url must be configured; semantic search cannot run without the embedding service")
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Import seed data into empty tables, if configured.
	if err := csvio.Seed(gormDB, &cfg.Seed); err != nil {
		logger.Fatalf("failed to seed database: %v", err)
	}

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	bookingEngine := booking.NewEngine(appStore)
	searchService := search.NewService(appStore, embed.NewClient(&cfg.Search))

	var scorer predict.Scorer
	if cfg.Prediction.Enabled {
		scorer = predict.NewHTTPScorer(&cfg.Prediction)
		logger.Println("prediction scorer enabled")
	}

	// Web push is optional; without VAPID keys the subscription endpoints
	// still work but no notifications go out.
	var webpushOptions *webpush.Options
	var pool *notification.WorkerPool
	if cfg.Push.Enabled {
		if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
			logger.Fatalf("push is enabled but VAPID keys are not configured")
		}
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool = notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		pool.Start(ctx)
		logger.Printf("notification worker pool started with %d workers", cfg.WorkerPool.Size)
	}

	// Initialize router
	router := api.NewRouter(&cfg.Server, appStore, bookingEngine, searchService, scorer, webpushOptions, pool)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
