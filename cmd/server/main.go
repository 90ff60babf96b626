package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"echoscore/internal/config"
	"echoscore/internal/httpapi"
	"echoscore/internal/observability"
	"echoscore/internal/pipeline"
	"echoscore/internal/storage"
	"echoscore/internal/transcribe"
	"echoscore/pkg/logger"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Initialize logger
	debug := os.Getenv("DEBUG") == "true"
	if err := logger.Init(debug); err != nil {
		panic("Failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("Starting echoscore server")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
		return
	}

	if cfg.S3.Bucket == "" {
		logger.Fatal("S3_BUCKET is not set")
		return
	}

	// Initialize S3 storage
	s3Storage, err := storage.NewS3Storage(
		cfg.S3.Endpoint,
		cfg.S3.Region,
		cfg.S3.AccessKey,
		cfg.S3.SecretKey,
		cfg.S3.Bucket,
		cfg.S3.PublicBaseURL,
	)
	if err != nil {
		logger.Fatal("Failed to initialize S3 storage", zap.Error(err))
		return
	}

	// Initialize speech client
	ctx := context.Background()
	speechClient, err := transcribe.NewGoogleClient(ctx, cfg.Speech.LanguageCode, cfg.Speech.CredentialsFile)
	if err != nil {
		logger.Fatal("Failed to initialize speech client", zap.Error(err))
		return
	}
	defer speechClient.Close()

	// Assemble pipeline and HTTP surface
	p := pipeline.New(s3Storage, speechClient)
	handler := httpapi.NewHandler(p, observability.DefaultMetrics)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
		RatePerMinute:  cfg.HTTP.RatePerMinute,
	})

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownTimeout, err := time.ParseDuration(cfg.HTTP.ShutdownTimeout)
	if err != nil {
		shutdownTimeout = 10 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Server shutdown complete")
}
