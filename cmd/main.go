/*
Package main is the entry point for the CyberLink backend.

It is responsible for loading configuration, initializing the global logging system,
connecting to PostgreSQL and S3 storage, wiring the messaging registry and relay,
setting up the HTTP server, and gracefully handling operating system interrupt
signals (SIGINT, SIGTERM) to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cyberlink/internal/app/chat"
	"cyberlink/internal/app/db"
	"cyberlink/internal/app/storage"
	"cyberlink/internal/configs"
	"cyberlink/internal/handler"
	"cyberlink/internal/pkg/logx"
	"cyberlink/internal/pkg/mail"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL and apply pending migrations
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to initialize database pool")
	}
	defer pool.Close()

	store := db.NewStore(pool)

	// Connect to S3 image storage
	storageService, err := storage.NewService(storage.ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize S3 storage service")
	}

	// Wire the real-time messaging core
	registry := chat.NewRegistry()
	relay := chat.NewRelay(store, registry)

	mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	deps := &handler.AppDeps{
		Config:   cfg,
		DB:       store,
		Storage:  storageService,
		Registry: registry,
		Relay:    relay,
		Mailer:   mailer,
	}

	// Setup HTTP server and routes
	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("CyberLink Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
