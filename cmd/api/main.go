package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	health "portfolio/gen/health"
	inquiry "portfolio/gen/inquiry"

	"portfolio/internal/config"
	"portfolio/internal/content"
	"portfolio/internal/database"
	"portfolio/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
	readTimeout     = 15 * time.Second
	writeTimeout    = 45 * time.Second
	idleTimeout     = 60 * time.Second
)

func main() {
	// Initialize structured logging
	log.SetPrefix("[API] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate critical configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	log.Printf("Starting %s v%s", cfg.App.Name, cfg.App.Version)
	log.Printf("Environment: debug=%v, port=%s, host=%s, backend=%s, email=%s (enabled=%v)",
		cfg.App.Debug, cfg.App.Port, cfg.App.Host, cfg.Content.Backend, cfg.Email.Provider, cfg.Email.Enabled)

	// Initialize content repository
	log.Println("Initializing content repository...")
	repo, pinger, closeRepo, err := openRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize content repository: %v", err)
	}
	defer closeRepo()

	// Create service instances
	log.Println("Initializing services...")
	healthSvc := services.NewHealthService(cfg.App.Name, cfg.Content.Backend, pinger)
	emailSvc := services.NewEmailService(&cfg.Email)
	inquirySvc := services.NewInquiryService(repo, emailSvc, &cfg.Notify)

	handler := newHandler(cfg, healthSvc, inquirySvc)

	// Create HTTP server with timeouts
	addr := fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		ErrorLog:     log.New(os.Stderr, "[HTTP] ", log.LstdFlags),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatalf("Server failed to start: %v", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v. Starting graceful shutdown...", sig)
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Error during graceful shutdown: %v", err)
		if err == context.DeadlineExceeded {
			log.Println("Shutdown timeout exceeded, forcing close...")
			httpServer.Close()
		}
	}

	log.Println("Server shutdown complete")
}

// openRepository builds the configured content repository. The returned
// pinger is nil for backends without a reachability check.
func openRepository(cfg *config.Config) (services.DocumentCreator, services.Pinger, func(), error) {
	switch cfg.Content.Backend {
	case config.BackendDatabase:
		db, err := database.Open(&cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		store := database.NewDocumentStore(db, cfg.Content.Timeout)
		closeFn := func() {
			log.Println("Closing database connections...")
			if err := database.Close(db); err != nil {
				log.Printf("Error closing database: %v", err)
			}
		}
		return store, store, closeFn, nil
	default:
		client := content.NewSanityClient(&cfg.Content)
		log.Printf("[CONTENT] Using Sanity project=%s dataset=%s", cfg.Content.ProjectID, cfg.Content.Dataset)
		return client, nil, func() {}, nil
	}
}

var (
	_ health.Service  = (*services.HealthService)(nil)
	_ inquiry.Service = (*services.InquiryService)(nil)
)
