package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/interprep/server/internal/config"
	"codeberg.org/interprep/server/internal/logger"
)

// @title Interprep API
// @version 1.0
// @description Interview preparation backend
// @description
// @description Features:
// @description - Semantic search over a question dataset
// @description - LLM-generated questions and solution evaluation
// @description - Practice sessions, submissions and progress tracking
// @description - Learning paths
// @description - OAuth authentication (Google, GitHub)

// @contact.name API Support
// @contact.url https://codeberg.org/interprep/server

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authenticated requests. Format: Bearer {token}

func main() {
	logger.Info("starting interprep server")

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := NewServer(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	// build or load the search index while already serving; retrieval
	// endpoints answer 503 until it is ready
	go func() {
		start := time.Now()

		if err := srv.services.Retriever.Initialize(ctx); err != nil {
			logger.ErrorErr(err, "failed to initialize retrieval index")
			return
		}

		stats := srv.services.Retriever.Stats()
		logger.Info("retrieval index ready",
			"items", stats.Items,
			"origin", stats.Origin,
			"duration", time.Since(start),
		)
	}()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // LLM-backed endpoints are slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	srv.Close()

	logger.Info("server stopped")
}
