package main

import (
	"context"
	"fmt"

	"codeberg.org/interprep/server/internal/auth"
	"codeberg.org/interprep/server/internal/config"
	"codeberg.org/interprep/server/internal/logger"
	"codeberg.org/interprep/server/internal/metrics"
	"codeberg.org/interprep/server/internal/ratelimit"
	"codeberg.org/interprep/server/internal/storage"
	"codeberg.org/interprep/server/interprep/learning"
	"codeberg.org/interprep/server/interprep/practice"
	"codeberg.org/interprep/server/interprep/questions"
	"codeberg.org/interprep/server/interprep/submissions"
	"codeberg.org/interprep/server/interprep/users"
	"github.com/gin-gonic/gin"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := storage.NewClient(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	m := metrics.New()

	services, err := InitializeServices(cfg, db.Pool(), m)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	limiter, err := ratelimit.New(cfg.RateLimit, cfg.RedisURL)
	if err != nil {
		services.Embedder.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		db.Close()
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	providers, err := auth.InitializeProviders(cfg.OAuthCallback)
	if err != nil {
		logger.ErrorErr(err, "failed to initialize OAuth providers, continuing with local login only")
	}

	questionRepo := questions.NewRepository(db.Pool())
	submissionRepo := submissions.NewRepository(db.Pool())

	services.Practice = practice.NewService(questionRepo, submissionRepo, services.Generator)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		db:             db,
		config:         cfg,
		userRepo:       users.NewRepository(db.Pool()),
		questionRepo:   questionRepo,
		submissionRepo: submissionRepo,
		learningRepo:   learning.NewRepository(db.Pool()),
		services:       services,
		limiter:        limiter,
		metrics:        m,
		router:         router,
		oauthProviders: providers,
	}

	RegisterRoutes(router, server)

	logger.Info("server configured",
		"catalog_source", cfg.Retrieval.CatalogSource,
		"dimensions", cfg.Retrieval.Dimensions,
		"generator_model", services.LLM.Model(),
		"oauth_providers", providers,
	)

	return server, nil
}

// releases everything NewServer acquired
func (s *Server) Close() {
	if err := s.limiter.Close(); err != nil {
		logger.ErrorErr(err, "failed to close rate limiter")
	}

	if err := s.services.Embedder.Close(); err != nil {
		logger.ErrorErr(err, "failed to close embedding cache")
	}

	s.db.Close()
}
