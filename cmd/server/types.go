package main

import (
	"codeberg.org/interprep/server/internal/config"
	"codeberg.org/interprep/server/internal/embedder"
	"codeberg.org/interprep/server/internal/generator"
	"codeberg.org/interprep/server/internal/llm"
	"codeberg.org/interprep/server/internal/metrics"
	"codeberg.org/interprep/server/internal/ratelimit"
	"codeberg.org/interprep/server/internal/retriever"
	"codeberg.org/interprep/server/internal/storage"
	"codeberg.org/interprep/server/interprep/learning"
	"codeberg.org/interprep/server/interprep/practice"
	"codeberg.org/interprep/server/interprep/questions"
	"codeberg.org/interprep/server/interprep/submissions"
	"codeberg.org/interprep/server/interprep/users"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the API server
type Server struct {
	db             *storage.Client
	config         *config.Config
	userRepo       *users.Repository
	questionRepo   *questions.Repository
	submissionRepo *submissions.Repository
	learningRepo   *learning.Repository
	services       *Services
	limiter        *ratelimit.Limiter
	metrics        *metrics.Metrics
	router         *gin.Engine
	oauthProviders []string
}

// holds the external-facing services (LLM, embeddings, retrieval, generation)
type Services struct {
	LLM       *llm.CompositeLLM
	Embedder  *embedder.Client
	Retriever *retriever.Service
	Generator *generator.Generator
	Practice  *practice.Service
}
