package main

import (
	"codeberg.org/interprep/server/api/rest/auth"
	"codeberg.org/interprep/server/api/rest/dataset"
	"codeberg.org/interprep/server/api/rest/health"
	"codeberg.org/interprep/server/api/rest/learning"
	"codeberg.org/interprep/server/api/rest/practice"
	"codeberg.org/interprep/server/api/rest/questions"
	"codeberg.org/interprep/server/api/rest/submissions"
	"codeberg.org/interprep/server/api/rest/users"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(server.config.CORSOrigins))
	router.Use(MetricsMiddleware(server.metrics))

	router.GET("/health", health.Handler(server.services.Retriever, server.db))
	router.GET("/metrics", gin.WrapH(server.metrics.Handler()))

	aiLimit := server.limiter.Middleware()
	svc := server.services

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		auth.RegisterRoutes(v1, server.userRepo, server.oauthProviders)
		users.RegisterRoutes(v1, server.userRepo, server.questionRepo)

		questions.RegisterRoutes(v1, questions.Deps{
			Store:     server.questionRepo,
			Generator: svc.Generator,
			Index:     svc.Retriever,
			Embedder:  svc.Embedder,
			Indexer:   questionIndexer(server.config.Retrieval, svc.Retriever),
		}, aiLimit)

		// euclidean nearest-neighbour search over the dataset index
		v1.GET("/questions/search", dataset.SearchNearest(svc.Retriever))
		dataset.RegisterRoutes(v1, svc.Retriever)

		practice.RegisterRoutes(v1, svc.Practice, aiLimit)
		submissions.RegisterRoutes(v1, server.submissionRepo, svc.Practice, aiLimit)
		learning.RegisterRoutes(v1, server.learningRepo)
	}
}
