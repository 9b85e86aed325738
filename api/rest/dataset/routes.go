package dataset

import (
	"codeberg.org/interprep/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers the dataset routes; the nearest-neighbour endpoint lives under
// /questions and is registered by the questions package
func RegisterRoutes(rg *gin.RouterGroup, r Retriever, middleware ...gin.HandlerFunc) {
	dataset := rg.Group("/dataset")
	dataset.Use(auth.OptionalAuthMiddleware())
	dataset.Use(middleware...)
	{
		dataset.GET("/questions", ListQuestions(r))
		dataset.GET("/questions/random", RandomQuestion(r))
		dataset.GET("/questions/:id", GetQuestion(r))
		dataset.GET("/questions/:id/similar", SimilarQuestions(r))
		dataset.GET("/search", Search(r))
		dataset.POST("/reload", auth.AuthMiddleware(), Reload(r))
	}
}
