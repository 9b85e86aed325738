package learning

import (
	"codeberg.org/interprep/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, store Store) {
	learning := rg.Group("/learning")

	// browsing is public; progress is attached when a token is present
	learning.GET("/categories", CategoriesHandler(store))
	learning.GET("/topics", TopicsHandler(store))
	learning.GET("/topics/:id/content", auth.OptionalAuthMiddleware(), TopicContentHandler(store))
	learning.GET("/content/:id", ContentHandler(store))

	protected := learning.Group("")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/progress", UpdateProgressHandler(store))
		protected.GET("/path", PathHandler(store))
		protected.GET("/stats", StatsHandler(store))
		protected.GET("/recommendations", RecommendationsHandler(store))
	}
}
