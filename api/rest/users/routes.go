package users

import (
	"codeberg.org/interprep/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, stats StatsStore, activity ActivityStore) {
	users := rg.Group("/users/me")
	users.Use(auth.AuthMiddleware()) // all user routes require authentication

	users.GET("/stats", GetStats(stats))
	users.GET("/favorites", GetFavorites(activity))
	users.GET("/history", GetHistory(activity))
}
