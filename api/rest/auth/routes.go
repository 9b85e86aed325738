package auth

import (
	"codeberg.org/interprep/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers all authentication routes; providers are the configured OAuth provider names
func RegisterRoutes(router *gin.RouterGroup, store UserStore, providers []string) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", RegisterHandler(store))
		authGroup.POST("/login", LoginHandler(store))
		authGroup.POST("/logout", LogoutHandler())
		authGroup.GET("/me", auth.AuthMiddleware(), GetCurrentUserHandler(store))
		authGroup.PUT("/me", auth.AuthMiddleware(), UpdateProfileHandler(store))

		if len(providers) > 0 {
			authGroup.GET("/:provider", BeginAuthHandler(providers))
			authGroup.GET("/:provider/callback", CallbackHandler(store, providers))
		}
	}
}
