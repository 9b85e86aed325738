package practice

import (
	"codeberg.org/interprep/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, svc Service, aiLimit ...gin.HandlerFunc) {
	practice := rg.Group("/practice")
	practice.Use(auth.AuthMiddleware())
	{
		practice.GET("/session", SessionHandler(svc))
		practice.GET("/progress", ProgressHandler(svc))
		practice.POST("/activity", RecordActivityHandler(svc))

		handlers := append(append([]gin.HandlerFunc{}, aiLimit...), EvaluateHandler(svc))
		practice.POST("/evaluate", handlers...)
	}
}
