package submissions

import (
	"codeberg.org/interprep/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, store Store, eval Evaluator, aiLimit ...gin.HandlerFunc) {
	subs := rg.Group("/submissions")
	subs.Use(auth.AuthMiddleware())
	{
		subs.GET("", ListSubmissionsHandler(store))
		subs.GET("/:id", GetSubmissionHandler(store))

		create := append(append([]gin.HandlerFunc{}, aiLimit...), CreateSubmissionHandler(eval))
		subs.POST("", create...)
	}
}
