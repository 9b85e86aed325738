package questions

import (
	"codeberg.org/interprep/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// aiLimit guards the endpoints that call the LLM
func RegisterRoutes(rg *gin.RouterGroup, deps Deps, aiLimit ...gin.HandlerFunc) {
	rg.GET("/questions", ListQuestionsHandler(deps))
	rg.GET("/questions/:id", auth.OptionalAuthMiddleware(), GetQuestionHandler(deps.Store))

	protected := rg.Group("/questions")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/:id/favorite", AddFavoriteHandler(deps.Store))
		protected.DELETE("/:id/favorite", RemoveFavoriteHandler(deps.Store))

		ai := protected.Group("")
		ai.Use(aiLimit...)
		ai.POST("/generate", GenerateQuestionHandler(deps))
		ai.POST("/:id/similar", GenerateSimilarHandler(deps))
		ai.POST("/:id/enhance", EnhanceQuestionHandler(deps))
	}
}
