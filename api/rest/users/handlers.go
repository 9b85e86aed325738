package users

import (
	"net/http"

	"codeberg.org/interprep/server/internal/auth"
	"codeberg.org/interprep/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// GetStats godoc
// @Summary Get user's statistics
// @Description Submission counts by outcome, favorites and practice totals for the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} users.Stats
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/users/me/stats [get]
// @Security BearerAuth
func GetStats(store StatsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		stats, err := store.Stats(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to fetch stats", err)
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}

func GetFavorites(store ActivityStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		favorites, err := store.ListFavorites(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to fetch favorites", err)
			return
		}

		c.JSON(http.StatusOK, FavoritesResponse{Favorites: favorites})
	}
}

func GetHistory(store ActivityStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		history, err := store.History(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to fetch practice history", err)
			return
		}

		c.JSON(http.StatusOK, HistoryResponse{History: history})
	}
}
