package learning

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/interprep/server/internal/auth"
	"codeberg.org/interprep/server/internal/errors"
	"codeberg.org/interprep/server/interprep/learning"
	"github.com/gin-gonic/gin"
)

func CategoriesHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := store.Categories(c.Request.Context())
		if err != nil {
			errors.InternalError(c, "failed to fetch categories", err)
			return
		}

		c.JSON(http.StatusOK, CategoriesResponse{Categories: categories})
	}
}

// TopicsHandler godoc
// @Summary List learning topics
// @Tags learning
// @Produce json
// @Param category_id query int false "Category ID; all categories when omitted"
// @Success 200 {object} TopicsResponse
// @Router /api/v1/learning/topics [get]
func TopicsHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q TopicsQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			errors.ValidationError(c, err)
			return
		}

		topics, err := store.Topics(c.Request.Context(), q.CategoryID)
		if err != nil {
			errors.InternalError(c, "failed to fetch topics", err)
			return
		}

		c.JSON(http.StatusOK, TopicsResponse{Topics: topics})
	}
}

// TopicContentHandler godoc
// @Summary Topic content
// @Description Content items of a topic in display order, with the caller's progress when signed in
// @Tags learning
// @Produce json
// @Param id path int true "Topic ID"
// @Success 200 {object} learning.TopicContent
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/learning/topics/{id}/content [get]
func TopicContentHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathID(c, "id")
		if !ok {
			return
		}

		userID, _ := auth.GetUserID(c)

		content, err := store.TopicContent(c.Request.Context(), userID, id)
		if stderrors.Is(err, learning.ErrTopicNotFound) {
			errors.NotFound(c, "topic")
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to fetch topic content", err)
			return
		}

		c.JSON(http.StatusOK, content)
	}
}

func ContentHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathID(c, "id")
		if !ok {
			return
		}

		content, err := store.Content(c.Request.Context(), id)
		if stderrors.Is(err, learning.ErrContentNotFound) {
			errors.NotFound(c, "content")
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to fetch content", err)
			return
		}

		c.JSON(http.StatusOK, content)
	}
}

// UpdateProgressHandler godoc
// @Summary Update topic progress
// @Tags learning
// @Accept json
// @Produce json
// @Param request body learning.UpdateProgressRequest true "Progress"
// @Success 200 {object} learning.Progress
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/learning/progress [post]
// @Security BearerAuth
func UpdateProgressHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		var req learning.UpdateProgressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		progress, err := store.UpdateProgress(c.Request.Context(), userID, req)
		switch {
		case stderrors.Is(err, learning.ErrTopicNotFound):
			errors.NotFound(c, "topic")
			return
		case stderrors.Is(err, learning.ErrInvalidProgress):
			errors.BadRequest(c, "invalid progress", err)
			return
		case err != nil:
			errors.InternalError(c, "failed to update progress", err)
			return
		}

		c.JSON(http.StatusOK, progress)
	}
}

// PathHandler godoc
// @Summary Learning path
// @Description Categories and topics in order with the caller's status on each, plus the next topic to study
// @Tags learning
// @Produce json
// @Success 200 {object} learning.Path
// @Router /api/v1/learning/path [get]
// @Security BearerAuth
func PathHandler(store Store) gin.HandlerFunc {
	return withSnapshot(store, func(c *gin.Context, s *learning.Snapshot) {
		c.JSON(http.StatusOK, learning.BuildPath(s))
	})
}

func StatsHandler(store Store) gin.HandlerFunc {
	return withSnapshot(store, func(c *gin.Context, s *learning.Snapshot) {
		c.JSON(http.StatusOK, learning.ComputeStats(s))
	})
}

func RecommendationsHandler(store Store) gin.HandlerFunc {
	return withSnapshot(store, func(c *gin.Context, s *learning.Snapshot) {
		var q RecommendationsQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if q.Limit == 0 {
			q.Limit = defaultRecommendations
		}

		c.JSON(http.StatusOK, RecommendationsResponse{Recommendations: learning.Recommend(s, q.Limit)})
	})
}

// loads the caller's learning snapshot and hands it to next
func withSnapshot(store Store, next func(*gin.Context, *learning.Snapshot)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		snap, err := store.Snapshot(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to load learning progress", err)
			return
		}

		next(c, snap)
	}
}
