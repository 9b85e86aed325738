package practice

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/interprep/server/internal/auth"
	"codeberg.org/interprep/server/internal/errors"
	"codeberg.org/interprep/server/interprep/practice"
	"codeberg.org/interprep/server/interprep/questions"
	"github.com/gin-gonic/gin"
)

// SessionHandler godoc
// @Summary Start a practice session
// @Description Questions matching the filter, uncompleted ones first
// @Tags practice
// @Produce json
// @Param topic query string false "Topic"
// @Param difficulty query string false "Difficulty"
// @Param company query string false "Company"
// @Param limit query int false "Session size" default(5)
// @Success 200 {object} SessionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/practice/session [get]
// @Security BearerAuth
func SessionHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		var req practice.SessionRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		session, err := svc.Session(c.Request.Context(), userID, req)
		if err != nil {
			errors.InternalError(c, "failed to create practice session", err)
			return
		}

		if session == nil {
			session = []questions.Question{}
		}

		c.JSON(http.StatusOK, SessionResponse{Questions: session, Count: len(session)})
	}
}

// ProgressHandler godoc
// @Summary Practice progress
// @Description Completion and submission success rates, topic and difficulty breakdown, recent activity
// @Tags practice
// @Produce json
// @Success 200 {object} practice.Progress
// @Router /api/v1/practice/progress [get]
// @Security BearerAuth
func ProgressHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		progress, err := svc.Progress(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to compute progress", err)
			return
		}

		c.JSON(http.StatusOK, progress)
	}
}

func RecordActivityHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		var req practice.RecordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		history, err := svc.Record(c.Request.Context(), userID, req)
		if stderrors.Is(err, questions.ErrQuestionNotFound) {
			errors.NotFound(c, "question")
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to record practice", err)
			return
		}

		c.JSON(http.StatusOK, history)
	}
}

// EvaluateHandler godoc
// @Summary Evaluate a solution
// @Description Grades code with the LLM, stores the submission and marks the question completed when accepted
// @Tags practice
// @Accept json
// @Produce json
// @Param request body practice.EvaluateRequest true "Solution"
// @Success 200 {object} practice.EvaluationResult
// @Failure 404 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/v1/practice/evaluate [post]
// @Security BearerAuth
func EvaluateHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		var req practice.EvaluateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		result, err := svc.Evaluate(c.Request.Context(), userID, req)
		switch {
		case stderrors.Is(err, questions.ErrQuestionNotFound):
			errors.NotFound(c, "question")
			return
		case stderrors.Is(err, practice.ErrEvaluationFailed):
			errors.ServiceUnavailable(c, "failed to evaluate solution", err)
			return
		case err != nil:
			errors.InternalError(c, "failed to save submission", err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
