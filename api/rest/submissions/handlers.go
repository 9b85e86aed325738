package submissions

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/interprep/server/api/rest/pagination"
	"codeberg.org/interprep/server/internal/auth"
	"codeberg.org/interprep/server/internal/errors"
	"codeberg.org/interprep/server/interprep/practice"
	"codeberg.org/interprep/server/interprep/questions"
	"codeberg.org/interprep/server/interprep/submissions"
	"github.com/gin-gonic/gin"
)

// CreateSubmissionHandler godoc
// @Summary Submit a solution
// @Description Evaluates the code and stores the outcome
// @Tags submissions
// @Accept json
// @Produce json
// @Param request body submissions.CreateRequest true "Solution"
// @Success 201 {object} practice.EvaluationResult
// @Failure 404 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/v1/submissions [post]
// @Security BearerAuth
func CreateSubmissionHandler(eval Evaluator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		var req submissions.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		result, err := eval.Evaluate(c.Request.Context(), userID, practice.EvaluateRequest{
			QuestionID: req.QuestionID,
			Code:       req.Code,
			Language:   req.Language,
		})

		switch {
		case stderrors.Is(err, questions.ErrQuestionNotFound):
			errors.NotFound(c, "question")
			return
		case stderrors.Is(err, practice.ErrEvaluationFailed):
			errors.ServiceUnavailable(c, "failed to evaluate solution", err)
			return
		case err != nil:
			errors.InternalError(c, "failed to create submission", err)
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}

// ListSubmissionsHandler godoc
// @Summary List own submissions
// @Tags submissions
// @Produce json
// @Param question_id query int false "Question ID"
// @Param status query string false "Status"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} ListResponse
// @Router /api/v1/submissions [get]
// @Security BearerAuth
func ListSubmissionsHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		var q ListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			errors.ValidationError(c, err)
			return
		}

		params := q.Params(defaultLimit, maxLimit)

		list, total, err := store.List(c.Request.Context(), userID, q.ListFilter, params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to list submissions", err)
			return
		}

		if list == nil {
			list = []submissions.Submission{}
		}

		c.JSON(http.StatusOK, ListResponse{Submissions: list, Pagination: pagination.NewMeta(params, total)})
	}
}

// submissions of other users are reported as not found
func GetSubmissionHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		id, ok := errors.ValidatePathID(c, "id")
		if !ok {
			return
		}

		sub, err := store.Get(c.Request.Context(), id, userID)
		if stderrors.Is(err, submissions.ErrSubmissionNotFound) {
			errors.NotFound(c, "submission")
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to fetch submission", err)
			return
		}

		c.JSON(http.StatusOK, sub)
	}
}
