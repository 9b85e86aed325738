package questions

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"codeberg.org/interprep/server/api/rest/pagination"
	"codeberg.org/interprep/server/internal/auth"
	"codeberg.org/interprep/server/internal/catalog"
	"codeberg.org/interprep/server/internal/errors"
	"codeberg.org/interprep/server/internal/generator"
	"codeberg.org/interprep/server/internal/logger"
	"codeberg.org/interprep/server/interprep/questions"
	"github.com/gin-gonic/gin"
)

// ListQuestionsHandler godoc
// @Summary List questions
// @Description Paginated question bank filtered by topic, difficulty and company. With query set, results are ranked by semantic similarity instead.
// @Tags questions
// @Produce json
// @Param topic query string false "Topic"
// @Param difficulty query string false "Difficulty"
// @Param company query string false "Company"
// @Param query query string false "Semantic search text"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} ListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/questions [get]
func ListQuestionsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q ListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			errors.ValidationError(c, err)
			return
		}

		params := q.Params(defaultLimit, maxLimit)
		ctx := c.Request.Context()

		if q.Query != "" {
			matches, err := deps.Index.FindSimilar(ctx, q.Query, params.Limit, q.Filter)
			if err != nil {
				errors.FromRetrieval(c, err)
				return
			}

			ids := make([]int64, len(matches))
			for i, m := range matches {
				ids[i] = m.ID
			}

			found, err := deps.Store.ByIDs(ctx, ids)
			if err != nil {
				errors.InternalError(c, "failed to load questions", err)
				return
			}

			c.JSON(http.StatusOK, ListResponse{
				Questions:  public(found),
				Pagination: pagination.NewMeta(pagination.Params{Limit: params.Limit}, len(found)),
			})

			return
		}

		list, total, err := deps.Store.List(ctx, q.Filter, params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to list questions", err)
			return
		}

		c.JSON(http.StatusOK, ListResponse{
			Questions:  public(list),
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// GetQuestionHandler godoc
// @Summary Get a question
// @Description Question details; for signed-in users the view is recorded in practice history and the favorite flag is set
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} questions.Detail
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/questions/{id} [get]
func GetQuestionHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathID(c, "id")
		if !ok {
			return
		}

		userID, _ := auth.GetUserID(c)

		detail, err := store.View(c.Request.Context(), id, userID)
		if stderrors.Is(err, questions.ErrQuestionNotFound) {
			errors.NotFound(c, "question")
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to fetch question", err)
			return
		}

		detail.Question = detail.Question.Public()

		c.JSON(http.StatusOK, detail)
	}
}

// GenerateQuestionHandler godoc
// @Summary Generate a question
// @Description Generates a new question with the LLM, stores it and appends it to the search index
// @Tags questions
// @Accept json
// @Produce json
// @Param request body generator.QuestionRequest true "Topic and difficulty"
// @Success 201 {object} questions.Question
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/v1/questions/generate [post]
// @Security BearerAuth
func GenerateQuestionHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req generator.QuestionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		generated, err := deps.Generator.GenerateQuestion(c.Request.Context(), req)
		if err != nil {
			errors.ServiceUnavailable(c, "failed to generate question", err)
			return
		}

		q, err := persist(c, deps, generated)
		if err != nil {
			errors.InternalError(c, "failed to save generated question", err)
			return
		}

		c.JSON(http.StatusCreated, q)
	}
}

// GenerateSimilarHandler godoc
// @Summary Generate a similar question
// @Description Generates a variation of an existing question on the same topic and difficulty
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 201 {object} questions.Question
// @Failure 404 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/v1/questions/{id}/similar [post]
// @Security BearerAuth
func GenerateSimilarHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		original, ok := loadQuestion(c, deps.Store)
		if !ok {
			return
		}

		generated, err := deps.Generator.GenerateSimilar(c.Request.Context(), seedOf(original))
		if err != nil {
			errors.ServiceUnavailable(c, "failed to generate similar question", err)
			return
		}

		q, err := persist(c, deps, generated)
		if err != nil {
			errors.InternalError(c, "failed to save generated question", err)
			return
		}

		c.JSON(http.StatusCreated, q)
	}
}

// rewrites a question's content as formatted HTML
func EnhanceQuestionHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, ok := loadQuestion(c, deps.Store)
		if !ok {
			return
		}

		html, err := deps.Generator.Enhance(c.Request.Context(), seedOf(q))
		if err != nil {
			errors.ServiceUnavailable(c, "failed to enhance question", err)
			return
		}

		if err := deps.Store.UpdateContent(c.Request.Context(), q.ID, html); err != nil {
			errors.InternalError(c, "failed to update question", err)
			return
		}

		q.Content = html

		c.JSON(http.StatusOK, q.Public())
	}
}

func AddFavoriteHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		q, ok := loadQuestion(c, store)
		if !ok {
			return
		}

		if err := store.AddFavorite(c.Request.Context(), userID, q.ID); err != nil {
			errors.InternalError(c, "failed to add favorite", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "question added to favorites"})
	}
}

func RemoveFavoriteHandler(store Store) gin.HandlerFunc {
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

		err := store.RemoveFavorite(c.Request.Context(), userID, id)
		if stderrors.Is(err, questions.ErrFavoriteNotFound) {
			errors.NotFound(c, "favorite")
			return
		}

		if err != nil {
			errors.InternalError(c, "failed to remove favorite", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "question removed from favorites"})
	}
}

// writes the 404/500 itself and reports false on failure
func loadQuestion(c *gin.Context, store Store) (*questions.Question, bool) {
	id, ok := errors.ValidatePathID(c, "id")
	if !ok {
		return nil, false
	}

	q, err := store.Get(c.Request.Context(), id)
	if stderrors.Is(err, questions.ErrQuestionNotFound) {
		errors.NotFound(c, "question")
		return nil, false
	}

	if err != nil {
		errors.InternalError(c, "failed to fetch question", err)
		return nil, false
	}

	return q, true
}

// stores a generated question with its embedding and, when an indexer is set,
// appends it to the index with that same vector. embedding and indexing
// failures are logged; the question is kept either way
func persist(c *gin.Context, deps Deps, g *generator.Question) (*questions.Question, error) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	testCases, err := json.Marshal(g.TestCases)
	if err != nil {
		return nil, err
	}

	req := questions.CreateRequest{
		Title:        g.Title,
		Content:      g.Content,
		Difficulty:   g.Difficulty,
		Topic:        g.Topic,
		Company:      g.Company,
		CodeTemplate: g.CodeTemplate,
		Solution:     g.Solution,
		TestCases:    testCases,
	}

	text := catalog.EmbeddingText(catalog.Item{Title: req.Title, Topic: req.Topic, Difficulty: req.Difficulty})

	embedding, err := deps.Embedder.Embed(ctx, text)
	if err != nil {
		log.Warn("failed to embed generated question", "error", err)
		embedding = nil
	}

	q, err := deps.Store.Create(ctx, req, embedding)
	if err != nil {
		return nil, err
	}

	switch {
	case deps.Indexer == nil:
	case embedding == nil:
		log.Warn("generated question not indexed, no embedding", "question_id", q.ID)
	default:
		if _, err := deps.Indexer.AddVector(ctx, questions.ToItem(*q), embedding); err != nil {
			log.Warn("failed to index generated question", "question_id", q.ID, "error", err)
		}
	}

	return q, nil
}

func seedOf(q *questions.Question) generator.Seed {
	return generator.Seed{
		Title:      q.Title,
		Content:    q.Content,
		Difficulty: q.Difficulty,
		Topic:      q.Topic,
	}
}

func public(list []questions.Question) []questions.Question {
	out := make([]questions.Question, len(list))
	for i, q := range list {
		out[i] = q.Public()
	}

	return out
}
