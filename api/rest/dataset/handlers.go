package dataset

import (
	"net/http"

	"codeberg.org/interprep/server/internal/errors"
	"codeberg.org/interprep/server/internal/retriever"
	"github.com/gin-gonic/gin"
)

// ListQuestions godoc
// @Summary Filter dataset questions
// @Description Questions whose topic and difficulty equal the given values ignoring case and whose company contains the given text, also ignoring case; limit=0 returns all
// @Tags dataset
// @Produce json
// @Param topic query string false "Topic"
// @Param difficulty query string false "Difficulty"
// @Param company query string false "Company"
// @Param limit query int false "Maximum results" default(10)
// @Success 200 {object} QuestionsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/v1/dataset/questions [get]
func ListQuestions(r Retriever) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q FilterQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			errors.ValidationError(c, err)
			return
		}

		items, err := r.FilterQuestions(c.Request.Context(), q.Filter, q.Limit)
		if err != nil {
			errors.FromRetrieval(c, err)
			return
		}

		c.JSON(http.StatusOK, QuestionsResponse{Questions: items, Count: len(items)})
	}
}

// RandomQuestion godoc
// @Summary Random dataset question
// @Description A uniformly random question among those matching the filter
// @Tags dataset
// @Produce json
// @Success 200 {object} catalog.Item
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/dataset/questions/random [get]
func RandomQuestion(r Retriever) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q FilterQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			errors.ValidationError(c, err)
			return
		}

		item, err := r.Random(c.Request.Context(), q.Filter)
		if err != nil {
			errors.FromRetrieval(c, err)
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

func GetQuestion(r Retriever) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathID(c, "id")
		if !ok {
			return
		}

		item, err := r.GetByID(c.Request.Context(), id)
		if err != nil {
			errors.FromRetrieval(c, err)
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// SimilarQuestions godoc
// @Summary Questions similar to a dataset question
// @Description Top-n by cosine similarity of the question's title and content, excluding the question itself
// @Tags dataset
// @Produce json
// @Param id path int true "Question ID"
// @Param n query int false "Number of results" default(5)
// @Success 200 {object} MatchesResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/v1/dataset/questions/{id}/similar [get]
func SimilarQuestions(r Retriever) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathID(c, "id")
		if !ok {
			return
		}

		var q SimilarQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			errors.ValidationError(c, err)
			return
		}

		matches, err := r.FindSimilarToItem(c.Request.Context(), id, min(q.N, maxResults), q.Filter)
		if err != nil {
			errors.FromRetrieval(c, err)
			return
		}

		c.JSON(http.StatusOK, newMatchesResponse(matches))
	}
}

// Search godoc
// @Summary Semantic search
// @Description Top-n dataset questions by cosine similarity to free text, optionally restricted by filter
// @Tags dataset
// @Produce json
// @Param query query string true "Search text"
// @Param n query int false "Number of results" default(5)
// @Success 200 {object} MatchesResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/v1/dataset/search [get]
func Search(r Retriever) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q SearchQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			errors.ValidationError(c, err)
			return
		}

		matches, err := r.FindSimilar(c.Request.Context(), q.Query, min(q.N, maxResults), q.Filter)
		if err != nil {
			errors.FromRetrieval(c, err)
			return
		}

		c.JSON(http.StatusOK, newMatchesResponse(matches))
	}
}

// SearchNearest godoc
// @Summary Nearest-neighbour search
// @Description Top-k dataset questions by euclidean distance, scored 1/(1+distance)
// @Tags questions
// @Produce json
// @Param query query string true "Search text"
// @Param k query int false "Number of results" default(5)
// @Success 200 {object} NeighborsResponse
// @Router /api/v1/questions/search [get]
func SearchNearest(r Retriever) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q NearestQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			errors.ValidationError(c, err)
			return
		}

		neighbors, err := r.SearchNearest(c.Request.Context(), q.Query, min(q.K, maxResults))
		if err != nil {
			errors.FromRetrieval(c, err)
			return
		}

		if neighbors == nil {
			neighbors = []retriever.Neighbor{}
		}

		c.JSON(http.StatusOK, NeighborsResponse{Results: neighbors, Count: len(neighbors)})
	}
}

// re-reads the catalog source and re-indexes if it changed
func Reload(r Retriever) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := r.Reload(c.Request.Context()); err != nil {
			errors.FromRetrieval(c, err)
			return
		}

		c.JSON(http.StatusOK, r.Stats())
	}
}

func newMatchesResponse(matches []retriever.Match) MatchesResponse {
	if matches == nil {
		matches = []retriever.Match{}
	}

	return MatchesResponse{Results: matches, Count: len(matches)}
}
