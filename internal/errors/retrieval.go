package errors

import (
	"errors"
	"net/http"

	"codeberg.org/interprep/server/internal/retriever"
	"github.com/gin-gonic/gin"
)

// writes the HTTP response for an error returned by the retrieval service
func FromRetrieval(c *gin.Context, err error) {
	switch {
	case errors.Is(err, retriever.ErrNotFound):
		NotFound(c, "question")
	case errors.Is(err, retriever.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   CodeInvalidArgument,
			Message: "invalid argument",
			Details: sanitizeError(err),
		})
	case errors.Is(err, retriever.ErrProviderUnavailable):
		ServiceUnavailable(c, "embedding provider unavailable", err)
	case errors.Is(err, retriever.ErrNotInitialized):
		ServiceUnavailable(c, "search index is not ready", err)
	default:
		InternalError(c, "retrieval failed", err)
	}
}
