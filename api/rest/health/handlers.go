package health

import (
	"context"
	"net/http"
	"time"

	"codeberg.org/interprep/server/internal/logger"
	"github.com/gin-gonic/gin"
)

const (
	version     = "1.0.0"
	pingTimeout = 2 * time.Second
)

// Handler godoc
// @Summary Health check
// @Description Database reachability and search index state. A database outage answers 503; an index that is still building reports degraded.
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /health [get]
func Handler(index IndexStats, db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := Response{
			Status:   StatusHealthy,
			Service:  "interprep",
			Version:  version,
			Database: "ok",
			Index:    index.Stats(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.FromContext(ctx).Warn("health check: database unreachable", "error", err)
			resp.Status = StatusDown
			resp.Database = "unreachable"
			c.JSON(http.StatusServiceUnavailable, resp)

			return
		}

		if !resp.Index.Ready {
			resp.Status = StatusDegraded
		}

		c.JSON(http.StatusOK, resp)
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
