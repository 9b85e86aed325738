package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, rate string, userID int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l, err := New(rate, "")
	require.NoError(t, err)

	t.Cleanup(func() { _ = l.Close() })

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	router.Use(l.Middleware())
	router.GET("/generate", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router
}

func do(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/generate", nil)
	router.ServeHTTP(w, req)

	return w
}

func TestMiddleware_LimitsRequests(t *testing.T) {
	router := newRouter(t, "2-M", 0)

	assert.Equal(t, http.StatusOK, do(router).Code)
	assert.Equal(t, http.StatusOK, do(router).Code)

	w := do(router)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestMiddleware_KeysByUser(t *testing.T) {
	first := newRouter(t, "1-M", 1)
	assert.Equal(t, http.StatusOK, do(first).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(first).Code)
}

func TestKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "203.0.113.7:4444"

	assert.Equal(t, "203.0.113.7", key(c))

	c.Set("user_id", int64(42))
	assert.Equal(t, "user:42", key(c))
}

func TestNew_InvalidRate(t *testing.T) {
	_, err := New("lots", "")
	assert.Error(t, err)
}

func TestNew_BadRedisURL(t *testing.T) {
	_, err := New("10-M", "not a url")
	assert.Error(t, err)
}
