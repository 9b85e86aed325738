package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/interprep/server/internal/retriever"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/x", nil)

	handler(c)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestFromRetrievalStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("lookup: %w", retriever.ErrNotFound), http.StatusNotFound, CodeNotFound},
		{"invalid argument", retriever.ErrInvalidArgument, http.StatusBadRequest, CodeInvalidArgument},
		{"provider", fmt.Errorf("%w: timeout", retriever.ErrProviderUnavailable), http.StatusServiceUnavailable, CodeServiceUnavailable},
		{"not initialized", retriever.ErrNotInitialized, http.StatusServiceUnavailable, CodeServiceUnavailable},
		{"persistence", retriever.ErrPersistence, http.StatusInternalServerError, CodeServerError},
		{"schema", retriever.ErrSchema, http.StatusInternalServerError, CodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := perform(t, func(c *gin.Context) { FromRetrieval(c, tt.err) })

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, body.Error)
		})
	}
}

func TestHelpersDefaultMessages(t *testing.T) {
	rec, body := perform(t, func(c *gin.Context) { Unauthorized(c, "") })
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication required", body.Message)

	rec, body = perform(t, func(c *gin.Context) { NotFound(c, "question") })
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "question not found", body.Message)

	rec, _ = perform(t, func(c *gin.Context) { Conflict(c, "") })
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestClassifyError(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	assert.Equal(t, CategoryDatabase, classifyError(&pgconn.PgError{Code: "42P01"}).category)
	assert.Equal(t, CategoryNotFound, classifyError(fmt.Errorf("get: %w", pgx.ErrNoRows)).category)
	assert.Equal(t, CategoryNetwork, classifyError(errors.New("dial tcp: connection refused")).category)
	assert.Equal(t, "database operation failed", sanitizeError(&pgconn.PgError{Message: "secret table"}))
	assert.Equal(t, "", sanitizeError(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(errors.New("other")))
	assert.True(t, IsNoRows(pgx.ErrNoRows))
	assert.True(t, IsNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(errors.New("other")))
}

func TestUniqueConstraint(t *testing.T) {
	name, ok := UniqueConstraint(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}))
	assert.True(t, ok)
	assert.Equal(t, "users_email_key", name)

	_, ok = UniqueConstraint(&pgconn.PgError{Code: "23503", ConstraintName: "favorites_user_id_fkey"})
	assert.False(t, ok)
}

func TestValidatePathID(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/x/12", nil)
	c.Params = gin.Params{{Key: "id", Value: "12"}}

	id, ok := ValidatePathID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/x/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	_, ok = ValidatePathID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
