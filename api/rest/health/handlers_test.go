package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/interprep/server/internal/retriever"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct{ stats retriever.Stats }

func (f fakeIndex) Stats() retriever.Stats { return f.stats }

type fakeDB struct{ err error }

func (f fakeDB) Ping(context.Context) error { return f.err }

func check(t *testing.T, index IndexStats, db Pinger) (int, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/health", Handler(index, db))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return w.Code, resp
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		ready      bool
		dbErr      error
		wantCode   int
		wantStatus string
	}{
		{"healthy", true, nil, http.StatusOK, StatusHealthy},
		{"index building", false, nil, http.StatusOK, StatusDegraded},
		{"database down", true, errors.New("connection refused"), http.StatusServiceUnavailable, StatusDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := check(t, fakeIndex{retriever.Stats{Ready: tt.ready, Items: 3, Dimensions: 384}}, fakeDB{tt.dbErr})

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, 3, resp.Index.Items)
		})
	}
}

func TestPingHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/ping", PingHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
