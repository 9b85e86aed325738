package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/interprep/server/interprep/questions"
	"codeberg.org/interprep/server/interprep/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	statsErr error
}

func (f *fakeStore) Stats(_ context.Context, userID int64) (*users.Stats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}

	return &users.Stats{
		Submissions:    users.SubmissionCounts{Total: 4, Correct: 3, Incorrect: 1},
		FavoritesCount: int(userID),
	}, nil
}

func (f *fakeStore) ListFavorites(_ context.Context, _ int64) ([]questions.Favorite, error) {
	return []questions.Favorite{{ID: 9, Question: questions.Question{ID: 2, Title: "Two Sum"}}}, nil
}

func (f *fakeStore) History(_ context.Context, userID int64) ([]questions.History, error) {
	return []questions.History{{ID: 1, UserID: userID, QuestionID: 2}}, nil
}

func setupRouter(store *fakeStore, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	router.GET("/stats", GetStats(store))
	router.GET("/favorites", GetFavorites(store))
	router.GET("/history", GetHistory(store))

	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	return w
}

func TestGetStats(t *testing.T) {
	w := get(setupRouter(&fakeStore{}, 7), "/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var stats users.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 4, stats.Submissions.Total)
	assert.Equal(t, 7, stats.FavoritesCount)
}

func TestGetStats_StoreError(t *testing.T) {
	w := get(setupRouter(&fakeStore{statsErr: errors.New("boom")}, 7), "/stats")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandlersRequireUser(t *testing.T) {
	router := setupRouter(&fakeStore{}, 0)

	for _, path := range []string{"/stats", "/favorites", "/history"} {
		w := get(router, path)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestGetFavorites(t *testing.T) {
	w := get(setupRouter(&fakeStore{}, 3), "/favorites")
	require.Equal(t, http.StatusOK, w.Code)

	var resp FavoritesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Favorites, 1)
	assert.Equal(t, "Two Sum", resp.Favorites[0].Question.Title)
}

func TestGetHistory(t *testing.T) {
	w := get(setupRouter(&fakeStore{}, 3), "/history")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.History, 1)
	assert.Equal(t, int64(3), resp.History[0].UserID)
}
