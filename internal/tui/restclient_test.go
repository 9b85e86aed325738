package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		_ = json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck

		if req.Username != "ada" || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized","message":"invalid credentials"}`)) //nolint:errcheck
			return
		}

		_, _ = w.Write([]byte(`{"access_token":"tok-123","user":{"id":1}}`)) //nolint:errcheck
	})

	mux.HandleFunc("/api/v1/dataset/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "two sum", r.URL.Query().Get("query"))
		assert.Equal(t, "3", r.URL.Query().Get("n"))

		_, _ = w.Write([]byte(`{"results":[{"id":1,"title":"Two Sum","topic":"arrays","difficulty":"easy","content":"add","similarity_score":0.97}],"count":1}`)) //nolint:errcheck
	})

	mux.HandleFunc("/api/v1/dataset/questions/random", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "trees", r.URL.Query().Get("topic"))

		_, _ = w.Write([]byte(`{"id":7,"title":"Invert Tree","topic":"trees","difficulty":"easy","content":"flip it"}`)) //nolint:errcheck
	})

	mux.HandleFunc("/api/v1/dataset/questions/7/similar", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[],"count":0}`)) //nolint:errcheck
	})

	mux.HandleFunc("/api/v1/dataset/questions/99", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","message":"question not found"}`)) //nolint:errcheck
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func TestClientLogin(t *testing.T) {
	srv := newTestAPI(t)
	client := NewClient(srv.URL)

	err := client.Login(context.Background(), "ada", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.False(t, client.Authenticated())

	require.NoError(t, client.Login(context.Background(), "ada", "secret"))
	assert.True(t, client.Authenticated())
}

func TestClientSearch(t *testing.T) {
	srv := newTestAPI(t)
	client := NewClient(srv.URL)

	matches, err := client.Search(context.Background(), "two sum", 3)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	assert.Equal(t, int64(1), matches[0].ID)
	assert.Equal(t, "Two Sum", matches[0].Title)
	assert.InDelta(t, 0.97, matches[0].SimilarityScore, 1e-9)
}

func TestClientRandomSendsToken(t *testing.T) {
	srv := newTestAPI(t)
	client := NewClient(srv.URL)
	require.NoError(t, client.Login(context.Background(), "ada", "secret"))

	q, err := client.Random(context.Background(), "trees")
	require.NoError(t, err)
	assert.Equal(t, int64(7), q.ID)
	assert.Equal(t, "trees", q.Topic)
}

func TestClientSimilarEmpty(t *testing.T) {
	srv := newTestAPI(t)
	client := NewClient(srv.URL)

	matches, err := client.Similar(context.Background(), 7, 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestClientErrorResponse(t *testing.T) {
	srv := newTestAPI(t)
	client := NewClient(srv.URL)

	_, err := client.Question(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, "not_found: question not found", err.Error())
}

func TestSearchCmdProducesResults(t *testing.T) {
	srv := newTestAPI(t)
	client := NewClient(srv.URL)

	msg := client.SearchCmd("two sum", 3)()

	res, ok := msg.(ResultsMsg)
	require.True(t, ok, "got %T", msg)
	assert.Contains(t, res.title, "two sum")
	assert.Contains(t, res.markdown, "Two Sum")
	assert.Contains(t, res.markdown, "0.970")
}

func TestQuestionCmdProducesError(t *testing.T) {
	srv := newTestAPI(t)
	client := NewClient(srv.URL)

	msg := client.QuestionCmd(99)()

	res, ok := msg.(ResultsErrorMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "show 99", res.query)
	assert.Error(t, res.err)
}
