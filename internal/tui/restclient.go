package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timeout for API requests
const requestTimeout = 30 * time.Second

// manages HTTP requests to the interprep REST API
type Client struct {
	endpoint   string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// creates a new REST client for the given base URL
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token != ""
}

// exchanges credentials for an access token and keeps it for later calls
func (c *Client) Login(ctx context.Context, username, password string) error {
	payload, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", nil, payload, &resp); err != nil {
		return err
	}

	if resp.Token == "" {
		return fmt.Errorf("login response carried no token")
	}

	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()

	return nil
}

// semantic search over the dataset
func (c *Client) Search(ctx context.Context, query string, n int) ([]Match, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("n", strconv.Itoa(n))

	var resp matchesResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/dataset/search", params, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Results, nil
}

// a random question, optionally restricted to a topic
func (c *Client) Random(ctx context.Context, topic string) (*Question, error) {
	params := url.Values{}
	if topic != "" {
		params.Set("topic", topic)
	}

	var q Question
	if err := c.do(ctx, http.MethodGet, "/api/v1/dataset/questions/random", params, nil, &q); err != nil {
		return nil, err
	}

	return &q, nil
}

func (c *Client) Question(ctx context.Context, id int64) (*Question, error) {
	var q Question
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/dataset/questions/%d", id), nil, nil, &q); err != nil {
		return nil, err
	}

	return &q, nil
}

// questions similar to the one with the given id
func (c *Client) Similar(ctx context.Context, id int64, n int) ([]Match, error) {
	params := url.Values{}
	params.Set("n", strconv.Itoa(n))

	var resp matchesResponse
	path := fmt.Sprintf("/api/v1/dataset/questions/%d/similar", id)
	if err := c.do(ctx, http.MethodGet, path, params, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Results, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body []byte, out any) error {
	target := c.endpoint + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp apiErrorResponse
		if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
		}

		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// returns a tea.Cmd that logs in
func (c *Client) LoginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := c.Login(ctx, username, password); err != nil {
			return LoginErrorMsg{err: err}
		}

		return LoggedInMsg{username: username}
	}
}

// returns a tea.Cmd that runs a semantic search
func (c *Client) SearchCmd(query string, n int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		matches, err := c.Search(ctx, query, n)
		if err != nil {
			return ResultsErrorMsg{query: query, err: err}
		}

		return ResultsMsg{
			title:    fmt.Sprintf("results for %q", query),
			markdown: formatMatches(matches),
		}
	}
}

func (c *Client) RandomCmd(topic string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		q, err := c.Random(ctx, topic)
		if err != nil {
			return ResultsErrorMsg{query: "random " + topic, err: err}
		}

		return ResultsMsg{title: "random question", markdown: formatQuestion(q)}
	}
}

func (c *Client) QuestionCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		q, err := c.Question(ctx, id)
		if err != nil {
			return ResultsErrorMsg{query: fmt.Sprintf("show %d", id), err: err}
		}

		return ResultsMsg{title: fmt.Sprintf("question %d", id), markdown: formatQuestion(q)}
	}
}

func (c *Client) SimilarCmd(id int64, n int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		matches, err := c.Similar(ctx, id, n)
		if err != nil {
			return ResultsErrorMsg{query: fmt.Sprintf("similar %d", id), err: err}
		}

		return ResultsMsg{
			title:    fmt.Sprintf("similar to %d", id),
			markdown: formatMatches(matches),
		}
	}
}

// REST API request/response types

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"access_token"`
}

type matchesResponse struct {
	Results []Match `json:"results"`
	Count   int     `json:"count"`
}

type apiErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
