package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBrowserCommand(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    browserCommand
		wantErr bool
	}{
		{name: "bare text searches", line: "  binary trees ", want: browserCommand{kind: cmdSearch, text: "binary trees", count: defaultResults}},
		{name: "explicit search", line: "search two pointers", want: browserCommand{kind: cmdSearch, text: "two pointers", count: defaultResults}},
		{name: "search without text", line: "search", wantErr: true},
		{name: "random any topic", line: "random", want: browserCommand{kind: cmdRandom}},
		{name: "random with topic", line: "random graphs", want: browserCommand{kind: cmdRandom, text: "graphs"}},
		{name: "show", line: "show 12", want: browserCommand{kind: cmdShow, id: 12}},
		{name: "show bad id", line: "show abc", wantErr: true},
		{name: "show zero id", line: "show 0", wantErr: true},
		{name: "similar default count", line: "similar 3", want: browserCommand{kind: cmdSimilar, id: 3, count: defaultResults}},
		{name: "similar with count", line: "SIMILAR 3 10", want: browserCommand{kind: cmdSimilar, id: 3, count: 10}},
		{name: "similar bad count", line: "similar 3 -1", wantErr: true},
		{name: "similar without id", line: "similar", wantErr: true},
		{name: "empty", line: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBrowserCommand(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBrowserShowsResults(t *testing.T) {
	b := NewBrowser(NewClient(""))
	b, _ = b.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	b.isFetching = true

	b, _ = b.Update(ResultsMsg{title: "random question", markdown: "# Two Sum\n\nadd numbers\n"})

	assert.False(t, b.isFetching)
	assert.Equal(t, "# Two Sum\n\nadd numbers\n", b.content)
	assert.Contains(t, b.View(), "random question")
}

func TestBrowserShowsErrors(t *testing.T) {
	b := NewBrowser(NewClient(""))
	b.isFetching = true

	b, _ = b.Update(ResultsErrorMsg{query: "show 4", err: errors.New("not_found: question not found")})

	assert.False(t, b.isFetching)
	assert.Contains(t, b.View(), "not_found: question not found")
}

func TestBrowserRejectsBadCommand(t *testing.T) {
	b := NewBrowser(NewClient(""))
	b.input.SetValue("show nope")

	b, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, b.isFetching)
	assert.Contains(t, b.status, "invalid question id")
}

func TestFormatMatches(t *testing.T) {
	assert.Contains(t, formatMatches(nil), "no matching questions")

	out := formatMatches([]Match{{
		Question:        Question{ID: 2, Title: "LRU Cache", Topic: "design", Difficulty: "medium", Company: "Acme", Content: "build   a\ncache"},
		SimilarityScore: 0.5,
	}})

	assert.Contains(t, out, "## 1. LRU Cache")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "similarity 0.500")
	assert.Contains(t, out, "build a cache")
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short text", excerpt("short\n\ttext", 20))
	assert.Equal(t, "abc…", excerpt("abcdef", 3))
}

func TestModelNavigation(t *testing.T) {
	m := NewApp("development", "")

	_, _ = m.Update(EnterLoginMsg{})
	assert.Equal(t, StateLogin, m.state)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateWelcome, m.state)

	_, _ = m.Update(EnterBrowserMsg{})
	assert.Equal(t, StateBrowser, m.state)

	_, _ = m.Update(LoggedInMsg{username: "ada"})
	assert.Equal(t, StateWelcome, m.state)
	assert.Contains(t, m.View(), "signed in as ada")

	_, _ = m.Update(ErrorMsg{err: errors.New("unknown command: dance")})
	assert.Contains(t, m.View(), "unknown command: dance")

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.NotContains(t, m.View(), "unknown command")
}
