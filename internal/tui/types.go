package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateLogin
	StateBrowser
)

// main TUI application model
type Model struct {
	state   AppState
	mode    string
	width   int
	height  int
	err     error
	client  *Client
	welcome *Welcome
	login   *LoginModel
	browser *BrowserModel
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to transition to the login form
type EnterLoginMsg struct{}

// sent to transition to the question browser
type EnterBrowserMsg struct{}

// sent after a successful login
type LoggedInMsg struct {
	username string
}

// sent when a login attempt fails
type LoginErrorMsg struct {
	err error
}

// welcome screen model
type Welcome struct {
	mode     string
	input    string
	user     string
	commands []Command
}

// represents an available TUI command
type Command struct {
	Name        string
	Description string
	Available   bool
}

// login form
type LoginModel struct {
	username textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	err      error
}

// question browser: a command line above a scrollable results pane
type BrowserModel struct {
	input           textinput.Model
	viewport        viewport.Model
	spinner         spinner.Model
	glamourRenderer *glamour.TermRenderer
	client          *Client
	width           int
	height          int
	ready           bool
	isFetching      bool
	status          string
	content         string
}

// sent when a browser request completes
type ResultsMsg struct {
	title    string
	markdown string
}

// sent when a browser request fails
type ResultsErrorMsg struct {
	query string
	err   error
}

// question as returned by the dataset endpoints
type Question struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Company    string `json:"company,omitempty"`
	Content    string `json:"content"`
}

// question with its cosine similarity to the query
type Match struct {
	Question
	SimilarityScore float64 `json:"similarity_score"`
}
