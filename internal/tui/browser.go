package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultResults = 5
	// header, input box, status and help lines
	browserChrome = 8
)

type commandKind int

const (
	cmdSearch commandKind = iota
	cmdRandom
	cmdShow
	cmdSimilar
)

type browserCommand struct {
	kind  commandKind
	text  string
	id    int64
	count int
}

// parses a browser command line; bare text is a search
func parseBrowserCommand(line string) (browserCommand, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return browserCommand{}, fmt.Errorf("empty command")
	}

	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch strings.ToLower(fields[0]) {
	case "search":
		if rest == "" {
			return browserCommand{}, fmt.Errorf("usage: search <text>")
		}
		return browserCommand{kind: cmdSearch, text: rest, count: defaultResults}, nil

	case "random":
		return browserCommand{kind: cmdRandom, text: rest}, nil

	case "show", "similar":
		if len(fields) < 2 {
			return browserCommand{}, fmt.Errorf("usage: %s <id>", fields[0])
		}

		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil || id <= 0 {
			return browserCommand{}, fmt.Errorf("invalid question id %q", fields[1])
		}

		if strings.EqualFold(fields[0], "show") {
			return browserCommand{kind: cmdShow, id: id}, nil
		}

		count := defaultResults
		if len(fields) > 2 {
			n, err := strconv.Atoi(fields[2])
			if err != nil || n <= 0 {
				return browserCommand{}, fmt.Errorf("invalid result count %q", fields[2])
			}
			count = n
		}

		return browserCommand{kind: cmdSimilar, id: id, count: count}, nil

	default:
		return browserCommand{kind: cmdSearch, text: strings.TrimSpace(line), count: defaultResults}, nil
	}
}

func (bc browserCommand) run(client *Client) tea.Cmd {
	switch bc.kind {
	case cmdRandom:
		return client.RandomCmd(bc.text)
	case cmdShow:
		return client.QuestionCmd(bc.id)
	case cmdSimilar:
		return client.SimilarCmd(bc.id, bc.count)
	default:
		return client.SearchCmd(bc.text, bc.count)
	}
}

func NewBrowser(client *Client) *BrowserModel {
	ti := textinput.New()
	ti.Placeholder = "search two pointers on arrays, random graphs, similar 12, show 12"
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPurple)

	return &BrowserModel{
		input:   ti,
		spinner: sp,
		client:  client,
	}
}

func (m *BrowserModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *BrowserModel) Update(msg tea.Msg) (*BrowserModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			if line == "" || m.isFetching {
				return m, nil
			}

			bc, err := parseBrowserCommand(line)
			if err != nil {
				m.status = errorStyle.Render(err.Error())
				return m, nil
			}

			m.input.SetValue("")
			m.isFetching = true
			m.status = ""

			return m, tea.Batch(bc.run(m.client), m.spinner.Tick)

		case "ctrl+l":
			m.input.SetValue("")
			m.content = ""
			m.status = ""
			m.viewport.SetContent("")
			return m, nil

		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case ResultsMsg:
		m.isFetching = false
		m.status = infoStyle.Render(msg.title)
		m.content = msg.markdown
		m.viewport.SetContent(m.render(msg.markdown))
		m.viewport.GotoTop()
		return m, nil

	case ResultsErrorMsg:
		m.isFetching = false
		m.status = errorStyle.Render(fmt.Sprintf("%s: %v", msg.query, msg.err))
		return m, nil

	case spinner.TickMsg:
		if !m.isFetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *BrowserModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(10, width-10)

	vpHeight := max(3, height-browserChrome)

	if !m.ready {
		m.viewport = viewport.New(max(10, width-4), vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = max(10, width-4)
		m.viewport.Height = vpHeight
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(20, width-8)),
	)
	if err == nil {
		m.glamourRenderer = renderer
	}

	if m.content != "" {
		m.viewport.SetContent(m.render(m.content))
	}
}

// renders markdown, falling back to the raw text
func (m *BrowserModel) render(markdown string) string {
	if m.glamourRenderer == nil {
		return markdown
	}

	out, err := m.glamourRenderer.Render(markdown)
	if err != nil {
		return markdown
	}

	return out
}

func (m *BrowserModel) View() string {
	var b strings.Builder

	header := headerStyle.Render("QUESTION BROWSER")
	help := lipgloss.NewStyle().
		Foreground(colorGray).
		Render("[Enter: Run] [PgUp/PgDn: Scroll] [Ctrl+L: Clear] [Esc: Back]")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left,
		header,
		strings.Repeat(" ", max(1, m.width-lipgloss.Width(header)-lipgloss.Width(help)-2)),
		help,
	))
	b.WriteString("\n\n")

	if m.ready {
		if m.content == "" {
			b.WriteString(infoStyle.Render("type a query below and press enter. bare text runs a semantic search."))
			b.WriteString(strings.Repeat("\n", max(1, m.viewport.Height)))
		} else {
			b.WriteString(m.viewport.View())
			b.WriteString("\n")
		}
	}

	b.WriteString(borderStyle.Width(max(10, m.width-4)).Render(m.input.View()))
	b.WriteString("\n")

	if m.isFetching {
		b.WriteString(m.spinner.View() + infoStyle.Render(" fetching..."))
	} else {
		b.WriteString(m.status)
	}

	return b.String()
}
