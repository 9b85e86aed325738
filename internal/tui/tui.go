package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func NewApp(mode, endpoint string) *Model {
	client := NewClient(endpoint)

	return &Model{
		state:   StateWelcome,
		mode:    mode,
		client:  client,
		welcome: NewWelcome(mode),
		login:   NewLogin(),
		browser: NewBrowser(client),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// only quit from the welcome screen
			if m.state == StateWelcome {
				return m, tea.Quit
			}
			m.state = StateWelcome
			return m, nil
		}

		// any key dismisses an error
		if m.err != nil {
			m.err = nil
			return m, nil
		}

		if msg.String() == "esc" && m.state != StateWelcome {
			m.state = StateWelcome
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// the browser keeps its viewport sized even while hidden
		m.browser, _ = m.browser.Update(msg)
		return m, nil

	case ErrorMsg:
		m.err = msg.err
		return m, nil

	case EnterLoginMsg:
		m.login.Reset()
		m.state = StateLogin
		return m, nil

	case EnterBrowserMsg:
		m.state = StateBrowser
		return m, m.browser.Init()

	// async results land in their model whichever screen is showing
	case ResultsMsg, ResultsErrorMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.browser, cmd = m.browser.Update(msg)
		return m, cmd

	case LoginErrorMsg:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg, m.client)
		return m, cmd

	case LoggedInMsg:
		m.welcome, _ = m.welcome.Update(msg)
		m.login.Reset()
		m.state = StateWelcome
		return m, nil
	}

	switch m.state {
	case StateWelcome:
		var cmd tea.Cmd
		m.welcome, cmd = m.welcome.Update(msg)
		return m, cmd

	case StateLogin:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg, m.client)
		return m, cmd

	case StateBrowser:
		var cmd tea.Cmd
		m.browser, cmd = m.browser.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m *Model) View() string {
	if m.err != nil {
		return errorView(m.err)
	}

	switch m.state {
	case StateWelcome:
		return m.welcome.View()

	case StateLogin:
		return m.login.View()

	case StateBrowser:
		return m.browser.View()

	default:
		return "Unknown state"
	}
}

func errorView(err error) string {
	return fmt.Sprintf("\n  Error: %v\n\n  Press any key to continue, Ctrl+C to exit\n", err)
}
