package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func NewLogin() *LoginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = "username: "
	username.PromptStyle = promptStyle
	username.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)
	username.CharLimit = 50
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "password: "
	password.PromptStyle = promptStyle
	password.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	return &LoginModel{
		username: username,
		password: password,
	}
}

// clears the form for another attempt
func (m *LoginModel) Reset() {
	m.username.SetValue("")
	m.password.SetValue("")
	m.focus = 0
	m.busy = false
	m.err = nil
	m.username.Focus()
	m.password.Blur()
}

func (m *LoginModel) Update(msg tea.Msg, client *Client) (*LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}

		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.toggleFocus()
			return m, textinput.Blink

		case "enter":
			if m.focus == 0 {
				m.toggleFocus()
				return m, textinput.Blink
			}

			username := strings.TrimSpace(m.username.Value())
			if username == "" || m.password.Value() == "" {
				return m, nil
			}

			m.busy = true
			m.err = nil
			return m, client.LoginCmd(username, m.password.Value())
		}

	case LoginErrorMsg:
		m.busy = false
		m.err = msg.err
		m.password.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}

	return m, cmd
}

func (m *LoginModel) toggleFocus() {
	if m.focus == 0 {
		m.focus = 1
		m.username.Blur()
		m.password.Focus()
		return
	}

	m.focus = 0
	m.password.Blur()
	m.username.Focus()
}

func (m *LoginModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("SIGN IN"))
	b.WriteString("\n\n")
	b.WriteString(borderStyle.Render(m.username.View() + "\n" + m.password.View()))
	b.WriteString("\n")

	switch {
	case m.busy:
		b.WriteString(infoStyle.Render("signing in..."))
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("[Tab: Switch field] [Enter: Submit] [Esc: Back]"))

	return b.String()
}
