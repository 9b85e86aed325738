package main

import (
	"fmt"
	"os"

	"codeberg.org/interprep/server/internal/config"
	"codeberg.org/interprep/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	config.LoadDotEnv()

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	app := tui.NewApp(env, os.Getenv("INTERPREP_API_URL"))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running interprep: %v\n", err)
		os.Exit(1)
	}
}
