package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskflow-app/taskflow/internal/client/api"
	"github.com/taskflow-app/taskflow/internal/client/session"
	"github.com/taskflow-app/taskflow/internal/client/state"
	"github.com/taskflow-app/taskflow/internal/timer"
	"github.com/taskflow-app/taskflow/internal/tui"
)

func main() {
	serverURL := os.Getenv("TASKFLOW_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8000"
	}

	statePath, err := state.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	file, err := state.Open(statePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening state file: %v\n", err)
		os.Exit(1)
	}

	countdown, err := timer.New(state.NewTimerStore(file))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error restoring timer: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(api.New(serverURL), session.NewManager(file), countdown)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
