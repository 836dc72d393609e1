package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	taskdto "github.com/taskflow-app/taskflow/internal/task/dto"
)

// viewState represents the currently active tab.
type viewState int

const (
	viewTasks viewState = iota
	viewDashboard
	viewFocus
)

var viewNames = []string{"Tasks", "Dashboard", "Focus"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// loggedInMsg carries a fresh session out of the login view.
type loggedInMsg struct{}

// authExpiredMsg is emitted whenever the server rejects the bearer token.
// The app reacts by clearing the session and returning to the login view.
type authExpiredMsg struct{}

type tasksLoadedMsg struct {
	tasks []taskdto.TaskOutput
}

type taskSavedMsg struct{}

// --- Helpers ---

func errorStatus(err error) tea.Msg {
	return statusMsg{text: err.Error(), isError: true}
}

// formatCountdown renders whole seconds as mm:ss.
func formatCountdown(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
