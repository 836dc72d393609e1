package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflow-app/taskflow/internal/timer"
)

var modeLabels = map[timer.Mode]string{
	timer.ModeFocus:      "FOCUS",
	timer.ModeShortBreak: "SHORT BREAK",
	timer.ModeLongBreak:  "LONG BREAK",
}

// nextMode is the cycling order for the m key.
var nextMode = map[timer.Mode]timer.Mode{
	timer.ModeFocus:      timer.ModeShortBreak,
	timer.ModeShortBreak: timer.ModeLongBreak,
	timer.ModeLongBreak:  timer.ModeFocus,
}

type focusModel struct {
	timer  *timer.Timer
	width  int
	height int
}

func newFocusModel(t *timer.Timer) focusModel {
	return focusModel{timer: t}
}

func (f *focusModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		wasRunning := f.timer.Running()
		if err := f.timer.Tick(); err != nil {
			return f, func() tea.Msg { return errorStatus(err) }
		}
		if wasRunning && !f.timer.Running() && f.timer.Remaining() == 0 {
			text := "Break over. Pick your next round."
			if f.timer.Mode() == timer.ModeFocus {
				text = "Focus session complete! Time for a break. \a"
			}
			return f, func() tea.Msg { return statusMsg{text: text} }
		}
		return f, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			f.timer.Start()
		case key.Matches(msg, keys.Pause), key.Matches(msg, keys.Toggle):
			if f.timer.Running() {
				f.timer.Pause()
			} else {
				f.timer.Start()
			}
		case key.Matches(msg, keys.Reset):
			if err := f.timer.Reset(); err != nil {
				return f, func() tea.Msg { return errorStatus(err) }
			}
		case key.Matches(msg, keys.Mode):
			if err := f.timer.SelectMode(nextMode[f.timer.Mode()]); err != nil {
				return f, func() tea.Msg { return errorStatus(err) }
			}
		}
	}
	return f, nil
}

func (f focusModel) view() string {
	w := f.width - 4
	if w < 20 {
		w = 20
	}

	title := titleStyle.Render("Focus Timer")
	mode := f.timer.Mode()

	modeStyle := countdownStyle
	switch mode {
	case timer.ModeShortBreak:
		modeStyle = successStyle.Bold(true).Align(lipgloss.Center)
	case timer.ModeLongBreak:
		modeStyle = highlightStyle.Bold(true).Align(lipgloss.Center)
	}

	display := modeStyle.Width(w - 6).Render(formatCountdown(f.timer.Remaining()))
	label := modeStyle.Render(modeLabels[mode])

	var state string
	switch {
	case f.timer.Remaining() == 0:
		state = warningStyle.Render("Done. Press r to reset or m to switch modes.")
	case f.timer.Running():
		state = successStyle.Render("● running")
	default:
		state = mutedStyle.Render("⏸ paused")
	}

	sessions := mutedStyle.Render(fmt.Sprintf("Focus sessions completed: %d", f.timer.SessionsCompleted()))

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		display,
		label,
		"",
		state,
		sessions,
	)

	var controls string
	if f.timer.Running() {
		controls = mutedStyle.Render("p: pause  r: reset")
	} else {
		controls = mutedStyle.Render("s: start  r: reset  m: next mode")
	}

	modeRow := f.renderModeRow()

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", modeRow, controls),
	)
}

func (f focusModel) renderModeRow() string {
	modes := []timer.Mode{timer.ModeFocus, timer.ModeShortBreak, timer.ModeLongBreak}
	var parts []string
	for _, m := range modes {
		if m == f.timer.Mode() {
			parts = append(parts, selectedItemStyle.Render("["+modeLabels[m]+"]"))
		} else {
			parts = append(parts, mutedStyle.Render(" "+modeLabels[m]+" "))
		}
	}
	return strings.Join(parts, " ")
}
