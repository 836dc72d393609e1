package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflow-app/taskflow/internal/client/api"
	"github.com/taskflow-app/taskflow/internal/stats"
	taskdto "github.com/taskflow-app/taskflow/internal/task/dto"
)

type dashboardModel struct {
	client *api.Client
	width  int
	height int

	summary stats.Summary
}

func newDashboardModel(client *api.Client) dashboardModel {
	return dashboardModel{client: client}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	tasks []taskdto.TaskOutput
}

func (d dashboardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tasks, err := d.client.ListTasks(context.Background())
		if err != nil {
			return apiFailure(err)
		}
		return dashboardDataMsg{tasks: tasks}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(dashboardDataMsg); ok {
		d.summary = stats.Summarize(msg.tasks)
	}
	return d, nil
}

func (d dashboardModel) view() string {
	w := d.width - 4
	if w < 20 {
		w = 20
	}

	title := titleStyle.Render("Dashboard")

	if d.summary.Total == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press 1 to open Tasks and add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s  %d", mutedStyle.Render("Total tasks    "), d.summary.Total))
	rows = append(rows, fmt.Sprintf("  %s  %s", mutedStyle.Render("Completed      "), successStyle.Render(fmt.Sprintf("%d", d.summary.Completed))))
	rows = append(rows, fmt.Sprintf("  %s  %s", mutedStyle.Render("Active         "), highlightStyle.Render(fmt.Sprintf("%d", d.summary.Active))))
	rows = append(rows, "")
	rows = append(rows, "  "+d.renderProgressBar(w-8))
	rows = append(rows, fmt.Sprintf("  %s %d%%", mutedStyle.Render("completion rate"), d.summary.CompletionRate))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderProgressBar(width int) string {
	if width < 10 {
		width = 10
	}
	filled := width * d.summary.CompletionRate / 100
	if filled > width {
		filled = width
	}
	bar := successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
	return bar
}
