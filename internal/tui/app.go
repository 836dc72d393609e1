package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflow-app/taskflow/internal/client/api"
	"github.com/taskflow-app/taskflow/internal/client/session"
	"github.com/taskflow-app/taskflow/internal/timer"
)

// App is the root Bubble Tea model.
type App struct {
	client  *api.Client
	session *session.Manager
	width   int
	height  int

	loggedIn   bool
	activeView viewState
	showHelp   bool

	login     loginModel
	tasks     tasksModel
	dashboard dashboardModel
	focus     focusModel

	help   help.Model
	status string
}

func NewApp(client *api.Client, sess *session.Manager, t *timer.Timer) App {
	h := help.New()
	h.ShowAll = false

	if s := sess.Current(); s != nil {
		client.SetToken(s.Token)
	}

	return App{
		client:     client,
		session:    sess,
		loggedIn:   sess.Current() != nil,
		activeView: viewTasks,
		login:      newLoginModel(client, sess),
		tasks:      newTasksModel(client),
		dashboard:  newDashboardModel(client),
		focus:      newFocusModel(t),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if a.loggedIn {
		cmds = append(cmds, a.tasks.refresh())
	}
	return tea.Batch(cmds...)
}

// tickCmd is the app's only tick scheduler. Every view that needs the
// clock gets the same tickMsg.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.login.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.dashboard.setSize(a.width, contentHeight)
		a.focus.setSize(a.width, contentHeight)
		return a, nil

	case tickMsg:
		cmds = append(cmds, tickCmd())
		var cmd tea.Cmd
		a.focus, cmd = a.focus.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case loggedInMsg:
		a.loggedIn = true
		a.activeView = viewTasks
		a.status = ""
		return a, a.tasks.refresh()

	case authExpiredMsg:
		a.logout("Session expired. Please log in again.")
		return a, nil

	case tea.KeyMsg:
		// ctrl+c always quits, even inside a form.
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loggedIn {
			if !a.login.formActive && key.Matches(msg, keys.Quit) {
				return a, tea.Quit
			}
			var cmd tea.Cmd
			a.login, cmd = a.login.update(msg)
			return a, cmd
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Logout):
			a.logout("Logged out.")
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTasks
			return a, a.tasks.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewDashboard
			return a, a.dashboard.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewFocus
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 3
			return a, a.refreshCurrentView()
		}
	}

	// Non-key messages (form internals, command results) still belong to
	// the login view until a session exists.
	if !a.loggedIn {
		var cmd tea.Cmd
		a.login, cmd = a.login.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

// logout drops the in-memory session and the stored one. A clear that
// fails to reach disk replaces the status line so the user knows the
// token is still on this machine.
func (a *App) logout(status string) {
	a.loggedIn = false
	a.client.SetToken("")
	a.status = status
	if err := a.session.Clear(); err != nil {
		a.status = "could not clear stored session: " + err.Error()
	}
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewFocus:
		a.focus, cmd = a.focus.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	return a.activeView == viewTasks && a.tasks.formActive
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewTasks:
		return a.tasks.refresh()
	case viewDashboard:
		return a.dashboard.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if !a.loggedIn {
		content := a.login.view()
		if a.status != "" {
			content = lipgloss.JoinVertical(lipgloss.Left, content, errorStyle.Render(" "+a.status))
		}
		return content
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTasks:
		content = a.tasks.view()
	case viewDashboard:
		content = a.dashboard.view()
	case viewFocus:
		content = a.focus.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("taskflow")
	if s := a.session.Current(); s != nil {
		title += mutedStyle.Render(" " + s.User.Email)
	}

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Countdown indicator stays visible on every tab while running.
	timerInfo := ""
	if a.focus.timer.Running() {
		timerInfo = successStyle.Render(" ● " + formatCountdown(a.focus.timer.Remaining()))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
