package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflow-app/taskflow/internal/client/api"
	"github.com/taskflow-app/taskflow/internal/client/session"
	apierror "github.com/taskflow-app/taskflow/internal/errors"
)

// loginModel is shown until a session exists. It offers a small menu and
// hands data entry to a huh form.
type loginModel struct {
	client  *api.Client
	session *session.Manager
	width   int
	height  int

	cursor     int // 0 = log in, 1 = sign up
	signingUp  bool
	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName     *string
	formEmail    *string
	formPassword *string
}

func newLoginModel(client *api.Client, sess *session.Manager) loginModel {
	name, email, password := "", "", ""
	return loginModel{
		client:       client,
		session:      sess,
		formName:     &name,
		formEmail:    &email,
		formPassword: &password,
	}
}

func (l *loginModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	if l.formActive && l.form != nil {
		return l.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if l.cursor > 0 {
				l.cursor--
			}
		case key.Matches(msg, keys.Down):
			if l.cursor < 1 {
				l.cursor++
			}
		case key.Matches(msg, keys.Enter):
			return l.showForm(l.cursor == 1)
		}
	}
	return l, nil
}

func (l loginModel) showForm(signup bool) (loginModel, tea.Cmd) {
	*l.formName = ""
	*l.formEmail = ""
	*l.formPassword = ""
	l.signingUp = signup

	fields := []huh.Field{}
	if signup {
		fields = append(fields, huh.NewInput().Title("Name").Value(l.formName))
	}
	fields = append(fields,
		huh.NewInput().Title("Email").Value(l.formEmail),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(l.formPassword),
	)

	l.form = huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
	l.formActive = true
	return l, l.form.Init()
}

func (l loginModel) updateForm(msg tea.Msg) (loginModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			l.formActive = false
			l.form = nil
			return l, nil
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.formActive = false
		return l, l.submit(l.signingUp, *l.formName, *l.formEmail, *l.formPassword)
	}

	return l, cmd
}

// submit signs up first when asked, then logs in either way so both paths
// end with a stored session.
func (l loginModel) submit(signup bool, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		if signup {
			if _, err := l.client.Signup(ctx, name, email, password); err != nil {
				return errorStatus(err)
			}
		}

		out, err := l.client.Login(ctx, email, password)
		if err != nil {
			if errors.Is(err, apierror.ErrUnauthorized) {
				return statusMsg{text: "invalid credentials", isError: true}
			}
			return errorStatus(err)
		}

		if err := l.session.Set(out.Token, out.User); err != nil {
			return errorStatus(err)
		}

		return loggedInMsg{}
	}
}

func (l loginModel) view() string {
	w := l.width - 4
	if w < 20 {
		w = 20
	}

	if l.formActive && l.form != nil {
		title := titleStyle.Render("Log in")
		if l.signingUp {
			title = titleStyle.Render("Sign up")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", l.form.View())
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Welcome to TaskFlow"))
	rows = append(rows, "")

	options := []string{"Log in", "Sign up"}
	for i, opt := range options {
		cursor := "  "
		style := normalItemStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+opt))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  q: quit"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
