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
	apierror "github.com/taskflow-app/taskflow/internal/errors"
	taskdto "github.com/taskflow-app/taskflow/internal/task/dto"
)

type tasksModel struct {
	client *api.Client
	width  int
	height int

	tasks  []taskdto.TaskOutput
	cursor int

	formActive bool
	form       *huh.Form
	editingID  string // empty when creating

	// Form field pointers (survive value copies)
	formTitle       *string
	formDescription *string
}

func newTasksModel(client *api.Client) tasksModel {
	title, description := "", ""
	return tasksModel{
		client:          client,
		formTitle:       &title,
		formDescription: &description,
	}
}

func (t *tasksModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t tasksModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tasks, err := t.client.ListTasks(context.Background())
		if err != nil {
			return apiFailure(err)
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

func (t tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksLoadedMsg:
		t.tasks = msg.tasks
		if t.cursor >= len(t.tasks) {
			t.cursor = max(0, len(t.tasks)-1)
		}
		return t, nil

	case taskSavedMsg:
		return t, t.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
		case key.Matches(msg, keys.Down):
			if t.cursor < len(t.tasks)-1 {
				t.cursor++
			}
		case key.Matches(msg, keys.New):
			return t.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(t.tasks) > 0 {
				task := t.tasks[t.cursor]
				return t.showForm(&task)
			}
		case key.Matches(msg, keys.Toggle):
			if len(t.tasks) > 0 {
				return t, t.toggle(t.tasks[t.cursor])
			}
		case key.Matches(msg, keys.Delete):
			if len(t.tasks) > 0 {
				return t, t.delete(t.tasks[t.cursor].ID)
			}
		}
	}
	return t, nil
}

func (t tasksModel) showForm(task *taskdto.TaskOutput) (tasksModel, tea.Cmd) {
	if task != nil {
		t.editingID = task.ID
		*t.formTitle = task.Title
		*t.formDescription = task.Description
	} else {
		t.editingID = ""
		*t.formTitle = ""
		*t.formDescription = ""
	}

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(t.formTitle),
			huh.NewInput().Title("Description").Value(t.formDescription),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		return t, t.save(t.editingID, *t.formTitle, *t.formDescription)
	}

	return t, cmd
}

func (t tasksModel) save(id, title, description string) tea.Cmd {
	// An edit keeps the task's completed flag.
	completed := false
	if id != "" {
		for _, task := range t.tasks {
			if task.ID == id {
				completed = task.Completed
				break
			}
		}
	}

	return func() tea.Msg {
		input := taskdto.TaskInput{Title: title, Description: description, Completed: completed}

		var err error
		if id == "" {
			_, err = t.client.CreateTask(context.Background(), input)
		} else {
			_, err = t.client.UpdateTask(context.Background(), id, input)
		}
		if err != nil {
			return apiFailure(err)
		}

		return taskSavedMsg{}
	}
}

func (t tasksModel) toggle(task taskdto.TaskOutput) tea.Cmd {
	return func() tea.Msg {
		input := taskdto.TaskInput{
			Title:       task.Title,
			Description: task.Description,
			Completed:   !task.Completed,
		}
		if _, err := t.client.UpdateTask(context.Background(), task.ID, input); err != nil {
			return apiFailure(err)
		}
		return taskSavedMsg{}
	}
}

func (t tasksModel) delete(id string) tea.Cmd {
	return func() tea.Msg {
		if err := t.client.DeleteTask(context.Background(), id); err != nil {
			return apiFailure(err)
		}
		return taskSavedMsg{}
	}
}

// apiFailure turns a rejected token into an authExpiredMsg so the app can
// drop back to the login view; everything else becomes a status line.
func apiFailure(err error) tea.Msg {
	if errors.Is(err, apierror.ErrUnauthorized) {
		return authExpiredMsg{}
	}
	return errorStatus(err)
}

func (t tasksModel) view() string {
	w := t.width - 4
	if w < 20 {
		w = 20
	}

	if t.formActive && t.form != nil {
		title := titleStyle.Render("New Task")
		if t.editingID != "" {
			title = titleStyle.Render("Edit Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", t.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Tasks")

	if len(t.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, task := range t.tasks {
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		check := "[ ]"
		titleText := task.Title
		if task.Completed {
			check = successStyle.Render("[x]")
			if i != t.cursor {
				style = completedItemStyle
			}
		}

		row := cursor + check + " " + style.Render(titleText)
		if task.Description != "" {
			row += mutedStyle.Render("  " + task.Description)
		}
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  space: toggle  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
