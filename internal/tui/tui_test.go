package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	authdto "github.com/taskflow-app/taskflow/internal/auth/dto"
	"github.com/taskflow-app/taskflow/internal/client/api"
	"github.com/taskflow-app/taskflow/internal/client/session"
	"github.com/taskflow-app/taskflow/internal/client/state"
	taskdto "github.com/taskflow-app/taskflow/internal/task/dto"
	"github.com/taskflow-app/taskflow/internal/timer"
)

type memStore struct {
	snap  timer.Snapshot
	saved bool
}

func (m *memStore) Save(s timer.Snapshot) error { m.snap, m.saved = s, true; return nil }
func (m *memStore) Load() (timer.Snapshot, bool, error) {
	return m.snap, m.saved, nil
}

func newTestApp(t *testing.T) App {
	t.Helper()

	file, err := state.Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("open state: %v", err)
	}
	sess := session.NewManager(file)

	countdown, err := timer.New(nil)
	if err != nil {
		t.Fatalf("new timer: %v", err)
	}

	return NewApp(api.New("http://localhost:8000"), sess, countdown)
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app := newTestApp(t)

	if app.loggedIn {
		t.Fatal("app should start logged out without a stored session")
	}
	if app.activeView != viewTasks {
		t.Fatal("default view should be tasks")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
}

func TestAppLoadingState(t *testing.T) {
	app := newTestApp(t)
	// Width 0 means not yet sized
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppShowsLoginWhenLoggedOut(t *testing.T) {
	app := newTestApp(t)
	app.width = 120
	app.height = 40
	app.login.setSize(120, 36)

	output := app.View()
	if !strings.Contains(output, "Log in") || !strings.Contains(output, "Sign up") {
		t.Fatal("logged-out view should offer log in and sign up")
	}
}

func TestAppViewStates(t *testing.T) {
	app := newTestApp(t)
	app.loggedIn = true
	app.width = 120
	app.height = 40
	app.tasks.setSize(120, 36)
	app.dashboard.setSize(120, 36)
	app.focus.setSize(120, 36)

	// All views render without panic
	views := []viewState{viewTasks, viewDashboard, viewFocus}
	for _, v := range views {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app := newTestApp(t)
	app.loggedIn = true
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppStatusMessage(t *testing.T) {
	app := newTestApp(t)
	app.loggedIn = true
	app.width = 120
	app.height = 40
	app.status = "test status"

	footer := app.renderFooter()
	if !strings.Contains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppAuthExpiredDropsToLogin(t *testing.T) {
	app := newTestApp(t)
	app.loggedIn = true

	model, _ := app.Update(authExpiredMsg{})
	app = model.(App)

	if app.loggedIn {
		t.Fatal("expired auth should log the app out")
	}
	if app.status == "" {
		t.Fatal("expired auth should set a status line")
	}
}

func TestAppLogoutSurfacesClearFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	file, err := state.Open(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatalf("open state: %v", err)
	}
	sess := session.NewManager(file)
	if err := sess.Set("session-token", authdto.UserOutput{ID: "user-1"}); err != nil {
		t.Fatalf("set session: %v", err)
	}

	// Replace the state directory with a regular file so the next flush
	// cannot write.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dir, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	countdown, err := timer.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	app := NewApp(api.New("http://localhost:8000"), sess, countdown)

	model, _ := app.Update(authExpiredMsg{})
	app = model.(App)

	if app.loggedIn {
		t.Fatal("app should log out even when the clear fails")
	}
	if !strings.Contains(app.status, "could not clear stored session") {
		t.Fatalf("status should report the failed clear, got %q", app.status)
	}
	if sess.Current() != nil {
		t.Fatal("in-memory session should be gone regardless")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	app := newTestApp(t)
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

// ============================================================
// Focus model
// ============================================================

func TestFocusTickCountsDown(t *testing.T) {
	countdown, err := timer.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	f := newFocusModel(countdown)

	before := f.timer.Remaining()

	// Paused timers ignore ticks
	f, _ = f.update(tickMsg(time.Now()))
	if f.timer.Remaining() != before {
		t.Fatal("tick while paused should not count down")
	}

	f.timer.Start()
	f, _ = f.update(tickMsg(time.Now()))
	if f.timer.Remaining() != before-1 {
		t.Fatalf("expected %d remaining, got %d", before-1, f.timer.Remaining())
	}
}

func TestFocusCompletionEmitsStatus(t *testing.T) {
	store := &memStore{}
	store.Save(timer.Snapshot{Mode: timer.ModeFocus, Remaining: 1})

	countdown, err := timer.New(store)
	if err != nil {
		t.Fatal(err)
	}
	f := newFocusModel(countdown)
	f.timer.Start()

	f, cmd := f.update(tickMsg(time.Now()))
	if f.timer.Remaining() != 0 {
		t.Fatal("countdown should have finished")
	}
	if f.timer.SessionsCompleted() != 1 {
		t.Fatal("finished focus countdown should count a session")
	}
	if cmd == nil {
		t.Fatal("completion should emit a status message")
	}
	msg, ok := cmd().(statusMsg)
	if !ok || msg.text == "" {
		t.Fatal("completion command should carry a status text")
	}
}

func TestFocusModeCycle(t *testing.T) {
	countdown, err := timer.New(nil)
	if err != nil {
		t.Fatal(err)
	}

	order := []timer.Mode{timer.ModeFocus, timer.ModeShortBreak, timer.ModeLongBreak, timer.ModeFocus}
	for i := 0; i < len(order)-1; i++ {
		if countdown.Mode() != order[i] {
			t.Fatalf("step %d: expected %s, got %s", i, order[i], countdown.Mode())
		}
		if err := countdown.SelectMode(nextMode[countdown.Mode()]); err != nil {
			t.Fatal(err)
		}
	}
	if countdown.Mode() != timer.ModeFocus {
		t.Fatal("mode cycle should wrap back to focus")
	}
}

func TestFocusViewShowsMode(t *testing.T) {
	countdown, err := timer.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	f := newFocusModel(countdown)
	f.setSize(120, 36)

	output := f.view()
	if !strings.Contains(output, "25:00") {
		t.Fatal("fresh focus view should show the full countdown")
	}
	if !strings.Contains(output, "FOCUS") {
		t.Fatal("focus view should name the active mode")
	}
}

// ============================================================
// Tasks model
// ============================================================

func TestTasksCursorClampsOnReload(t *testing.T) {
	m := newTasksModel(api.New("http://localhost:8000"))
	m.tasks = []taskdto.TaskOutput{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	m.cursor = 2

	m, _ = m.update(tasksLoadedMsg{tasks: []taskdto.TaskOutput{{ID: "a"}}})
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp to the shorter list, got %d", m.cursor)
	}
}

func TestTasksViewRendersItems(t *testing.T) {
	m := newTasksModel(api.New("http://localhost:8000"))
	m.setSize(120, 36)
	m.tasks = []taskdto.TaskOutput{
		{ID: "a", Title: "write report", Description: "quarterly numbers"},
		{ID: "b", Title: "ship release", Completed: true},
	}

	output := m.view()
	if !strings.Contains(output, "write report") {
		t.Fatal("view should list task titles")
	}
	if !strings.Contains(output, "[x]") {
		t.Fatal("completed tasks should be checked")
	}
}

func TestTasksViewEmpty(t *testing.T) {
	m := newTasksModel(api.New("http://localhost:8000"))
	m.setSize(120, 36)

	output := m.view()
	if !strings.Contains(output, "No tasks yet") {
		t.Fatal("empty list should hint at creating a task")
	}
}

// ============================================================
// Helpers
// ============================================================

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "00:00"},
		{1, "00:01"},
		{60, "01:00"},
		{1500, "25:00"},
		{330, "05:30"},
		{-1, "00:00"}, // negative should clamp to 0
	}
	for _, tt := range tests {
		got := formatCountdown(tt.secs)
		if got != tt.want {
			t.Errorf("formatCountdown(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestViewNames(t *testing.T) {
	if len(viewNames) != 3 {
		t.Fatalf("expected 3 view names, got %d", len(viewNames))
	}
	expected := []string{"Tasks", "Dashboard", "Focus"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}
