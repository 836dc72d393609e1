// Package timer implements the focus/break countdown state machine. It has
// no server dependency; callers drive it with one Tick per elapsed second
// and persist its snapshot through a Store.
package timer

import "time"

type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short-break"
	ModeLongBreak  Mode = "long-break"
)

const (
	FocusDuration      = 25 * time.Minute
	ShortBreakDuration = 5 * time.Minute
	LongBreakDuration  = 15 * time.Minute
)

// DurationSeconds returns the full countdown length of a mode.
func (m Mode) DurationSeconds() int {
	switch m {
	case ModeShortBreak:
		return int(ShortBreakDuration.Seconds())
	case ModeLongBreak:
		return int(LongBreakDuration.Seconds())
	default:
		return int(FocusDuration.Seconds())
	}
}

func (m Mode) valid() bool {
	return m == ModeFocus || m == ModeShortBreak || m == ModeLongBreak
}

// Snapshot is the durable part of the timer state. The running flag is
// deliberately absent: a reload must never resume counting on its own.
type Snapshot struct {
	Mode              Mode `json:"mode"`
	Remaining         int  `json:"remaining"`
	SessionsCompleted int  `json:"sessions_completed"`
}

// Store persists a snapshot after every state change.
type Store interface {
	Save(s Snapshot) error
	// Load returns ok=false when no snapshot has been saved yet.
	Load() (s Snapshot, ok bool, err error)
}

type Timer struct {
	mode      Mode
	remaining int
	running   bool
	sessions  int
	store     Store
}

// New restores the timer from its store, falling back to a full focus
// countdown. Persisted values are sanitized: an unknown mode resets to
// focus, remaining is clamped to [0, mode duration], and running always
// starts false.
func New(store Store) (*Timer, error) {
	t := &Timer{
		mode:      ModeFocus,
		remaining: ModeFocus.DurationSeconds(),
		store:     store,
	}

	if store == nil {
		return t, nil
	}

	snap, ok, err := store.Load()
	if err != nil {
		return nil, err
	}
	if !ok {
		return t, nil
	}

	if snap.Mode.valid() {
		t.mode = snap.Mode
	}
	t.remaining = snap.Remaining
	if t.remaining < 0 {
		t.remaining = 0
	}
	if max := t.mode.DurationSeconds(); t.remaining > max {
		t.remaining = max
	}
	if snap.SessionsCompleted > 0 {
		t.sessions = snap.SessionsCompleted
	}

	return t, nil
}

func (t *Timer) Mode() Mode             { return t.mode }
func (t *Timer) Remaining() int         { return t.remaining }
func (t *Timer) Running() bool          { return t.running }
func (t *Timer) SessionsCompleted() int { return t.sessions }

// SelectMode switches to m and discards any in-flight countdown.
func (t *Timer) SelectMode(m Mode) error {
	if !m.valid() {
		m = ModeFocus
	}
	t.mode = m
	t.remaining = m.DurationSeconds()
	t.running = false
	return t.persist()
}

// Start begins counting down. It is a no-op once remaining has hit zero;
// the operator must reset or switch modes first.
func (t *Timer) Start() {
	if t.remaining > 0 {
		t.running = true
	}
}

func (t *Timer) Pause() {
	t.running = false
}

// Reset restores the full duration of the current mode and halts the
// countdown.
func (t *Timer) Reset() error {
	t.remaining = t.mode.DurationSeconds()
	t.running = false
	return t.persist()
}

// Tick consumes one elapsed second. On reaching zero the countdown stops,
// and a completed focus countdown increments the session counter. There is
// no automatic transition to the next mode.
func (t *Timer) Tick() error {
	if !t.running || t.remaining <= 0 {
		return nil
	}

	t.remaining--
	if t.remaining == 0 {
		t.running = false
		if t.mode == ModeFocus {
			t.sessions++
		}
	}

	return t.persist()
}

func (t *Timer) persist() error {
	if t.store == nil {
		return nil
	}
	return t.store.Save(Snapshot{
		Mode:              t.mode,
		Remaining:         t.remaining,
		SessionsCompleted: t.sessions,
	})
}
