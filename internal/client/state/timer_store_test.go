package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow-app/taskflow/internal/timer"
)

func TestTimerStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	f, err := Open(path)
	require.NoError(t, err)

	store := NewTimerStore(f)

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	snap := timer.Snapshot{Mode: timer.ModeLongBreak, Remaining: 899, SessionsCompleted: 2}
	require.NoError(t, store.Save(snap))

	// Each field lands under its own key.
	mode, _ := f.Get(KeyTimerMode)
	assert.Equal(t, "long-break", mode)
	left, _ := f.Get(KeyTimeLeft)
	assert.Equal(t, "899", left)
	sessions, _ := f.Get(KeySessionsCompleted)
	assert.Equal(t, "2", sessions)

	// And a reopened file restores the same snapshot.
	reopened, err := Open(path)
	require.NoError(t, err)

	loaded, ok, err := NewTimerStore(reopened).Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snap, loaded)
}

func TestTimerStore_IgnoresUnparsableNumbers(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	require.NoError(t, f.Set(KeyTimerMode, "focus"))
	require.NoError(t, f.Set(KeyTimeLeft, "soon"))

	snap, ok, err := NewTimerStore(f).Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, timer.ModeFocus, snap.Mode)
	assert.Zero(t, snap.Remaining)
}

// Restoring a timer through the file store never resumes a countdown.
func TestTimerStore_WithTimer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	f, err := Open(path)
	require.NoError(t, err)

	tm, err := timer.New(NewTimerStore(f))
	require.NoError(t, err)

	tm.Start()
	for i := 0; i < 60; i++ {
		require.NoError(t, tm.Tick())
	}
	require.True(t, tm.Running())

	reopened, err := Open(path)
	require.NoError(t, err)

	restored, err := timer.New(NewTimerStore(reopened))
	require.NoError(t, err)

	assert.Equal(t, 1440, restored.Remaining())
	assert.False(t, restored.Running())
}
