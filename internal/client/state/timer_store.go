package state

import (
	"strconv"

	"github.com/taskflow-app/taskflow/internal/timer"
)

// TimerStore adapts the state file to the timer's Store interface, keeping
// mode, remaining seconds, and the session count under their own keys.
type TimerStore struct {
	file *File
}

func NewTimerStore(file *File) *TimerStore {
	return &TimerStore{file: file}
}

func (s *TimerStore) Save(snap timer.Snapshot) error {
	if err := s.file.Set(KeyTimerMode, string(snap.Mode)); err != nil {
		return err
	}
	if err := s.file.Set(KeyTimeLeft, strconv.Itoa(snap.Remaining)); err != nil {
		return err
	}
	return s.file.Set(KeySessionsCompleted, strconv.Itoa(snap.SessionsCompleted))
}

func (s *TimerStore) Load() (timer.Snapshot, bool, error) {
	mode, ok := s.file.Get(KeyTimerMode)
	if !ok {
		return timer.Snapshot{}, false, nil
	}

	snap := timer.Snapshot{Mode: timer.Mode(mode)}

	if v, ok := s.file.Get(KeyTimeLeft); ok {
		if n, err := strconv.Atoi(v); err == nil {
			snap.Remaining = n
		}
	}
	if v, ok := s.file.Get(KeySessionsCompleted); ok {
		if n, err := strconv.Atoi(v); err == nil {
			snap.SessionsCompleted = n
		}
	}

	return snap, true, nil
}
