// Package state is the client's durable key/value file, the terminal
// equivalent of browser local storage. Each value lives under its own key
// and survives restarts of the client on the same machine.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Keys used by the client. Kept as constants so the timer and session
// packages cannot drift apart on spelling.
const (
	KeyTimerMode         = "timerMode"
	KeyTimeLeft          = "timeLeft"
	KeySessionsCompleted = "sessionsCompleted"
	KeyToken             = "token"
	KeyUser              = "user"
)

// File is a JSON-backed string map persisted with an atomic rename, so a
// crash mid-write never leaves a torn file behind.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// DefaultPath returns the state file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "taskflow", "state.json"), nil
}

// Open loads the state file at path, creating an empty store when the file
// does not exist yet.
func Open(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	if err := json.Unmarshal(data, &f.values); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}

	return f, nil
}

func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return f.flush()
}

func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return f.flush()
}

func (f *File) flush() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return os.Rename(tmp, f.path)
}
