// Package session holds the client's one process-wide login session with an
// explicit set/clear lifecycle. Nothing reads the token out of ambient
// storage; callers ask the manager.
package session

import (
	"encoding/json"

	authdto "github.com/taskflow-app/taskflow/internal/auth/dto"
	"github.com/taskflow-app/taskflow/internal/client/state"
)

type Session struct {
	Token string
	User  authdto.UserOutput
}

type Manager struct {
	file    *state.File
	current *Session
}

// NewManager restores any persisted session. A token with a corrupt user
// record is dropped rather than half-restored.
func NewManager(file *state.File) *Manager {
	m := &Manager{file: file}

	token, ok := file.Get(state.KeyToken)
	if !ok {
		return m
	}

	raw, ok := file.Get(state.KeyUser)
	if !ok {
		return m
	}

	var user authdto.UserOutput
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return m
	}

	m.current = &Session{Token: token, User: user}

	return m
}

// Current returns nil when nobody is logged in.
func (m *Manager) Current() *Session {
	return m.current
}

func (m *Manager) Token() string {
	if m.current == nil {
		return ""
	}
	return m.current.Token
}

// Set records a successful login and persists token and user projection
// under their own keys.
func (m *Manager) Set(token string, user authdto.UserOutput) error {
	m.current = &Session{Token: token, User: user}

	if err := m.file.Set(state.KeyToken, token); err != nil {
		return err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return m.file.Set(state.KeyUser, string(raw))
}

// Clear ends the session, on logout or when the server rejects the token.
func (m *Manager) Clear() error {
	m.current = nil

	if err := m.file.Delete(state.KeyToken); err != nil {
		return err
	}

	return m.file.Delete(state.KeyUser)
}
