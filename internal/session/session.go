package session

import (
	"encoding/base64"
	"errors"
	"sync"
)

// Status enumerates the lifecycle of a client session.
type Status string

const (
	// StatusUnset means no credentials have been submitted.
	StatusUnset Status = "unset"
	// StatusCredentialsSet means a login form was submitted but no request
	// has confirmed the pair yet.
	StatusCredentialsSet Status = "credentials_set"
	// StatusAuthenticated means at least one privileged request succeeded.
	StatusAuthenticated Status = "authenticated"
	// StatusRejected means the remote store denied the submitted pair.
	StatusRejected Status = "rejected"
)

// ErrNoCredentials is returned when an auth header is requested before a
// complete username/password pair has been stored.
var ErrNoCredentials = errors.New("no credentials set")

// Manager owns the current credentials and the session state machine.
// Login is optimistic: credentials are accepted unverified and the first
// privileged request either confirms or rejects them.
type Manager struct {
	mu       sync.RWMutex
	username string
	password string
	status   Status
}

// NewManager creates a manager with no active session.
func NewManager() *Manager {
	return &Manager{status: StatusUnset}
}

// Login stores the pair unconditionally and moves the session to
// CredentialsSet. No validation happens here.
func (m *Manager) Login(username, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.username = username
	m.password = password
	m.status = StatusCredentialsSet
}

// Logout discards the credentials and resets the session.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.username = ""
	m.password = ""
	m.status = StatusUnset
}

// Confirm marks the session authenticated after a successful privileged
// request. It is a no-op unless credentials are present.
func (m *Manager) Confirm() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.username == "" || m.password == "" {
		return
	}
	m.status = StatusAuthenticated
}

// Reject tears the session down after an authentication-denied response.
// The credentials are discarded so no further privileged call can be
// issued until the next Login.
func (m *Manager) Reject() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.username = ""
	m.password = ""
	m.status = StatusRejected
}

// Status returns the current session state.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Username returns the stored username, empty when logged out.
func (m *Manager) Username() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.username
}

// AuthHeader encodes the stored pair into a Basic scheme header value.
// Both halves must be present; a partially constructed pair never reaches
// the wire.
func (m *Manager) AuthHeader() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.username == "" || m.password == "" {
		return "", ErrNoCredentials
	}
	token := base64.StdEncoding.EncodeToString([]byte(m.username + ":" + m.password))
	return "Basic " + token, nil
}
