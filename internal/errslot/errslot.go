package errslot

import "sync"

// Slot holds the single most recent error message for the presentation
// layer. New errors silently overwrite older unacknowledged ones; any
// successful operation clears it.
type Slot struct {
	mu  sync.RWMutex
	msg string
}

// New creates an empty slot.
func New() *Slot {
	return &Slot{}
}

// Set replaces the current message.
func (s *Slot) Set(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = msg
}

// Clear empties the slot.
func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = ""
}

// Message returns the current message, empty when no error is pending.
func (s *Slot) Message() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.msg
}
