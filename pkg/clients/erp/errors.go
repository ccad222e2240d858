package erp

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrAuthDenied signals an authentication-denied response from any call.
// Callers tear the session down when they see it.
var ErrAuthDenied = errors.New("authentication denied")

// ValidationError carries the per-field messages returned by the remote
// store when a create payload is rejected.
type ValidationError struct {
	Fields map[string]string
}

// Error aggregates all field messages into one display string. Field names
// are sorted so the output is deterministic.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	messages := make([]string, 0, len(names))
	for _, name := range names {
		messages = append(messages, e.Fields[name])
	}
	return strings.Join(messages, ", ")
}

// StatusError represents any other non-success HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded with status %d", e.Code)
}
