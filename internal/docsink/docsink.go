package docsink

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives a downloaded binary document. The concrete save mechanism
// is an environment concern, not core logic.
type Sink interface {
	Save(data []byte, filename string) error
}

// FileSink writes documents into a fixed directory.
type FileSink struct {
	dir string
}

// NewFileSink creates a sink rooted at dir, creating it when missing.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create download dir %s: %w", dir, err)
	}
	return &FileSink{dir: dir}, nil
}

// Save writes the document under the sink directory.
func (s *FileSink) Save(data []byte, filename string) error {
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save document %s: %w", path, err)
	}
	return nil
}
