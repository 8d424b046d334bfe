// Package logging builds the run logger: every message goes to the console
// and, when a log file is configured, to that file as well.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns a logger that writes plain messages to console and, if path is
// not empty, appends them to the file at path. The returned Closer closes the
// log file; the caller owns it.
func Open(path string, console io.Writer) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(console, "", 0), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return log.New(io.MultiWriter(console, f), "", 0), f, nil
}
