package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/comanda-io/comanda/core"
)

// FileStore persists the session as a small JSON file, the terminal
// equivalent of the browser's local storage. The file is chmod 0600 since
// it holds a bearer token.
type FileStore struct {
	path   string
	logger core.Logger
}

// NewFileStore creates a store writing to path.
func NewFileStore(path string, logger core.Logger) *FileStore {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &FileStore{path: path, logger: logger}
}

func (f *FileStore) Load(ctx context.Context) (Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("reading session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// A corrupt session file behaves like no session at all; the
		// user just logs in again.
		f.logger.Warn("Session file unreadable, treating as logged out", map[string]interface{}{
			"operation": "session_load",
			"path":      f.path,
			"error":     err.Error(),
		})
		return Session{}, nil
	}
	return s, nil
}

func (f *FileStore) Establish(ctx context.Context, s Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	f.logger.Debug("Session established", map[string]interface{}{
		"operation": "session_establish",
		"role":      string(s.Role),
	})
	return nil
}

func (f *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	f.logger.Debug("Session cleared", map[string]interface{}{
		"operation": "session_clear",
	})
	return nil
}
