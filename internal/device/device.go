// Package device keeps the opaque identity a CLI install uses as its key.
package device

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const fileName = "device_id"

// LoadOrCreate returns the id stored in dir, creating dir and a fresh id on
// first use.
func LoadOrCreate(dir string) (string, error) {
	path := filepath.Join(dir, fileName)
	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("reading device id: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	id := uuid.New().String()
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("writing device id: %w", err)
	}
	return id, nil
}

// New returns a fresh identity without storing it.
func New() string {
	return uuid.New().String()
}
