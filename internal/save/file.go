package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/oski/internal/core"
)

// DefaultPath is where the game keeps its single save slot.
const DefaultPath = "~/.oski/save-file.txt"

// FileStore keeps one encoded snapshot in a flat text file.
type FileStore struct {
	path string
}

// NewFileStore returns a store for path. A leading ~ is expanded.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultPath
	}
	expanded, err := core.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	return &FileStore{path: expanded}, nil
}

// Path returns the resolved file path.
func (fs *FileStore) Path() string {
	return fs.path
}

// Save encodes s and replaces the file contents. The previous save survives
// if writing fails midway.
func (fs *FileStore) Save(s Snapshot) error {
	blob, err := Encode(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*.tmp")
	if err != nil {
		return fmt.Errorf("save: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(blob + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("save: cannot write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save: cannot write %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), fs.path); err != nil {
		return fmt.Errorf("save: cannot replace %s: %w", fs.path, err)
	}
	return nil
}

// Load reads and decodes the saved snapshot. A missing or empty file yields
// ErrNotFound.
func (fs *FileStore) Load() (Snapshot, error) {
	data, err := os.ReadFile(fs.path)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("save: cannot read %s: %w", fs.path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return Snapshot{}, ErrNotFound
	}
	return Decode(string(data))
}

// Exists reports whether a save file is present.
func (fs *FileStore) Exists() bool {
	info, err := os.Stat(fs.path)
	return err == nil && info.Size() > 0
}
