// Package store persists marquee's per-device player configuration: custom
// sources, imported players and the default player preference. Each record
// set lives under its own key; writes are synchronous and atomic so a
// subsequent read from any component reflects the change.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// KV is the key-value persistence abstraction the stores are built on.
// Implementations must make Put durable before returning.
type KV interface {
	// Get returns the stored bytes for key, or (nil, nil) when absent.
	Get(key string) ([]byte, error)

	// Put durably replaces the value for key.
	Put(key string, data []byte) error

	// Delete removes the key. Absent keys are not an error.
	Delete(key string) error
}

// FileKV stores each key as a file in a single directory.
type FileKV struct {
	dir string
}

// NewFileKV returns a FileKV rooted at dir, creating it if needed.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

// DataDir returns the XDG-compliant data directory.
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "marquee"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "marquee"), nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key)
}

func (f *FileKV) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Put writes atomically via temp file + fsync + rename, so a crash mid-write
// can never leave a half-written record set behind.
func (f *FileKV) Put(key string, data []byte) error {
	if err := renameio.WriteFile(f.path(key), data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (f *FileKV) Delete(key string) error {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}
