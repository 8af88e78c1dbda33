// Package store persists user settings as string key/value pairs.
//
// Three backends are provided: a YAML file (default), a SQLite database and
// an in-memory map for tests. Keys are small and few; every Set is written
// through immediately.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-mdpdf/internal/config"
)

// Sentinel errors for store operations.
var (
	ErrStoreOpen    = errors.New("failed to open settings store")
	ErrStoreRead    = errors.New("failed to read setting")
	ErrStoreWrite   = errors.New("failed to write setting")
	ErrEmptyKey     = errors.New("setting key cannot be empty")
	ErrUnknownStore = errors.New("unknown storage driver")
	ErrClosed       = errors.New("store is closed")
)

// Default file names under the user config directory.
const (
	DefaultFileName   = "state.yaml"
	DefaultSQLiteName = "state.db"
)

// Store is a per-user key/value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Open returns the backend named by driver. An empty path selects the
// default location for the driver under config.UserDir.
func Open(ctx context.Context, driver, path string) (Store, error) {
	if driver == "" {
		driver = config.DriverFile
	}

	if path == "" && driver != config.DriverMemory {
		var err error
		if path, err = DefaultPath(driver); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreOpen, err)
		}
	}

	switch driver {
	case config.DriverFile:
		return OpenFile(path)
	case config.DriverSQLite:
		return OpenSQLite(ctx, path)
	case config.DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, driver)
	}
}

// DefaultPath returns the default location for a driver.
func DefaultPath(driver string) (string, error) {
	dir, err := config.UserDir()
	if err != nil {
		return "", err
	}
	switch driver {
	case config.DriverSQLite:
		return filepath.Join(dir, DefaultSQLiteName), nil
	default:
		return filepath.Join(dir, DefaultFileName), nil
	}
}

func checkKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}
