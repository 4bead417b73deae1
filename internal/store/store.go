package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store gives access to the repositories backed by one database.
type Store interface {
	ProblemRepo() ProblemRepo
	EventRepo() EventRepo

	// Ping reports whether the underlying database is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// Backend names the database behind a store URL.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// ParseURL classifies a store URL and returns its backend and the
// backend-specific DSN. An empty URL selects the default SQLite file.
func ParseURL(url string) (Backend, string, error) {
	switch {
	case url == "":
		p, err := DefaultDBPath()
		if err != nil {
			return "", "", err
		}
		return BackendSQLite, p, nil
	case strings.HasPrefix(url, "memory:"):
		return BackendMemory, "", nil
	case strings.HasPrefix(url, "sqlite://"):
		p := strings.TrimPrefix(url, "sqlite://")
		if p == "" {
			return "", "", fmt.Errorf("sqlite store URL has no path")
		}
		return BackendSQLite, p, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return BackendPostgres, url, nil
	default:
		return "", "", fmt.Errorf("unsupported store URL %q", url)
	}
}

// Open connects to the store at url. key is the store access key; it is
// used as the database password for Postgres and ignored otherwise.
func Open(ctx context.Context, url, key string) (Store, error) {
	backend, dsn, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	var s *SQLStore
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			if err := EnsureDir(dsn); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
		s, err = OpenSQLite(dsn)
	default:
		s, err = OpenPostgres(ctx, dsn, key)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultDBPath resolves the local database file path in priority order:
// 1. WORDMATH_DB environment variable
// 2. $XDG_DATA_HOME/wordmath/wordmath.db
// 3. ~/.local/share/wordmath/wordmath.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("WORDMATH_DB"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "wordmath", "wordmath.db"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
