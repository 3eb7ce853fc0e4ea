// Package store keeps the serialized document somewhere durable
package store

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Load when no document was ever saved
var ErrNotFound = errors.New("document not found")

// Store reads and writes one whole document
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	// Location describes where the document lives, for status lines and logs
	Location() string
	Close() error
}

// Kind selects a backend
type Kind string

const (
	KindAuto   Kind = "auto"
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
)

var sqliteSuffixes = []string{".db", ".sqlite", ".sqlite3"}

// ParseKind resolves a backend name, the empty string means auto
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case "", KindAuto:
		return KindAuto, nil
	case KindFile, KindSQLite:
		return k, nil
	default:
		return "", errors.Errorf("unknown store kind %q", name)
	}
}

// Resolve turns auto into a concrete backend by file suffix
func (k Kind) Resolve(path string) Kind {
	if k != KindAuto && k != "" {
		return k
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range sqliteSuffixes {
		if ext == s {
			return KindSQLite
		}
	}
	return KindFile
}

// Open returns the backend for path
func Open(ctx context.Context, path string, kind Kind) (Store, error) {
	switch kind.Resolve(path) {
	case KindSQLite:
		return OpenSQLite(ctx, path, DefaultDocument)
	default:
		return NewFileStore(path), nil
	}
}
