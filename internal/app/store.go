package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/smartseek/internal/storage"
	"github.com/dshills/smartseek/internal/storage/file"
	"github.com/dshills/smartseek/internal/storage/memory"
	"github.com/dshills/smartseek/internal/storage/sqlstore"
)

// Store DSN schemes.
const (
	SchemeMemory = "memory"
	SchemeFile   = "file"
	SchemeSQLite = "sqlite"
)

// ParseDSN splits a store DSN into scheme and path. A DSN without a scheme
// is a path whose extension picks the adapter.
func ParseDSN(dsn string) (scheme, path string, err error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == SchemeMemory || dsn == SchemeMemory+":" {
		return SchemeMemory, "", nil
	}

	if i := strings.Index(dsn, ":"); i > 1 {
		scheme, path = dsn[:i], dsn[i+1:]
		switch scheme {
		case SchemeFile, SchemeSQLite:
			if path == "" {
				return "", "", fmt.Errorf("%w: %q has no path", storage.ErrUnsupportedDSN, dsn)
			}
			return scheme, path, nil
		case SchemeMemory:
			return SchemeMemory, "", nil
		}
	}

	switch strings.ToLower(filepath.Ext(dsn)) {
	case ".json", ".toml", ".yaml", ".yml":
		return SchemeFile, dsn, nil
	case ".db", ".sqlite", ".sqlite3":
		return SchemeSQLite, dsn, nil
	}
	return "", "", fmt.Errorf("%w: %q", storage.ErrUnsupportedDSN, dsn)
}

// OpenStore opens the store named by dsn.
func OpenStore(ctx context.Context, dsn string, logger *Logger) (storage.Store, error) {
	scheme, path, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	switch scheme {
	case SchemeMemory:
		return memory.New(), nil
	case SchemeFile:
		log := logger.WithComponent("store")
		s, err := file.Open(path, file.WithErrorHandler(func(err error) {
			log.Warn("settings file reload failed", "path", path, "err", err)
		}))
		if err != nil {
			return nil, err
		}
		return s, nil
	case SchemeSQLite:
		s, err := sqlstore.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", storage.ErrUnsupportedDSN, dsn)
}

// OpenStoreOrMemory opens the store named by dsn and falls back to an
// in-memory store when that fails. The returned bool reports whether the
// fallback was used.
func OpenStoreOrMemory(ctx context.Context, dsn string, logger *Logger) (storage.Store, bool) {
	s, err := OpenStore(ctx, dsn, logger)
	if err != nil {
		logger.WithComponent("store").Warn("settings store unavailable, using defaults in memory", "dsn", dsn, "err", err)
		return memory.New(), true
	}
	return s, false
}
