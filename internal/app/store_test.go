package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/smartseek/internal/storage"
	"github.com/dshills/smartseek/internal/storage/file"
	"github.com/dshills/smartseek/internal/storage/memory"
	"github.com/dshills/smartseek/internal/storage/sqlstore"
)

func TestParseDSN(t *testing.T) {
	tests := []struct {
		dsn        string
		wantScheme string
		wantPath   string
		wantErr    bool
	}{
		{"memory:", SchemeMemory, "", false},
		{"memory", SchemeMemory, "", false},
		{"file:/tmp/s.json", SchemeFile, "/tmp/s.json", false},
		{"file:relative.toml", SchemeFile, "relative.toml", false},
		{"sqlite:/var/lib/s.db", SchemeSQLite, "/var/lib/s.db", false},
		{"settings.yaml", SchemeFile, "settings.yaml", false},
		{"/home/u/settings.YML", SchemeFile, "/home/u/settings.YML", false},
		{"state.sqlite3", SchemeSQLite, "state.sqlite3", false},
		{"file:", "", "", true},
		{"redis://localhost", "", "", true},
		{"settings.ini", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		scheme, path, err := ParseDSN(tt.dsn)
		if tt.wantErr {
			assert.ErrorIs(t, err, storage.ErrUnsupportedDSN, "ParseDSN(%q)", tt.dsn)
			continue
		}
		require.NoError(t, err, "ParseDSN(%q)", tt.dsn)
		assert.Equal(t, tt.wantScheme, scheme, "ParseDSN(%q) scheme", tt.dsn)
		assert.Equal(t, tt.wantPath, path, "ParseDSN(%q) path", tt.dsn)
	}
}

func TestOpenStore_Adapters(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := OpenStore(ctx, "memory:", NullLogger)
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, s)
	require.NoError(t, s.Close())

	s, err = OpenStore(ctx, "file:"+filepath.Join(dir, "settings.toml"), NullLogger)
	require.NoError(t, err)
	assert.IsType(t, &file.Store{}, s)
	require.NoError(t, s.Close())

	s, err = OpenStore(ctx, filepath.Join(dir, "settings.db"), NullLogger)
	require.NoError(t, err)
	assert.IsType(t, &sqlstore.Store{}, s)
	require.NoError(t, s.Close())
}

func TestOpenStoreOrMemory_FallsBack(t *testing.T) {
	ctx := context.Background()

	s, fallback := OpenStoreOrMemory(ctx, "nope://x", NullLogger)
	defer s.Close()
	assert.True(t, fallback)
	assert.IsType(t, &memory.Store{}, s)

	s2, fallback := OpenStoreOrMemory(ctx, "memory:", NullLogger)
	defer s2.Close()
	assert.False(t, fallback)
}
