package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/smartseek/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	got, err := s.Get(ctx, storage.AreaSync, storage.Record{"seekAmount": 5.0, "backKey": "Shift+J"})
	require.NoError(t, err)
	assert.Equal(t, storage.Record{"seekAmount": 5.0, "backKey": "Shift+J"}, got)

	require.NoError(t, s.Set(ctx, storage.AreaSync, storage.Record{"seekAmount": 10, "backKey": "Ctrl+J"}))
	require.NoError(t, s.Set(ctx, storage.AreaLocal, storage.Record{"version": "1.0.0"}))

	got, err = s.Get(ctx, storage.AreaSync, storage.Record{"seekAmount": 5.0, "forwardKey": "Shift+L"})
	require.NoError(t, err)
	assert.Equal(t, storage.Record{"seekAmount": 10.0, "forwardKey": "Shift+L"}, got)

	all, err := s.Get(ctx, storage.AreaSync, nil)
	require.NoError(t, err)
	assert.Equal(t, storage.Record{"seekAmount": 10.0, "backKey": "Ctrl+J"}, all)

	local, err := s.Get(ctx, storage.AreaLocal, nil)
	require.NoError(t, err)
	assert.Equal(t, storage.Record{"version": "1.0.0"}, local)
}

func TestStore_Upsert(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	var events []storage.Event
	s.Subscribe(func(ev storage.Event) { events = append(events, ev) })

	require.NoError(t, s.Set(ctx, storage.AreaSync, storage.Record{"seekAmount": 5}))
	require.NoError(t, s.Set(ctx, storage.AreaSync, storage.Record{"seekAmount": 5.0}))
	require.NoError(t, s.Set(ctx, storage.AreaSync, storage.Record{"seekAmount": 2.5}))

	got, err := s.Get(ctx, storage.AreaSync, nil)
	require.NoError(t, err)
	assert.Equal(t, storage.Record{"seekAmount": 2.5}, got)

	require.Len(t, events, 2, "rewriting an equal value must not notify")
	assert.Equal(t, storage.Changes{"seekAmount": {OldValue: 5.0, NewValue: 2.5}}, events[1].Changes)
}

func TestStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, storage.AreaSync, storage.Record{"forwardKey": "Alt+ArrowRight"}))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, storage.AreaSync, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alt+ArrowRight", got["forwardKey"])
}

func TestStore_Closed(t *testing.T) {
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Get(context.Background(), storage.AreaSync, nil)
	assert.ErrorIs(t, err, storage.ErrClosed)
	assert.ErrorIs(t, s.Set(context.Background(), storage.AreaSync, storage.Record{"a": 1}), storage.ErrClosed)
}
