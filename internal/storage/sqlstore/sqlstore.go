// Package sqlstore provides a settings store backed by SQLite through bun.
//
// Each stored field is one row keyed by (area, key) with a JSON-encoded
// value. Change notifications cover writes made through this process only.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"github.com/dshills/smartseek/internal/storage"
	"github.com/dshills/smartseek/internal/storage/notify"
)

// entry is one stored field.
type entry struct {
	bun.BaseModel `bun:"table:settings,alias:s"`

	Area      string    `bun:"area,pk"`
	Key       string    `bun:"key,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// Store is a SQLite-backed storage.Store.
type Store struct {
	db       *bun.DB
	notifier *notify.Notifier

	mu     sync.Mutex
	closed bool
}

// Open opens (or creates) the SQLite database at dsn and prepares the
// settings table.
func Open(ctx context.Context, dsn string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY and
	// keeps in-memory databases alive across calls.
	sqlDB.SetMaxOpenConns(1)

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	if _, err := db.NewCreateTable().Model((*entry)(nil)).IfNotExists().Exec(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating settings table: %w", err)
	}

	return &Store{
		db:       db,
		notifier: notify.New(),
	}, nil
}

// Get implements storage.Store.
func (s *Store) Get(ctx context.Context, area storage.Area, defaults storage.Record) (storage.Record, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	stored, err := s.load(ctx, s.db, area)
	if err != nil {
		return nil, err
	}
	return storage.Overlay(stored, defaults), nil
}

// Set implements storage.Store.
func (s *Store) Set(ctx context.Context, area storage.Area, values storage.Record) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([]entry, 0, len(values))
	normalized := make(storage.Record, len(values))
	for k, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", k, err)
		}
		rows = append(rows, entry{Area: string(area), Key: k, Value: string(raw), UpdatedAt: now})
		// Compare in decoded form so an int written now equals the float64
		// read back later.
		if normalized[k], err = decodeValue(string(raw)); err != nil {
			return err
		}
	}

	var changes storage.Changes
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		current, err := s.load(ctx, tx, area)
		if err != nil {
			return err
		}
		changes = storage.Diff(current, normalized)

		_, err = tx.NewInsert().
			Model(&rows).
			On("CONFLICT (area, key) DO UPDATE").
			Set("value = EXCLUDED.value").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	s.notifier.Notify(notify.Event{Area: area, Changes: changes, Source: "set"})
	return nil
}

// Subscribe implements storage.Store.
func (s *Store) Subscribe(observer storage.Observer) *storage.Subscription {
	return s.notifier.Subscribe(observer)
}

// SubscribeArea implements storage.Store.
func (s *Store) SubscribeArea(area storage.Area, observer storage.Observer) *storage.Subscription {
	return s.notifier.SubscribeArea(area, observer)
}

// Close implements storage.Store.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.notifier.Close()
	return s.db.Close()
}

func (s *Store) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrClosed
	}
	return nil
}

func (s *Store) load(ctx context.Context, db bun.IDB, area storage.Area) (storage.Record, error) {
	var rows []entry
	if err := db.NewSelect().Model(&rows).Where("area = ?", string(area)).Scan(ctx); err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	out := make(storage.Record, len(rows))
	for _, row := range rows {
		v, err := decodeValue(row.Value)
		if err != nil {
			return nil, fmt.Errorf("decoding %s.%s: %w", row.Area, row.Key, err)
		}
		out[row.Key] = v
	}
	return out, nil
}

func decodeValue(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}
