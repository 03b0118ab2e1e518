// Package memory provides an in-process settings store.
//
// It backs tests and serves as the fallback when the configured store cannot
// be opened.
package memory

import (
	"context"
	"sync"

	"github.com/dshills/smartseek/internal/storage"
	"github.com/dshills/smartseek/internal/storage/notify"
)

// Store is an in-memory storage.Store.
type Store struct {
	mu       sync.RWMutex
	areas    map[storage.Area]storage.Record
	notifier *notify.Notifier
	closed   bool
}

// New creates an empty store.
func New() *Store {
	return &Store{
		areas:    make(map[storage.Area]storage.Record),
		notifier: notify.New(),
	}
}

// Get implements storage.Store.
func (s *Store) Get(ctx context.Context, area storage.Area, defaults storage.Record) (storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, storage.ErrClosed
	}
	return storage.Overlay(s.areas[area], defaults), nil
}

// Set implements storage.Store.
func (s *Store) Set(ctx context.Context, area storage.Area, values storage.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return storage.ErrClosed
	}
	current := s.areas[area]
	if current == nil {
		current = make(storage.Record)
		s.areas[area] = current
	}
	changes := storage.Diff(current, values)
	for k, v := range values {
		current[k] = v
	}
	s.mu.Unlock()

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
	s.closed = true
	s.mu.Unlock()

	s.notifier.Close()
	return nil
}
