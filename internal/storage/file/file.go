// Package file provides a settings store backed by a single JSON, TOML or
// YAML file.
//
// The file is watched with fsnotify so edits made by another process (or a
// text editor) reach subscribers as change events, the same way writes made
// through Set do.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/smartseek/internal/storage"
	"github.com/dshills/smartseek/internal/storage/notify"
)

// Store is a file-backed storage.Store.
type Store struct {
	mu sync.Mutex

	path  string
	codec Codec

	// Last known file contents
	areas map[storage.Area]storage.Record

	notifier *notify.Notifier
	onError  func(error)

	watch   bool
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup

	closed bool
}

// Option configures a Store.
type Option func(*Store)

// WithCodec overrides the codec picked from the file extension.
func WithCodec(c Codec) Option {
	return func(s *Store) {
		s.codec = c
	}
}

// WithWatch enables or disables watching the file for external edits.
func WithWatch(enabled bool) Option {
	return func(s *Store) {
		s.watch = enabled
	}
}

// WithErrorHandler sets a callback for errors raised while reloading the
// file in the background.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Store) {
		if fn != nil {
			s.onError = fn
		}
	}
}

// Open opens the settings file at path, creating its directory if needed.
// A missing file is treated as empty.
func Open(path string, opts ...Option) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path:     absPath,
		areas:    make(map[storage.Area]storage.Record),
		notifier: notify.New(),
		onError:  func(error) {},
		watch:    true,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.codec == nil {
		if s.codec, err = ForPath(absPath); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating settings directory: %w", err)
	}

	areas, err := s.read()
	if err != nil {
		return nil, err
	}
	s.areas = areas

	if s.watch {
		if err := s.startWatcher(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Path returns the absolute path of the settings file.
func (s *Store) Path() string {
	return s.path
}

// Get implements storage.Store.
func (s *Store) Get(ctx context.Context, area storage.Area, defaults storage.Record) (storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, storage.ErrClosed
	}
	var events []notify.Event
	if !s.watch {
		var err error
		if events, err = s.reloadLocked("external"); err != nil {
			s.mu.Unlock()
			return nil, err
		}
	}
	rec := storage.Overlay(s.areas[area], defaults)
	s.mu.Unlock()

	s.deliver(events)
	return rec, nil
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

	raw, err := s.readRaw()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	updated, err := s.codec.Update(raw, area, values)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}
	// Cache the decoded form so the watcher sees no difference when the
	// write comes back as a file event.
	areas, err := s.codec.Decode(updated)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("decoding %s: %w", s.path, err)
	}
	if err := writeAtomic(s.path, updated); err != nil {
		s.mu.Unlock()
		return err
	}

	changes := storage.Compare(s.areas[area], areas[area])
	s.areas = areas
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
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.done)
	var err error
	if s.watcher != nil {
		err = s.watcher.Close()
	}
	s.wg.Wait()
	s.notifier.Close()
	return err
}

// reloadLocked re-reads the file and returns an event for every area that
// differs from the cached contents. s.mu must be held; deliver the events
// after releasing it.
func (s *Store) reloadLocked(source string) ([]notify.Event, error) {
	areas, err := s.read()
	if err != nil {
		return nil, err
	}

	var events []notify.Event
	for _, area := range unionAreas(s.areas, areas) {
		changes := storage.Compare(s.areas[area], areas[area])
		if len(changes) > 0 {
			events = append(events, notify.Event{Area: area, Changes: changes, Source: source})
		}
	}
	s.areas = areas
	return events, nil
}

func (s *Store) deliver(events []notify.Event) {
	for _, ev := range events {
		s.notifier.Notify(ev)
	}
}

func (s *Store) read() (map[storage.Area]storage.Record, error) {
	raw, err := s.readRaw()
	if err != nil {
		return nil, err
	}
	areas, err := s.codec.Decode(raw)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = s.path
		}
		return nil, err
	}
	return areas, nil
}

func (s *Store) readRaw() ([]byte, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", s.path, err)
	}
	return raw, nil
}

func (s *Store) startWatcher() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	// Watch the directory: atomic saves replace the file, which drops a
	// watch placed on the file itself.
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(s.path), err)
	}
	s.watcher = w

	s.wg.Add(1)
	go s.watchLoop()
	return nil
}

func (s *Store) watchLoop() {
	defer s.wg.Done()

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != s.path || ev.Op&relevant == 0 {
				continue
			}
			s.mu.Lock()
			events, err := s.reloadLocked("external")
			s.mu.Unlock()
			if err != nil {
				s.onError(err)
				continue
			}
			s.deliver(events)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.onError(err)

		case <-s.done:
			return
		}
	}
}

// writeAtomic replaces path with data via a temporary file in the same
// directory.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing settings file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing settings file: %w", err)
	}
	return nil
}

func unionAreas(a, b map[storage.Area]storage.Record) []storage.Area {
	seen := make(map[storage.Area]bool, len(a)+len(b))
	var out []storage.Area
	for area := range a {
		if !seen[area] {
			seen[area] = true
			out = append(out, area)
		}
	}
	for area := range b {
		if !seen[area] {
			seen[area] = true
			out = append(out, area)
		}
	}
	return out
}
