// Package controller turns key input into seeks on the page's media.
//
// A Controller keeps a live copy of the settings. The copy is loaded once and
// then updated only from store change notifications for the sync area, so the
// key path never waits on storage. Notifications received through Attach are
// merged per field until the owner's event loop calls ApplyPending.
package controller

import (
	"context"
	"sync"

	"github.com/dshills/smartseek/internal/input/key"
	"github.com/dshills/smartseek/internal/seek"
	"github.com/dshills/smartseek/internal/settings"
	"github.com/dshills/smartseek/internal/storage"
)

// Bindings that are active regardless of settings.
const (
	FixedBackKey    = "Shift+ArrowLeft"
	FixedForwardKey = "Shift+ArrowRight"
)

var (
	fixedBack    = key.MustParse(FixedBackKey)
	fixedForward = key.MustParse(FixedForwardKey)
)

// Page is the surface hosting the media elements.
type Page interface {
	// Media returns the page's media elements in document order.
	Media() []seek.Media
	// EditingText reports whether a text field has input focus.
	EditingText() bool
}

// Display shows the transient seek indicator.
type Display interface {
	Show(dir seek.Direction, seconds float64)
}

// Logger is the logging surface the controller needs.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Result describes how a key event was handled.
type Result struct {
	// Handled is true when the event triggered a seek and must not be
	// passed on.
	Handled   bool
	Direction seek.Direction
	// Amount is the unsigned seek interval used.
	Amount float64
	// Position is the target's playback position after the seek.
	Position float64
}

// Controller handles seek keys for a page.
type Controller struct {
	mu       sync.RWMutex
	settings settings.Settings

	page    Page
	display Display
	logger  Logger

	sub *storage.Subscription

	// Changes received from the store and not yet applied.
	pendingMu sync.Mutex
	pending   storage.Changes
	wake      chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(logger Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a controller for page. display may be nil.
func New(page Page, display Display, opts ...Option) *Controller {
	c := &Controller{
		settings: settings.Defaults(),
		page:     page,
		display:  display,
		logger:   nopLogger{},
		wake:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Settings returns a copy of the live settings.
func (c *Controller) Settings() settings.Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Load replaces the live settings with the stored ones. When the store
// cannot be read the defaults are used and the error is returned for
// logging; the controller stays usable either way.
func (c *Controller) Load(ctx context.Context, store storage.Store) error {
	s, err := settings.Load(ctx, store)

	c.mu.Lock()
	c.settings = s
	c.mu.Unlock()

	return err
}

// Attach subscribes the controller to sync-area changes in store. Any
// previous subscription is dropped. Received changes are queued; call
// ApplyPending when Pending signals.
func (c *Controller) Attach(store storage.Store) {
	c.Detach()
	sub := store.SubscribeArea(storage.AreaSync, c.enqueue)

	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()
}

// Detach drops the store subscription.
func (c *Controller) Detach() {
	c.mu.Lock()
	sub := c.sub
	c.sub = nil
	c.mu.Unlock()

	sub.Unsubscribe()
}

// Pending signals that changes are waiting for ApplyPending. The channel
// holds at most one signal however many changes are queued.
func (c *Controller) Pending() <-chan struct{} {
	return c.wake
}

// ApplyPending applies the queued changes to the live settings and returns
// the number of fields applied.
func (c *Controller) ApplyPending() int {
	c.pendingMu.Lock()
	changes := c.pending
	c.pending = nil
	c.pendingMu.Unlock()

	if len(changes) == 0 {
		return 0
	}
	c.HandleChange(storage.Event{Area: storage.AreaSync, Changes: changes, Source: "pending"})
	return len(changes)
}

// enqueue merges ev into the pending changes. A field changed several times
// keeps its first OldValue and its latest NewValue.
func (c *Controller) enqueue(ev storage.Event) {
	c.pendingMu.Lock()
	if c.pending == nil {
		c.pending = make(storage.Changes, len(ev.Changes))
	}
	for field, ch := range ev.Changes {
		if prev, ok := c.pending[field]; ok {
			ch.OldValue = prev.OldValue
		}
		c.pending[field] = ch
	}
	c.pendingMu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// HandleChange applies a store change notification to the live settings.
// Only sync-area changes to known fields are applied; a removed field falls
// back to its default.
func (c *Controller) HandleChange(ev storage.Event) {
	if ev.Area != storage.AreaSync {
		c.logger.Debug("ignoring change", "area", ev.Area)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for field, ch := range ev.Changes {
		if !settings.IsField(field) {
			continue
		}
		if _, err := c.settings.Set(field, ch.NewValue); err != nil {
			c.logger.Warn("ignoring stored value", "field", field, "err", err)
		}
	}
}

// Match reports which direction in triggers, if any. Forward wins when both
// directions match.
func (c *Controller) Match(in key.Input) (seek.Direction, bool) {
	s := c.Settings()

	if fixedForward.Equals(in) || key.Matches(in, s.ForwardKey) {
		return seek.Forward, true
	}
	if fixedBack.Equals(in) || key.Matches(in, s.BackKey) {
		return seek.Back, true
	}
	return seek.Back, false
}

// HandleKey seeks the page's target media when in matches a binding.
// Events are not handled while text is being edited or when the page has
// no media.
func (c *Controller) HandleKey(in key.Input) Result {
	if c.page.EditingText() {
		return Result{}
	}

	dir, ok := c.Match(in)
	if !ok {
		return Result{}
	}

	target := seek.SelectTarget(c.page.Media())
	if target == nil {
		return Result{}
	}

	amount := c.Settings().SeekAmount
	pos := seek.Seek(target, dir.Delta(amount))
	if c.display != nil {
		c.display.Show(dir, amount)
	}

	c.logger.Debug("seek", "direction", dir, "amount", amount, "position", pos)
	return Result{
		Handled:   true,
		Direction: dir,
		Amount:    amount,
		Position:  pos,
	}
}
