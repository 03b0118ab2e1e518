// Package notify provides change notification for settings storage.
//
// Store adapters publish an Event whenever stored values change, and
// consumers subscribe either to every area or to a single area.
package notify

import (
	"sync"
)

// Area names a storage namespace.
type Area string

const (
	// AreaSync holds user settings that follow the user between surfaces.
	AreaSync Area = "sync"

	// AreaLocal holds per-installation bookkeeping.
	AreaLocal Area = "local"
)

// Change describes one changed field.
type Change struct {
	// OldValue is the previous value (nil if the field was absent).
	OldValue any

	// NewValue is the new value (nil if the field was removed).
	NewValue any
}

// Changes maps field names to their change.
type Changes map[string]Change

// Event is a batch of changes in one area.
type Event struct {
	// Area is the storage area the changes belong to.
	Area Area

	// Changes holds the changed fields.
	Changes Changes

	// Source identifies where the change came from, e.g. "set" or "external".
	Source string
}

// Observer is called when stored values change.
type Observer func(event Event)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. It is safe to call on nil.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages change subscriptions. Observers are called
// synchronously from Notify, in no particular order.
type Notifier struct {
	mu sync.RWMutex

	// Observers that receive every area
	globalObservers map[uint64]Observer

	// Area-specific observers
	areaObservers map[Area]map[uint64]Observer

	nextID uint64
	closed bool
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{
		globalObservers: make(map[uint64]Observer),
		areaObservers:   make(map[Area]map[uint64]Observer),
	}
}

// Subscribe registers an observer for changes in every area.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.globalObservers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribeArea registers an observer for changes in a single area.
func (n *Notifier) SubscribeArea(area Area, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.areaObservers[area] == nil {
		n.areaObservers[area] = make(map[uint64]Observer)
	}
	n.areaObservers[area][id] = observer

	return &Subscription{id: id, notifier: n}
}

// Notify sends an event to all relevant observers. Events without changes
// and events published after Close are dropped.
func (n *Notifier) Notify(event Event) {
	if len(event.Changes) == 0 {
		return
	}

	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	observers := make([]Observer, 0, len(n.globalObservers)+len(n.areaObservers[event.Area]))
	for _, obs := range n.globalObservers {
		observers = append(observers, obs)
	}
	for _, obs := range n.areaObservers[event.Area] {
		observers = append(observers, obs)
	}
	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(event)
	}
}

// Close shuts down the notifier. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)

	for area, observers := range n.areaObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.areaObservers, area)
		}
	}
}
