// Package storage defines the key-value settings store used by every
// smartseek surface, along with helpers shared by the store adapters.
//
// Adapters live in subpackages (memory, file, sqlstore) and one of them is
// selected at startup; callers only ever see the Store interface.
package storage

import (
	"context"
	"errors"
	"reflect"

	"github.com/dshills/smartseek/internal/storage/notify"
)

// Errors returned by store adapters.
var (
	// ErrClosed indicates the store was used after Close.
	ErrClosed = errors.New("store is closed")

	// ErrUnsupportedDSN indicates no adapter handles the given DSN.
	ErrUnsupportedDSN = errors.New("unsupported store DSN")
)

// Area names a storage namespace.
type Area = notify.Area

// Storage areas.
const (
	AreaSync  = notify.AreaSync
	AreaLocal = notify.AreaLocal
)

// Change, Changes, Event and Observer are re-exported from notify so callers
// rarely need to import it.
type (
	Change       = notify.Change
	Changes      = notify.Changes
	Event        = notify.Event
	Observer     = notify.Observer
	Subscription = notify.Subscription
)

// Record is a flat set of stored fields.
type Record map[string]any

// Store is a key-value store partitioned into areas.
type Store interface {
	// Get returns the stored values of an area laid over defaults. Only the
	// fields named in defaults are returned; nil defaults returns every
	// stored field.
	Get(ctx context.Context, area Area, defaults Record) (Record, error)

	// Set writes the given fields, leaving other fields untouched, and
	// notifies subscribers of the fields whose value changed.
	Set(ctx context.Context, area Area, values Record) error

	// Subscribe registers an observer for changes in every area.
	Subscribe(observer Observer) *Subscription

	// SubscribeArea registers an observer for changes in one area.
	SubscribeArea(area Area, observer Observer) *Subscription

	// Close releases the store's resources.
	Close() error
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Overlay resolves a Get call: it returns stored laid over defaults,
// restricted to the fields of defaults unless defaults is nil.
func Overlay(stored, defaults Record) Record {
	if defaults == nil {
		out := stored.Clone()
		if out == nil {
			out = Record{}
		}
		return out
	}
	out := defaults.Clone()
	for k := range defaults {
		if v, ok := stored[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Diff returns the changes that writing values over current would cause.
// Fields whose value is unchanged are omitted.
func Diff(current, values Record) Changes {
	changes := make(Changes)
	for k, v := range values {
		old, ok := current[k]
		if ok && reflect.DeepEqual(old, v) {
			continue
		}
		changes[k] = Change{OldValue: old, NewValue: v}
	}
	return changes
}

// Compare returns the changes between two full snapshots of an area,
// including removed fields (reported with a nil NewValue).
func Compare(before, after Record) Changes {
	changes := Diff(before, after)
	for k, v := range before {
		if _, ok := after[k]; !ok {
			changes[k] = Change{OldValue: v}
		}
	}
	return changes
}
