package settings

import (
	"reflect"
	"sort"

	"github.com/dshills/smartseek/internal/storage"
)

// Reconciler computes the sync record written on install and update.
type Reconciler struct {
	// Defaults are the current default values.
	Defaults storage.Record
	// Legacy maps a field to the default it had in the previous release.
	Legacy storage.Record
}

// NewReconciler returns a Reconciler using the built-in defaults.
func NewReconciler() *Reconciler {
	return &Reconciler{
		Defaults: Defaults().Record(),
		Legacy:   LegacyDefaults(),
	}
}

// Install returns the record written on first install: the defaults.
func (r *Reconciler) Install() storage.Record {
	return r.Defaults.Clone()
}

// Update returns the record written after an update. Fields still holding
// their legacy default move to the current default, absent fields are filled
// from defaults, and every other stored field (known or not) is preserved.
func (r *Reconciler) Update(stored storage.Record) storage.Record {
	out := make(storage.Record, len(r.Defaults)+len(stored))
	for k, v := range r.Defaults {
		out[k] = v
	}
	for k, v := range stored {
		out[k] = v
	}

	for field, legacy := range r.Legacy {
		cur, ok := stored[field]
		if !ok || !reflect.DeepEqual(cur, legacy) {
			continue
		}
		if def, ok := r.Defaults[field]; ok {
			out[field] = def
		}
	}
	return out
}

// Migrated returns the fields Update would move off a legacy default.
func (r *Reconciler) Migrated(stored storage.Record) []string {
	var fields []string
	for _, field := range sortedFields(r.Legacy) {
		if cur, ok := stored[field]; ok && reflect.DeepEqual(cur, r.Legacy[field]) {
			if _, ok := r.Defaults[field]; ok {
				fields = append(fields, field)
			}
		}
	}
	return fields
}

func sortedFields(r storage.Record) []string {
	fields := make([]string, 0, len(r))
	for f := range r {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
