// Package settings defines the smartseek settings record and the rules that
// keep it canonical.
//
// A Settings value holds the seek interval and the two user key bindings.
// It is persisted in the sync area of a storage.Store as a flat record of
// three fields (seekAmount, backKey, forwardKey). Surfaces that write it
// (the options form, the popup) validate input before writing; the
// Reconciler and Lifecycle produce the record written on install and update.
//
// Reading never fails hard: Load falls back to Defaults when the store cannot
// be read, and FromRecord keeps the default for any field whose stored value
// has the wrong type.
package settings
