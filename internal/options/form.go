// Package options implements the full settings form: load, edit, key
// capture, validate and save.
//
// Field values are held as the raw text a user would see and type. Nothing
// is written to the store until Save accepts the whole form.
package options

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/dshills/smartseek/internal/settings"
	"github.com/dshills/smartseek/internal/storage"
)

// StatusSaved is shown after a successful save.
const StatusSaved = "Settings saved."

// Field identifies a binding field on the form.
type Field int

// Binding fields.
const (
	BackField Field = iota
	ForwardField
)

// String returns the stored field name.
func (f Field) String() string {
	if f == ForwardField {
		return settings.FieldForwardKey
	}
	return settings.FieldBackKey
}

// Form is the options form state.
type Form struct {
	store storage.Store

	// SeekAmount is the seek amount field text.
	SeekAmount string
	// BackKey and ForwardKey are the binding field texts.
	BackKey    string
	ForwardKey string

	// Status is the last success message.
	Status string
	// Error is the last validation message.
	Error string
}

// New creates a form over store showing the defaults.
func New(store storage.Store) *Form {
	f := &Form{store: store}
	f.fill(settings.Defaults())
	return f
}

// Load fills the form from the store. On a read failure the form shows the
// defaults and the error is returned.
func (f *Form) Load(ctx context.Context) error {
	s, err := settings.Load(ctx, f.store)
	f.fill(s)
	return err
}

// BlurSeekAmount rounds the seek amount text to one decimal place when it
// holds a positive number; other text is left for Save to reject.
func (f *Form) BlurSeekAmount() {
	n, err := strconv.ParseFloat(strings.TrimSpace(f.SeekAmount), 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) || n <= 0 {
		return
	}
	f.SeekAmount = formatAmount(settings.Round1(n))
}

// Save validates the form and writes all three fields. On a validation
// failure nothing is written, Error holds the message and the returned
// error is a *settings.ValidationError.
func (f *Form) Save(ctx context.Context) (settings.Settings, error) {
	f.Error = ""
	f.Status = ""

	amount, err := settings.ValidateSeekAmount(f.SeekAmount)
	if err != nil {
		f.Error = err.Error()
		return settings.Settings{}, err
	}

	back := strings.TrimSpace(f.BackKey)
	forward := strings.TrimSpace(f.ForwardKey)
	if err := settings.ValidateBindings(back, forward); err != nil {
		f.Error = err.Error()
		return settings.Settings{}, err
	}

	s := settings.Settings{SeekAmount: amount, BackKey: back, ForwardKey: forward}
	if err := f.store.Set(ctx, storage.AreaSync, s.Record()); err != nil {
		f.Error = err.Error()
		return settings.Settings{}, err
	}

	f.fill(s)
	f.Status = StatusSaved
	return s, nil
}

// Reset puts the defaults in the form without saving them.
func (f *Form) Reset() {
	f.fill(settings.Defaults())
	f.Error = ""
	f.Status = ""
}

// Binding returns the text of a binding field.
func (f *Form) Binding(field Field) string {
	if field == ForwardField {
		return f.ForwardKey
	}
	return f.BackKey
}

// SetBinding replaces the text of a binding field.
func (f *Form) SetBinding(field Field, value string) {
	if field == ForwardField {
		f.ForwardKey = value
		return
	}
	f.BackKey = value
}

func (f *Form) fill(s settings.Settings) {
	f.SeekAmount = formatAmount(s.SeekAmount)
	f.BackKey = s.BackKey
	f.ForwardKey = s.ForwardKey
}

func formatAmount(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
