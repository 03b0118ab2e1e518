// Package popup implements the quick seek amount control.
//
// The popup shows the current bindings and nudges the seek amount in fixed
// steps. Each nudge is written to the store immediately and only touches
// the seekAmount field.
package popup

import (
	"context"
	"math"

	"github.com/dshills/smartseek/internal/settings"
	"github.com/dshills/smartseek/internal/storage"
)

// Nudge bounds in seconds.
const (
	Step = 0.5
	Min  = 0.5
	Max  = settings.MaxSeekAmount
)

// Popup is the popup state.
type Popup struct {
	store    storage.Store
	settings settings.Settings
}

// Open reads the settings and returns a popup showing them. When the store
// cannot be read the popup shows the defaults and the error is returned
// alongside it.
func Open(ctx context.Context, store storage.Store) (*Popup, error) {
	s, err := settings.Load(ctx, store)
	return &Popup{store: store, settings: s}, err
}

// Amount returns the displayed seek amount.
func (p *Popup) Amount() float64 {
	return p.settings.SeekAmount
}

// Settings returns the displayed settings.
func (p *Popup) Settings() settings.Settings {
	return p.settings
}

// CanDecrease reports whether Decrease would change the amount.
func (p *Popup) CanDecrease() bool {
	return p.settings.SeekAmount > Min
}

// CanIncrease reports whether Increase would change the amount.
func (p *Popup) CanIncrease() bool {
	return p.settings.SeekAmount < Max
}

// Decrease lowers the amount by one step.
func (p *Popup) Decrease(ctx context.Context) (float64, error) {
	return p.SetAmount(ctx, p.settings.SeekAmount-Step)
}

// Increase raises the amount by one step.
func (p *Popup) Increase(ctx context.Context) (float64, error) {
	return p.SetAmount(ctx, p.settings.SeekAmount+Step)
}

// SetAmount clamps n to [Min, Max], rounds it to one decimal place, shows
// it and writes it to the store.
func (p *Popup) SetAmount(ctx context.Context, n float64) (float64, error) {
	if math.IsNaN(n) {
		n = Min
	}
	n = settings.Round1(math.Max(Min, math.Min(Max, n)))
	p.settings.SeekAmount = n

	return n, p.store.Set(ctx, storage.AreaSync, storage.Record{settings.FieldSeekAmount: n})
}
