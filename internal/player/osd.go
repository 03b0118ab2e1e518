package player

import (
	"time"

	"github.com/dshills/smartseek/internal/seek"
)

// DefaultOSDDuration is how long the seek indicator stays up.
const DefaultOSDDuration = 800 * time.Millisecond

// OSD is the on-screen seek indicator.
type OSD struct {
	ttl time.Duration
	now func() time.Time

	dir     seek.Direction
	label   string
	shownAt time.Time
	shown   bool
}

// NewOSD creates an indicator that stays visible for ttl after each seek.
// A non-positive ttl uses DefaultOSDDuration.
func NewOSD(ttl time.Duration) *OSD {
	if ttl <= 0 {
		ttl = DefaultOSDDuration
	}
	return &OSD{ttl: ttl, now: time.Now}
}

// Show implements controller.Display. Each call restarts the timer.
func (o *OSD) Show(dir seek.Direction, seconds float64) {
	o.dir = dir
	o.label = seek.FormatLabel(seconds)
	o.shownAt = o.now()
	o.shown = true
}

// Visible reports whether the indicator is up at t.
func (o *OSD) Visible(t time.Time) bool {
	return o.shown && t.Sub(o.shownAt) < o.ttl
}

// Direction returns the direction of the last seek.
func (o *OSD) Direction() seek.Direction {
	return o.dir
}

// Label returns the magnitude label of the last seek.
func (o *OSD) Label() string {
	return o.label
}

// Text renders the indicator, e.g. "« 5s" or "5s »".
func (o *OSD) Text() string {
	if !o.shown {
		return ""
	}
	if o.dir == seek.Forward {
		return o.label + "s »"
	}
	return "« " + o.label + "s"
}
