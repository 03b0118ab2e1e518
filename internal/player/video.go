package player

import (
	"math"
	"time"

	"github.com/dshills/smartseek/internal/seek"
)

// Video is a simulated video element.
//
// Video is not safe for concurrent use; the host touches it only from its
// event loop.
type Video struct {
	name     string
	position float64
	duration float64
	paused   bool
	ready    seek.ReadyState
}

// NewVideo creates a paused, fully loaded video of the given length.
func NewVideo(name string, duration time.Duration) *Video {
	return &Video{
		name:     name,
		duration: duration.Seconds(),
		paused:   true,
		ready:    seek.HaveEnoughData,
	}
}

// Name returns the video's label.
func (v *Video) Name() string { return v.name }

// CurrentTime returns the playback position in seconds.
func (v *Video) CurrentTime() float64 { return v.position }

// SetCurrentTime moves the playback position, clamped to the video length
// when it is known.
func (v *Video) SetCurrentTime(t float64) {
	t = math.Max(0, t)
	if v.duration > 0 {
		t = math.Min(t, v.duration)
	}
	v.position = t
}

// Paused reports whether playback is paused.
func (v *Video) Paused() bool { return v.paused }

// ReadyState returns the loading state.
func (v *Video) ReadyState() seek.ReadyState { return v.ready }

// SetReadyState changes the loading state.
func (v *Video) SetReadyState(s seek.ReadyState) { v.ready = s }

// Duration returns the length in seconds, or 0 when unknown.
func (v *Video) Duration() float64 {
	if v.ready < seek.HaveMetadata {
		return 0
	}
	return v.duration
}

// Play starts playback.
func (v *Video) Play() { v.paused = false }

// Pause stops playback.
func (v *Video) Pause() { v.paused = true }

// TogglePlay flips between playing and paused.
func (v *Video) TogglePlay() { v.paused = !v.paused }

// Advance moves a playing video forward by dt. Playback stops at the end.
// Videos without current data do not advance.
func (v *Video) Advance(dt time.Duration) {
	if v.paused || v.ready < seek.HaveCurrentData || dt <= 0 {
		return
	}
	v.SetCurrentTime(v.position + dt.Seconds())
	if v.duration > 0 && v.position >= v.duration {
		v.paused = true
	}
}
