package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/smartseek/internal/seek"
)

func TestVideo_Advance(t *testing.T) {
	v := NewVideo("clip", 10*time.Second)
	v.Advance(time.Second)
	assert.Equal(t, 0.0, v.CurrentTime(), "paused videos do not advance")

	v.Play()
	v.Advance(1500 * time.Millisecond)
	assert.Equal(t, 1.5, v.CurrentTime())

	v.Advance(time.Minute)
	assert.Equal(t, 10.0, v.CurrentTime())
	assert.True(t, v.Paused(), "playback stops at the end")
}

func TestVideo_SetCurrentTimeClamps(t *testing.T) {
	v := NewVideo("clip", 30*time.Second)
	v.SetCurrentTime(-4)
	assert.Equal(t, 0.0, v.CurrentTime())
	v.SetCurrentTime(45)
	assert.Equal(t, 30.0, v.CurrentTime())
}

func TestVideo_ReadyState(t *testing.T) {
	v := NewVideo("clip", 30*time.Second)
	v.SetReadyState(seek.HaveNothing)
	assert.Equal(t, 0.0, v.Duration(), "duration is unknown before metadata")

	v.Play()
	v.Advance(time.Second)
	assert.Equal(t, 0.0, v.CurrentTime())

	v.SetReadyState(seek.HaveCurrentData)
	v.Advance(time.Second)
	assert.Equal(t, 1.0, v.CurrentTime())
}

func TestPage_Target(t *testing.T) {
	assert.Nil(t, NewPage().Target())

	a := NewVideo("a", time.Minute)
	b := NewVideo("b", time.Minute)
	p := NewPage(a, b)
	assert.Same(t, a, p.Target(), "first loaded video when none play")

	b.Play()
	assert.Same(t, b, p.Target(), "playing video wins")

	p.Advance(2 * time.Second)
	assert.Equal(t, 0.0, a.CurrentTime())
	assert.Equal(t, 2.0, b.CurrentTime())
}

func TestOSD(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	o := NewOSD(time.Second)
	o.now = func() time.Time { return now }

	assert.False(t, o.Visible(now))
	assert.Empty(t, o.Text())

	o.Show(seek.Back, 2.5)
	assert.True(t, o.Visible(now.Add(500*time.Millisecond)))
	assert.False(t, o.Visible(now.Add(time.Second)))
	assert.Equal(t, "2.5", o.Label())
	assert.Equal(t, "« 2.5s", o.Text())

	o.Show(seek.Forward, 10)
	assert.Equal(t, seek.Forward, o.Direction())
	assert.Equal(t, "10s »", o.Text())
}
