package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/smartseek/internal/input/key"
	"github.com/dshills/smartseek/internal/seek"
	"github.com/dshills/smartseek/internal/settings"
	"github.com/dshills/smartseek/internal/storage"
	"github.com/dshills/smartseek/internal/storage/memory"
)

type fakeMedia struct {
	time     float64
	paused   bool
	ready    seek.ReadyState
	duration float64
}

func (m *fakeMedia) CurrentTime() float64        { return m.time }
func (m *fakeMedia) SetCurrentTime(t float64)    { m.time = t }
func (m *fakeMedia) Paused() bool                { return m.paused }
func (m *fakeMedia) ReadyState() seek.ReadyState { return m.ready }
func (m *fakeMedia) Duration() float64           { return m.duration }

type fakePage struct {
	media   []seek.Media
	editing bool
}

func (p *fakePage) Media() []seek.Media { return p.media }
func (p *fakePage) EditingText() bool   { return p.editing }

type shown struct {
	dir     seek.Direction
	seconds float64
}

type fakeDisplay struct{ shown []shown }

func (d *fakeDisplay) Show(dir seek.Direction, seconds float64) {
	d.shown = append(d.shown, shown{dir, seconds})
}

func playing(at float64) *fakeMedia {
	return &fakeMedia{time: at, ready: seek.HaveEnoughData, duration: 600}
}

func shift(k string) key.Event { return key.NewEvent(k, key.ModShift) }

// withSettings returns a controller whose live settings were loaded from a
// store holding s.
func withSettings(t *testing.T, page Page, display Display, s settings.Settings) *Controller {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Set(ctx, storage.AreaSync, s.Record()))

	c := New(page, display)
	require.NoError(t, c.Load(ctx, store))
	return c
}

func TestController_EndToEnd(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	defer store.Close()
	require.NoError(t, store.Set(ctx, storage.AreaSync, settings.Defaults().Record()))

	video := playing(10)
	display := &fakeDisplay{}
	c := New(&fakePage{media: []seek.Media{video}}, display)
	require.NoError(t, c.Load(ctx, store))
	c.Attach(store)
	defer c.Detach()

	res := c.HandleKey(shift("J"))
	assert.True(t, res.Handled)
	assert.Equal(t, seek.Back, res.Direction)
	assert.Equal(t, 5.0, video.time)

	video.time = 10
	res = c.HandleKey(shift("L"))
	assert.True(t, res.Handled)
	assert.Equal(t, seek.Forward, res.Direction)
	assert.Equal(t, 15.0, res.Position)

	assert.Equal(t, []shown{{seek.Back, 5}, {seek.Forward, 5}}, display.shown)

	// A popup-style write is picked up without reloading.
	require.NoError(t, store.Set(ctx, storage.AreaSync, storage.Record{settings.FieldSeekAmount: 7.5}))
	<-c.Pending()
	assert.Equal(t, 1, c.ApplyPending())
	res = c.HandleKey(shift("L"))
	assert.Equal(t, 22.5, res.Position)
	assert.Equal(t, 7.5, res.Amount)
}

func TestController_FixedBindings(t *testing.T) {
	video := playing(20)
	c := withSettings(t, &fakePage{media: []seek.Media{video}}, nil, settings.Settings{SeekAmount: 5, BackKey: "a", ForwardKey: "b"})

	res := c.HandleKey(shift("ArrowLeft"))
	require.True(t, res.Handled)
	assert.Equal(t, 15.0, video.time)

	res = c.HandleKey(shift("ArrowRight"))
	require.True(t, res.Handled)
	assert.Equal(t, 20.0, video.time)

	assert.False(t, c.HandleKey(key.NewEvent("ArrowRight", key.ModNone)).Handled)
}

func TestController_ExactMatchOnly(t *testing.T) {
	video := playing(10)
	c := New(&fakePage{media: []seek.Media{video}}, nil)

	assert.False(t, c.HandleKey(key.NewEvent("J", key.ModShift|key.ModCtrl)).Handled)
	assert.False(t, c.HandleKey(key.NewEvent("j", key.ModNone)).Handled)
	assert.Equal(t, 10.0, video.time)
}

func TestController_ForwardWinsOnConflict(t *testing.T) {
	video := playing(10)
	c := withSettings(t, &fakePage{media: []seek.Media{video}}, nil, settings.Settings{SeekAmount: 5, BackKey: "k", ForwardKey: "k"})

	res := c.HandleKey(key.NewEvent("k", key.ModNone))
	assert.True(t, res.Handled)
	assert.Equal(t, seek.Forward, res.Direction)
	assert.Equal(t, 15.0, video.time)
}

func TestController_NotHandled(t *testing.T) {
	t.Run("editing text", func(t *testing.T) {
		video := playing(10)
		c := New(&fakePage{media: []seek.Media{video}, editing: true}, nil)
		assert.False(t, c.HandleKey(shift("J")).Handled)
		assert.Equal(t, 10.0, video.time)
	})

	t.Run("no media", func(t *testing.T) {
		display := &fakeDisplay{}
		c := New(&fakePage{}, display)
		assert.False(t, c.HandleKey(shift("J")).Handled)
		assert.Empty(t, display.shown)
	})
}

func TestController_ClampsAtZero(t *testing.T) {
	video := playing(2)
	c := withSettings(t, &fakePage{media: []seek.Media{video}}, nil, settings.Settings{SeekAmount: 10, BackKey: "Shift+J", ForwardKey: "Shift+L"})

	res := c.HandleKey(shift("J"))
	assert.True(t, res.Handled)
	assert.Equal(t, 0.0, video.time)
}

func TestController_SelectsPlayingMedia(t *testing.T) {
	paused := &fakeMedia{time: 10, paused: true, ready: seek.HaveEnoughData, duration: 60}
	active := playing(30)
	c := New(&fakePage{media: []seek.Media{paused, active}}, nil)

	c.HandleKey(shift("L"))
	assert.Equal(t, 10.0, paused.time)
	assert.Equal(t, 35.0, active.time)
}

func TestController_HandleChange(t *testing.T) {
	c := New(&fakePage{}, nil)

	c.HandleChange(storage.Event{
		Area: storage.AreaLocal,
		Changes: storage.Changes{
			settings.FieldSeekAmount: {NewValue: 30.0},
		},
	})
	assert.Equal(t, settings.Defaults(), c.Settings(), "local area changes are ignored")

	c.HandleChange(storage.Event{
		Area: storage.AreaSync,
		Changes: storage.Changes{
			settings.FieldBackKey: {OldValue: "Shift+J", NewValue: "Ctrl+J"},
			"unrelated":           {NewValue: "x"},
		},
	})
	assert.Equal(t, "Ctrl+J", c.Settings().BackKey)

	c.HandleChange(storage.Event{
		Area: storage.AreaSync,
		Changes: storage.Changes{
			settings.FieldSeekAmount: {NewValue: "oops"},
		},
	})
	assert.Equal(t, 5.0, c.Settings().SeekAmount, "mistyped values are ignored")

	c.HandleChange(storage.Event{
		Area: storage.AreaSync,
		Changes: storage.Changes{
			settings.FieldBackKey: {OldValue: "Ctrl+J"},
		},
	})
	assert.Equal(t, "Shift+J", c.Settings().BackKey, "removed fields fall back to defaults")
}

type brokenStore struct{ *memory.Store }

func (brokenStore) Get(context.Context, storage.Area, storage.Record) (storage.Record, error) {
	return nil, errors.New("unavailable")
}

func TestController_LoadFallsBackToDefaults(t *testing.T) {
	c := withSettings(t, &fakePage{}, nil, settings.Settings{SeekAmount: 30, BackKey: "a", ForwardKey: "b"})

	err := c.Load(context.Background(), brokenStore{memory.New()})
	assert.Error(t, err)
	assert.Equal(t, settings.Defaults(), c.Settings())
}

func TestController_Detach(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	defer store.Close()

	c := New(&fakePage{}, nil)
	c.Attach(store)
	c.Detach()
	c.Detach()

	require.NoError(t, store.Set(ctx, storage.AreaSync, storage.Record{settings.FieldSeekAmount: 42.0}))
	assert.Equal(t, 0, c.ApplyPending())
	assert.Equal(t, 5.0, c.Settings().SeekAmount)
}

func TestController_PendingChangesAreMerged(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	defer store.Close()

	c := New(&fakePage{}, nil)
	c.Attach(store)
	defer c.Detach()

	for i := 1; i <= 40; i++ {
		require.NoError(t, store.Set(ctx, storage.AreaSync, storage.Record{settings.FieldSeekAmount: float64(i)}))
	}
	require.NoError(t, store.Set(ctx, storage.AreaSync, storage.Record{settings.FieldBackKey: "Alt+j"}))
	require.NoError(t, store.Set(ctx, storage.AreaLocal, storage.Record{"version": "2.0.0"}))

	select {
	case <-c.Pending():
	default:
		t.Fatal("no pending signal after store writes")
	}
	assert.Equal(t, 2, c.ApplyPending())
	assert.Equal(t, 40.0, c.Settings().SeekAmount)
	assert.Equal(t, "Alt+j", c.Settings().BackKey)
	assert.Equal(t, 0, c.ApplyPending())
}
