package player

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/smartseek/internal/controller"
	"github.com/dshills/smartseek/internal/settings"
	"github.com/dshills/smartseek/internal/storage"
	"github.com/dshills/smartseek/internal/storage/memory"
)

type hostFixture struct {
	screen tcell.SimulationScreen
	page   *Page
	video  *Video
	ctrl   *controller.Controller
	osd    *OSD
	host   *Host
}

func newHostFixture(t *testing.T) *hostFixture {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	video := NewVideo("clip", 10*time.Minute)
	video.SetCurrentTime(10)
	page := NewPage(video)
	osd := NewOSD(time.Minute)
	ctrl := controller.New(page, osd)

	return &hostFixture{
		screen: screen,
		page:   page,
		video:  video,
		ctrl:   ctrl,
		osd:    osd,
		host:   NewHost(screen, page, ctrl, osd),
	}
}

func (f *hostFixture) screenText() string {
	width, height := f.screen.Size()
	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := f.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
			if r == 0 {
				r = ' '
			}
			b.WriteRune(r)
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func press(k tcell.Key, r rune, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, r, mod)
}

func TestHost_SeekKeys(t *testing.T) {
	f := newHostFixture(t)

	assert.False(t, f.host.HandleEvent(press(tcell.KeyRune, 'J', tcell.ModShift)))
	assert.Equal(t, 5.0, f.video.CurrentTime())

	f.video.SetCurrentTime(10)
	assert.False(t, f.host.HandleEvent(press(tcell.KeyRune, 'L', tcell.ModShift)))
	assert.Equal(t, 15.0, f.video.CurrentTime())

	assert.False(t, f.host.HandleEvent(press(tcell.KeyLeft, 0, tcell.ModShift)))
	assert.Equal(t, 10.0, f.video.CurrentTime())

	f.host.Draw()
	text := f.screenText()
	assert.Contains(t, text, "back Shift+J | forward Shift+L | amount 5s")
	assert.Contains(t, text, "« 5s")
}

func TestHost_TextFocusSuppressesSeeks(t *testing.T) {
	f := newHostFixture(t)

	f.host.HandleEvent(press(tcell.KeyTab, 0, tcell.ModNone))
	assert.True(t, f.page.EditingText())

	f.host.HandleEvent(press(tcell.KeyRune, 'L', tcell.ModShift))
	assert.Equal(t, 10.0, f.video.CurrentTime())

	f.host.HandleEvent(press(tcell.KeyTab, 0, tcell.ModNone))
	f.host.HandleEvent(press(tcell.KeyRune, 'L', tcell.ModShift))
	assert.Equal(t, 15.0, f.video.CurrentTime())
}

func TestHost_PlayPause(t *testing.T) {
	f := newHostFixture(t)
	require.True(t, f.video.Paused())

	f.host.HandleEvent(press(tcell.KeyRune, ' ', tcell.ModNone))
	assert.False(t, f.video.Paused())

	start := time.Now()
	f.host.Advance(start)
	f.host.Advance(start.Add(2 * time.Second))
	assert.Equal(t, 12.0, f.video.CurrentTime())
}

func TestHost_QuitKeys(t *testing.T) {
	f := newHostFixture(t)
	assert.True(t, f.host.HandleEvent(press(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, f.host.HandleEvent(press(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
}

func TestHost_RunAppliesEveryStoreChange(t *testing.T) {
	ctx := context.Background()
	f := newHostFixture(t)
	store := memory.New()
	defer store.Close()

	f.ctrl.Attach(store)
	defer f.ctrl.Detach()

	for i := 1; i <= 20; i++ {
		require.NoError(t, store.Set(ctx, storage.AreaSync, storage.Record{settings.FieldSeekAmount: float64(i)}))
	}
	assert.Equal(t, 5.0, f.ctrl.Settings().SeekAmount, "changes wait for the loop")

	done := make(chan error, 1)
	go func() { done <- f.host.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return f.ctrl.Settings().SeekAmount == 20
	}, 5*time.Second, 10*time.Millisecond)

	for i := 21; i <= 60; i++ {
		require.NoError(t, store.Set(ctx, storage.AreaSync, storage.Record{settings.FieldSeekAmount: float64(i)}))
	}
	assert.Eventually(t, func() bool {
		return f.ctrl.Settings().SeekAmount == 60
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, f.screen.PostEvent(press(tcell.KeyEscape, 0, tcell.ModNone)))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after escape")
	}
}

func TestHost_RunQuits(t *testing.T) {
	f := newHostFixture(t)

	done := make(chan error, 1)
	go func() { done <- f.host.Run(context.Background()) }()

	require.NoError(t, f.screen.PostEvent(press(tcell.KeyRune, 'L', tcell.ModShift)))
	require.NoError(t, f.screen.PostEvent(press(tcell.KeyEscape, 0, tcell.ModNone)))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after escape")
	}
}

func TestHost_RunStopsOnCancel(t *testing.T) {
	f := newHostFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- f.host.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
