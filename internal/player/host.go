package player

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/smartseek/internal/controller"
	"github.com/dshills/smartseek/internal/input/key"
	"github.com/dshills/smartseek/internal/seek"
)

// DefaultTick is the clock interval that advances playing videos.
const DefaultTick = 100 * time.Millisecond

// Keys reserved by the host. They are checked before the seek bindings.
var (
	quitKeys     = []string{"Escape", "Ctrl+c"}
	playKey      = " "
	textFocusKey = "Tab"
)

// Logger is the logging surface the host needs.
type Logger interface {
	Debug(msg string, keyvals ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Host runs the terminal page.
type Host struct {
	screen tcell.Screen
	page   *Page
	ctrl   *controller.Controller
	osd    *OSD
	logger Logger
	tick   time.Duration

	lastTick time.Time
	status   string
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostLogger sets the host logger.
func WithHostLogger(logger Logger) HostOption {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithTick sets the clock interval.
func WithTick(d time.Duration) HostOption {
	return func(h *Host) {
		if d > 0 {
			h.tick = d
		}
	}
}

// NewHost creates a host drawing page on screen. ctrl must have been
// created with page and osd.
func NewHost(screen tcell.Screen, page *Page, ctrl *controller.Controller, osd *OSD, opts ...HostOption) *Host {
	h := &Host{
		screen: screen,
		page:   page,
		ctrl:   ctrl,
		osd:    osd,
		logger: nopLogger{},
		tick:   DefaultTick,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run draws the page and processes events until a quit key is pressed, the
// screen is finalized or ctx is done. Settings changes queued by the
// controller's store subscription are applied on the loop. The caller owns the screen and must
// call Fini after Run returns.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		defer close(events)
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()

	h.lastTick = time.Now()
	h.Draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if h.HandleEvent(ev) {
				return nil
			}
		case <-h.ctrl.Pending():
			h.ctrl.ApplyPending()
		case now := <-ticker.C:
			h.Advance(now)
		}
		h.Draw()
	}
}

// HandleEvent processes one screen event and reports whether the host
// should quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(e)
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return false
}

// Advance moves the clock to now.
func (h *Host) Advance(now time.Time) {
	if !h.lastTick.IsZero() {
		h.page.Advance(now.Sub(h.lastTick))
	}
	h.lastTick = now
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	in, ok := KeyEvent(ev)
	if !ok {
		return false
	}

	if key.MatchesAny(in, quitKeys...) {
		return true
	}

	if res := h.ctrl.HandleKey(in); res.Handled {
		h.status = fmt.Sprintf("%s %s -> %s", res.Direction, seek.FormatLabel(res.Amount), clock(res.Position))
		return false
	}

	switch {
	case key.Matches(in, textFocusKey):
		h.page.SetEditing(!h.page.EditingText())
	case key.Matches(in, playKey):
		if v := h.page.Target(); v != nil {
			v.TogglePlay()
		}
	default:
		h.logger.Debug("unbound key", "key", key.Format(in))
	}
	return false
}

// Draw renders the page.
func (h *Host) Draw() {
	h.screen.Clear()

	title := tcell.StyleDefault.Bold(true)
	dim := tcell.StyleDefault.Dim(true)

	y := 0
	h.drawText(0, y, "smartseek", title)
	y += 2

	target := h.page.Target()
	for i, v := range h.page.Videos() {
		marker := "  "
		if v == target {
			marker = "> "
		}
		state := "playing"
		if v.Paused() {
			state = "paused"
		}
		line := fmt.Sprintf("%s%d %-12s %s / %s  %-7s %s",
			marker, i+1, v.Name(), clock(v.CurrentTime()), clock(v.Duration()), state, v.ReadyState())
		h.drawText(0, y, line, tcell.StyleDefault)
		y++
	}
	if len(h.page.Videos()) == 0 {
		h.drawText(0, y, "  no videos on this page", dim)
		y++
	}
	y++

	s := h.ctrl.Settings()
	h.drawText(0, y, fmt.Sprintf("back %s | forward %s | amount %ss",
		s.BackKey, s.ForwardKey, seek.FormatLabel(s.SeekAmount)), tcell.StyleDefault)
	y++

	focus := "off"
	if h.page.EditingText() {
		focus = "on (seek keys ignored)"
	}
	h.drawText(0, y, "text focus: "+focus, dim)
	y++

	if h.status != "" {
		h.drawText(0, y, h.status, dim)
	}
	y += 2

	if h.osd.Visible(time.Now()) {
		h.drawText(2, y, h.osd.Text(), tcell.StyleDefault.Reverse(true).Bold(true))
	}
	y += 2

	h.drawText(0, y, "space play/pause  tab text focus  esc quit", dim)
	h.screen.Show()
}

func (h *Host) drawText(x, y int, s string, style tcell.Style) {
	width, height := h.screen.Size()
	if y < 0 || y >= height {
		return
	}
	for _, r := range s {
		if x >= width {
			return
		}
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// clock formats seconds as m:ss.s.
func clock(seconds float64) string {
	m := int(seconds) / 60
	s := seconds - float64(m*60)
	return fmt.Sprintf("%d:%04.1f", m, s)
}
