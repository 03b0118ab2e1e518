package app

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/smartseek/internal/options"
	"github.com/dshills/smartseek/internal/player"
)

// CaptureBinding prompts on screen for a key press and records it into
// field of form. It returns when the capture finishes, the screen is
// finalized or ctx is done. The caller owns the screen and must have
// initialized it. The form is not saved.
func CaptureBinding(ctx context.Context, screen tcell.Screen, form *options.Form, field options.Field) error {
	capture := form.Capture(field)

	events := make(chan tcell.Event, 4)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
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

	drawPrompt(screen, field, form.Binding(field))
	for capture.Listening() {
		select {
		case <-ctx.Done():
			capture.Cancel()
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				capture.Cancel()
				return nil
			}
			switch e := ev.(type) {
			case *tcell.EventKey:
				if k, ok := player.KeyEvent(e); ok {
					capture.HandleKey(k)
				}
			case *tcell.EventResize:
				screen.Sync()
				drawPrompt(screen, field, form.Binding(field))
			}
		}
	}
	return nil
}

func drawPrompt(screen tcell.Screen, field options.Field, current string) {
	label := "back"
	if field == options.ForwardField {
		label = "forward"
	}
	screen.Clear()
	putLine(screen, 0, "Press the new "+label+" key", tcell.StyleDefault.Bold(true))
	putLine(screen, 1, "Escape keeps "+current, tcell.StyleDefault.Dim(true))
	screen.Show()
}

func putLine(screen tcell.Screen, y int, s string, style tcell.Style) {
	width, _ := screen.Size()
	x := 0
	for _, r := range s {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
