package options

import (
	"github.com/dshills/smartseek/internal/input/key"
)

// Capture records the next key press into a binding field.
type Capture struct {
	form      *Form
	field     Field
	saved     string
	listening bool
}

// Capture starts listening for a binding on field. The current text is
// remembered so Escape can restore it.
func (f *Form) Capture(field Field) *Capture {
	return &Capture{
		form:      f,
		field:     field,
		saved:     f.Binding(field),
		listening: true,
	}
}

// Field returns the field being captured.
func (c *Capture) Field() Field {
	return c.field
}

// Listening reports whether the capture is still waiting for a key.
func (c *Capture) Listening() bool {
	return c.listening
}

// HandleKey offers a key press to the capture and reports whether the
// capture finished. A bare modifier press keeps waiting. Escape restores
// the text from when capture began. Any other key is written in canonical
// binding form.
func (c *Capture) HandleKey(ev key.Event) bool {
	if !c.listening {
		return true
	}
	if ev.IsModifierOnly() {
		return false
	}

	if ev.Key == "Escape" {
		c.form.SetBinding(c.field, c.saved)
	} else {
		c.form.SetBinding(c.field, key.Format(ev))
	}
	c.listening = false
	return true
}

// Cancel stops listening and keeps whatever the field holds.
func (c *Capture) Cancel() {
	c.listening = false
}
