package key

import "fmt"

// Input is the narrow view of a keyboard event needed for matching and
// formatting. Platform event types satisfy it through small adapters.
type Input interface {
	// KeyName is the key identifier as reported by the platform, e.g. "J" or
	// "ArrowLeft".
	KeyName() string
	ShiftKey() bool
	CtrlKey() bool
	AltKey() bool
	MetaKey() bool
}

// Event is a plain keyboard event.
type Event struct {
	Key   string
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// NewEvent creates an event for key with the given modifiers.
func NewEvent(key string, mods Modifier) Event {
	return Event{
		Key:   key,
		Shift: mods.HasShift(),
		Ctrl:  mods.HasCtrl(),
		Alt:   mods.HasAlt(),
		Meta:  mods.HasMeta(),
	}
}

// KeyName implements Input.
func (e Event) KeyName() string { return e.Key }

// ShiftKey implements Input.
func (e Event) ShiftKey() bool { return e.Shift }

// CtrlKey implements Input.
func (e Event) CtrlKey() bool { return e.Ctrl }

// AltKey implements Input.
func (e Event) AltKey() bool { return e.Alt }

// MetaKey implements Input.
func (e Event) MetaKey() bool { return e.Meta }

// Modifiers returns the modifier flags of the event.
func (e Event) Modifiers() Modifier {
	return ModifiersOf(e)
}

// IsModifierOnly reports whether the event is a bare modifier key press, as
// reported by platforms that deliver events for modifier keys themselves.
func (e Event) IsModifierOnly() bool {
	switch e.Key {
	case "Shift", "Control", "Alt", "Meta":
		return true
	}
	return false
}

// String returns the canonical binding string for the event.
func (e Event) String() string {
	return Format(e)
}

// Binding is a parsed binding string.
type Binding struct {
	// Key is the key identifier, upper-cased for single letters with Shift.
	Key string

	// Modifiers contains the required modifier keys.
	Modifiers Modifier
}

// KeyName implements Input.
func (b Binding) KeyName() string { return b.Key }

// ShiftKey implements Input.
func (b Binding) ShiftKey() bool { return b.Modifiers.HasShift() }

// CtrlKey implements Input.
func (b Binding) CtrlKey() bool { return b.Modifiers.HasCtrl() }

// AltKey implements Input.
func (b Binding) AltKey() bool { return b.Modifiers.HasAlt() }

// MetaKey implements Input.
func (b Binding) MetaKey() bool { return b.Modifiers.HasMeta() }

// Event returns the key event that triggers this binding.
func (b Binding) Event() Event {
	return NewEvent(b.Key, b.Modifiers)
}

// String returns the canonical binding string.
func (b Binding) String() string {
	return Format(b)
}

// Equals returns true if the input reports the same key and exactly the same
// modifiers as the binding.
func (b Binding) Equals(in Input) bool {
	return in.KeyName() == b.Key && ModifiersOf(in) == b.Modifiers
}

// GoString implements fmt.GoStringer for debugging.
func (b Binding) GoString() string {
	return fmt.Sprintf("Binding{Key: %q, Modifiers: %s}", b.Key, b.Modifiers.String())
}

// Matches returns true if the input triggers the binding string.
func Matches(in Input, spec string) bool {
	return Parse(spec).Equals(in)
}

// MatchesAny returns true if the input triggers any of the binding strings.
func MatchesAny(in Input, specs ...string) bool {
	for _, spec := range specs {
		if Matches(in, spec) {
			return true
		}
	}
	return false
}
