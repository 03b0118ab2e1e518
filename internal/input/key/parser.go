package key

import (
	"errors"
	"fmt"
	"strings"
)

// Separator joins modifiers and the key in a binding string.
const Separator = "+"

// Validation errors
var (
	ErrEmptySpec    = errors.New("empty key binding")
	ErrModifierOnly = errors.New("key binding has no key, only modifiers")
)

// Parse parses a binding string like "Shift+J" or "ctrl+alt+ArrowLeft".
//
// Every token but the last names a modifier; unrecognized modifier names are
// ignored. The last token is the key identifier. When Shift is present and the
// key is a single ASCII letter it is upper-cased, which is how platforms
// report shifted letters.
//
// Parse never fails. Use Validate to reject empty or modifier-only bindings.
func Parse(spec string) Binding {
	parts := strings.Split(spec, Separator)

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mods = mods.With(ModifierFromName(p))
	}

	keyPart := parts[len(parts)-1]
	if mods.HasShift() && isASCIILetter(keyPart) {
		keyPart = strings.ToUpper(keyPart)
	}

	return Binding{Key: keyPart, Modifiers: mods}
}

// Format formats an input as a binding string in canonical modifier order
// (Ctrl, Alt, Shift, Meta) followed by the key identifier.
func Format(in Input) string {
	parts := ModifiersOf(in).names()
	parts = append(parts, in.KeyName())
	return strings.Join(parts, Separator)
}

// Validate checks that spec ends with a non-modifier key.
func Validate(spec string) error {
	if spec == "" {
		return ErrEmptySpec
	}
	parts := strings.Split(spec, Separator)
	last := parts[len(parts)-1]
	if last == "" {
		return fmt.Errorf("%w: %q", ErrEmptySpec, spec)
	}
	if IsModifierName(last) {
		return fmt.Errorf("%w: %q", ErrModifierOnly, spec)
	}
	return nil
}

// IsValid returns true if spec is a usable binding string.
func IsValid(spec string) bool {
	return Validate(spec) == nil
}

// MustParse parses a binding string and panics if it is not valid.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Binding {
	if err := Validate(spec); err != nil {
		panic("invalid key binding: " + spec + ": " + err.Error())
	}
	return Parse(spec)
}

func isASCIILetter(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
