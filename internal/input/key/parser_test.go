package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec    string
		wantKey string
		wantMod Modifier
	}{
		{"J", "J", ModNone},
		{"j", "j", ModNone},
		{"Shift+J", "J", ModShift},
		{"Shift+L", "L", ModShift},
		{"Shift+j", "J", ModShift},
		{"shift+J", "J", ModShift},
		{"Ctrl+Shift+K", "K", ModCtrl | ModShift},
		{"Control+K", "K", ModCtrl},
		{"Cmd+K", "K", ModMeta},
		{"Command+k", "k", ModMeta},
		{"Alt+ArrowLeft", "ArrowLeft", ModAlt},
		{"Shift+ArrowLeft", "ArrowLeft", ModShift},
		{"Shift+1", "1", ModShift},
		{"Hyper+x", "x", ModNone},
		{"Meta+Alt+Shift+Ctrl+z", "Z", ModCtrl | ModAlt | ModShift | ModMeta},
		{"F5", "F5", ModNone},
		{"", "", ModNone},
	}

	for _, tt := range tests {
		b := Parse(tt.spec)
		if b.Key != tt.wantKey {
			t.Errorf("Parse(%q) key = %q, want %q", tt.spec, b.Key, tt.wantKey)
		}
		if b.Modifiers != tt.wantMod {
			t.Errorf("Parse(%q) modifiers = %v, want %v", tt.spec, b.Modifiers, tt.wantMod)
		}
	}
}

func TestParseShiftNormalization(t *testing.T) {
	if Parse("Shift+j") != Parse("Shift+J") {
		t.Errorf("Parse(%q) = %#v, want %#v", "Shift+j", Parse("Shift+j"), Parse("Shift+J"))
	}
	if Parse("shift+j") != Parse("Shift+J") {
		t.Errorf("Parse(%q) = %#v, want %#v", "shift+j", Parse("shift+j"), Parse("Shift+J"))
	}
	// Only single letters are normalized.
	if got := Parse("Shift+arrowleft").Key; got != "arrowleft" {
		t.Errorf("Parse(%q).Key = %q, want unchanged", "Shift+arrowleft", got)
	}
	// Without Shift the case is preserved.
	if Parse("j") == Parse("J") {
		t.Error("Parse(\"j\") should differ from Parse(\"J\")")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Event{Key: "j"}, "j"},
		{Event{Key: "J", Shift: true}, "Shift+J"},
		{Event{Key: "K", Ctrl: true, Shift: true}, "Ctrl+Shift+K"},
		{Event{Key: "j", Alt: true}, "Alt+j"},
		{Event{Key: "k", Meta: true}, "Meta+k"},
		{Event{Key: "x", Ctrl: true, Alt: true, Shift: true, Meta: true}, "Ctrl+Alt+Shift+Meta+x"},
		{Event{Key: "ArrowLeft", Shift: true}, "Shift+ArrowLeft"},
	}

	for _, tt := range tests {
		if got := Format(tt.event); got != tt.want {
			t.Errorf("Format(%+v) = %q, want %q", tt.event, got, tt.want)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	tests := []struct {
		spec      string
		canonical string
	}{
		{"j", "j"},
		{"Shift+J", "Shift+J"},
		{"Shift+Ctrl+K", "Ctrl+Shift+K"},
		{"meta+alt+ArrowRight", "Alt+Meta+ArrowRight"},
		{"Cmd+Control+Shift+Alt+F5", "Ctrl+Alt+Shift+Meta+F5"},
		{"shift+l", "Shift+L"},
	}

	for _, tt := range tests {
		got := Format(Parse(tt.spec).Event())
		if got != tt.canonical {
			t.Errorf("Format(Parse(%q)) = %q, want %q", tt.spec, got, tt.canonical)
		}
		if again := Format(Parse(got)); again != got {
			t.Errorf("Format(Parse(%q)) = %q, want idempotent", got, again)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr error
	}{
		{"j", nil},
		{"Shift+J", nil},
		{"ArrowLeft", nil},
		{"F5", nil},
		{"Ctrl+Shift+K", nil},
		{"MediaPlayPause", nil},
		{"", ErrEmptySpec},
		{"Ctrl+", ErrEmptySpec},
		{"Shift", ErrModifierOnly},
		{"Control", ErrModifierOnly},
		{"Ctrl+Shift", ErrModifierOnly},
		{"alt+COMMAND", ErrModifierOnly},
	}

	for _, tt := range tests {
		err := Validate(tt.spec)
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("Validate(%q) error = %v, want nil", tt.spec, err)
			}
			if !IsValid(tt.spec) {
				t.Errorf("IsValid(%q) = false, want true", tt.spec)
			}
			continue
		}
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Validate(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
		}
		if IsValid(tt.spec) {
			t.Errorf("IsValid(%q) = true, want false", tt.spec)
		}
	}
}

func TestMustParse(t *testing.T) {
	if got := MustParse("Shift+ArrowRight"); got.Key != "ArrowRight" || got.Modifiers != ModShift {
		t.Errorf("MustParse() = %#v", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustParse(\"Shift\") should panic")
		}
	}()
	MustParse("Shift")
}
