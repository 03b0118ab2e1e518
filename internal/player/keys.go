package player

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/smartseek/internal/input/key"
)

// shiftedSymbols are the US-layout characters typed with Shift. Terminals
// report them as plain runes, so Shift is inferred the way a browser would
// report it.
const shiftedSymbols = `~!@#$%^&*()_+{}|:"<>?`

// namedKeys maps tcell keys to the key identifiers used in bindings.
var namedKeys = map[tcell.Key]string{
	tcell.KeyLeft:       "ArrowLeft",
	tcell.KeyRight:      "ArrowRight",
	tcell.KeyUp:         "ArrowUp",
	tcell.KeyDown:       "ArrowDown",
	tcell.KeyEnter:      "Enter",
	tcell.KeyEscape:     "Escape",
	tcell.KeyTab:        "Tab",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
}

// KeyEvent converts a tcell key event to a binding input. It returns false
// for keys that have no binding name.
func KeyEvent(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	if k == tcell.KeyRune {
		r := ev.Rune()
		if unicode.IsUpper(r) || strings.ContainsRune(shiftedSymbols, r) {
			mods = mods.With(key.ModShift)
		}
		return key.NewEvent(runeName(r), mods), true
	}

	if k == tcell.KeyBacktab {
		return key.NewEvent("Tab", mods.With(key.ModShift)), true
	}
	if name, ok := namedKeys[k]; ok {
		return key.NewEvent(name, mods), true
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return key.NewEvent("F"+strconv.Itoa(int(k-tcell.KeyF1)+1), mods), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.NewEvent(string(rune('a'+int(k-tcell.KeyCtrlA))), mods.With(key.ModCtrl)), true
	}
	return key.Event{}, false
}

func runeName(r rune) string {
	if r == ' ' {
		return " "
	}
	return string(r)
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
