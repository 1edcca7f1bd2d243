// Package keys parses user-configurable key specifications such as "d",
// "Space", "Ctrl+R" or "F5" into tcell values and matches them against
// key events.
package keys

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

var namedKeys = map[string]tcell.Key{
	"TAB":       tcell.KeyTab,
	"BACKTAB":   tcell.KeyBacktab,
	"ENTER":     tcell.KeyEnter,
	"RETURN":    tcell.KeyEnter,
	"ESC":       tcell.KeyEsc,
	"ESCAPE":    tcell.KeyEsc,
	"UP":        tcell.KeyUp,
	"DOWN":      tcell.KeyDown,
	"LEFT":      tcell.KeyLeft,
	"RIGHT":     tcell.KeyRight,
	"HOME":      tcell.KeyHome,
	"END":       tcell.KeyEnd,
	"PGUP":      tcell.KeyPgUp,
	"PGDN":      tcell.KeyPgDn,
	"DELETE":    tcell.KeyDelete,
	"DEL":       tcell.KeyDelete,
	"BACKSPACE": tcell.KeyBackspace2,
}

var keyNames = map[tcell.Key]string{
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "Backtab",
	tcell.KeyEnter:      "Enter",
	tcell.KeyEsc:        "Esc",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PgUp",
	tcell.KeyPgDn:       "PgDn",
	tcell.KeyDelete:     "Delete",
	tcell.KeyBackspace2: "Backspace",
}

// Parse converts a key specification to tcell values. It returns the key,
// the rune for KeyRune keys, and the modifier mask.
func Parse(spec string) (tcell.Key, rune, tcell.ModMask, error) {
	if strings.TrimSpace(spec) == "" {
		return 0, 0, 0, fmt.Errorf("empty key specification")
	}

	// A literal "+" binding has no modifier segments.
	if spec == "+" {
		return tcell.KeyRune, '+', 0, nil
	}

	parts := strings.Split(spec, "+")
	base := strings.TrimSpace(parts[len(parts)-1])
	if base == "" {
		return 0, 0, 0, fmt.Errorf("missing key in %q", spec)
	}

	var mods tcell.ModMask
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "control":
			mods |= tcell.ModCtrl
		case "alt", "opt", "option":
			mods |= tcell.ModAlt
		case "shift":
			mods |= tcell.ModShift
		case "meta", "win", "cmd", "super":
			mods |= tcell.ModMeta
		default:
			return 0, 0, 0, fmt.Errorf("unknown modifier %q", p)
		}
	}

	upper := strings.ToUpper(base)
	if upper == "SPACE" {
		return tcell.KeyRune, ' ', mods &^ tcell.ModShift, nil
	}

	if key, ok := namedKeys[upper]; ok {
		if key == tcell.KeyTab && mods&tcell.ModShift != 0 {
			return tcell.KeyBacktab, 0, mods &^ tcell.ModShift, nil
		}

		return key, 0, mods, nil
	}

	if strings.HasPrefix(upper, "F") && len(upper) > 1 {
		if n, err := strconv.Atoi(upper[1:]); err == nil {
			if n < 1 || n > 12 {
				return 0, 0, 0, fmt.Errorf("function key out of range: %q", base)
			}

			return tcell.KeyF1 + tcell.Key(n-1), 0, mods, nil
		}
	}

	runes := []rune(base)
	if len(runes) != 1 {
		return 0, 0, 0, fmt.Errorf("unknown key %q", base)
	}

	// Terminals do not report Shift reliably for printable keys, so rune
	// bindings match case-insensitively without it.
	return tcell.KeyRune, unicode.ToLower(runes[0]), mods &^ tcell.ModShift, nil
}

// Validate returns an error if the key specification is not recognized.
func Validate(spec string) error {
	_, _, _, err := Parse(spec)
	return err
}

// CanonicalID returns a unique identifier for a parsed key combination.
func CanonicalID(key tcell.Key, r rune, mod tcell.ModMask) string {
	if key == tcell.KeyRune {
		r = unicode.ToLower(r)
		mod &^= tcell.ModShift
	}

	return fmt.Sprintf("%d:%d:%d", key, r, mod)
}

// IsReserved reports whether the combination is kept for navigation or
// terminal control and cannot be rebound.
func IsReserved(key tcell.Key, r rune, mod tcell.ModMask) bool {
	if mod == 0 {
		switch key {
		case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight,
			tcell.KeyEsc, tcell.KeyEnter, tcell.KeyTab, tcell.KeyBacktab,
			tcell.KeyBackspace, tcell.KeyBackspace2:
			return true
		case tcell.KeyRune:
			switch unicode.ToLower(r) {
			case 'h', 'j', 'k', 'l', 'q':
				return true
			}
		}
	}

	if mod == tcell.ModCtrl && key == tcell.KeyRune {
		switch unicode.ToLower(r) {
		case 'c', 'z':
			return true
		}
	}

	return false
}

// NormalizeEvent converts an event into a canonical (key, rune, mod)
// triple. Ctrl+letter control codes become KeyRune with the letter, and
// Shift+Tab becomes Backtab.
func NormalizeEvent(ev *tcell.EventKey) (tcell.Key, rune, tcell.ModMask) {
	key, r, mod := ev.Key(), ev.Rune(), ev.Modifiers()

	switch {
	case key == tcell.KeyTab && mod&tcell.ModShift != 0:
		return tcell.KeyBacktab, 0, mod &^ tcell.ModShift
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ && mod&tcell.ModCtrl != 0:
		return tcell.KeyRune, 'a' + rune(key-tcell.KeyCtrlA), mod
	case key == tcell.KeyRune:
		return key, unicode.ToLower(r), mod &^ tcell.ModShift
	}

	return key, r, mod
}

// Binding is a parsed key specification.
type Binding struct {
	Spec string
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// NewBinding parses spec into a Binding.
func NewBinding(spec string) (Binding, error) {
	key, r, mod, err := Parse(spec)
	if err != nil {
		return Binding{}, err
	}

	return Binding{Spec: spec, Key: key, Rune: r, Mod: mod}, nil
}

// MustBinding is like NewBinding but panics on an invalid spec. It is for
// built-in defaults.
func MustBinding(spec string) Binding {
	b, err := NewBinding(spec)
	if err != nil {
		panic(err)
	}

	return b
}

// Matches reports whether ev triggers the binding.
func (b Binding) Matches(ev *tcell.EventKey) bool {
	if ev == nil {
		return false
	}

	key, r, mod := NormalizeEvent(ev)
	if key != b.Key || mod != b.Mod {
		return false
	}

	return key != tcell.KeyRune || r == b.Rune
}

// ID returns the canonical identifier of the binding.
func (b Binding) ID() string {
	return CanonicalID(b.Key, b.Rune, b.Mod)
}

// Label renders the binding for key hints, e.g. "Ctrl+R", "Space", "F5".
func (b Binding) Label() string {
	var sb strings.Builder

	for _, m := range []struct {
		mask tcell.ModMask
		name string
	}{
		{tcell.ModCtrl, "Ctrl+"},
		{tcell.ModAlt, "Alt+"},
		{tcell.ModMeta, "Meta+"},
		{tcell.ModShift, "Shift+"},
	} {
		if b.Mod&m.mask != 0 {
			sb.WriteString(m.name)
		}
	}

	switch {
	case b.Key == tcell.KeyRune && b.Rune == ' ':
		sb.WriteString("Space")
	case b.Key == tcell.KeyRune:
		sb.WriteRune(b.Rune)
	case b.Key >= tcell.KeyF1 && b.Key <= tcell.KeyF12:
		sb.WriteString("F" + strconv.Itoa(int(b.Key-tcell.KeyF1)+1))
	default:
		if name, ok := keyNames[b.Key]; ok {
			sb.WriteString(name)
		} else {
			sb.WriteString(b.Spec)
		}
	}

	return sb.String()
}
