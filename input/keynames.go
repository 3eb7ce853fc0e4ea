package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// KeySpec is a normalized key press
// Printable keys use KeyRune with the shifted rune, control letters use tcell's KeyCtrlX codes
type KeySpec struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Rune aliases for keys that are awkward as bare characters
var runeAliases = map[string]rune{
	"space":     ' ',
	"plus":      '+',
	"minus":     '-',
	"comma":     ',',
	"period":    '.',
	"slash":     '/',
	"backslash": '\\',
}

var namedKeys = map[string]tcell.Key{
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"enter":     tcell.KeyEnter,
	"escape":    tcell.KeyEscape,
	"esc":       tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"delete":    tcell.KeyDelete,
	"backspace": tcell.KeyBackspace,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pageup":    tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"pagedown":  tcell.KeyPgDn,
	"insert":    tcell.KeyInsert,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

// ParseKey parses a key name such as "k", "K", "ctrl+a", "shift+up", "alt+x" or "f1"
func ParseKey(name string) (KeySpec, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return KeySpec{}, fmt.Errorf("empty key name")
	}
	// A lone "+" is a character, not a separator
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return KeySpec{Key: tcell.KeyRune, Rune: r}, nil
	}

	var mod tcell.ModMask
	base := s
	for {
		prefix, rest, ok := strings.Cut(base, "+")
		if !ok || rest == "" {
			break
		}
		switch strings.ToLower(prefix) {
		case "ctrl":
			mod |= tcell.ModCtrl
		case "shift":
			mod |= tcell.ModShift
		case "alt", "meta":
			mod |= tcell.ModAlt
		default:
			return KeySpec{}, fmt.Errorf("unknown modifier %q in %q", prefix, name)
		}
		base = rest
	}

	// Single character with modifiers
	if utf8.RuneCountInString(base) == 1 {
		r, _ := utf8.DecodeRuneInString(base)
		return runeKey(r, mod, name)
	}

	lower := strings.ToLower(base)
	if r, ok := runeAliases[lower]; ok {
		return runeKey(r, mod, name)
	}
	k, ok := namedKeys[lower]
	if !ok {
		return KeySpec{}, fmt.Errorf("unknown key name %q", name)
	}
	if k == tcell.KeyTab && mod == tcell.ModShift {
		return KeySpec{Key: tcell.KeyBacktab}, nil
	}
	return KeySpec{Key: k, Mod: mod}, nil
}

func runeKey(r rune, mod tcell.ModMask, name string) (KeySpec, error) {
	if mod&tcell.ModCtrl != 0 {
		if mod != tcell.ModCtrl {
			return KeySpec{}, fmt.Errorf("unsupported modifier combination in %q", name)
		}
		lower := r | 0x20
		if lower < 'a' || lower > 'z' {
			return KeySpec{}, fmt.Errorf("ctrl only combines with letters in %q", name)
		}
		return KeySpec{Key: tcell.KeyCtrlA + tcell.Key(lower-'a')}, nil
	}
	if mod&tcell.ModShift != 0 {
		r = toUpper(r)
		mod &^= tcell.ModShift
	}
	return KeySpec{Key: tcell.KeyRune, Rune: r, Mod: mod}, nil
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 0x20
	}
	return r
}

// KeyOf normalizes a terminal key event so it compares equal to a parsed KeySpec
func KeyOf(ev *tcell.EventKey) KeySpec {
	k := ev.Key()
	mod := ev.Modifiers() & (tcell.ModCtrl | tcell.ModShift | tcell.ModAlt)
	switch {
	case k == tcell.KeyRune:
		// Shift is already folded into the rune
		return KeySpec{Key: tcell.KeyRune, Rune: ev.Rune(), Mod: mod &^ tcell.ModShift}
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return KeySpec{Key: k}
	case k == tcell.KeyBacktab:
		return KeySpec{Key: k}
	}
	return KeySpec{Key: k, Mod: mod}
}

// String renders the spec the way ParseKey accepts it
func (k KeySpec) String() string {
	var prefix string
	if k.Mod&tcell.ModCtrl != 0 {
		prefix += "ctrl+"
	}
	if k.Mod&tcell.ModAlt != 0 {
		prefix += "alt+"
	}
	if k.Mod&tcell.ModShift != 0 {
		prefix += "shift+"
	}

	switch {
	case k.Key == tcell.KeyRune:
		if k.Rune == ' ' {
			return prefix + "space"
		}
		return prefix + string(k.Rune)
	case k.Key >= tcell.KeyCtrlA && k.Key <= tcell.KeyCtrlZ && k.Key != tcell.KeyTab &&
		k.Key != tcell.KeyEnter && k.Key != tcell.KeyBackspace:
		return "ctrl+" + string(rune('a'+(k.Key-tcell.KeyCtrlA)))
	}
	for name, key := range canonicalNames {
		if key == k.Key {
			return prefix + name
		}
	}
	return prefix + fmt.Sprintf("key(%d)", k.Key)
}

// canonicalNames drops the aliases of namedKeys so String is deterministic
var canonicalNames = func() map[string]tcell.Key {
	skip := map[string]bool{"esc": true, "pageup": true, "pagedown": true}
	out := make(map[string]tcell.Key, len(namedKeys))
	for name, k := range namedKeys {
		if !skip[name] {
			out[name] = k
		}
	}
	return out
}()
