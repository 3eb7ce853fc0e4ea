package input

import (
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Section groups bindings the way the keymap file does
type Section string

const (
	SectionDefault Section = "default"
	SectionMove    Section = "moving_drawables"
	SectionBring   Section = "bring_drawable"
	SectionResize  Section = "resize_drawable"
	SectionNormal  Section = "normal"
	SectionColor   Section = "color"
)

type sectionDef struct {
	section Section
	prefix  string // Prepended to short action names
}

// sectionDefs lists sections in display order
var sectionDefs = []sectionDef{
	{SectionDefault, ""},
	{SectionNormal, ""},
	{SectionMove, "move_"},
	{SectionBring, "bring_"},
	{SectionResize, "resize_"},
	{SectionColor, ""},
}

// Binding ties one action to its keys
type Binding struct {
	Action      string
	Section     Section
	Intent      Intent
	Keys        []KeySpec
	Description string
	// Show marks bindings listed in the footer
	Show bool

	override bool
}

// KeyTable maps keys to intents
type KeyTable struct {
	bindings map[string]Binding // By action name
	index    map[KeySpec]string
}

// NewKeyTable returns an empty table
func NewKeyTable() *KeyTable {
	return &KeyTable{
		bindings: make(map[string]Binding),
		index:    make(map[KeySpec]string),
	}
}

// defaultBindings is the built-in keymap in file form
var defaultBindings = []struct {
	section Section
	action  string
	keys    string
}{
	{SectionDefault, "quit", "ctrl+q"},
	{SectionDefault, "save", "ctrl+s"},
	{SectionDefault, "reload", "ctrl+r"},
	{SectionDefault, "add_note", "ctrl+a"},
	{SectionDefault, "add_box", "ctrl+x"},
	{SectionDefault, "add_drawable", "ctrl+d"},
	{SectionDefault, "edit", "ctrl+e"},
	{SectionDefault, "background_next", "ctrl+b"},
	{SectionDefault, "toggle_help", "f1"},

	{SectionNormal, "delete", "delete"},
	{SectionNormal, "unfocus", "escape"},
	{SectionNormal, "focus_next", "tab"},
	{SectionNormal, "focus_prev", "backtab"},
	{SectionNormal, "cycle_border", "o"},

	{SectionMove, "move_up", "up,k"},
	{SectionMove, "move_down", "down,j"},
	{SectionMove, "move_left", "left,h"},
	{SectionMove, "move_right", "right,l"},
	{SectionMove, "move_up_5", "shift+up,K"},
	{SectionMove, "move_down_5", "shift+down,J"},
	{SectionMove, "move_left_5", "shift+left,H"},
	{SectionMove, "move_right_5", "shift+right,L"},

	{SectionBring, "bring_forward", "plus,="},
	{SectionBring, "bring_backward", "minus,_"},

	{SectionResize, "resize_h_plus", "ctrl+right,]"},
	{SectionResize, "resize_h_minus", "ctrl+left,["},
	{SectionResize, "resize_v_plus", "ctrl+down,}"},
	{SectionResize, "resize_v_minus", "ctrl+up,{"},

	{SectionColor, "color_target", "c"},
	{SectionColor, "nudge_r_up", "r"},
	{SectionColor, "nudge_r_down", "R"},
	{SectionColor, "nudge_g_up", "g"},
	{SectionColor, "nudge_g_down", "G"},
	{SectionColor, "nudge_b_up", "b"},
	{SectionColor, "nudge_b_down", "B"},
	{SectionColor, "random_color", "x"},
}

// DefaultKeyTable returns the built-in key bindings
func DefaultKeyTable() *KeyTable {
	kt := NewKeyTable()
	for _, d := range defaultBindings {
		a, ok := lookupAction(d.action)
		if !ok {
			panic("input: default binding for unknown action " + d.action)
		}
		keys, err := parseKeyList(d.keys)
		if err != nil {
			panic("input: default binding " + d.action + ": " + err.Error())
		}
		kt.bindings[d.action] = Binding{
			Action:      d.action,
			Section:     d.section,
			Intent:      a.intent,
			Keys:        keys,
			Description: a.label,
			Show:        d.section == SectionDefault,
		}
	}
	kt.reindex()
	return kt
}

// parseKeyList splits a comma separated list of key names
// A bare "," is the comma key
func parseKeyList(s string) ([]KeySpec, error) {
	var names []string
	if strings.TrimSpace(s) == "," {
		names = []string{","}
	} else {
		names = strings.Split(s, ",")
	}
	keys := make([]KeySpec, 0, len(names))
	for _, n := range names {
		k, err := ParseKey(n)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// reindex rebuilds the key lookup
// Overridden bindings claim their keys last so they win conflicts
func (kt *KeyTable) reindex() {
	kt.index = make(map[KeySpec]string, len(kt.bindings))
	actions := make([]string, 0, len(kt.bindings))
	for name := range kt.bindings {
		actions = append(actions, name)
	}
	sort.Slice(actions, func(i, j int) bool {
		a, b := kt.bindings[actions[i]], kt.bindings[actions[j]]
		if a.override != b.override {
			return !a.override
		}
		return actions[i] < actions[j]
	})
	for _, name := range actions {
		for _, k := range kt.bindings[name].Keys {
			kt.index[k] = name
		}
	}
}

// Lookup resolves a key event
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (Intent, bool) {
	return kt.LookupKey(KeyOf(ev))
}

// LookupKey resolves a normalized key
func (kt *KeyTable) LookupKey(k KeySpec) (Intent, bool) {
	name, ok := kt.index[k]
	if !ok {
		return Intent{}, false
	}
	return kt.bindings[name].Intent, true
}

// Binding returns the binding of an action
func (kt *KeyTable) Binding(action string) (Binding, bool) {
	b, ok := kt.bindings[action]
	return b, ok
}

// Bindings returns all bindings in section order, then by action name
func (kt *KeyTable) Bindings() []Binding {
	rank := make(map[Section]int, len(sectionDefs))
	for i, d := range sectionDefs {
		rank[d.section] = i
	}
	out := make([]Binding, 0, len(kt.bindings))
	for _, b := range kt.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if rank[out[i].Section] != rank[out[j].Section] {
			return rank[out[i].Section] < rank[out[j].Section]
		}
		return out[i].Action < out[j].Action
	})
	return out
}

// Clone returns a deep copy of the KeyTable
func (kt *KeyTable) Clone() *KeyTable {
	c := NewKeyTable()
	for name, b := range kt.bindings {
		b.Keys = append([]KeySpec(nil), b.Keys...)
		c.bindings[name] = b
	}
	c.reindex()
	return c
}

// Len returns the number of bound actions
func (kt *KeyTable) Len() int { return len(kt.bindings) }
