package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Cvaniak/NoteSH/drawable"
	"github.com/Cvaniak/NoteSH/render"
)

// editChange reports which field a key modified
type editChange uint8

const (
	changeNone editChange = iota
	changeTitle
	changeBody
)

// editState is the sidebar editor bound to one drawable
// The body is a list of lines, joined with the body separator when written back
type editState struct {
	id       drawable.ID
	field    render.EditorField
	hasTitle bool
	title    []rune
	titleCol int
	lines    [][]rune
	row, col int
}

func newEditState(v drawable.View) *editState {
	e := &editState{id: v.ID, hasTitle: v.HasTitle, field: render.FieldBody}
	for _, l := range v.BodyLines() {
		e.lines = append(e.lines, []rune(l))
	}
	if len(e.lines) == 0 {
		e.lines = [][]rune{{}}
	}
	if e.hasTitle {
		e.field = render.FieldTitle
		e.title = []rune(v.Title)
		e.titleCol = len(e.title)
	}
	e.col = len(e.lines[0])
	return e
}

// Title returns the title field text
func (e *editState) Title() string { return string(e.title) }

// Lines returns the body lines
func (e *editState) Lines() []string {
	out := make([]string, len(e.lines))
	for i, l := range e.lines {
		out[i] = string(l)
	}
	return out
}

// handleKey applies an editing key, handled is false for keys the editor ignores
func (e *editState) handleKey(ev *tcell.EventKey) (change editChange, handled bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return changeNone, false
		}
		return e.insert(ev.Rune()), true
	case tcell.KeyEnter:
		return e.newline(), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return e.backspace(), true
	case tcell.KeyDelete:
		return e.deleteForward(), true
	case tcell.KeyTab, tcell.KeyBacktab:
		e.toggleField()
		return changeNone, true
	case tcell.KeyLeft:
		e.moveCol(-1)
	case tcell.KeyRight:
		e.moveCol(1)
	case tcell.KeyUp:
		e.moveRow(-1)
	case tcell.KeyDown:
		e.moveRow(1)
	case tcell.KeyHome:
		e.setCol(0)
	case tcell.KeyEnd:
		e.setCol(len(e.current()))
	default:
		return changeNone, false
	}
	return changeNone, true
}

// current returns the line under the cursor
func (e *editState) current() []rune {
	if e.field == render.FieldTitle {
		return e.title
	}
	return e.lines[e.row]
}

func (e *editState) cursor() int {
	if e.field == render.FieldTitle {
		return e.titleCol
	}
	return e.col
}

func (e *editState) setCol(col int) {
	col = max(0, min(col, len(e.current())))
	if e.field == render.FieldTitle {
		e.titleCol = col
		return
	}
	e.col = col
}

func (e *editState) moveCol(step int) {
	e.setCol(e.cursor() + step)
}

// moveRow walks body lines; the title has a single line
func (e *editState) moveRow(step int) {
	if e.field == render.FieldTitle {
		return
	}
	e.row = max(0, min(e.row+step, len(e.lines)-1))
	e.setCol(e.col)
}

func (e *editState) toggleField() {
	if !e.hasTitle {
		return
	}
	if e.field == render.FieldTitle {
		e.field = render.FieldBody
		return
	}
	e.field = render.FieldTitle
}

func (e *editState) insert(r rune) editChange {
	if e.field == render.FieldTitle {
		e.title = insertRune(e.title, e.titleCol, r)
		e.titleCol++
		return changeTitle
	}
	e.lines[e.row] = insertRune(e.lines[e.row], e.col, r)
	e.col++
	return changeBody
}

// newline splits the body line at the cursor; in the title it moves to the body
func (e *editState) newline() editChange {
	if e.field == render.FieldTitle {
		e.field = render.FieldBody
		return changeNone
	}
	line := e.lines[e.row]
	head := append([]rune(nil), line[:e.col]...)
	tail := append([]rune(nil), line[e.col:]...)

	lines := make([][]rune, 0, len(e.lines)+1)
	lines = append(lines, e.lines[:e.row]...)
	lines = append(lines, head, tail)
	lines = append(lines, e.lines[e.row+1:]...)
	e.lines = lines
	e.row++
	e.col = 0
	return changeBody
}

// backspace deletes left; at the start of a body line it joins with the line above
func (e *editState) backspace() editChange {
	if e.field == render.FieldTitle {
		if e.titleCol == 0 {
			return changeNone
		}
		e.title = append(e.title[:e.titleCol-1], e.title[e.titleCol:]...)
		e.titleCol--
		return changeTitle
	}
	if e.col > 0 {
		line := e.lines[e.row]
		e.lines[e.row] = append(line[:e.col-1], line[e.col:]...)
		e.col--
		return changeBody
	}
	if e.row == 0 {
		return changeNone
	}
	prev := e.lines[e.row-1]
	e.col = len(prev)
	e.lines[e.row-1] = append(prev, e.lines[e.row]...)
	e.lines = append(e.lines[:e.row], e.lines[e.row+1:]...)
	e.row--
	return changeBody
}

// deleteForward deletes right; at the end of a body line it pulls up the next one
func (e *editState) deleteForward() editChange {
	if e.field == render.FieldTitle {
		if e.titleCol >= len(e.title) {
			return changeNone
		}
		e.title = append(e.title[:e.titleCol], e.title[e.titleCol+1:]...)
		return changeTitle
	}
	line := e.lines[e.row]
	if e.col < len(line) {
		e.lines[e.row] = append(line[:e.col], line[e.col+1:]...)
		return changeBody
	}
	if e.row+1 >= len(e.lines) {
		return changeNone
	}
	e.lines[e.row] = append(line, e.lines[e.row+1]...)
	e.lines = append(e.lines[:e.row+1], e.lines[e.row+2:]...)
	return changeBody
}

func insertRune(line []rune, at int, r rune) []rune {
	out := make([]rune, 0, len(line)+1)
	out = append(out, line[:at]...)
	out = append(out, r)
	return append(out, line[at:]...)
}

// panel builds the render state, v is the drawable being edited
func (e *editState) panel(v drawable.View, target drawable.ColorTarget) *render.Editor {
	p := &render.Editor{
		Kind:        v.Kind,
		HasTitle:    e.hasTitle,
		Title:       string(e.title),
		Lines:       e.Lines(),
		Field:       e.field,
		Row:         e.row,
		Col:         e.cursor(),
		Target:      target,
		Color:       v.Color,
		HasBorder:   v.HasBorder,
		BorderColor: v.BorderColor,
		BorderStyle: v.BorderStyle,
	}
	return p
}
