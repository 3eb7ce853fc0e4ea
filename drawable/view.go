package drawable

import "github.com/Cvaniak/NoteSH/core"

// View is a read-only copy of a drawable handed to the renderer and the editor panel
// It stays valid after the drawable is deleted, it just stops being current
type View struct {
	ID       ID
	Kind     Kind
	Position core.Offset
	Size     core.Size
	Color    Color
	Display  Color // Color with hover highlight applied
	Body     string
	Hovered  bool

	HasBorder     bool
	BorderColor   Color
	BorderDisplay Color
	BorderStyle   BorderStyle

	HasTitle bool
	Title    string
}

// View snapshots the drawable
func (d *Drawable) View() View {
	v := View{
		ID:       d.id,
		Kind:     d.kind,
		Position: d.pos,
		Size:     d.size,
		Color:    d.color,
		Display:  d.DisplayColor(),
		Body:     d.body,
		Hovered:  d.hovered,
	}
	if c, ok := d.BorderColor(); ok {
		v.HasBorder = true
		v.BorderColor = c
		v.BorderDisplay = c
		if d.hovered {
			v.BorderDisplay = c.Highlight()
		}
		v.BorderStyle = d.borderStyle
	}
	if t, ok := d.Title(); ok {
		v.HasTitle = true
		v.Title = t
	}
	return v
}

// Region returns the occupied rectangle in canvas coordinates
func (v View) Region() core.Region {
	return core.RegionOf(v.Position, v.Size)
}

// BodyLines splits the body into editor lines
func (v View) BodyLines() []string {
	return SplitBody(v.Body)
}
