// Package drawable holds the placeable canvas objects: plain panels, bordered boxes and sticky notes
//
// The variants form a closed set tagged by Kind. Variant-specific behaviour is
// looked up in a single dispatch table (registry.go) rather than through
// interfaces, so adding a variant means adding a tag and one table row.
package drawable

import (
	"errors"
	"strings"

	"github.com/Cvaniak/NoteSH/core"
)

// BodySeparator joins body lines in documents, distinct from a bare newline typed inside a line
const BodySeparator = "  \n"

const minDimension = 1

// DefaultSize of a new drawable in cells
var DefaultSize = core.Size{Width: 20, Height: 14}

// ErrUnsupportedField is returned when a variant does not carry the requested property
var ErrUnsupportedField = errors.New("field not supported by drawable kind")

// ColorTarget selects which color ChangeColor updates
type ColorTarget uint8

const (
	TargetBody ColorTarget = iota
	TargetBorder
)

func (t ColorTarget) String() string {
	if t == TargetBorder {
		return "border"
	}
	return "body"
}

// Drawable is one object on the canvas
// Box-only and note-only fields are meaningful only for their kind
type Drawable struct {
	id    ID
	kind  Kind
	pos   core.Offset
	size  core.Size
	color Color
	body  string

	border      Color       // KindBox
	borderStyle BorderStyle // KindBox
	title       string      // KindNote

	// Transient, never persisted
	hovered bool
}

func (d *Drawable) ID() ID                { return d.id }
func (d *Drawable) Kind() Kind            { return d.kind }
func (d *Drawable) Position() core.Offset { return d.pos }
func (d *Drawable) Size() core.Size       { return d.size }
func (d *Drawable) Color() Color          { return d.color }
func (d *Drawable) Body() string          { return d.body }
func (d *Drawable) Hovered() bool         { return d.hovered }

// Region returns the occupied rectangle in canvas coordinates
func (d *Drawable) Region() core.Region {
	return core.RegionOf(d.pos, d.size)
}

// BorderColor returns the border color of a box
func (d *Drawable) BorderColor() (Color, bool) {
	if !d.kind.Has(FieldBorderColor) {
		return Color{}, false
	}
	return d.border, true
}

// BorderStyle returns the border style of a box
func (d *Drawable) BorderStyle() (BorderStyle, bool) {
	if !d.kind.Has(FieldBorderStyle) {
		return BorderOuter, false
	}
	return d.borderStyle, true
}

// Title returns the title of a note
func (d *Drawable) Title() (string, bool) {
	if !d.kind.Has(FieldTitle) {
		return "", false
	}
	return d.title, true
}

// Move translates the drawable by delta
func (d *Drawable) Move(delta core.Offset) {
	d.pos = d.pos.Add(delta)
}

// SetPosition places the drawable at pos
func (d *Drawable) SetPosition(pos core.Offset) {
	d.pos = pos
}

// Resize grows or shrinks the drawable, each dimension stays at least 1
func (d *Drawable) Resize(delta core.Size) {
	d.size = d.size.Grow(delta).Clamp(minDimension)
}

// SetSize replaces the size, clamped to at least 1x1
func (d *Drawable) SetSize(size core.Size) {
	d.size = size.Clamp(minDimension)
}

// ChangeColor sets the body color, or the border color of a box
func (d *Drawable) ChangeColor(target ColorTarget, c Color) error {
	switch target {
	case TargetBorder:
		if !d.kind.Has(FieldBorderColor) {
			return ErrUnsupportedField
		}
		d.border = c
	default:
		d.color = c
	}
	return nil
}

// CycleBorderStyle advances to the next border style
// Returns false for kinds without a border
func (d *Drawable) CycleBorderStyle() bool {
	cycle := shapes[d.kind].cycle
	if cycle == nil {
		return false
	}
	return cycle(d)
}

// SetBody replaces the raw body text
func (d *Drawable) SetBody(text string) {
	d.body = text
}

// SetBodyLines replaces the body with editor lines joined by BodySeparator
func (d *Drawable) SetBodyLines(lines []string) {
	d.body = strings.Join(lines, BodySeparator)
}

// BodyLines splits the body back into editor lines
func (d *Drawable) BodyLines() []string {
	return SplitBody(d.body)
}

// SetTitle sets the title of a note
func (d *Drawable) SetTitle(text string) error {
	if !d.kind.Has(FieldTitle) {
		return ErrUnsupportedField
	}
	d.title = text
	return nil
}

// SetHovered toggles the transient hover highlight
func (d *Drawable) SetHovered(hovered bool) {
	d.hovered = hovered
}

// DisplayColor is the body color as painted, highlighted while hovered
func (d *Drawable) DisplayColor() Color {
	if d.hovered {
		return d.color.Highlight()
	}
	return d.color
}

// Fragment serializes the drawable
func (d *Drawable) Fragment() Fragment {
	f := Fragment{
		Body:  d.body,
		Pos:   [2]int{d.pos.X, d.pos.Y},
		Color: d.color.Hex(),
		Size:  [2]int{d.size.Width, d.size.Height},
		Type:  d.kind.Tag(),
	}
	if encode := shapes[d.kind].encode; encode != nil {
		encode(d, &f)
	}
	return f
}

// SplitBody splits persisted body text into editor lines
func SplitBody(body string) []string {
	return strings.Split(body, BodySeparator)
}
