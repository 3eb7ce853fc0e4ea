// Package viewport sizes the canvas: initial bounds for a loaded document and
// chunked growth as entities reach its edges
package viewport

import "github.com/Cvaniak/NoteSH/core"

// Growth granularity in cells
const (
	ChunkWidth  = 20
	ChunkHeight = 5
)

// DefaultMax is the far corner of a blank canvas
var DefaultMax = core.Offset{X: 50, Y: 20}

// Edge is a bit set of canvas edges
type Edge uint8

const (
	EdgeRight Edge = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeTop

	EdgeNone Edge = 0
	EdgeAll       = EdgeRight | EdgeBottom | EdgeLeft | EdgeTop
)

// Has reports whether every edge in o is set in e
func (e Edge) Has(o Edge) bool { return e&o == o && o != 0 }

func (e Edge) String() string {
	if e == EdgeNone {
		return "none"
	}
	out := ""
	for _, n := range []struct {
		e    Edge
		name string
	}{{EdgeRight, "right"}, {EdgeBottom, "bottom"}, {EdgeLeft, "left"}, {EdgeTop, "top"}} {
		if e&n.e != 0 {
			if out != "" {
				out += "|"
			}
			out += n.name
		}
	}
	return out
}

// MoveEdges returns the edges an entity travels toward when moved by delta
func MoveEdges(delta core.Offset) Edge {
	var e Edge
	switch {
	case delta.X > 0:
		e |= EdgeRight
	case delta.X < 0:
		e |= EdgeLeft
	}
	switch {
	case delta.Y > 0:
		e |= EdgeBottom
	case delta.Y < 0:
		e |= EdgeTop
	}
	return e
}

// ResizeEdges returns the edges an entity extends toward when resized by delta
// Resizing anchors the top-left corner so only trailing edges can advance
func ResizeEdges(delta core.Size) Edge {
	var e Edge
	if delta.Width > 0 {
		e |= EdgeRight
	}
	if delta.Height > 0 {
		e |= EdgeBottom
	}
	return e
}

// Growth is the outcome of a single growth check
type Growth struct {
	Size   core.Size   // Canvas size after growth
	Offset core.Offset // Canvas offset after growth
	Shift  core.Offset // Added to every entity position
	Edges  Edge        // Edges that grew
}

// Grew reports whether any edge fired
func (g Growth) Grew() bool { return g.Edges != EdgeNone }

// InitialBounds scans stored entity extents
// min is the raw top-left minimum, max the bottom-right maximum raised to DefaultMax
func InitialBounds(extents []core.Region) (min, max core.Offset) {
	if len(extents) == 0 {
		return core.Offset{}, DefaultMax
	}

	min = extents[0].Origin()
	max = core.Offset{X: extents[0].Right(), Y: extents[0].Bottom()}
	for _, r := range extents[1:] {
		if r.X < min.X {
			min.X = r.X
		}
		if r.Y < min.Y {
			min.Y = r.Y
		}
		if r.Right() > max.X {
			max.X = r.Right()
		}
		if r.Bottom() > max.Y {
			max.Y = r.Bottom()
		}
	}

	if max.X < DefaultMax.X {
		max.X = DefaultMax.X
	}
	if max.Y < DefaultMax.Y {
		max.Y = DefaultMax.Y
	}
	return min, max
}

// CanvasDimensions quantizes the span between min and max to whole chunks plus one spare chunk
func CanvasDimensions(min, max core.Offset) core.Size {
	return core.Size{
		Width:  quantize(max.X-min.X, ChunkWidth),
		Height: quantize(max.Y-min.Y, ChunkHeight),
	}
}

func quantize(span, chunk int) int {
	if span < 0 {
		span = 0
	}
	return (span+1)/chunk*chunk + chunk
}

// CenteringOffset places canvas in the middle of screen
// Integer division truncates toward zero
func CenteringOffset(screen, canvas core.Size) core.Offset {
	return core.Offset{
		X: (screen.Width - canvas.Width) / 2,
		Y: (screen.Height - canvas.Height) / 2,
	}
}

// GrowIfNeeded checks entity against container on each edge in toward
// entity and container must share a coordinate space
// Trailing edges (right, bottom) only enlarge the canvas. Leading edges also
// move the offset back one chunk and shift every entity forward by one chunk
func GrowIfNeeded(size core.Size, offset core.Offset, entity, container core.Region, toward Edge) Growth {
	g := Growth{Size: size, Offset: offset}

	if toward&EdgeRight != 0 && entity.Right() >= container.Right() {
		g.Size.Width += ChunkWidth
		g.Edges |= EdgeRight
	}
	if toward&EdgeBottom != 0 && entity.Bottom() >= container.Bottom() {
		g.Size.Height += ChunkHeight
		g.Edges |= EdgeBottom
	}
	if toward&EdgeLeft != 0 && entity.X <= container.X {
		g.Size.Width += ChunkWidth
		g.Offset.X -= ChunkWidth
		g.Shift.X += ChunkWidth
		g.Edges |= EdgeLeft
	}
	if toward&EdgeTop != 0 && entity.Y <= container.Y {
		g.Size.Height += ChunkHeight
		g.Offset.Y -= ChunkHeight
		g.Shift.Y += ChunkHeight
		g.Edges |= EdgeTop
	}
	return g
}
