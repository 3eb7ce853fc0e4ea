package canvas

import (
	"github.com/Cvaniak/NoteSH/core"
	"github.com/Cvaniak/NoteSH/drawable"
)

type dragMode uint8

const (
	dragNone dragMode = iota
	dragMove
	dragResize
	dragPan
)

// dragState is the pointer capture between press and release
type dragState struct {
	mode dragMode
	id   drawable.ID
	last core.Offset // Screen position of the previous pointer event
}

// PointerDown starts a capture at screen point p
// ctrl pans the canvas. Otherwise the top-most drawable under p is focused,
// raised and either moved or resized depending on where it was grabbed
func (s *Scene) PointerDown(p core.Offset, ctrl bool) {
	if ctrl {
		s.drag = dragState{mode: dragPan, last: p}
		return
	}

	id, ok := s.EntityAt(p)
	if !ok {
		s.drag = dragState{}
		s.Focus("")
		return
	}

	mode := dragMove
	if s.onResizeHandle(id, p) {
		mode = dragResize
	}
	s.Focus(id)
	s.BringToFront(id)
	s.drag = dragState{mode: mode, id: id, last: p}
}

// PointerMove applies the displacement since the previous pointer event to the capture
func (s *Scene) PointerMove(p core.Offset) {
	if s.drag.mode == dragNone {
		return
	}
	delta := p.Sub(s.drag.last)
	s.drag.last = p
	if delta.IsZero() {
		return
	}

	switch s.drag.mode {
	case dragMove:
		s.Move(s.drag.id, delta)
	case dragResize:
		s.Resize(s.drag.id, core.Size{Width: delta.X, Height: delta.Y})
	case dragPan:
		s.Pan(delta)
	}
}

// PointerUp releases any capture, whether or not a press was seen
func (s *Scene) PointerUp() {
	s.drag = dragState{}
}

// Dragging reports whether a pointer capture is active
func (s *Scene) Dragging() bool {
	return s.drag.mode != dragNone
}

// Hover marks the top-most drawable under p, clearing the previous mark
func (s *Scene) Hover(p core.Offset) {
	id, _ := s.EntityAt(p)
	if id == s.hovered {
		return
	}
	if d, ok := s.entities[s.hovered]; ok {
		d.SetHovered(false)
	}
	if d, ok := s.entities[id]; ok {
		d.SetHovered(true)
	}
	s.hovered = id
}

// Hovered returns the drawable under the pointer
func (s *Scene) Hovered() (drawable.ID, bool) {
	return s.hovered, s.hovered != ""
}

// onResizeHandle reports whether p is the grab cell in the bottom-right corner
// Notes draw a two cell handle
func (s *Scene) onResizeHandle(id drawable.ID, p core.Offset) bool {
	d := s.entities[id]
	r := d.Region().Translate(s.offset)
	width := 1
	if d.Kind() == drawable.KindNote {
		width = 2
	}
	return p.Y == r.Bottom()-1 && p.X >= r.Right()-width && p.X < r.Right()
}
