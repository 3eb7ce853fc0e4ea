// Package canvas owns the drawables of one document: their z-order, focus,
// pointer capture and the canvas bounds that grow as entities reach the edges
//
// The scene is not safe for concurrent use. All mutation happens on the
// application event loop.
package canvas

import (
	"github.com/rs/zerolog"

	"github.com/Cvaniak/NoteSH/core"
	"github.com/Cvaniak/NoteSH/drawable"
	"github.com/Cvaniak/NoteSH/viewport"
)

// Snapshot is everything the document codec persists
type Snapshot struct {
	Fragments  map[drawable.ID]drawable.Fragment
	Layers     []drawable.ID // Back to front
	Background Background
}

// Scene is the canvas
// entities and order always hold the same ids, order runs back to front
type Scene struct {
	entities map[drawable.ID]*drawable.Drawable
	order    []drawable.ID

	focused drawable.ID
	hovered drawable.ID
	drag    dragState

	size       core.Size
	offset     core.Offset
	background Background

	newID       func() drawable.ID
	subscribers []func(Event)
	log         zerolog.Logger
}

// Option configures a new scene
type Option func(*Scene)

// WithLogger attaches a logger, scenes are silent by default
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scene) { s.log = l.With().Str("component", "canvas").Logger() }
}

// WithBounds sets the initial canvas size and screen offset
func WithBounds(size core.Size, offset core.Offset) Option {
	return func(s *Scene) { s.size, s.offset = size, offset }
}

// WithBackground replaces the default background
func WithBackground(bg Background) Option {
	return func(s *Scene) { s.background = bg }
}

// WithIDGenerator replaces the random id source
func WithIDGenerator(fn func() drawable.ID) Option {
	return func(s *Scene) { s.newID = fn }
}

// New creates an empty scene sized for a blank document
func New(opts ...Option) *Scene {
	s := &Scene{
		entities:   make(map[drawable.ID]*drawable.Drawable),
		size:       viewport.CanvasDimensions(core.Offset{}, viewport.DefaultMax),
		background: DefaultBackground(),
		newID:      drawable.NewID,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// freshID draws ids until one is unused
func (s *Scene) freshID() drawable.ID {
	for {
		id := s.newID()
		if _, taken := s.entities[id]; !taken && id != "" {
			return id
		}
	}
}

// Add creates a drawable with defaults at the front and focuses it
func (s *Scene) Add(kind drawable.Kind) drawable.View {
	d := drawable.New(kind, s.freshID())
	s.insert(d)
	s.log.Debug().Str("id", d.ID().String()).Stringer("kind", kind).Msg("entity added")
	s.emit(Event{Type: EventAdded, ID: d.ID()})
	s.Focus(d.ID())
	return d.View()
}

// AddFromFragment decodes a persisted drawable, places it at the front and focuses it
// An empty id gets a fresh one, an existing id is replaced
func (s *Scene) AddFromFragment(f drawable.Fragment, id drawable.ID, correction core.Offset) drawable.View {
	if id == "" {
		id = s.freshID()
	}
	d := drawable.Decode(f, id, correction)
	s.insert(d)
	s.emit(Event{Type: EventAdded, ID: id})
	s.Focus(id)
	return d.View()
}

func (s *Scene) insert(d *drawable.Drawable) {
	id := d.ID()
	if _, exists := s.entities[id]; exists {
		s.order = without(s.order, id)
	}
	s.entities[id] = d
	s.order = append(s.order, id)
}

// Remove deletes the drawable, absent ids are ignored
func (s *Scene) Remove(id drawable.ID) {
	if _, ok := s.entities[id]; !ok {
		return
	}
	delete(s.entities, id)
	s.order = without(s.order, id)

	if s.focused == id {
		s.focused = ""
	}
	if s.hovered == id {
		s.hovered = ""
	}
	if s.drag.id == id {
		s.drag = dragState{}
	}
	s.log.Debug().Str("id", id.String()).Msg("entity removed")
	s.emit(Event{Type: EventRemoved, ID: id})
}

// RemoveFocused deletes the focused drawable, if any
func (s *Scene) RemoveFocused() {
	if id, ok := s.Focused(); ok {
		s.Remove(id)
	}
}

// Clear drops every drawable together with focus, hover and pointer capture
func (s *Scene) Clear() {
	s.entities = make(map[drawable.ID]*drawable.Drawable)
	s.order = nil
	s.focused = ""
	s.hovered = ""
	s.drag = dragState{}
	s.emit(Event{Type: EventCleared})
}

// BringToFront moves id to the end of the z-order, keeping the rest in order
func (s *Scene) BringToFront(id drawable.ID) {
	if _, ok := s.entities[id]; !ok || s.order[len(s.order)-1] == id {
		return
	}
	s.order = append(without(s.order, id), id)
	s.emit(Event{Type: EventReordered, ID: id})
}

// SendToBack moves id to the start of the z-order, keeping the rest in order
func (s *Scene) SendToBack(id drawable.ID) {
	if _, ok := s.entities[id]; !ok || s.order[0] == id {
		return
	}
	rest := without(s.order, id)
	s.order = append([]drawable.ID{id}, rest...)
	s.emit(Event{Type: EventReordered, ID: id})
}

// without returns ids minus id, reusing the backing array
func without(ids []drawable.ID, id drawable.ID) []drawable.ID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Focus sets the focused drawable, an absent id clears focus
func (s *Scene) Focus(id drawable.ID) {
	if _, ok := s.entities[id]; !ok {
		id = ""
	}
	if s.focused == id {
		return
	}
	s.focused = id
	s.emit(Event{Type: EventFocused, ID: id})
}

// Focused returns the focused drawable id
func (s *Scene) Focused() (drawable.ID, bool) {
	return s.focused, s.focused != ""
}

// FocusNext focuses the drawable above the current one, wrapping to the back
func (s *Scene) FocusNext() { s.cycleFocus(1) }

// FocusPrev focuses the drawable below the current one, wrapping to the front
func (s *Scene) FocusPrev() { s.cycleFocus(-1) }

func (s *Scene) cycleFocus(step int) {
	n := len(s.order)
	if n == 0 {
		return
	}
	idx := s.indexOf(s.focused)
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = (idx + step + n) % n
	}
	s.Focus(s.order[idx])
}

func (s *Scene) indexOf(id drawable.ID) int {
	for i, v := range s.order {
		if v == id {
			return i
		}
	}
	return -1
}

// Move translates a drawable and runs the growth check
func (s *Scene) Move(id drawable.ID, delta core.Offset) {
	d, ok := s.entities[id]
	if !ok {
		return
	}
	d.Move(delta)
	s.OnEntityMoved(id, delta)
}

// Resize changes a drawable's size and runs the growth check
func (s *Scene) Resize(id drawable.ID, delta core.Size) {
	d, ok := s.entities[id]
	if !ok {
		return
	}
	d.Resize(delta)
	s.OnEntityResized(id, delta)
}

// MoveFocused moves the focused drawable magnitude cells in dir
func (s *Scene) MoveFocused(dir Direction, magnitude int) {
	if id, ok := s.Focused(); ok {
		s.Move(id, dir.Delta(magnitude))
	}
}

// ResizeFocused resizes the focused drawable
func (s *Scene) ResizeFocused(delta core.Size) {
	if id, ok := s.Focused(); ok {
		s.Resize(id, delta)
	}
}

// OnEntityMoved reacts to a drawable that was moved by delta
func (s *Scene) OnEntityMoved(id drawable.ID, delta core.Offset) {
	d, ok := s.entities[id]
	if !ok {
		return
	}
	s.grow(d, viewport.MoveEdges(delta))
	s.emit(Event{Type: EventMoved, ID: id})
}

// OnEntityResized reacts to a drawable that was resized by delta
func (s *Scene) OnEntityResized(id drawable.ID, delta core.Size) {
	d, ok := s.entities[id]
	if !ok {
		return
	}
	s.grow(d, viewport.ResizeEdges(delta))
	s.emit(Event{Type: EventResized, ID: id})
}

// grow checks d against the canvas in screen coordinates and applies the result
func (s *Scene) grow(d *drawable.Drawable, toward viewport.Edge) {
	container := core.RegionOf(s.offset, s.size)
	entity := d.Region().Translate(s.offset)

	g := viewport.GrowIfNeeded(s.size, s.offset, entity, container, toward)
	if !g.Grew() {
		return
	}

	s.size, s.offset = g.Size, g.Offset
	if !g.Shift.IsZero() {
		for _, e := range s.entities {
			e.Move(g.Shift)
		}
	}
	s.log.Debug().
		Str("id", d.ID().String()).
		Stringer("edges", g.Edges).
		Int("width", g.Size.Width).
		Int("height", g.Size.Height).
		Msg("canvas grown")
	s.emit(Event{Type: EventGrown, ID: d.ID(), Growth: g})
}

// ChangeColor recolors the body or the border of a drawable
// Absent ids are ignored, unsupported targets return drawable.ErrUnsupportedField
func (s *Scene) ChangeColor(id drawable.ID, target drawable.ColorTarget, c drawable.Color) error {
	d, ok := s.entities[id]
	if !ok {
		return nil
	}
	if err := d.ChangeColor(target, c); err != nil {
		return err
	}
	s.emit(Event{Type: EventChanged, ID: id})
	return nil
}

// CycleBorderStyle advances a box to its next border style
func (s *Scene) CycleBorderStyle(id drawable.ID) bool {
	d, ok := s.entities[id]
	if !ok || !d.CycleBorderStyle() {
		return false
	}
	s.emit(Event{Type: EventChanged, ID: id})
	return true
}

// SetBody replaces the raw body text
func (s *Scene) SetBody(id drawable.ID, text string) {
	if d, ok := s.entities[id]; ok {
		d.SetBody(text)
		s.emit(Event{Type: EventChanged, ID: id})
	}
}

// SetBodyLines replaces the body with editor lines
func (s *Scene) SetBodyLines(id drawable.ID, lines []string) {
	if d, ok := s.entities[id]; ok {
		d.SetBodyLines(lines)
		s.emit(Event{Type: EventChanged, ID: id})
	}
}

// SetTitle sets the title of a note
func (s *Scene) SetTitle(id drawable.ID, text string) error {
	d, ok := s.entities[id]
	if !ok {
		return nil
	}
	if err := d.SetTitle(text); err != nil {
		return err
	}
	s.emit(Event{Type: EventChanged, ID: id})
	return nil
}

// ChangeColorFocused recolors the focused drawable
func (s *Scene) ChangeColorFocused(target drawable.ColorTarget, c drawable.Color) error {
	return s.ChangeColor(s.focused, target, c)
}

// CycleBorderStyleFocused cycles the border of the focused drawable
func (s *Scene) CycleBorderStyleFocused() bool {
	return s.CycleBorderStyle(s.focused)
}

// SetBodyFocused replaces the body of the focused drawable
func (s *Scene) SetBodyFocused(text string) { s.SetBody(s.focused, text) }

// SetTitleFocused sets the title of the focused drawable
func (s *Scene) SetTitleFocused(text string) error { return s.SetTitle(s.focused, text) }

// Entity returns a snapshot of one drawable
func (s *Scene) Entity(id drawable.ID) (drawable.View, bool) {
	d, ok := s.entities[id]
	if !ok {
		return drawable.View{}, false
	}
	return d.View(), true
}

// Layers returns ids back to front
func (s *Scene) Layers() []drawable.ID {
	out := make([]drawable.ID, len(s.order))
	copy(out, s.order)
	return out
}

// Views returns snapshots back to front
func (s *Scene) Views() []drawable.View {
	out := make([]drawable.View, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entities[id].View())
	}
	return out
}

// Len returns the number of drawables
func (s *Scene) Len() int { return len(s.order) }

// Bounds returns the canvas size and its offset on screen
func (s *Scene) Bounds() (core.Size, core.Offset) { return s.size, s.offset }

// SetBounds replaces the canvas size and offset without touching entities
func (s *Scene) SetBounds(size core.Size, offset core.Offset) {
	s.size, s.offset = size, offset
}

// Pan scrolls the canvas on screen
func (s *Scene) Pan(delta core.Offset) {
	if delta.IsZero() {
		return
	}
	s.offset = s.offset.Add(delta)
	s.emit(Event{Type: EventPanned})
}

// Background returns the canvas chrome
func (s *Scene) Background() Background { return s.background }

// SetBackground replaces the canvas chrome
func (s *Scene) SetBackground(bg Background) {
	s.background = bg
	s.emit(Event{Type: EventChanged})
}

// ScreenRegion returns where a drawable is on screen
func (s *Scene) ScreenRegion(id drawable.ID) (core.Region, bool) {
	d, ok := s.entities[id]
	if !ok {
		return core.Region{}, false
	}
	return d.Region().Translate(s.offset), true
}

// EntityAt returns the top-most drawable under a screen point
func (s *Scene) EntityAt(p core.Offset) (drawable.ID, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		id := s.order[i]
		if s.entities[id].Region().Translate(s.offset).Contains(p) {
			return id, true
		}
	}
	return "", false
}

// Export snapshots the persisted state
func (s *Scene) Export() Snapshot {
	snap := Snapshot{
		Fragments:  make(map[drawable.ID]drawable.Fragment, len(s.entities)),
		Layers:     s.Layers(),
		Background: s.background,
	}
	for id, d := range s.entities {
		snap.Fragments[id] = d.Fragment()
	}
	return snap
}
