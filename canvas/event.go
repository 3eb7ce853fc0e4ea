package canvas

import (
	"github.com/Cvaniak/NoteSH/drawable"
	"github.com/Cvaniak/NoteSH/viewport"
)

// EventType classifies scene notifications
type EventType uint8

const (
	EventAdded EventType = iota
	EventRemoved
	EventMoved
	EventResized
	EventGrown
	EventFocused
	EventReordered
	EventChanged
	EventCleared
	EventPanned
)

var eventNames = [...]string{
	EventAdded:     "added",
	EventRemoved:   "removed",
	EventMoved:     "moved",
	EventResized:   "resized",
	EventGrown:     "grown",
	EventFocused:   "focused",
	EventReordered: "reordered",
	EventChanged:   "changed",
	EventCleared:   "cleared",
	EventPanned:    "panned",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is delivered synchronously to subscribers after the scene mutated
// ID is empty for scene-wide events
type Event struct {
	Type   EventType
	ID     drawable.ID
	Growth viewport.Growth // EventGrown only
}

// Subscribe registers fn for every subsequent event
func (s *Scene) Subscribe(fn func(Event)) {
	if fn != nil {
		s.subscribers = append(s.subscribers, fn)
	}
}

func (s *Scene) emit(ev Event) {
	for _, fn := range s.subscribers {
		fn(ev)
	}
}
