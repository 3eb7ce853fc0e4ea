package drawable

import "github.com/google/uuid"

// ID identifies a drawable inside a scene and doubles as its z-order token
type ID string

const (
	idPrefix = "note-"
	idHexLen = 8
)

// NewID returns a short random id, "note-" followed by hex digits of a v4 UUID
func NewID() ID {
	return ID(idPrefix + uuid.NewString()[:idHexLen])
}

func (id ID) String() string { return string(id) }
