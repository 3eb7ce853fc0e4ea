package canvas

import "github.com/Cvaniak/NoteSH/core"

// Direction of a keyboard move
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

var directionNames = [...]string{
	DirUp:    "up",
	DirDown:  "down",
	DirLeft:  "left",
	DirRight: "right",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// ParseDirection resolves "up", "down", "left" or "right"
func ParseDirection(name string) (Direction, bool) {
	for i, n := range directionNames {
		if n == name {
			return Direction(i), true
		}
	}
	return DirUp, false
}

// Delta returns the displacement of magnitude cells in direction d
func (d Direction) Delta(magnitude int) core.Offset {
	switch d {
	case DirUp:
		return core.Offset{Y: -magnitude}
	case DirDown:
		return core.Offset{Y: magnitude}
	case DirLeft:
		return core.Offset{X: -magnitude}
	case DirRight:
		return core.Offset{X: magnitude}
	}
	return core.Offset{}
}
