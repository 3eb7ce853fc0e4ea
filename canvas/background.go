package canvas

import "github.com/Cvaniak/NoteSH/drawable"

// Background style tags the renderer knows how to paint
// Other tags survive a load/save round trip untouched
const (
	StyleNone = "none"
	StyleDots = "dots"
	StyleGrid = "grid"
)

var backgroundStyles = []string{StyleNone, StyleDots, StyleGrid}

// Background is the canvas-level chrome, independent of entities
type Background struct {
	Color       drawable.Color
	BorderColor drawable.Color
	Style       string
}

// DefaultBackground of a new scene
func DefaultBackground() Background {
	return Background{
		Color:       drawable.MustColor("#1E1E2E"),
		BorderColor: drawable.DefaultBorderColor,
		Style:       StyleNone,
	}
}

// NextStyle returns the background with the following known style
// An unknown style restarts the cycle
func (b Background) NextStyle() Background {
	for i, s := range backgroundStyles {
		if s == b.Style {
			b.Style = backgroundStyles[(i+1)%len(backgroundStyles)]
			return b
		}
	}
	b.Style = backgroundStyles[0]
	return b
}
