package drawable

import "github.com/Cvaniak/NoteSH/core"

// Fragment is the persisted form of one drawable, keyed by its id in the document
type Fragment struct {
	Body        string  `json:"body"`
	Pos         [2]int  `json:"pos"`
	Color       string  `json:"color"`
	Size        [2]int  `json:"size"`
	Type        string  `json:"type"`
	Title       *string `json:"title,omitempty"`
	BorderColor string  `json:"border_color,omitempty"`
	BorderType  string  `json:"border_type,omitempty"`
}

// Extent returns the stored geometry without any offset correction
// A missing size means DefaultSize, otherwise each axis is clamped as on Decode
func (f Fragment) Extent() core.Region {
	return core.RegionOf(core.Offset{X: f.Pos[0], Y: f.Pos[1]}, f.dimensions())
}

func (f Fragment) dimensions() core.Size {
	if f.Size == [2]int{} {
		return DefaultSize
	}
	return core.Size{Width: f.Size[0], Height: f.Size[1]}.Clamp(minDimension)
}
