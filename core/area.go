package core

// Offset is a signed cell position or displacement relative to the canvas origin
type Offset struct {
	X, Y int
}

// Add returns o translated by d
func (o Offset) Add(d Offset) Offset {
	return Offset{X: o.X + d.X, Y: o.Y + d.Y}
}

// Sub returns o translated by -d
func (o Offset) Sub(d Offset) Offset {
	return Offset{X: o.X - d.X, Y: o.Y - d.Y}
}

// IsZero reports whether both components are zero
func (o Offset) IsZero() bool {
	return o.X == 0 && o.Y == 0
}

// Size is a width/height pair in terminal cells
type Size struct {
	Width, Height int
}

// Grow returns s enlarged by d without clamping
func (s Size) Grow(d Size) Size {
	return Size{Width: s.Width + d.Width, Height: s.Height + d.Height}
}

// Clamp returns s with each dimension raised to at least min
func (s Size) Clamp(min int) Size {
	if s.Width < min {
		s.Width = min
	}
	if s.Height < min {
		s.Height = min
	}
	return s
}

// Region is a rectangle in cells, Right and Bottom are exclusive
type Region struct {
	X, Y          int // Top-left corner
	Width, Height int
}

// RegionOf builds a region from a position and a size
func RegionOf(pos Offset, size Size) Region {
	return Region{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

// Right returns the first column past the region
func (r Region) Right() int { return r.X + r.Width }

// Bottom returns the first row past the region
func (r Region) Bottom() int { return r.Y + r.Height }

// Origin returns the top-left corner
func (r Region) Origin() Offset { return Offset{X: r.X, Y: r.Y} }

// Size returns the region dimensions
func (r Region) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Translate returns r moved by d
func (r Region) Translate(d Offset) Region {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Contains reports whether p lies inside r
func (r Region) Contains(p Offset) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}
