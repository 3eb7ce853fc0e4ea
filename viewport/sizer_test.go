package viewport

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cvaniak/NoteSH/core"
)

func TestCanvasDimensionsExample(t *testing.T) {
	got := CanvasDimensions(core.Offset{}, core.Offset{X: 50, Y: 20})
	if got != (core.Size{Width: 60, Height: 25}) {
		t.Errorf("Expected 60x25, got %dx%d", got.Width, got.Height)
	}
}

func TestCanvasDimensionsAreChunkMultiples(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		min := core.Offset{X: rng.Intn(200) - 100, Y: rng.Intn(200) - 100}
		max := core.Offset{X: min.X + rng.Intn(300), Y: min.Y + rng.Intn(300)}

		got := CanvasDimensions(min, max)

		if got.Width <= 0 || got.Width%ChunkWidth != 0 {
			t.Fatalf("Width %d not a positive multiple of %d", got.Width, ChunkWidth)
		}
		if got.Height <= 0 || got.Height%ChunkHeight != 0 {
			t.Fatalf("Height %d not a positive multiple of %d", got.Height, ChunkHeight)
		}
		if got.Width <= max.X-min.X || got.Height <= max.Y-min.Y {
			t.Fatalf("Canvas %v not larger than span %v-%v", got, min, max)
		}
	}
}

func TestInitialBoundsEmpty(t *testing.T) {
	min, max := InitialBounds(nil)
	assert.Equal(t, core.Offset{}, min)
	assert.Equal(t, core.Offset{X: 50, Y: 20}, max)
}

func TestInitialBounds(t *testing.T) {
	min, max := InitialBounds([]core.Region{
		{X: -10, Y: 3, Width: 20, Height: 14},
		{X: 40, Y: -2, Width: 30, Height: 5},
	})
	assert.Equal(t, core.Offset{X: -10, Y: -2}, min)
	assert.Equal(t, core.Offset{X: 70, Y: 20}, max)

	min, max = InitialBounds([]core.Region{{X: 5, Y: 5, Width: 2, Height: 2}})
	assert.Equal(t, core.Offset{X: 5, Y: 5}, min)
	assert.Equal(t, DefaultMax, max)
}

func TestCenteringOffset(t *testing.T) {
	assert.Equal(t, core.Offset{X: 10, Y: 7}, CenteringOffset(core.Size{Width: 80, Height: 40}, core.Size{Width: 60, Height: 25}))
	// Larger canvas than screen, truncates toward zero
	assert.Equal(t, core.Offset{X: -2, Y: -1}, CenteringOffset(core.Size{Width: 55, Height: 22}, core.Size{Width: 60, Height: 25}))
}

func TestMoveAndResizeEdges(t *testing.T) {
	assert.Equal(t, EdgeLeft, MoveEdges(core.Offset{X: -5}))
	assert.Equal(t, EdgeRight|EdgeTop, MoveEdges(core.Offset{X: 1, Y: -1}))
	assert.Equal(t, EdgeNone, MoveEdges(core.Offset{}))
	assert.Equal(t, EdgeRight|EdgeBottom, ResizeEdges(core.Size{Width: 1, Height: 1}))
	assert.Equal(t, EdgeNone, ResizeEdges(core.Size{Width: -1, Height: 0}))
}

func TestGrowNoEdgeReached(t *testing.T) {
	size := core.Size{Width: 60, Height: 25}
	container := core.RegionOf(core.Offset{X: 10, Y: 10}, size)
	entity := core.Region{X: 15, Y: 15, Width: 20, Height: 5}

	g := GrowIfNeeded(size, container.Origin(), entity, container, EdgeAll)

	assert.False(t, g.Grew())
	assert.Equal(t, size, g.Size)
	assert.Equal(t, container.Origin(), g.Offset)
	assert.Equal(t, core.Offset{}, g.Shift)
}

func TestGrowTrailingEdges(t *testing.T) {
	size := core.Size{Width: 60, Height: 25}
	container := core.RegionOf(core.Offset{}, size)

	g := GrowIfNeeded(size, core.Offset{}, core.Region{X: 40, Y: 0, Width: 20, Height: 5}, container, EdgeRight)
	assert.Equal(t, EdgeRight, g.Edges)
	assert.Equal(t, core.Size{Width: 80, Height: 25}, g.Size)
	assert.Equal(t, core.Offset{}, g.Offset)
	assert.Equal(t, core.Offset{}, g.Shift)

	g = GrowIfNeeded(size, core.Offset{}, core.Region{X: 5, Y: 22, Width: 5, Height: 5}, container, EdgeBottom)
	assert.Equal(t, EdgeBottom, g.Edges)
	assert.Equal(t, core.Size{Width: 60, Height: 30}, g.Size)
	assert.Equal(t, core.Offset{}, g.Shift)
}

func TestGrowLeadingEdgeShifts(t *testing.T) {
	size := core.Size{Width: 60, Height: 25}
	offset := core.Offset{X: 10, Y: 7}
	container := core.RegionOf(offset, size)
	// Entity at canvas x=0 is at screen x=offset.X
	entity := core.Region{X: offset.X, Y: offset.Y + 3, Width: 20, Height: 14}

	g := GrowIfNeeded(size, offset, entity, container, EdgeLeft)

	assert.Equal(t, EdgeLeft, g.Edges)
	assert.Equal(t, core.Size{Width: 80, Height: 25}, g.Size)
	assert.Equal(t, core.Offset{X: -10, Y: 7}, g.Offset)
	assert.Equal(t, core.Offset{X: ChunkWidth}, g.Shift)
}

func TestGrowCornerFiresBothAxes(t *testing.T) {
	size := core.Size{Width: 60, Height: 25}
	container := core.RegionOf(core.Offset{}, size)
	entity := core.Region{X: -1, Y: -1, Width: 20, Height: 14}

	g := GrowIfNeeded(size, core.Offset{}, entity, container, MoveEdges(core.Offset{X: -1, Y: -1}))

	assert.True(t, g.Edges.Has(EdgeLeft|EdgeTop))
	assert.Equal(t, core.Size{Width: 80, Height: 30}, g.Size)
	assert.Equal(t, core.Offset{X: -20, Y: -5}, g.Offset)
	assert.Equal(t, core.Offset{X: 20, Y: 5}, g.Shift)
}

func TestGrowOnlyCheckedEdges(t *testing.T) {
	size := core.Size{Width: 60, Height: 25}
	container := core.RegionOf(core.Offset{}, size)
	// Touches the top edge but travels left only
	entity := core.Region{X: -5, Y: 0, Width: 20, Height: 14}

	g := GrowIfNeeded(size, core.Offset{}, entity, container, EdgeLeft)
	assert.Equal(t, EdgeLeft, g.Edges)
	assert.Equal(t, 0, g.Shift.Y)
}

func TestGrowIsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	size := core.Size{Width: 60, Height: 25}
	offset := core.Offset{}
	for i := 0; i < 1000; i++ {
		container := core.RegionOf(offset, size)
		entity := core.Region{
			X: rng.Intn(160) - 80, Y: rng.Intn(80) - 40,
			Width: rng.Intn(30) + 1, Height: rng.Intn(20) + 1,
		}
		g := GrowIfNeeded(size, offset, entity, container, Edge(rng.Intn(16)))
		if g.Size.Width < size.Width || g.Size.Height < size.Height {
			t.Fatalf("Canvas shrank from %v to %v", size, g.Size)
		}
		size, offset = g.Size, g.Offset
	}
}

func TestEdgeString(t *testing.T) {
	assert.Equal(t, "none", EdgeNone.String())
	assert.Equal(t, "right|top", (EdgeRight | EdgeTop).String())
}
