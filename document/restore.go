package document

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/Cvaniak/NoteSH/canvas"
	"github.com/Cvaniak/NoteSH/core"
	"github.com/Cvaniak/NoteSH/store"
	"github.com/Cvaniak/NoteSH/viewport"
)

// Extents returns the stored, uncorrected geometry of every entry
func (l Loaded) Extents() []core.Region {
	out := make([]core.Region, 0, len(l.Entries))
	for _, e := range l.Entries {
		out = append(out, e.Fragment.Extent())
	}
	return out
}

// Restore replaces the scene content with a decoded document
// The canvas is sized to the stored extents and centered on screen, entities
// are re-anchored so the top-left-most one lands at the canvas origin
func Restore(scene *canvas.Scene, loaded Loaded, screen core.Size) {
	min, max := viewport.InitialBounds(loaded.Extents())
	size := viewport.CanvasDimensions(min, max)

	scene.Clear()
	scene.SetBounds(size, viewport.CenteringOffset(screen, size))
	for _, e := range loaded.Entries {
		scene.AddFromFragment(e.Fragment, e.ID, min)
	}
	scene.SetBackground(loaded.Background)
}

// Save encodes the scene into st and returns the written bytes
func Save(ctx context.Context, scene *canvas.Scene, st store.Store) ([]byte, error) {
	data, err := Encode(scene.Export())
	if err != nil {
		return nil, err
	}
	if err := st.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("save %s: %w", st.Location(), err)
	}
	return data, nil
}

// Load reads st into the scene
// A document that was never saved loads as an empty canvas. On error the scene is left untouched
func Load(ctx context.Context, scene *canvas.Scene, st store.Store, screen core.Size) (Loaded, error) {
	data, err := st.Load(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return Loaded{}, fmt.Errorf("load %s: %w", st.Location(), err)
	}
	loaded, err := Decode(data)
	if err != nil {
		return Loaded{}, fmt.Errorf("load %s: %w", st.Location(), err)
	}
	loaded.Raw = data
	Restore(scene, loaded, screen)
	return loaded, nil
}
