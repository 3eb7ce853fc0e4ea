package app

import (
	"bytes"
	"context"
	"errors"

	"github.com/Cvaniak/NoteSH/audio"
	"github.com/Cvaniak/NoteSH/core"
	"github.com/Cvaniak/NoteSH/document"
	"github.com/Cvaniak/NoteSH/render"
	"github.com/Cvaniak/NoteSH/store"
	"github.com/Cvaniak/NoteSH/watcher"
)

// Load replaces the scene with the stored document
func (a *App) Load(ctx context.Context) error {
	if err := a.restore(ctx); err != nil {
		return err
	}
	a.setStatus("loaded %d items", a.scene.Len())
	return nil
}

// Reload discards unsaved edits and reads the document again
func (a *App) Reload(ctx context.Context) error {
	if err := a.restore(ctx); err != nil {
		return err
	}
	a.setStatus("reloaded %d items", a.scene.Len())
	return nil
}

func (a *App) restore(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	a.loading = true
	loaded, err := document.Load(ctx, a.scene, a.store, a.canvasArea())
	a.loading = false
	if err != nil {
		return err
	}

	if a.mode == ModeEdit {
		a.endEdit()
	}
	a.lastSaved = loaded.Raw
	a.skipped = len(loaded.Skipped)
	a.dirty = false
	for _, skip := range loaded.Skipped {
		a.log.Warn().Str("key", skip.Key).Str("reason", skip.Reason).Msg("fragment skipped")
	}
	a.log.Info().
		Str("location", a.store.Location()).
		Int("entities", len(loaded.Entries)).
		Int("skipped", len(loaded.Skipped)).
		Msg("document loaded")
	return nil
}

// Save writes the scene to the store
func (a *App) Save(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	data, err := document.Save(ctx, a.scene, a.store)
	if err != nil {
		return err
	}
	a.lastSaved = data
	a.skipped = 0
	a.dirty = false
	a.setStatus("saved %s", a.store.Location())
	a.sound.Play(audio.CueSave)
	a.log.Info().Str("location", a.store.Location()).Int("bytes", len(data)).Msg("document saved")
	return nil
}

// onExternalChange reloads a document edited by another program
// Our own writes are recognised by content, unsaved edits are never discarded
func (a *App) onExternalChange(ctx context.Context, c watcher.Change) {
	if a.store == nil {
		return
	}
	data, err := a.store.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		a.setStatus("document removed on disk, save to recreate")
		return
	}
	if err != nil {
		a.fail(err)
		return
	}
	if bytes.Equal(data, a.lastSaved) {
		return
	}

	a.log.Info().Str("path", c.Path).Bool("dirty", a.dirty).Msg("document changed on disk")
	if a.dirty {
		a.setStatus("document changed on disk, %s to reload", a.keyFor("reload"))
		return
	}
	if err := a.Reload(ctx); err != nil {
		a.fail(err)
	}
}

// keyFor names the first key bound to action
func (a *App) keyFor(action string) string {
	if b, ok := a.keys.Binding(action); ok && len(b.Keys) > 0 {
		return b.Keys[0].String()
	}
	return action
}

// canvasArea is the screen space the canvas is centered in
func (a *App) canvasArea() core.Size {
	if a.screen == nil {
		return core.Size{}
	}
	w, h := a.screen.Size()
	return render.CanvasArea(w, h, a.mode == ModeEdit)
}
