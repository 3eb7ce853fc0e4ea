package app

import (
	"context"
	"errors"

	"github.com/Cvaniak/NoteSH/drawable"
	"github.com/Cvaniak/NoteSH/input"
)

// Apply executes one intent, false means quit
func (a *App) Apply(ctx context.Context, in input.Intent) bool {
	s := a.scene
	switch in.Type {
	case input.IntentQuit:
		// Quitting saves; a failed save keeps the session open
		if !a.dirty && a.skipped > 0 {
			// Rewriting would drop the entries the load could not read
			a.log.Warn().Int("skipped", a.skipped).Msg("quit without saving a partially loaded document")
			return false
		}
		if err := a.Save(ctx); err != nil {
			a.fail(err)
			return true
		}
		return false
	case input.IntentSave:
		if err := a.Save(ctx); err != nil {
			a.fail(err)
		}
	case input.IntentReload:
		if err := a.Reload(ctx); err != nil {
			a.fail(err)
		}
	case input.IntentToggleHelp:
		a.showHelp = !a.showHelp
	case input.IntentBackgroundNext:
		bg := s.Background().NextStyle()
		s.SetBackground(bg)
		a.setStatus("background: %s", bg.Style)

	case input.IntentAdd:
		v := s.Add(in.Kind)
		a.setStatus("added %s", v.Kind)
	case input.IntentDelete:
		if a.mode == ModeEdit {
			a.endEdit()
		}
		s.RemoveFocused()
	case input.IntentEdit:
		if a.mode == ModeEdit {
			a.endEdit()
		} else {
			a.beginEdit()
		}
	case input.IntentUnfocus:
		s.Focus("")
	case input.IntentFocusNext:
		s.FocusNext()
	case input.IntentFocusPrev:
		s.FocusPrev()

	case input.IntentMove:
		s.MoveFocused(in.Direction, in.Magnitude)
	case input.IntentBringForward:
		if id, ok := s.Focused(); ok {
			s.BringToFront(id)
		}
	case input.IntentBringBackward:
		if id, ok := s.Focused(); ok {
			s.SendToBack(id)
		}
	case input.IntentResize:
		s.ResizeFocused(in.Resize)
	case input.IntentCycleBorder:
		if _, ok := s.Focused(); ok && !s.CycleBorderStyleFocused() {
			a.setStatus("no border to change")
		}

	case input.IntentColorTarget:
		a.target = toggleTarget(a.target)
		a.setStatus("color target: %s", a.target)
	case input.IntentNudge:
		a.recolor(func(c drawable.Color) drawable.Color { return c.NudgeChannel(in.Channel, in.Delta) })
	case input.IntentRandomColor:
		a.recolor(func(drawable.Color) drawable.Color { return drawable.RandomColor(a.rng) })
	}
	return true
}

func toggleTarget(t drawable.ColorTarget) drawable.ColorTarget {
	if t == drawable.TargetBody {
		return drawable.TargetBorder
	}
	return drawable.TargetBody
}

// recolor replaces the targeted color of the focused drawable with fn(current)
func (a *App) recolor(fn func(drawable.Color) drawable.Color) {
	id, ok := a.scene.Focused()
	if !ok {
		return
	}
	v, _ := a.scene.Entity(id)
	current := v.Color
	if a.target == drawable.TargetBorder {
		current = v.BorderColor
	}

	next := fn(current)
	if err := a.scene.ChangeColor(id, a.target, next); err != nil {
		if errors.Is(err, drawable.ErrUnsupportedField) {
			a.setStatus("%s has no %s color", v.Kind, a.target)
			return
		}
		a.fail(err)
		return
	}
	a.setStatus("%s color %s", a.target, next.Hex())
}

// beginEdit opens the sidebar for the focused drawable
func (a *App) beginEdit() {
	id, ok := a.scene.Focused()
	if !ok {
		a.setStatus("nothing focused to edit")
		return
	}
	v, _ := a.scene.Entity(id)
	a.editor = newEditState(v)
	a.mode = ModeEdit
}

func (a *App) endEdit() {
	a.editor = nil
	a.mode = ModeNormal
}

// retargetEdit follows a pointer focus change while the sidebar is open
func (a *App) retargetEdit() {
	id, ok := a.scene.Focused()
	switch {
	case !ok:
		a.endEdit()
	case id != a.editor.id:
		v, _ := a.scene.Entity(id)
		a.editor = newEditState(v)
	}
}

// applyEdit writes the edited field back to the drawable
func (a *App) applyEdit(change editChange) {
	switch change {
	case changeTitle:
		if err := a.scene.SetTitle(a.editor.id, a.editor.Title()); err != nil {
			a.fail(err)
		}
	case changeBody:
		a.scene.SetBodyLines(a.editor.id, a.editor.Lines())
	}
}
