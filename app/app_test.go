package app

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cvaniak/NoteSH/canvas"
	"github.com/Cvaniak/NoteSH/core"
	"github.com/Cvaniak/NoteSH/document"
	"github.com/Cvaniak/NoteSH/drawable"
	"github.com/Cvaniak/NoteSH/input"
	"github.com/Cvaniak/NoteSH/store"
	"github.com/Cvaniak/NoteSH/watcher"
)

type harness struct {
	app    *App
	screen tcell.SimulationScreen
	path   string
	ctx    context.Context
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 30)
	t.Cleanup(screen.Fini)

	path := filepath.Join(t.TempDir(), "notes.json")
	a := New(Options{
		Screen: screen,
		Store:  store.NewFileStore(path),
		Logger: zerolog.Nop(),
		Rand:   rand.New(rand.NewSource(7)),
	})
	h := &harness{app: a, screen: screen, path: path, ctx: context.Background()}
	require.NoError(t, a.Load(h.ctx))
	return h
}

func (h *harness) press(k tcell.Key, r rune, mod tcell.ModMask) bool {
	return h.app.HandleEvent(h.ctx, tcell.NewEventKey(k, r, mod))
}

func (h *harness) ctrl(k tcell.Key) bool { return h.press(k, 0, tcell.ModCtrl) }

func (h *harness) typeRunes(text string) {
	for _, r := range text {
		h.press(tcell.KeyRune, r, tcell.ModNone)
	}
}

func (h *harness) focused(t *testing.T) drawable.View {
	t.Helper()
	id, ok := h.app.Scene().Focused()
	require.True(t, ok, "expected a focused drawable")
	v, ok := h.app.Scene().Entity(id)
	require.True(t, ok)
	return v
}

// writeDocument stores a document built on a separate scene
func writeDocument(t *testing.T, path string, build func(*canvas.Scene)) {
	t.Helper()
	s := canvas.New()
	build(s)
	_, err := document.Save(context.Background(), s, store.NewFileStore(path))
	require.NoError(t, err)
}

func TestLoadMissingDocument(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 0, h.app.Scene().Len())
	assert.False(t, h.app.Dirty())
	assert.Equal(t, "loaded 0 items", h.app.Status())
}

func TestLoadDoesNotMarkDirty(t *testing.T) {
	h := newHarness(t)
	writeDocument(t, h.path, func(s *canvas.Scene) {
		s.Add(drawable.KindNote)
		s.Add(drawable.KindBox)
	})

	require.NoError(t, h.app.Load(h.ctx))
	assert.Equal(t, 2, h.app.Scene().Len())
	assert.False(t, h.app.Dirty())
}

func TestAddMoveAndQuitSaves(t *testing.T) {
	h := newHarness(t)

	assert.True(t, h.ctrl(tcell.KeyCtrlA))
	v := h.focused(t)
	assert.Equal(t, drawable.KindNote, v.Kind)
	assert.True(t, h.app.Dirty())

	h.typeRunes("ll")
	h.press(tcell.KeyDown, 0, tcell.ModNone)
	h.press(tcell.KeyRight, 0, tcell.ModShift)
	v = h.focused(t)
	assert.Equal(t, core.Offset{X: 7, Y: 1}, v.Position)

	assert.False(t, h.ctrl(tcell.KeyCtrlQ), "quit should stop the loop")
	assert.False(t, h.app.Dirty())

	data, err := os.ReadFile(h.path)
	require.NoError(t, err)
	loaded, err := document.Decode(data)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 1)
	assert.Equal(t, v.ID, loaded.Entries[0].ID)
}

func TestQuitKeepsRunningWhenSaveFails(t *testing.T) {
	h := newHarness(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	h.app.store = store.NewFileStore(filepath.Join(blocker, "notes.json"))

	h.ctrl(tcell.KeyCtrlA)
	assert.True(t, h.ctrl(tcell.KeyCtrlQ))
	assert.True(t, h.app.Dirty())
	assert.NotEmpty(t, h.app.Status())
}

func TestEditModeWritesBack(t *testing.T) {
	h := newHarness(t)
	h.ctrl(tcell.KeyCtrlA)
	h.ctrl(tcell.KeyCtrlE)
	require.Equal(t, ModeEdit, h.app.Mode())

	h.typeRunes("todo")
	h.press(tcell.KeyTab, 0, tcell.ModNone)
	h.typeRunes("milk")
	h.press(tcell.KeyEnter, 0, tcell.ModNone)
	h.typeRunes("eggs")

	v := h.focused(t)
	assert.Equal(t, "todo", v.Title)
	assert.Equal(t, "milk"+drawable.BodySeparator+"eggs", v.Body)

	// Move keys type while editing
	h.typeRunes("l")
	assert.Equal(t, core.Offset{}, h.focused(t).Position)

	h.app.Draw()
	_, _, visible := h.screen.GetCursor()
	assert.True(t, visible)

	h.press(tcell.KeyEscape, 0, tcell.ModNone)
	assert.Equal(t, ModeNormal, h.app.Mode())
	h.typeRunes("l")
	assert.Equal(t, core.Offset{X: 1}, h.focused(t).Position)
}

func TestEditWithoutFocus(t *testing.T) {
	h := newHarness(t)
	h.ctrl(tcell.KeyCtrlE)
	assert.Equal(t, ModeNormal, h.app.Mode())
	assert.Equal(t, "nothing focused to edit", h.app.Status())
}

func TestDeleteWhileEditing(t *testing.T) {
	h := newHarness(t)
	h.ctrl(tcell.KeyCtrlX)
	h.ctrl(tcell.KeyCtrlE)
	h.app.Apply(h.ctx, input.Intent{Type: input.IntentDelete})

	assert.Equal(t, ModeNormal, h.app.Mode())
	assert.Equal(t, 0, h.app.Scene().Len())
}

func TestColorIntents(t *testing.T) {
	h := newHarness(t)
	h.ctrl(tcell.KeyCtrlX)

	h.typeRunes("R")
	assert.Equal(t, uint8(0xFF-input.NudgeStep), h.focused(t).Color.R)

	h.typeRunes("c")
	h.typeRunes("G")
	v := h.focused(t)
	assert.Equal(t, uint8(0xAA-input.NudgeStep), v.BorderColor.G)
	assert.Equal(t, uint8(0xAA), v.Color.G)

	h.ctrl(tcell.KeyCtrlA)
	h.typeRunes("b")
	assert.Equal(t, "note has no border color", h.app.Status())

	h.typeRunes("c")
	h.typeRunes("x")
	want := drawable.RandomColor(rand.New(rand.NewSource(7)))
	assert.Equal(t, want, h.focused(t).Color)
}

func TestCycleBorderAndReorder(t *testing.T) {
	h := newHarness(t)
	h.ctrl(tcell.KeyCtrlX)
	box := h.focused(t)
	h.typeRunes("o")
	assert.Equal(t, drawable.BorderASCII, h.focused(t).BorderStyle)

	h.ctrl(tcell.KeyCtrlD)
	h.typeRunes("o")
	assert.Equal(t, "no border to change", h.app.Status())

	h.typeRunes("-")
	assert.Equal(t, box.ID, h.app.Scene().Layers()[1])

	h.press(tcell.KeyTab, 0, tcell.ModNone)
	assert.Equal(t, box.ID, h.focused(t).ID)
	h.press(tcell.KeyEscape, 0, tcell.ModNone)
	_, ok := h.app.Scene().Focused()
	assert.False(t, ok)
}

func TestResizeIntent(t *testing.T) {
	h := newHarness(t)
	h.ctrl(tcell.KeyCtrlD)
	h.typeRunes("]]}")
	assert.Equal(t, core.Size{Width: 22, Height: 15}, h.focused(t).Size)
}

func TestHelpOverlayAndBackground(t *testing.T) {
	h := newHarness(t)
	h.press(tcell.KeyF1, 0, tcell.ModNone)
	assert.NotEmpty(t, h.app.frame().Help)
	h.app.Draw()
	h.press(tcell.KeyEscape, 0, tcell.ModNone)
	assert.Nil(t, h.app.frame().Help)

	h.ctrl(tcell.KeyCtrlB)
	assert.Equal(t, canvas.StyleDots, h.app.Scene().Background().Style)
	assert.True(t, h.app.Dirty())
}

func TestHelpLinesGroupBySection(t *testing.T) {
	h := newHarness(t)
	lines := h.app.helpLines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "Default", lines[0].Section)
	// Bindings sort by action name inside a section
	assert.Equal(t, "ctrl+x", lines[1].Keys)
	assert.Equal(t, "Add Box", lines[1].Description)
}

func TestMouseDragMovesEntity(t *testing.T) {
	h := newHarness(t)
	h.ctrl(tcell.KeyCtrlD)
	v := h.focused(t)
	reg, _ := h.app.Scene().ScreenRegion(v.ID)

	h.app.HandleEvent(h.ctx, tcell.NewEventMouse(reg.X+1, reg.Y+1, tcell.Button1, tcell.ModNone))
	h.app.HandleEvent(h.ctx, tcell.NewEventMouse(reg.X+4, reg.Y+3, tcell.Button1, tcell.ModNone))
	h.app.HandleEvent(h.ctx, tcell.NewEventMouse(reg.X+4, reg.Y+3, tcell.ButtonNone, tcell.ModNone))

	assert.Equal(t, core.Offset{X: 3, Y: 2}, h.focused(t).Position)
	assert.False(t, h.app.Scene().Dragging())

	h.app.HandleEvent(h.ctx, tcell.NewEventMouse(reg.X+5, reg.Y+4, tcell.ButtonNone, tcell.ModNone))
	hovered, ok := h.app.Scene().Hovered()
	assert.True(t, ok)
	assert.Equal(t, v.ID, hovered)
}

func TestMouseWheelPans(t *testing.T) {
	h := newHarness(t)
	_, before := h.app.Scene().Bounds()
	h.app.HandleEvent(h.ctx, tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone))
	h.app.HandleEvent(h.ctx, tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModShift))
	_, after := h.app.Scene().Bounds()
	assert.Equal(t, before.Add(core.Offset{X: 2, Y: -1}), after)
	assert.False(t, h.app.Dirty())
}

func TestExternalChangeReloadsWhenClean(t *testing.T) {
	h := newHarness(t)
	writeDocument(t, h.path, func(s *canvas.Scene) {
		s.Add(drawable.KindBox)
		s.Add(drawable.KindBox)
	})

	h.app.onExternalChange(h.ctx, watcher.Change{Path: h.path})
	assert.Equal(t, 2, h.app.Scene().Len())
	assert.Equal(t, "reloaded 2 items", h.app.Status())
}

func TestExternalChangeKeepsUnsavedEdits(t *testing.T) {
	h := newHarness(t)
	h.ctrl(tcell.KeyCtrlA)
	writeDocument(t, h.path, func(s *canvas.Scene) {
		s.Add(drawable.KindBox)
		s.Add(drawable.KindBox)
	})

	h.app.onExternalChange(h.ctx, watcher.Change{Path: h.path})
	assert.Equal(t, 1, h.app.Scene().Len())
	assert.True(t, strings.Contains(h.app.Status(), "ctrl+r"), "got %q", h.app.Status())

	h.ctrl(tcell.KeyCtrlR)
	assert.Equal(t, 2, h.app.Scene().Len())
	assert.False(t, h.app.Dirty())
}

func TestOwnSaveIsNotAnExternalChange(t *testing.T) {
	h := newHarness(t)
	h.ctrl(tcell.KeyCtrlA)
	h.ctrl(tcell.KeyCtrlS)
	status := h.app.Status()
	require.True(t, strings.HasPrefix(status, "saved "))

	h.app.onExternalChange(h.ctx, watcher.Change{Path: h.path})
	assert.Equal(t, status, h.app.Status())
}

func TestRunQuitsOnKey(t *testing.T) {
	h := newHarness(t)
	h.screen.InjectKey(tcell.KeyCtrlA, 0, tcell.ModCtrl)
	h.screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.app.Run(ctx))

	_, err := os.Stat(h.path)
	assert.NoError(t, err)
	assert.Equal(t, 1, h.app.Scene().Len())
}

func TestRunStopsOnContext(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, h.app.Run(ctx), context.Canceled)
}

func TestLoadFloatGeometry(t *testing.T) {
	h := newHarness(t)
	doc := `{"layers":["a1b2"],"a1b2":{"title":"t","body":"x","pos":[10.0,5.0],"color":"#ffaa00","size":[20.0,14.0],"type":"note"}}`
	require.NoError(t, os.WriteFile(h.path, []byte(doc), 0o644))

	require.NoError(t, h.app.Load(h.ctx))
	require.Equal(t, 1, h.app.Scene().Len())
	v := h.focused(t)
	assert.Equal(t, drawable.ID("a1b2"), v.ID)
	assert.Equal(t, core.Size{Width: 20, Height: 14}, v.Size)
}

func TestQuitKeepsPartiallyLoadedDocument(t *testing.T) {
	h := newHarness(t)
	doc := `{"layers":["ok","bad"],"ok":{"pos":[1,1],"type":"box"},"bad":{"pos":[1.5,2],"type":"box"}}`
	require.NoError(t, os.WriteFile(h.path, []byte(doc), 0o644))
	require.NoError(t, h.app.Load(h.ctx))
	assert.Equal(t, 1, h.app.Scene().Len())

	assert.False(t, h.ctrl(tcell.KeyCtrlQ))
	data, err := os.ReadFile(h.path)
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))
}
