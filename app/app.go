// Package app runs the terminal event loop over one canvas scene
package app

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/Cvaniak/NoteSH/audio"
	"github.com/Cvaniak/NoteSH/canvas"
	"github.com/Cvaniak/NoteSH/core"
	"github.com/Cvaniak/NoteSH/drawable"
	"github.com/Cvaniak/NoteSH/input"
	"github.com/Cvaniak/NoteSH/render"
	"github.com/Cvaniak/NoteSH/store"
	"github.com/Cvaniak/NoteSH/watcher"
)

// Mode is the input mode of the application
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "EDIT"
	}
	return "NORMAL"
}

const eventBuffer = 64

// Options wires the application; Sound and Watcher are optional
type Options struct {
	Screen  tcell.Screen
	Store   store.Store
	Keys    *input.KeyTable
	Logger  zerolog.Logger
	Sound   *audio.SoundManager
	Watcher *watcher.Watcher
	Rand    *rand.Rand
}

// App owns the scene and everything that reads or writes it
type App struct {
	screen   tcell.Screen
	scene    *canvas.Scene
	keys     *input.KeyTable
	store    store.Store
	renderer *render.Renderer
	sound    *audio.SoundManager
	watch    *watcher.Watcher
	rng      *rand.Rand
	log      zerolog.Logger

	mode     Mode
	editor   *editState
	target   drawable.ColorTarget
	showHelp bool
	buttons  tcell.ButtonMask

	dirty     bool
	loading   bool
	lastSaved []byte
	skipped   int // Fragments the last load could not read
	status    string
}

// New creates the application with an empty scene
func New(opts Options) *App {
	keys := opts.Keys
	if keys == nil {
		keys = input.DefaultKeyTable()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	sound := opts.Sound
	if sound == nil {
		sound = audio.NewSoundManager()
	}

	a := &App{
		screen:   opts.Screen,
		keys:     keys,
		store:    opts.Store,
		renderer: render.NewRenderer(opts.Screen),
		sound:    sound,
		watch:    opts.Watcher,
		rng:      rng,
		log:      opts.Logger.With().Str("component", "app").Logger(),
	}
	a.scene = canvas.New(canvas.WithLogger(opts.Logger))
	a.scene.Subscribe(a.onSceneEvent)
	return a
}

// Scene exposes the canvas for inspection
func (a *App) Scene() *canvas.Scene { return a.scene }

// Mode returns the current input mode
func (a *App) Mode() Mode { return a.mode }

// Dirty reports unsaved changes
func (a *App) Dirty() bool { return a.dirty }

// Status returns the status line message
func (a *App) Status() string { return a.status }

// Run loads the document and processes events until quit or ctx is done
func (a *App) Run(ctx context.Context) error {
	if err := a.Load(ctx); err != nil {
		return err
	}

	events := make(chan tcell.Event, eventBuffer)
	done := make(chan struct{})
	defer close(done)

	// Terminal polling blocks, so it runs outside the loop
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	})

	var changes <-chan watcher.Change
	if a.watch != nil {
		changes = a.watch.Events()
	}

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ctx, ev) {
				return nil
			}
		case c := <-changes:
			a.onExternalChange(ctx, c)
		}
		a.Draw()
	}
}

// HandleEvent dispatches one terminal event, false means quit
func (a *App) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ctx, ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	if a.mode == ModeEdit {
		if ev.Key() == tcell.KeyEscape {
			a.endEdit()
			return true
		}
		if change, handled := a.editor.handleKey(ev); handled {
			a.applyEdit(change)
			return true
		}
		intent, ok := a.keys.Lookup(ev)
		if !ok || !allowedWhileEditing(intent.Type) {
			return true
		}
		return a.Apply(ctx, intent)
	}

	if a.showHelp && ev.Key() == tcell.KeyEscape {
		a.showHelp = false
		return true
	}
	intent, ok := a.keys.Lookup(ev)
	if !ok {
		return true
	}
	return a.Apply(ctx, intent)
}

// allowedWhileEditing lists intents whose keys cannot collide with typing
func allowedWhileEditing(t input.IntentType) bool {
	switch t {
	case input.IntentQuit, input.IntentSave, input.IntentReload, input.IntentToggleHelp, input.IntentEdit:
		return true
	}
	return false
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := core.Offset{X: x, Y: y}
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0
	wasPressed := a.buttons&tcell.Button1 != 0
	a.buttons = buttons

	switch {
	case buttons&tcell.WheelUp != 0:
		a.scene.Pan(wheelDelta(ev.Modifiers(), 1))
	case buttons&tcell.WheelDown != 0:
		a.scene.Pan(wheelDelta(ev.Modifiers(), -1))
	case pressed && !wasPressed:
		a.scene.PointerDown(p, ev.Modifiers()&tcell.ModCtrl != 0)
		if a.mode == ModeEdit {
			a.retargetEdit()
		}
	case pressed:
		a.scene.PointerMove(p)
	case wasPressed:
		a.scene.PointerUp()
	default:
		a.scene.Hover(p)
	}
}

// wheelDelta scrolls vertically, shift scrolls horizontally
func wheelDelta(mod tcell.ModMask, step int) core.Offset {
	if mod&tcell.ModShift != 0 {
		return core.Offset{X: 2 * step}
	}
	return core.Offset{Y: step}
}

// Draw renders the current state
func (a *App) Draw() {
	a.renderer.Render(a.frame())
}

func (a *App) frame() render.Frame {
	size, offset := a.scene.Bounds()
	focused, _ := a.scene.Focused()
	f := render.Frame{
		Views:      a.scene.Views(),
		Focused:    focused,
		Offset:     offset,
		Canvas:     size,
		Background: a.scene.Background(),
		Mode:       a.mode.String(),
		Status:     a.status,
		Info:       a.info(),
	}
	if a.mode == ModeEdit {
		if v, ok := a.scene.Entity(a.editor.id); ok {
			f.Editor = a.editor.panel(v, a.target)
		}
	}
	if a.showHelp {
		f.Help = a.helpLines()
	}
	return f
}

func (a *App) info() string {
	var b strings.Builder
	if a.dirty {
		b.WriteString("* ")
	}
	fmt.Fprintf(&b, "%d items", a.scene.Len())
	fmt.Fprintf(&b, " | color: %s", a.target)
	if a.store != nil {
		b.WriteString(" | ")
		b.WriteString(a.store.Location())
	}
	return b.String()
}

// helpLines lists bindings grouped by section
func (a *App) helpLines() []render.HelpLine {
	var lines []render.HelpLine
	var section input.Section
	for _, bnd := range a.keys.Bindings() {
		if bnd.Section != section {
			section = bnd.Section
			lines = append(lines, render.HelpLine{Section: sectionTitle(section)})
		}
		keys := make([]string, len(bnd.Keys))
		for i, k := range bnd.Keys {
			keys[i] = k.String()
		}
		desc := bnd.Description
		if desc == "" {
			desc = strings.ReplaceAll(bnd.Action, "_", " ")
		}
		lines = append(lines, render.HelpLine{Keys: strings.Join(keys, ", "), Description: desc})
	}
	return lines
}

func sectionTitle(s input.Section) string {
	title := strings.ReplaceAll(string(s), "_", " ")
	if title == "" {
		return title
	}
	return strings.ToUpper(title[:1]) + title[1:]
}

func (a *App) setStatus(format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
}

// fail reports err on the status line and in the log
func (a *App) fail(err error) {
	a.log.Error().Err(err).Msg("operation failed")
	a.status = err.Error()
	a.sound.Play(audio.CueError)
}

// onSceneEvent tracks unsaved changes and plays feedback
// Events raised while a document is being restored are ignored
func (a *App) onSceneEvent(ev canvas.Event) {
	if a.loading {
		return
	}
	switch ev.Type {
	case canvas.EventFocused, canvas.EventPanned:
		return
	case canvas.EventAdded:
		a.sound.Play(audio.CueAdd)
	case canvas.EventRemoved:
		a.sound.Play(audio.CueDelete)
	case canvas.EventGrown:
		a.sound.Play(audio.CueGrow)
	}
	a.dirty = true
}
