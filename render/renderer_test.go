package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cvaniak/NoteSH/canvas"
	"github.com/Cvaniak/NoteSH/core"
	"github.com/Cvaniak/NoteSH/drawable"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(s tcell.Screen, x, y int) rune {
	ch, _, _, _ := s.GetContent(x, y)
	return ch
}

func rowText(s tcell.Screen, y, from, to int) string {
	var b strings.Builder
	for x := from; x < to; x++ {
		b.WriteRune(runeAt(s, x, y))
	}
	return b.String()
}

func view(kind drawable.Kind, id drawable.ID, pos core.Offset, size core.Size) drawable.View {
	d := drawable.New(kind, id)
	d.SetPosition(pos)
	d.SetSize(size)
	return d.View()
}

func baseFrame(views ...drawable.View) Frame {
	return Frame{
		Views:      views,
		Canvas:     core.Size{Width: 60, Height: 24},
		Background: canvas.DefaultBackground(),
	}
}

func TestRenderNote(t *testing.T) {
	screen := newScreen(t, 60, 25)
	d := drawable.New(drawable.KindNote, "note-1")
	d.SetPosition(core.Offset{X: 2, Y: 3})
	require.NoError(t, d.SetTitle("Hi"))
	d.SetBodyLines([]string{"abc", "de"})

	NewRenderer(screen).Render(baseFrame(d.View()))

	if got := rowText(screen, 3, 3, 5); got != "Hi" {
		t.Errorf("Expected title Hi at row 3, got %q", got)
	}
	if got := rowText(screen, 5, 3, 6); got != "abc" {
		t.Errorf("Expected first body line at row 5, got %q", got)
	}
	if got := rowText(screen, 6, 3, 5); got != "de" {
		t.Errorf("Expected second body line at row 6, got %q", got)
	}
	// 20x14 note at (2,3): bottom row 16, right edge 21
	assert.Equal(t, '◢', runeAt(screen, 20, 16))
	assert.Equal(t, '█', runeAt(screen, 21, 16))

	_, _, titleStyle, _ := screen.GetContent(3, 3)
	_, bg, _ := titleStyle.Decompose()
	_, _, darker, _ := drawable.NotePalette(drawable.DefaultColor)
	assert.Equal(t, TcellColor(darker), bg)
}

func TestRenderBoxBorderStyles(t *testing.T) {
	for _, style := range drawable.BorderStyles() {
		t.Run(style.String(), func(t *testing.T) {
			screen := newScreen(t, 40, 12)
			d := drawable.New(drawable.KindBox, "box-1")
			d.SetSize(core.Size{Width: 10, Height: 5})
			for s := drawable.BorderOuter; s != style; s = s.Next() {
				d.CycleBorderStyle()
			}
			d.SetBody("txt")

			NewRenderer(screen).Render(baseFrame(d.View()))

			chars := BorderChars(style)
			assert.Equal(t, chars[edgeTL], runeAt(screen, 0, 0))
			assert.Equal(t, chars[edgeT], runeAt(screen, 5, 0))
			assert.Equal(t, chars[edgeR], runeAt(screen, 9, 2))
			assert.Equal(t, chars[edgeBR], runeAt(screen, 9, 4))
			assert.Equal(t, "txt", rowText(screen, 1, 1, 4))
		})
	}
}

func TestRenderPlainShading(t *testing.T) {
	screen := newScreen(t, 40, 12)
	v := view(drawable.KindPlain, "p", core.Offset{X: 1, Y: 1}, core.Size{Width: 6, Height: 3})

	NewRenderer(screen).Render(baseFrame(v))

	assert.Equal(t, '▐', runeAt(screen, 6, 1))
	assert.Equal(t, '▄', runeAt(screen, 3, 3))
	assert.Equal(t, '▟', runeAt(screen, 6, 3))
	assert.Equal(t, ' ', runeAt(screen, 2, 2))
}

func TestRenderFocusMarker(t *testing.T) {
	screen := newScreen(t, 40, 12)
	v := view(drawable.KindBox, "b", core.Offset{X: 2, Y: 2}, core.Size{Width: 8, Height: 4})

	f := baseFrame(v)
	f.Focused = "b"
	NewRenderer(screen).Render(f)

	assert.Equal(t, focusMarker, runeAt(screen, 9, 2))
}

func TestRenderBackOrderAndOffset(t *testing.T) {
	screen := newScreen(t, 40, 12)
	bottom := view(drawable.KindPlain, "a", core.Offset{X: 0, Y: 0}, core.Size{Width: 10, Height: 4})
	top := view(drawable.KindBox, "b", core.Offset{X: 0, Y: 0}, core.Size{Width: 10, Height: 4})

	f := baseFrame(bottom, top)
	f.Offset = core.Offset{X: 3, Y: 2}
	NewRenderer(screen).Render(f)

	assert.Equal(t, BorderChars(drawable.BorderOuter)[edgeTL], runeAt(screen, 3, 2))
}

func TestRenderClipsToCanvasArea(t *testing.T) {
	screen := newScreen(t, 30, 10)
	v := view(drawable.KindBox, "b", core.Offset{X: 25, Y: 5}, core.Size{Width: 20, Height: 14})

	f := baseFrame(v)
	f.Status = "ready"
	NewRenderer(screen).Render(f)

	// Row 9 is the status line, the box must not paint over it
	_, _, style, _ := screen.GetContent(27, 9)
	_, bg, _ := style.Decompose()
	assert.Equal(t, RgbStatusBg, bg)
	assert.Equal(t, BorderChars(drawable.BorderOuter)[edgeTL], runeAt(screen, 25, 5))
}

func TestRenderBackgroundPatterns(t *testing.T) {
	screen := newScreen(t, 40, 12)
	f := baseFrame()
	f.Canvas = core.Size{Width: 30, Height: 8}
	f.Offset = core.Offset{X: 1, Y: 1}

	f.Background.Style = canvas.StyleDots
	NewRenderer(screen).Render(f)
	assert.Equal(t, '·', runeAt(screen, 1, 1))
	assert.Equal(t, ' ', runeAt(screen, 2, 1))
	assert.Equal(t, '·', runeAt(screen, 5, 3))
	assert.Equal(t, '╭', runeAt(screen, 0, 0))
	assert.Equal(t, '╯', runeAt(screen, 31, 9))

	f.Background.Style = canvas.StyleGrid
	NewRenderer(screen).Render(f)
	assert.Equal(t, '┼', runeAt(screen, 1, 1))
	assert.Equal(t, '─', runeAt(screen, 2, 1))
	assert.Equal(t, '│', runeAt(screen, 1, 2))
	assert.Equal(t, '┼', runeAt(screen, 21, 6))

	f.Background.Style = "stars"
	NewRenderer(screen).Render(f)
	assert.Equal(t, ' ', runeAt(screen, 1, 1))
}

func TestRenderStatusLine(t *testing.T) {
	screen := newScreen(t, 40, 6)
	f := baseFrame()
	f.Mode = "NORMAL"
	f.Status = "saved"
	f.Info = "3 items"
	NewRenderer(screen).Render(f)

	line := rowText(screen, 5, 0, 40)
	assert.True(t, strings.HasPrefix(line, " NORMAL  saved"), "got %q", line)
	assert.Equal(t, "3 items ", line[len(line)-len("3 items "):])
}

func TestRenderHelpOverlay(t *testing.T) {
	screen := newScreen(t, 70, 20)
	f := baseFrame()
	f.Help = []HelpLine{
		{Section: "General"},
		{Keys: "ctrl+q", Description: "quit"},
	}
	NewRenderer(screen).Render(f)

	var all strings.Builder
	for y := 0; y < 20; y++ {
		all.WriteString(rowText(screen, y, 0, 70))
		all.WriteByte('\n')
	}
	assert.Contains(t, all.String(), "General")
	assert.Contains(t, all.String(), "ctrl+q")
	assert.Contains(t, all.String(), "quit")
}

func TestRenderEditorSidebar(t *testing.T) {
	screen := newScreen(t, 80, 24)
	f := baseFrame()
	f.Editor = &Editor{
		Kind:     drawable.KindNote,
		HasTitle: true,
		Title:    "todo",
		Lines:    []string{"milk", "eggs"},
		Field:    FieldBody,
		Row:      1,
		Col:      2,
		Color:    drawable.DefaultColor,
	}
	NewRenderer(screen).Render(f)

	left := 80 - SidebarWidth
	assert.Equal(t, '╭', runeAt(screen, left, 0))

	var panel strings.Builder
	for y := 0; y < 23; y++ {
		panel.WriteString(rowText(screen, y, left, 80))
		panel.WriteByte('\n')
	}
	text := panel.String()
	assert.Contains(t, text, "Edit note")
	assert.Contains(t, text, "#FFAA00")
	assert.Contains(t, text, "todo")
	assert.Contains(t, text, "eggs")

	x, y, visible := screen.GetCursor()
	require.True(t, visible)
	assert.Equal(t, left+2+2, x)
	assert.Equal(t, 'e', runeAt(screen, left+2, y))
}

func TestCanvasArea(t *testing.T) {
	assert.Equal(t, core.Size{Width: 80, Height: 23}, CanvasArea(80, 24, false))
	assert.Equal(t, core.Size{Width: 80 - SidebarWidth, Height: 23}, CanvasArea(80, 24, true))
	assert.Equal(t, core.Size{Width: 20, Height: 9}, CanvasArea(40, 10, true))
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, 4, TextWidth("日本"))
	assert.Equal(t, "ab…", Truncate("abcdef", 3))
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "ef", visibleTail("abcdef", 3))
}

func TestWideRuneClipping(t *testing.T) {
	screen := newScreen(t, 10, 3)
	r := NewRenderer(screen)
	r.clip = core.Region{Width: 10, Height: 3}

	next := r.drawText(0, 0, 3, "日本", tcell.StyleDefault)
	assert.Equal(t, 2, next)
	assert.Equal(t, '日', runeAt(screen, 0, 0))
}

func TestTextColor(t *testing.T) {
	assert.Equal(t, textOnLight, TextColor(drawable.MustColor("#FFFFAA")))
	assert.Equal(t, textOnDark, TextColor(drawable.MustColor("#101020")))
}
