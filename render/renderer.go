// Package render paints a scene snapshot onto a tcell screen
package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Cvaniak/NoteSH/canvas"
	"github.com/Cvaniak/NoteSH/core"
	"github.com/Cvaniak/NoteSH/drawable"
	"github.com/Cvaniak/NoteSH/viewport"
)

const (
	StatusHeight    = 1
	SidebarWidth    = 34
	minCanvasWidth  = 20
	focusMarker     = '●'
	resizeGlyphs    = "◢█"
	dotsSpacingX    = 4
	dotsSpacingY    = 2
	helpMaxWidth    = 64
	helpKeyMaxWidth = 22
)

// HelpLine is one row of the help overlay, an empty Keys makes it a section header
type HelpLine struct {
	Section     string
	Keys        string
	Description string
}

// EditorField selects the active input of the sidebar editor
type EditorField uint8

const (
	FieldTitle EditorField = iota
	FieldBody
)

// Editor is the sidebar editor state for the focused drawable
type Editor struct {
	Kind        drawable.Kind
	HasTitle    bool
	Title       string
	Lines       []string
	Field       EditorField
	Row, Col    int // cursor, Col counts runes
	Target      drawable.ColorTarget
	Color       drawable.Color
	HasBorder   bool
	BorderColor drawable.Color
	BorderStyle drawable.BorderStyle
}

// Frame is everything one paint needs
type Frame struct {
	Views      []drawable.View // back to front
	Focused    drawable.ID
	Offset     core.Offset
	Canvas     core.Size
	Background canvas.Background
	Mode       string
	Status     string
	Info       string
	Help       []HelpLine // nil hides the overlay
	Editor     *Editor    // nil hides the sidebar
}

// Renderer draws frames; it keeps no state between frames besides the clip
type Renderer struct {
	screen tcell.Screen
	clip   core.Region
}

// NewRenderer creates a renderer for screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// CanvasArea returns the screen area left for the canvas
func CanvasArea(width, height int, editing bool) core.Size {
	h := height - StatusHeight
	if editing {
		width -= sidebarWidth(width)
	}
	return core.Size{Width: max(width, 0), Height: max(h, 0)}
}

func sidebarWidth(width int) int {
	w := SidebarWidth
	if width-w < minCanvasWidth {
		w = width / 2
	}
	return w
}

// Render paints f and shows the screen
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()
	r.screen.HideCursor()
	w, h := r.screen.Size()

	area := CanvasArea(w, h, f.Editor != nil)
	r.clip = core.Region{Width: area.Width, Height: area.Height}

	r.drawBackground(f)
	for _, v := range f.Views {
		r.drawView(v, f.Offset, v.ID == f.Focused)
	}

	r.clip = core.Region{Width: w, Height: h}
	if f.Editor != nil {
		r.drawEditor(*f.Editor, core.Region{X: area.Width, Width: w - area.Width, Height: area.Height})
	}
	r.drawStatus(f, w, h)
	if f.Help != nil {
		r.drawHelp(f.Help, w, h)
	}

	r.screen.Show()
}

func (r *Renderer) set(x, y int, ch rune, style tcell.Style) {
	if !r.clip.Contains(core.Offset{X: x, Y: y}) {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *Renderer) fill(reg core.Region, ch rune, style tcell.Style) {
	for y := reg.Y; y < reg.Bottom(); y++ {
		r.fillRow(reg.X, y, reg.Right(), ch, style)
	}
}

// drawBackground fills the canvas, its pattern and a frame one cell outside it
func (r *Renderer) drawBackground(f Frame) {
	bg := f.Background
	base := tcell.StyleDefault.Background(TcellColor(bg.Color))
	pattern := base.Foreground(TcellColor(bg.Color.Lighten(0.12)))
	reg := core.RegionOf(f.Offset, f.Canvas)

	for y := 0; y < reg.Height; y++ {
		for x := 0; x < reg.Width; x++ {
			r.set(reg.X+x, reg.Y+y, backgroundRune(bg.Style, x, y), pattern)
		}
	}

	frame := core.Region{X: reg.X - 1, Y: reg.Y - 1, Width: reg.Width + 2, Height: reg.Height + 2}
	chars := BorderChars(drawable.BorderRound)
	style := tcell.StyleDefault.Foreground(TcellColor(bg.BorderColor))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			if ch := edgeAt(chars, x, y, frame.Width, frame.Height); ch != 0 {
				r.set(frame.X+x, frame.Y+y, ch, style)
			}
		}
	}
}

// backgroundRune returns the pattern glyph at canvas cell (x, y)
func backgroundRune(style string, x, y int) rune {
	switch style {
	case canvas.StyleDots:
		if x%dotsSpacingX == 0 && y%dotsSpacingY == 0 {
			return '·'
		}
	case canvas.StyleGrid:
		onCol := x%viewport.ChunkWidth == 0
		onRow := y%viewport.ChunkHeight == 0
		switch {
		case onCol && onRow:
			return '┼'
		case onRow:
			return '─'
		case onCol:
			return '│'
		}
	}
	return ' '
}

func (r *Renderer) drawView(v drawable.View, offset core.Offset, focused bool) {
	reg := v.Region().Translate(offset)
	switch v.Kind {
	case drawable.KindNote:
		r.drawNote(v, reg)
	case drawable.KindBox:
		r.drawBox(v, reg)
	default:
		r.drawPlain(v, reg)
	}
	if focused {
		r.set(reg.Right()-1, reg.Y, focusMarker, r.styleAt(reg.Right()-1, reg.Y).Foreground(RgbFocusMarker))
	}
}

// styleAt returns the style already painted at (x, y) so overlays keep the fill
func (r *Renderer) styleAt(x, y int) tcell.Style {
	_, _, style, _ := r.screen.GetContent(x, y)
	return style
}

// drawPlain paints a filled panel whose right and bottom edges are shaded
func (r *Renderer) drawPlain(v drawable.View, reg core.Region) {
	fill := tcell.StyleDefault.Background(TcellColor(v.Display))
	shade := fill.Foreground(TcellColor(v.Display.Darken(0.2)))
	r.fill(reg, ' ', fill)

	right, bottom := reg.Right()-1, reg.Bottom()-1
	if reg.Width > 1 {
		for y := reg.Y; y < bottom; y++ {
			r.set(right, y, '▐', shade)
		}
	}
	if reg.Height > 1 {
		r.fillRow(reg.X, bottom, right, '▄', shade)
		r.set(right, bottom, '▟', shade)
	}

	text := fill.Foreground(TcellColor(TextColor(v.Display)))
	r.drawLines(v.BodyLines(), core.Region{X: reg.X, Y: reg.Y, Width: reg.Width - 1, Height: reg.Height - 1}, text)
}

// drawBox paints the border in the border color around the body
func (r *Renderer) drawBox(v drawable.View, reg core.Region) {
	fill := tcell.StyleDefault.Background(TcellColor(v.Display))
	r.fill(reg, ' ', fill)

	chars := BorderChars(v.BorderStyle)
	edge := fill.Foreground(TcellColor(v.BorderDisplay))
	for y := 0; y < reg.Height; y++ {
		for x := 0; x < reg.Width; x++ {
			if ch := edgeAt(chars, x, y, reg.Width, reg.Height); ch != 0 {
				r.set(reg.X+x, reg.Y+y, ch, edge)
			}
		}
	}

	text := fill.Foreground(TcellColor(TextColor(v.Display)))
	r.drawLines(v.BodyLines(), core.Region{X: reg.X + 1, Y: reg.Y + 1, Width: reg.Width - 2, Height: reg.Height - 2}, text)
}

// drawNote paints title bar, spacer, body and the resize bar
func (r *Renderer) drawNote(v drawable.View, reg core.Region) {
	lighter, base, darker, muchDarker := drawable.NotePalette(v.Display)
	bodyStyle := tcell.StyleDefault.Background(TcellColor(base)).Foreground(TcellColor(TextColor(base)))
	titleStyle := tcell.StyleDefault.Background(TcellColor(darker)).Foreground(TcellColor(TextColor(darker)))
	barStyle := tcell.StyleDefault.Background(TcellColor(lighter)).Foreground(TcellColor(muchDarker))

	r.fill(reg, ' ', bodyStyle)

	r.fillRow(reg.X, reg.Y, reg.Right(), ' ', titleStyle)
	r.drawText(reg.X+1, reg.Y, reg.Right()-1, v.Title, titleStyle)

	if reg.Height >= 2 {
		bottom := reg.Bottom() - 1
		r.fillRow(reg.X, bottom, reg.Right(), ' ', barStyle)
		r.drawText(max(reg.Right()-TextWidth(resizeGlyphs), reg.X), bottom, reg.Right(), resizeGlyphs, barStyle)
	}

	// Title, spacer and resize bar leave Height-3 body rows
	body := core.Region{X: reg.X + 1, Y: reg.Y + 2, Width: reg.Width - 2, Height: reg.Height - 3}
	r.drawLines(v.BodyLines(), body, bodyStyle)
}

// drawLines writes one line per row inside reg, clipping both ways
func (r *Renderer) drawLines(lines []string, reg core.Region, style tcell.Style) {
	if reg.Width <= 0 || reg.Height <= 0 {
		return
	}
	for i, line := range lines {
		if i >= reg.Height {
			return
		}
		r.drawText(reg.X, reg.Y+i, reg.Right(), line, style)
	}
}

func (r *Renderer) drawStatus(f Frame, w, h int) {
	y := h - StatusHeight
	if y < 0 {
		return
	}
	base := tcell.StyleDefault.Background(RgbStatusBg).Foreground(RgbStatusFg)
	r.fillRow(0, y, w, ' ', base)

	x := 0
	if f.Mode != "" {
		mode := tcell.StyleDefault.Background(RgbStatusMode).Foreground(tcell.ColorBlack).Bold(true)
		x = r.drawText(x, y, w, " "+f.Mode+" ", mode)
	}

	info := Truncate(f.Info, w/3)
	infoX := w - TextWidth(info) - 1
	r.drawText(x+1, y, infoX-1, f.Status, base)
	if info != "" {
		r.drawText(infoX, y, w, info, base.Foreground(RgbStatusDim))
	}
}

func (r *Renderer) drawHelp(lines []HelpLine, w, h int) {
	width := min(helpMaxWidth, w-4)
	height := min(len(lines)+2, h-StatusHeight-2)
	if width < 10 || height < 3 {
		return
	}
	reg := core.Region{X: (w - width) / 2, Y: (h - StatusHeight - height) / 2, Width: width, Height: height}
	r.panel(reg, " Keys ")

	keyWidth := 0
	for _, l := range lines {
		keyWidth = max(keyWidth, TextWidth(l.Keys))
	}
	keyWidth = min(keyWidth, helpKeyMaxWidth)

	base := tcell.StyleDefault.Background(RgbPanelBg).Foreground(RgbPanelFg)
	maxX := reg.Right() - 1
	for i, l := range lines {
		y := reg.Y + 1 + i
		if y >= reg.Bottom()-1 {
			break
		}
		if l.Keys == "" {
			r.drawText(reg.X+2, y, maxX, l.Section, base.Foreground(RgbHelpSection).Bold(true))
			continue
		}
		r.drawText(reg.X+3, y, reg.X+3+keyWidth, Truncate(l.Keys, keyWidth), base.Foreground(RgbHelpKey))
		r.drawText(reg.X+5+keyWidth, y, maxX, l.Description, base)
	}
}

// panel draws a filled rounded box with a title in its top edge
func (r *Renderer) panel(reg core.Region, title string) {
	base := tcell.StyleDefault.Background(RgbPanelBg).Foreground(RgbPanelFg)
	r.fill(reg, ' ', base)
	chars := BorderChars(drawable.BorderRound)
	edge := base.Foreground(RgbPanelBorder)
	for y := 0; y < reg.Height; y++ {
		for x := 0; x < reg.Width; x++ {
			if ch := edgeAt(chars, x, y, reg.Width, reg.Height); ch != 0 {
				r.set(reg.X+x, reg.Y+y, ch, edge)
			}
		}
	}
	if title != "" {
		r.drawText(reg.X+2, reg.Y, reg.Right()-2, title, edge.Bold(true))
	}
}
