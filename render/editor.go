package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Cvaniak/NoteSH/core"
	"github.com/Cvaniak/NoteSH/drawable"
)

const swatch = "■■"

// drawEditor paints the sidebar: color targets, then the title and body fields
func (r *Renderer) drawEditor(e Editor, reg core.Region) {
	if reg.Width < 6 || reg.Height < 6 {
		return
	}
	r.panel(reg, " Edit "+e.Kind.String()+" ")

	base := tcell.StyleDefault.Background(RgbPanelBg).Foreground(RgbPanelFg)
	label := base.Foreground(RgbPanelLabel)
	left, maxX := reg.X+2, reg.Right()-2
	y := reg.Y + 1

	y = r.drawSwatch(left, y, maxX, "body", e.Color, e.Target == drawable.TargetBody, base)
	if e.HasBorder {
		y = r.drawSwatch(left, y, maxX, "border", e.BorderColor, e.Target == drawable.TargetBorder, base)
		r.drawText(left, y, maxX, "style  "+e.BorderStyle.String(), label)
		y++
	}
	y++

	fieldWidth := maxX - left
	if e.HasTitle {
		r.drawText(left, y, maxX, "Title", label)
		y++
		active := e.Field == FieldTitle
		r.drawField(left, y, fieldWidth, e.Title, active)
		if active {
			r.placeCursor(left, y, fieldWidth, e.Title, e.Col)
		}
		y += 2
	}

	r.drawText(left, y, maxX, "Body", label)
	y++
	visible := reg.Bottom() - 1 - y
	if visible <= 0 {
		return
	}
	first := 0
	if e.Field == FieldBody && e.Row >= visible {
		first = e.Row - visible + 1
	}
	for i := 0; i < visible; i++ {
		row := first + i
		text := ""
		if row < len(e.Lines) {
			text = e.Lines[row]
		}
		active := e.Field == FieldBody && row == e.Row
		r.drawField(left, y+i, fieldWidth, text, active)
		if active {
			r.placeCursor(left, y+i, fieldWidth, text, e.Col)
		}
	}
}

// drawSwatch writes a color line, the active target is marked with an arrow
func (r *Renderer) drawSwatch(x, y, maxX int, name string, c drawable.Color, active bool, base tcell.Style) int {
	marker := "  "
	if active {
		marker = "▸ "
	}
	x = r.drawText(x, y, maxX, marker+name+strings.Repeat(" ", max(0, 7-len(name))), base)
	x = r.drawText(x, y, maxX, swatch, base.Foreground(TcellColor(c)))
	r.drawText(x+1, y, maxX, c.Hex(), base)
	return y + 1
}

// drawField paints a one-line input, long text keeps its tail visible
func (r *Renderer) drawField(x, y, width int, text string, active bool) {
	bg := RgbFieldBg
	if active {
		bg = RgbFieldActive
	}
	style := tcell.StyleDefault.Background(bg).Foreground(RgbPanelFg)
	r.fillRow(x, y, x+width, ' ', style)
	r.drawText(x, y, x+width, visibleTail(text, width), style)
}

// placeCursor shows the terminal cursor after col runes of text
func (r *Renderer) placeCursor(x, y, width int, text string, col int) {
	runes := []rune(text)
	col = max(0, min(col, len(runes)))
	cx := TextWidth(string(runes[:col]))
	if full := TextWidth(text); full >= width {
		cx -= full - width + 1
	}
	r.screen.ShowCursor(x+max(0, min(cx, width-1)), y)
}

// visibleTail drops leading runes until text leaves one free cell in width
func visibleTail(text string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(text)
	for len(runes) > 0 && TextWidth(string(runes)) >= width {
		runes = runes[1:]
	}
	return string(runes)
}
