package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// TextWidth returns the number of cells text occupies
func TextWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate shortens text to width cells, marking the cut with an ellipsis
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, ellipsis)
}

// drawText writes text from column x, never crossing maxX, and returns the next free column
// Zero-width runes are dropped and a wide rune that would straddle maxX is not drawn
func (r *Renderer) drawText(x, y, maxX int, text string, style tcell.Style) int {
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		r.set(x, y, ch, style)
		x += w
	}
	return x
}

// fillRow paints cells [x, maxX) of row y with ch
func (r *Renderer) fillRow(x, y, maxX int, ch rune, style tcell.Style) {
	for ; x < maxX; x++ {
		r.set(x, y, ch, style)
	}
}
