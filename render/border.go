package render

import "github.com/Cvaniak/NoteSH/drawable"

const (
	edgeTL = iota // top-left
	edgeT         // top
	edgeTR        // top-right
	edgeL         // left
	edgeR         // right
	edgeBL        // bottom-left
	edgeB         // bottom
	edgeBR        // bottom-right
)

// borderChars holds one character per edge position, indexed by border style
// Left and right differ for the half-block styles
var borderChars = [...][8]rune{
	drawable.BorderOuter:  {'▛', '▀', '▜', '▌', '▐', '▙', '▄', '▟'},
	drawable.BorderASCII:  {'+', '-', '+', '|', '|', '+', '-', '+'},
	drawable.BorderRound:  {'╭', '─', '╮', '│', '│', '╰', '─', '╯'},
	drawable.BorderSolid:  {'┌', '─', '┐', '│', '│', '└', '─', '┘'},
	drawable.BorderDouble: {'╔', '═', '╗', '║', '║', '╚', '═', '╝'},
	drawable.BorderDashed: {'┏', '╍', '┓', '╏', '╏', '┗', '╍', '┛'},
	drawable.BorderHeavy:  {'┏', '━', '┓', '┃', '┃', '┗', '━', '┛'},
	drawable.BorderHKey:   {'▔', '▔', '▔', ' ', ' ', '▁', '▁', '▁'},
	drawable.BorderVKey:   {'▏', ' ', '▕', '▏', '▕', '▏', ' ', '▕'},
	drawable.BorderNone:   {' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '},
}

// BorderChars returns the edge set of a style, unknown styles draw as outer
func BorderChars(style drawable.BorderStyle) [8]rune {
	if int(style) >= len(borderChars) {
		style = drawable.BorderOuter
	}
	return borderChars[style]
}

// edgeAt picks the character for cell (x, y) of a w by h frame, 0 when interior
func edgeAt(chars [8]rune, x, y, w, h int) rune {
	top, bottom := y == 0, y == h-1
	left, right := x == 0, x == w-1
	switch {
	case top && left:
		return chars[edgeTL]
	case top && right:
		return chars[edgeTR]
	case bottom && left:
		return chars[edgeBL]
	case bottom && right:
		return chars[edgeBR]
	case top:
		return chars[edgeT]
	case bottom:
		return chars[edgeB]
	case left:
		return chars[edgeL]
	case right:
		return chars[edgeR]
	}
	return 0
}
