package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Cvaniak/NoteSH/drawable"
)

// Chrome colors, drawables bring their own
var (
	RgbStatusBg   = tcell.NewRGBColor(24, 24, 37)    // Mantle
	RgbStatusFg   = tcell.NewRGBColor(205, 214, 244) // Text
	RgbStatusMode = tcell.NewRGBColor(255, 170, 0)   // Amber, matches the default note
	RgbStatusDim  = tcell.NewRGBColor(127, 132, 156) // Overlay

	RgbFocusMarker = tcell.NewRGBColor(255, 255, 255) // White

	RgbPanelBg     = tcell.NewRGBColor(30, 30, 46)    // Base
	RgbPanelFg     = tcell.NewRGBColor(205, 214, 244) // Text
	RgbPanelBorder = tcell.NewRGBColor(137, 180, 250) // Blue
	RgbPanelLabel  = tcell.NewRGBColor(166, 173, 200) // Subtext
	RgbFieldBg     = tcell.NewRGBColor(49, 50, 68)    // Surface
	RgbFieldActive = tcell.NewRGBColor(69, 71, 90)    // Surface, raised

	RgbHelpSection = tcell.NewRGBColor(249, 226, 175) // Yellow
	RgbHelpKey     = tcell.NewRGBColor(166, 227, 161) // Green
)

// Text colors picked against a drawable fill
var (
	textOnLight = drawable.Color{R: 0x1E, G: 0x1E, B: 0x2E}
	textOnDark  = drawable.Color{R: 0xF0, G: 0xF0, B: 0xF0}
)

// TcellColor converts a drawable color to a true-color tcell color
func TcellColor(c drawable.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// TextColor returns a readable foreground for text painted on bg
func TextColor(bg drawable.Color) drawable.Color {
	if bg.Brightness() > 0.55 {
		return textOnLight
	}
	return textOnDark
}
