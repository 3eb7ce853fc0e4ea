package drawable

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 24-bit RGB color
type Color struct {
	R, G, B uint8
}

// Default colors of a freshly created drawable
var (
	DefaultColor       = Color{0xFF, 0xAA, 0x00}
	DefaultBorderColor = Color{0xFF, 0xAA, 0x00}
)

// Channel selects one RGB component
type Channel uint8

const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
)

// Random colors stay away from the extremes so text remains readable
const (
	randomChannelMin = 30
	randomChannelMax = 220
)

// ParseColor accepts "#rgb" and "#rrggbb" in any case, the leading '#' is optional
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// MustColor parses s and panics on failure, for literals only
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the "#RRGGBB" form written to documents
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// Brightness returns perceived brightness in [0,1]
func (c Color) Brightness() float64 {
	return (299*float64(c.R) + 587*float64(c.G) + 114*float64(c.B)) / 1000 / 255
}

// Lighten raises Lab lightness by amount (0..1)
func (c Color) Lighten(amount float64) Color {
	l, a, b := c.colorful().Lab()
	l += amount
	if l > 1 {
		l = 1
	}
	if l < 0 {
		l = 0
	}
	return fromColorful(colorful.Lab(l, a, b))
}

// Darken lowers Lab lightness by amount (0..1)
func (c Color) Darken(amount float64) Color {
	return c.Lighten(-amount)
}

// Highlight is the hover variant: darker for very bright colors, lighter otherwise
func (c Color) Highlight() Color {
	if c.Brightness() > 0.9 {
		return c.Darken(0.1)
	}
	return c.Lighten(0.1)
}

// NudgeChannel shifts one channel by delta, clamped to 0..255
func (c Color) NudgeChannel(ch Channel, delta int) Color {
	nudge := func(v uint8) uint8 {
		n := int(v) + delta
		if n < 0 {
			n = 0
		}
		if n > 255 {
			n = 255
		}
		return uint8(n)
	}
	switch ch {
	case ChannelR:
		c.R = nudge(c.R)
	case ChannelG:
		c.G = nudge(c.G)
	case ChannelB:
		c.B = nudge(c.B)
	}
	return c
}

// RandomColor picks every channel uniformly in 30..220
func RandomColor(rng *rand.Rand) Color {
	pick := func() uint8 {
		return uint8(randomChannelMin + rng.Intn(randomChannelMax-randomChannelMin+1))
	}
	return Color{R: pick(), G: pick(), B: pick()}
}

// NotePalette returns the four shades a sticky note is painted with
func NotePalette(c Color) (lighter, base, darker, muchDarker Color) {
	return c.Lighten(0.13), c, c.Darken(0.12), c.Darken(0.3)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(cc colorful.Color) Color {
	r, g, b := cc.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
