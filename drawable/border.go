package drawable

// BorderStyle is one entry of the fixed border list a box cycles through
type BorderStyle uint8

const (
	BorderOuter BorderStyle = iota
	BorderASCII
	BorderRound
	BorderSolid
	BorderDouble
	BorderDashed
	BorderHeavy
	BorderHKey
	BorderVKey
	BorderNone
	borderCount
)

var borderNames = [borderCount]string{
	BorderOuter:  "outer",
	BorderASCII:  "ascii",
	BorderRound:  "round",
	BorderSolid:  "solid",
	BorderDouble: "double",
	BorderDashed: "dashed",
	BorderHeavy:  "heavy",
	BorderHKey:   "hkey",
	BorderVKey:   "vkey",
	BorderNone:   "none",
}

// BorderStyles returns the cycling order
func BorderStyles() []BorderStyle {
	styles := make([]BorderStyle, borderCount)
	for i := range styles {
		styles[i] = BorderStyle(i)
	}
	return styles
}

func (b BorderStyle) String() string {
	if b >= borderCount {
		return borderNames[BorderOuter]
	}
	return borderNames[b]
}

// Next returns the following style, wrapping after the last one
func (b BorderStyle) Next() BorderStyle {
	return (b + 1) % borderCount
}

// ParseBorderStyle resolves a persisted style name
// Unknown names report false and resolve to BorderOuter
func ParseBorderStyle(name string) (BorderStyle, bool) {
	for i, n := range borderNames {
		if n == name {
			return BorderStyle(i), true
		}
	}
	return BorderOuter, false
}
