package drawable

import "github.com/Cvaniak/NoteSH/core"

// Kind tags the closed set of drawable variants
type Kind uint8

const (
	KindPlain Kind = iota
	KindBox
	KindNote
	kindCount
)

// Field names an editable property a variant exposes to the editor panel
type Field uint8

const (
	FieldTitle Field = iota
	FieldBody
	FieldBodyColor
	FieldBorderColor
	FieldBorderStyle
	FieldDelete
)

// shape is one row of the dispatch table
// Nil hooks mean the variant carries no extra state for that step
type shape struct {
	tag    string
	name   string
	fields []Field
	init   func(d *Drawable)
	encode func(d *Drawable, f *Fragment)
	decode func(d *Drawable, f Fragment)
	cycle  func(d *Drawable) bool
}

var shapes = [kindCount]shape{
	KindPlain: {
		tag:    "drawable",
		name:   "plain",
		fields: []Field{FieldBodyColor, FieldDelete},
	},
	KindBox: {
		tag:    "box",
		name:   "box",
		fields: []Field{FieldBody, FieldBodyColor, FieldBorderStyle, FieldBorderColor, FieldDelete},
		init: func(d *Drawable) {
			d.border = DefaultBorderColor
			d.borderStyle = BorderOuter
		},
		encode: func(d *Drawable, f *Fragment) {
			f.BorderColor = d.border.Hex()
			f.BorderType = d.borderStyle.String()
		},
		decode: func(d *Drawable, f Fragment) {
			if c, err := ParseColor(f.BorderColor); err == nil {
				d.border = c
			}
			d.borderStyle, _ = ParseBorderStyle(f.BorderType)
		},
		cycle: func(d *Drawable) bool {
			d.borderStyle = d.borderStyle.Next()
			return true
		},
	},
	KindNote: {
		tag:    "note",
		name:   "note",
		fields: []Field{FieldTitle, FieldBody, FieldBodyColor, FieldDelete},
		encode: func(d *Drawable, f *Fragment) {
			title := d.title
			f.Title = &title
		},
		decode: func(d *Drawable, f Fragment) {
			if f.Title != nil {
				d.title = *f.Title
			}
		},
	},
}

// plainAlias is accepted on load next to the historical "drawable" tag
const plainAlias = "plain"

// KindFromTag resolves a persisted type tag, unknown tags fall back to KindPlain
func KindFromTag(tag string) Kind {
	if tag == plainAlias {
		return KindPlain
	}
	for k := range shapes {
		if shapes[k].tag == tag {
			return Kind(k)
		}
	}
	return KindPlain
}

// Tag returns the type tag written to documents
func (k Kind) Tag() string {
	if k >= kindCount {
		return shapes[KindPlain].tag
	}
	return shapes[k].tag
}

func (k Kind) String() string {
	if k >= kindCount {
		return shapes[KindPlain].name
	}
	return shapes[k].name
}

// Kinds returns all variants in declaration order
func Kinds() []Kind {
	return []Kind{KindPlain, KindBox, KindNote}
}

// Fields lists the editable properties of the variant
func (k Kind) Fields() []Field {
	if k >= kindCount {
		k = KindPlain
	}
	out := make([]Field, len(shapes[k].fields))
	copy(out, shapes[k].fields)
	return out
}

// Has reports whether the variant exposes field
func (k Kind) Has(field Field) bool {
	if k >= kindCount {
		k = KindPlain
	}
	for _, f := range shapes[k].fields {
		if f == field {
			return true
		}
	}
	return false
}

// New creates a drawable of the given kind with its defaults
// An empty id is replaced by a fresh one
func New(kind Kind, id ID) *Drawable {
	if kind >= kindCount {
		kind = KindPlain
	}
	if id == "" {
		id = NewID()
	}
	d := &Drawable{
		id:    id,
		kind:  kind,
		size:  DefaultSize,
		color: DefaultColor,
	}
	if init := shapes[kind].init; init != nil {
		init(d)
	}
	return d
}

// Decode rebuilds a drawable from its fragment
// correction is subtracted from the stored position to re-anchor the document
func Decode(f Fragment, id ID, correction core.Offset) *Drawable {
	kind := KindFromTag(f.Type)
	d := New(kind, id)

	d.pos = core.Offset{X: f.Pos[0], Y: f.Pos[1]}.Sub(correction)
	d.size = f.dimensions()
	if c, err := ParseColor(f.Color); err == nil {
		d.color = c
	}
	d.body = f.Body

	if decode := shapes[kind].decode; decode != nil {
		decode(d, f)
	}
	return d
}
