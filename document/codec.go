// Package document converts a scene to and from its persisted JSON document
//
// The document is one object: a key per drawable id holding its fragment,
// "layers" listing ids back to front and "background" for the canvas chrome.
package document

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/Cvaniak/NoteSH/canvas"
	"github.com/Cvaniak/NoteSH/drawable"
)

// Reserved top-level keys
const (
	keyLayers     = "layers"
	keyBackground = "background"
)

const indent = "    "

// maxCoordinate bounds stored geometry so conversion to int cannot overflow
const maxCoordinate = 1 << 31

var (
	// ErrNotObject is returned when the document parses but is not a JSON object
	ErrNotObject = errors.New("document is not a JSON object")
	// ErrInvalid is returned when the top-level shape violates the document schema
	ErrInvalid = errors.New("invalid document")
)

// Entry is one drawable in load order
type Entry struct {
	ID       drawable.ID
	Fragment drawable.Fragment
}

// Skip records a document key that could not be loaded
type Skip struct {
	Key    string
	Reason string
}

// Loaded is a decoded document ready to be restored into a scene
type Loaded struct {
	Entries       []Entry // Back to front
	Background    canvas.Background
	HasBackground bool
	Skipped       []Skip
	Raw           []byte // Bytes as read by Load, nil when nothing was stored
}

type backgroundFragment struct {
	Color       string `json:"color"`
	BorderColor string `json:"border_color"`
	Type        string `json:"type"`
}

// Encode serializes a scene snapshot
// layers only lists ids that have a fragment, fragments missing from layers are appended in key order
func Encode(snap canvas.Snapshot) ([]byte, error) {
	layers := make([]drawable.ID, 0, len(snap.Fragments))
	listed := make(map[drawable.ID]bool, len(snap.Fragments))
	for _, id := range snap.Layers {
		if _, ok := snap.Fragments[id]; ok && !listed[id] {
			layers = append(layers, id)
			listed[id] = true
		}
	}
	var rest []drawable.ID
	for id := range snap.Fragments {
		if !listed[id] {
			rest = append(rest, id)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	layers = append(layers, rest...)

	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeMember(&buf, keyLayers, layers, true); err != nil {
		return nil, err
	}
	for _, id := range layers {
		if err := writeMember(&buf, string(id), snap.Fragments[id], false); err != nil {
			return nil, err
		}
	}
	bg := backgroundFragment{
		Color:       snap.Background.Color.Hex(),
		BorderColor: snap.Background.BorderColor.Hex(),
		Type:        snap.Background.Style,
	}
	if err := writeMember(&buf, keyBackground, bg, false); err != nil {
		return nil, err
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", indent); err != nil {
		return nil, fmt.Errorf("indent document: %w", err)
	}
	return out.Bytes(), nil
}

// writeMember appends "key": value to an object being built in key order
func writeMember(buf *bytes.Buffer, key string, value any, first bool) error {
	k, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("encode key %q: %w", key, err)
	}
	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if !first {
		buf.WriteByte(',')
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// Decode parses a document
// Empty input and {} decode to an empty document. Malformed fragments and
// dangling layer entries are skipped and reported, anything that is not a
// JSON object is an error
func Decode(data []byte) (Loaded, error) {
	loaded := Loaded{Background: canvas.DefaultBackground()}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return loaded, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		if json.Valid(data) {
			return Loaded{}, ErrNotObject
		}
		return Loaded{}, fmt.Errorf("parse document: %w", err)
	}
	if top == nil {
		return Loaded{}, ErrNotObject
	}

	if err := loadSchemas(); err != nil {
		return Loaded{}, err
	}
	if err := validate(documentSchema, data); err != nil {
		return Loaded{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var layers []string
	if raw, ok := top[keyLayers]; ok {
		if err := json.Unmarshal(raw, &layers); err != nil {
			return Loaded{}, fmt.Errorf("%w: layers: %v", ErrInvalid, err)
		}
	}

	if raw, ok := top[keyBackground]; ok {
		bg, err := decodeBackground(raw)
		if err != nil {
			loaded.Skipped = append(loaded.Skipped, Skip{Key: keyBackground, Reason: err.Error()})
		} else {
			loaded.Background = bg
			loaded.HasBackground = true
		}
	}

	fragments := make(map[string]drawable.Fragment, len(top))
	rejected := make(map[string]bool)
	for key, raw := range top {
		if key == keyLayers || key == keyBackground {
			continue
		}
		f, err := decodeFragment(raw)
		if err != nil {
			rejected[key] = true
			loaded.Skipped = append(loaded.Skipped, Skip{Key: key, Reason: err.Error()})
			continue
		}
		fragments[key] = f
	}

	for _, key := range loadOrder(layers, fragments, rejected, &loaded) {
		loaded.Entries = append(loaded.Entries, Entry{ID: drawable.ID(key), Fragment: fragments[key]})
	}
	sort.SliceStable(loaded.Skipped, func(i, j int) bool { return loaded.Skipped[i].Key < loaded.Skipped[j].Key })
	return loaded, nil
}

// loadOrder follows layers, dropping dangling and repeated entries,
// then appends unlisted fragments in sorted key order
func loadOrder(layers []string, fragments map[string]drawable.Fragment, rejected map[string]bool, loaded *Loaded) []string {
	order := make([]string, 0, len(fragments))
	seen := make(map[string]bool, len(fragments))
	for _, key := range layers {
		if _, ok := fragments[key]; !ok {
			if rejected[key] {
				continue
			}
			loaded.Skipped = append(loaded.Skipped, Skip{Key: key, Reason: "layer without drawable"})
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		order = append(order, key)
	}

	var rest []string
	for key := range fragments {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// wireFragment mirrors drawable.Fragment with float geometry
// Older documents store positions and sizes as 10.0 rather than 10
type wireFragment struct {
	Body        string     `json:"body"`
	Pos         [2]float64 `json:"pos"`
	Color       string     `json:"color"`
	Size        [2]float64 `json:"size"`
	Type        string     `json:"type"`
	Title       *string    `json:"title"`
	BorderColor string     `json:"border_color"`
	BorderType  string     `json:"border_type"`
}

func decodeFragment(raw json.RawMessage) (drawable.Fragment, error) {
	var f drawable.Fragment
	if err := validate(fragmentSchema, raw); err != nil {
		return f, err
	}
	var w wireFragment
	if err := json.Unmarshal(raw, &w); err != nil {
		return f, err
	}
	pos, err := wholePair("pos", w.Pos)
	if err != nil {
		return f, err
	}
	size, err := wholePair("size", w.Size)
	if err != nil {
		return f, err
	}
	return drawable.Fragment{
		Body:        w.Body,
		Pos:         pos,
		Color:       w.Color,
		Size:        size,
		Type:        w.Type,
		Title:       w.Title,
		BorderColor: w.BorderColor,
		BorderType:  w.BorderType,
	}, nil
}

// wholePair converts integral floats, a fractional value rejects the fragment
func wholePair(name string, v [2]float64) ([2]int, error) {
	var out [2]int
	for i, f := range v {
		if f != math.Trunc(f) || math.Abs(f) > maxCoordinate {
			return [2]int{}, fmt.Errorf("%s[%d] is not a whole cell count: %v", name, i, f)
		}
		out[i] = int(f)
	}
	return out, nil
}

// decodeBackground fails on a malformed background, bad colors fall back individually
func decodeBackground(raw json.RawMessage) (canvas.Background, error) {
	bg := canvas.DefaultBackground()
	if err := validate(backgroundSchema, raw); err != nil {
		return bg, err
	}
	var f backgroundFragment
	if err := json.Unmarshal(raw, &f); err != nil {
		return bg, err
	}
	if c, err := drawable.ParseColor(f.Color); err == nil {
		bg.Color = c
	}
	if c, err := drawable.ParseColor(f.BorderColor); err == nil {
		bg.BorderColor = c
	}
	if f.Type != "" {
		bg.Style = f.Type
	}
	return bg, nil
}
