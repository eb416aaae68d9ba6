// Package template decodes layer templates: one body or equipment layer's
// per-direction, per-frame pixel grids plus the metadata the compositor
// needs to stack it.
package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sprites"
	"badc0de.net/pkg/go-sprites/palette"
)

// Cell is one grid value: either transparent or a palette key.
type Cell struct {
	key string
}

// Transparent is the empty cell.
var Transparent = Cell{}

// Key returns a cell naming palette key k. An empty key is transparent.
func Key(k string) Cell {
	return Cell{key: k}
}

// IsTransparent reports whether the cell paints nothing.
func (c Cell) IsTransparent() bool {
	return c.key == ""
}

// Key returns the palette key, or "" for a transparent cell.
func (c Cell) Key() string {
	return c.key
}

func (c Cell) String() string {
	if c.IsTransparent() {
		return "0"
	}
	return strconv.Quote(c.key)
}

// UnmarshalJSON maps 0, "0" and null to Transparent. Any other string is a
// key; any other number becomes the key of its decimal text.
func (c *Cell) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = Transparent
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "0" {
			*c = Transparent
			return nil
		}
		*c = Key(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("cell %s: want 0, null or a palette key", b)
	}
	if f, err := n.Float64(); err == nil && f == 0 {
		*c = Transparent
		return nil
	}
	*c = Key(n.String())
	return nil
}

// MarshalJSON writes transparent cells as 0 and keys as strings.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.IsTransparent() {
		return []byte("0"), nil
	}
	return json.Marshal(c.key)
}

// Grid is a list of rows of cells.
type Grid [][]Cell

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]Cell(nil), row...)
	}
	return out
}

// Equal reports whether g and o hold the same cells row by row.
func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for i := range g {
		if len(g[i]) != len(o[i]) {
			return false
		}
		for j := range g[i] {
			if g[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// Frames maps frame names (idle, walk_1, ...) to grids.
type Frames map[string]Grid

// Default size used when a template declares none.
const (
	DefaultWidth  = 48
	DefaultHeight = 48
)

// Template is a decoded template document.
type Template struct {
	ID                  string
	Type                string
	Size                [2]int
	PaletteType         palette.Type
	MirrorRightFromLeft bool
	WalkCycle           []string
	ZOrder              int
	ZOrderOverride      map[sprites.Direction]int
	Directions          map[sprites.Direction]Frames

	// HasSize is false when the document declared neither size nor
	// dimensions.
	HasSize bool
	// Source names the document the template was read from.
	Source string
	// Extra holds top-level document fields Template does not model, so
	// that Encode writes them back out.
	Extra map[string]json.RawMessage
}

type dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type rawTemplate struct {
	ID                  string                       `json:"template_id"`
	Type                string                       `json:"type,omitempty"`
	Size                []int                        `json:"size,omitempty"`
	Dimensions          *dimensions                  `json:"dimensions,omitempty"`
	PaletteType         palette.Type                 `json:"palette_type,omitempty"`
	MirrorRightFromLeft bool                         `json:"mirror_right_from_left"`
	WalkCycle           []string                     `json:"walk_cycle,omitempty"`
	ZOrder              int                          `json:"z_order"`
	ZOrderOverride      map[sprites.Direction]int    `json:"z_order_override,omitempty"`
	Directions          map[sprites.Direction]Frames `json:"directions"`
}

var knownFields = map[string]bool{
	"template_id":            true,
	"type":                   true,
	"size":                   true,
	"dimensions":             true,
	"palette_type":           true,
	"mirror_right_from_left": true,
	"walk_cycle":             true,
	"z_order":                true,
	"z_order_override":       true,
	"directions":             true,
}

// Decode reads one template document. A missing walk cycle is replaced by
// the default one; a missing size is left for the renderer to default.
func Decode(r io.Reader) (*Template, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading template")
	}
	var raw rawTemplate
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, errors.Wrap(err, "decoding template")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, errors.Wrap(err, "decoding template")
	}
	if raw.ID == "" {
		return nil, fmt.Errorf("template has no template_id")
	}

	t := &Template{
		ID:                  raw.ID,
		Type:                raw.Type,
		PaletteType:         raw.PaletteType,
		MirrorRightFromLeft: raw.MirrorRightFromLeft,
		WalkCycle:           raw.WalkCycle,
		ZOrder:              raw.ZOrder,
		ZOrderOverride:      raw.ZOrderOverride,
		Directions:          raw.Directions,
	}
	for k, v := range fields {
		if knownFields[k] {
			continue
		}
		if t.Extra == nil {
			t.Extra = make(map[string]json.RawMessage)
		}
		t.Extra[k] = v
	}
	switch {
	case len(raw.Size) == 2:
		t.Size = [2]int{raw.Size[0], raw.Size[1]}
		t.HasSize = true
	case len(raw.Size) != 0:
		return nil, fmt.Errorf("template %q: size wants [w,h], got %v", raw.ID, raw.Size)
	case raw.Dimensions != nil:
		t.Size = [2]int{raw.Dimensions.Width, raw.Dimensions.Height}
		t.HasSize = true
	}
	if t.HasSize && (t.Size[0] <= 0 || t.Size[1] <= 0) {
		return nil, fmt.Errorf("template %q: size %dx%d is not positive", t.ID, t.Size[0], t.Size[1])
	}
	if len(t.WalkCycle) == 0 {
		t.WalkCycle = sprites.DefaultWalkCycle()
	}
	if t.Directions == nil {
		t.Directions = make(map[sprites.Direction]Frames)
	}
	return t, nil
}

// Width and Height return the declared size, or the defaults.
func (t *Template) Width() int {
	if !t.HasSize {
		return DefaultWidth
	}
	return t.Size[0]
}

func (t *Template) Height() int {
	if !t.HasSize {
		return DefaultHeight
	}
	return t.Size[1]
}

// Grid returns the grid stored for (dir, frame) without any mirroring.
func (t *Template) Grid(dir sprites.Direction, frame string) (Grid, bool) {
	frames, ok := t.Directions[dir]
	if !ok {
		return nil, false
	}
	g, ok := frames[frame]
	return g, ok
}

// Clone returns a deep copy of t.
func (t *Template) Clone() *Template {
	c := *t
	c.WalkCycle = append([]string(nil), t.WalkCycle...)
	if t.ZOrderOverride != nil {
		c.ZOrderOverride = make(map[sprites.Direction]int, len(t.ZOrderOverride))
		for k, v := range t.ZOrderOverride {
			c.ZOrderOverride[k] = v
		}
	}
	if t.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(t.Extra))
		for k, v := range t.Extra {
			c.Extra[k] = v
		}
	}
	c.Directions = make(map[sprites.Direction]Frames, len(t.Directions))
	for dir, frames := range t.Directions {
		fc := make(Frames, len(frames))
		for name, g := range frames {
			fc[name] = g.Clone()
		}
		c.Directions[dir] = fc
	}
	return &c
}

// Encode writes t back out as an indented template document.
func (t *Template) Encode(w io.Writer) error {
	raw := rawTemplate{
		ID:                  t.ID,
		Type:                t.Type,
		PaletteType:         t.PaletteType,
		MirrorRightFromLeft: t.MirrorRightFromLeft,
		WalkCycle:           t.WalkCycle,
		ZOrder:              t.ZOrder,
		ZOrderOverride:      t.ZOrderOverride,
		Directions:          t.Directions,
	}
	if t.HasSize {
		raw.Size = []int{t.Size[0], t.Size[1]}
	}
	var doc interface{} = &raw
	if len(t.Extra) > 0 {
		b, err := json.Marshal(&raw)
		if err != nil {
			return errors.Wrapf(err, "encoding template %q", t.ID)
		}
		fields := make(map[string]json.RawMessage, len(t.Extra))
		for k, v := range t.Extra {
			fields[k] = v
		}
		if err := json.Unmarshal(b, &fields); err != nil {
			return errors.Wrapf(err, "encoding template %q", t.ID)
		}
		doc = fields
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrapf(err, "encoding template %q", t.ID)
	}
	return nil
}
