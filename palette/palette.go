// Package palette resolves palette keys to colors.
//
// Two palette shapes exist. A nested palette maps group → shade → hex color
// and is addressed with dot-notation keys such as "steel_armor.highlight".
// A flat palette maps key → hex color and carries a palette_id; the flat
// shape is stored on disk as an array of {palette_id, colors} objects.
//
// Colors are validated when a palette is decoded, never per pixel.
package palette

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Palette resolves a key to an opaque color. Resolution never partially
// succeeds: a key either names a color or it does not.
type Palette interface {
	ID() string
	Resolve(key string) (color.RGBA, bool)
}

// Type tells which key syntax a template expects from its palette.
type Type string

const (
	TypeNested = Type("nested")
	TypeFlat   = Type("flat")
)

// ParseHex converts "#RRGGBB" (the leading # is optional) into an opaque
// color.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	var v [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(h[2*i])
		lo, ok2 := hexDigit(h[2*i+1])
		if !ok1 || !ok2 {
			return color.RGBA{}, fmt.Errorf("color %q: not a hex color", s)
		}
		v[i] = hi<<4 | lo
	}
	return color.RGBA{R: v[0], G: v[1], B: v[2], A: 0xFF}, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Hex formats c as "#RRGGBB".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// node is one level of a nested palette. Exactly one of leaf and children
// is meaningful.
type node struct {
	leaf     bool
	color    color.RGBA
	children map[string]*node
}

// Nested is a group → shade → color palette addressed by dot keys.
type Nested struct {
	id   string
	root *node
}

// NewNested builds a nested palette from an already decoded document. Every
// leaf must be a hex color string; every inner value must be a mapping.
func NewNested(id string, doc map[string]interface{}) (*Nested, error) {
	root, err := buildNode(doc, "")
	if err != nil {
		return nil, errors.Wrapf(err, "building nested palette %q", id)
	}
	return &Nested{id: id, root: root}, nil
}

func buildNode(doc map[string]interface{}, prefix string) (*node, error) {
	n := &node{children: make(map[string]*node, len(doc))}
	for k, v := range doc {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch v := v.(type) {
		case string:
			c, err := ParseHex(v)
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", path)
			}
			n.children[k] = &node{leaf: true, color: c}
		case map[string]interface{}:
			child, err := buildNode(v, path)
			if err != nil {
				return nil, err
			}
			n.children[k] = child
		default:
			return nil, fmt.Errorf("key %q: want color string or mapping, got %T", path, v)
		}
	}
	return n, nil
}

// DecodeNested reads a nested palette JSON document.
//
// Top-level string entries that are not colors (such as a "palette_id" or
// "description" annotation) are skipped; nested entries are held to the
// color rule.
func DecodeNested(id string, r io.Reader) (*Nested, error) {
	var doc map[string]interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrapf(err, "decoding nested palette %q", id)
	}
	for k, v := range doc {
		if s, ok := v.(string); ok {
			if _, err := ParseHex(s); err != nil {
				delete(doc, k)
			}
		}
	}
	return NewNested(id, doc)
}

func (p *Nested) ID() string {
	return p.id
}

// Resolve splits key on "." and walks the groups. A missing segment, a
// segment indexing into a color, or a key ending at a group is a miss.
func (p *Nested) Resolve(key string) (color.RGBA, bool) {
	if key == "" {
		return color.RGBA{}, false
	}
	n := p.root
	for _, part := range strings.Split(key, ".") {
		if n.leaf {
			return color.RGBA{}, false
		}
		child, ok := n.children[part]
		if !ok {
			return color.RGBA{}, false
		}
		n = child
	}
	if !n.leaf {
		return color.RGBA{}, false
	}
	return n.color, true
}

// Keys lists every resolvable dot key in lexicographic order.
func (p *Nested) Keys() []string {
	var keys []string
	var walk func(n *node, prefix string)
	walk = func(n *node, prefix string) {
		for k, child := range n.children {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			if child.leaf {
				keys = append(keys, path)
				continue
			}
			walk(child, path)
		}
	}
	walk(p.root, "")
	sort.Strings(keys)
	return keys
}

// Flat is a key → color palette bound to a palette_id.
type Flat struct {
	id     string
	colors map[string]color.RGBA
}

// NewFlat builds a flat palette from key → hex pairs.
func NewFlat(id string, colors map[string]string) (*Flat, error) {
	p := &Flat{id: id, colors: make(map[string]color.RGBA, len(colors))}
	for k, v := range colors {
		c, err := ParseHex(v)
		if err != nil {
			return nil, errors.Wrapf(err, "palette %q key %q", id, k)
		}
		p.colors[k] = c
	}
	return p, nil
}

func (p *Flat) ID() string {
	return p.id
}

func (p *Flat) Resolve(key string) (color.RGBA, bool) {
	c, ok := p.colors[key]
	return c, ok
}

type flatDoc struct {
	PaletteID string            `json:"palette_id"`
	Colors    map[string]string `json:"colors"`
}

// DecodeFlatList reads a flat palette file. The usual shape is an array of
// {palette_id, colors}; a single such object is accepted as well. Palettes
// come back in document order.
func DecodeFlatList(r io.Reader) ([]*Flat, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decoding flat palette file")
	}

	var docs []flatDoc
	if t := firstToken(raw); t == '[' {
		if err := json.Unmarshal(raw, &docs); err != nil {
			return nil, errors.Wrap(err, "decoding flat palette list")
		}
	} else {
		var one flatDoc
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, errors.Wrap(err, "decoding flat palette object")
		}
		docs = []flatDoc{one}
	}

	out := make([]*Flat, 0, len(docs))
	for i, d := range docs {
		if d.PaletteID == "" {
			return nil, fmt.Errorf("flat palette entry %d has no palette_id", i)
		}
		p, err := NewFlat(d.PaletteID, d.Colors)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func firstToken(raw []byte) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b
	}
	return 0
}
