// Package render rasterizes one template's (direction, frame) grid into a
// flat RGBA buffer using a palette.
package render

import (
	"image"
	"image/color"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-sprites"
	"badc0de.net/pkg/go-sprites/mirror"
	"badc0de.net/pkg/go-sprites/palette"
	"badc0de.net/pkg/go-sprites/template"
)

// Mode selects what an unresolved palette key paints.
type Mode int

const (
	// ModeTransparent paints unresolved keys transparent.
	ModeTransparent Mode = iota
	// ModeMarker paints unresolved keys in the marker color so authoring
	// mistakes stand out.
	ModeMarker
)

func (m Mode) String() string {
	switch m {
	case ModeTransparent:
		return "transparent"
	case ModeMarker:
		return "marker"
	default:
		return "unknown"
	}
}

// ParseMode maps "transparent" and "marker" to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "transparent", "":
		return ModeTransparent, true
	case "marker":
		return ModeMarker, true
	}
	return ModeTransparent, false
}

var (
	transparent = color.RGBA{}
	// DefaultMarker is magenta.
	DefaultMarker = color.RGBA{0xFF, 0x00, 0xFF, 0xFF}
)

// Renderer rasterizes layers. The zero value renders unresolved keys
// transparent.
type Renderer struct {
	Mode   Mode
	Marker color.RGBA
}

// Source returns the direction whose grid supplies dir, and whether that
// grid has to be mirrored. Right is taken from a mirrored left only when
// the template asks for it and stores no right frames of its own.
func Source(t *template.Template, dir sprites.Direction) (sprites.Direction, bool) {
	if dir != sprites.Right || !t.MirrorRightFromLeft {
		return dir, false
	}
	if _, ok := t.Directions[sprites.Right]; ok {
		return dir, false
	}
	return sprites.Left, true
}

// Layer renders (dir, frame) of t with p into a row-major buffer of exactly
// width*height pixels, where the size comes from the template. A missing
// direction or frame yields an all-transparent buffer.
func (r *Renderer) Layer(t *template.Template, p palette.Palette, dir sprites.Direction, frame string) []color.RGBA {
	w, h := t.Width(), t.Height()
	out := make([]color.RGBA, w*h)

	src, mirrored := Source(t, dir)
	g, ok := t.Grid(src, frame)
	if !ok {
		glog.V(2).Infof("template %q has no %s/%s; layer left empty", t.ID, src, frame)
		return out
	}
	if mirrored {
		g = mirror.Frame(g)
	}

	marker := r.Marker
	if marker == (color.RGBA{}) {
		marker = DefaultMarker
	}
	cache := make(map[string]color.RGBA)
	for y := 0; y < h && y < len(g); y++ {
		row := g[y]
		for x := 0; x < w && x < len(row); x++ {
			cell := row[x]
			if cell.IsTransparent() {
				continue
			}
			c, seen := cache[cell.Key()]
			if !seen {
				var ok bool
				c, ok = p.Resolve(cell.Key())
				if !ok {
					glog.Warningf("template %q %s/%s: key %q not in palette %q", t.ID, dir, frame, cell.Key(), p.ID())
					c = transparent
					if r.Mode == ModeMarker {
						c = marker
					}
				}
				cache[cell.Key()] = c
			}
			out[y*w+x] = c
		}
	}
	return out
}

// Image renders like Layer and wraps the buffer in an image.
func (r *Renderer) Image(t *template.Template, p palette.Palette, dir sprites.Direction, frame string) *image.RGBA {
	return ToImage(r.Layer(t, p, dir, frame), t.Width(), t.Height())
}

// ToImage copies a row-major buffer into a w x h image. Short buffers leave
// the remainder transparent; extra pixels are ignored.
func ToImage(buf []color.RGBA, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(buf) && i < w*h; i++ {
		img.SetRGBA(i%w, i/w, buf[i])
	}
	return img
}
