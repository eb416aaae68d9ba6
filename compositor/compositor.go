// Package compositor stacks rendered template layers into per-direction
// animation frames.
//
// For every direction the request's layers are sorted by effective z-order,
// lowest first, with ties kept in request order. Each frame starts from a
// transparent canvas and every layer is painted over it; since palette
// colors are fully opaque, a painted pixel replaces what is below it and a
// transparent one leaves it alone.
//
// Layers are anchored at the top left corner of the canvas. A layer larger
// than the canvas is clipped.
package compositor

import (
	"image"
	"image/draw"
	"sort"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sprites"
	"badc0de.net/pkg/go-sprites/assets"
	"badc0de.net/pkg/go-sprites/palette"
	"badc0de.net/pkg/go-sprites/render"
	"badc0de.net/pkg/go-sprites/template"
)

// EffectiveZ is the stacking depth of t when facing dir: the direction
// override if there is one, else base when set, else the template's
// z-order.
func EffectiveZ(t *template.Template, dir sprites.Direction, base *int) int {
	if z, ok := t.ZOrderOverride[dir]; ok {
		return z
	}
	if base != nil {
		return *base
	}
	return t.ZOrder
}

// Layer is a request layer with its template and palette resolved.
type Layer struct {
	Spec     LayerSpec
	Template *template.Template
	Palette  palette.Palette
	Primary  bool
}

// Z is the layer's effective z-order facing dir.
func (l *Layer) Z(dir sprites.Direction) int {
	return EffectiveZ(l.Template, dir, l.Spec.ZOrder)
}

// Sorted returns layers in painting order for dir. The input is not
// modified.
func Sorted(layers []Layer, dir sprites.Direction) []Layer {
	out := append([]Layer(nil), layers...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Z(dir) < out[j].Z(dir)
	})
	return out
}

// Frames holds a composite's output: for every direction, one image per
// walk cycle entry.
type Frames struct {
	ID          string
	DisplayName string
	Width       int
	Height      int
	WalkCycle   []string
	FPS         int
	ByDirection map[sprites.Direction][]*image.RGBA
}

// Direction returns the frames for dir, or nil.
func (f *Frames) Direction(dir sprites.Direction) []*image.RGBA {
	return f.ByDirection[dir]
}

// Compositor composites requests against a fixed asset index.
type Compositor struct {
	Templates *template.Store
	Palettes  *palette.Store
	Renderer  render.Renderer
}

// New returns a compositor reading from src.
func New(src assets.Source, r render.Renderer) *Compositor {
	return &Compositor{
		Templates: src.Templates(),
		Palettes:  src.Palettes(),
		Renderer:  r,
	}
}

// Layers resolves req's layers in request order. A primary layer whose
// template or palette is missing fails the whole request; any other such
// layer is dropped with a warning.
func (c *Compositor) Layers(req *Request) ([]Layer, error) {
	if len(req.Layers) == 0 {
		return nil, errors.Errorf("request %q has no layers", req.ID)
	}
	out := make([]Layer, 0, len(req.Layers))
	for i, spec := range req.Layers {
		l, err := c.resolve(spec)
		if err != nil {
			if i == 0 {
				return nil, errors.Wrapf(err, "request %q: primary layer %q", req.ID, spec.Template)
			}
			glog.Warningf("request %q: skipping layer %q: %v", req.ID, spec.Template, err)
			continue
		}
		l.Primary = i == 0
		out = append(out, l)
	}
	return out, nil
}

func (c *Compositor) resolve(spec LayerSpec) (Layer, error) {
	t, err := c.Templates.Template(spec.Template)
	if err != nil {
		return Layer{}, err
	}
	p, err := c.Palettes.Palette(spec.Palette)
	if err != nil {
		return Layer{}, err
	}
	return Layer{Spec: spec, Template: t, Palette: p}, nil
}

// Composite renders every direction and walk cycle frame of req.
func (c *Compositor) Composite(req *Request) (*Frames, error) {
	layers, err := c.Layers(req)
	if err != nil {
		return nil, err
	}
	primary := layers[0].Template

	w, h := req.Width, req.Height
	if w <= 0 || h <= 0 {
		w, h = primary.Width(), primary.Height()
	}
	cycle := req.WalkCycle
	if len(cycle) == 0 {
		cycle = primary.WalkCycle
	}
	if len(cycle) == 0 {
		cycle = sprites.DefaultWalkCycle()
	}

	f := &Frames{
		ID:          req.ID,
		DisplayName: req.DisplayName,
		Width:       w,
		Height:      h,
		WalkCycle:   cycle,
		FPS:         req.FPS,
		ByDirection: make(map[sprites.Direction][]*image.RGBA, len(sprites.Directions)),
	}
	for _, dir := range sprites.Directions {
		order := Sorted(layers, dir)
		frames := make([]*image.RGBA, len(cycle))
		for i, name := range cycle {
			canvas := image.NewRGBA(image.Rect(0, 0, w, h))
			for _, l := range order {
				Paint(canvas, c.Render(l, dir, name))
			}
			frames[i] = canvas
		}
		f.ByDirection[dir] = frames
	}
	glog.V(1).Infof("composited %q: %d layers, %dx%d, %d frames per direction", req.ID, len(layers), w, h, len(cycle))
	return f, nil
}

// Render draws one layer on its own, at its template's size.
func (c *Compositor) Render(l Layer, dir sprites.Direction, frame string) *image.RGBA {
	return c.Renderer.Image(l.Template, l.Palette, dir, frame)
}

// Paint draws src over dst, both anchored at the origin.
func Paint(dst *image.RGBA, src image.Image) {
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Over)
}
