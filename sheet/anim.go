package sheet

import (
	"image"
	"image/color"
	"image/gif"

	"github.com/andybons/gogif"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sprites"
	"badc0de.net/pkg/go-sprites/compositor"
)

// DefaultFPS is the walk cycle playback speed when none is configured.
const DefaultFPS = 8

// Quantizer picks the palette reduction used when an animation has more
// than 255 distinct colors.
type Quantizer int

const (
	// MedianCut is gogif's median cut.
	MedianCut Quantizer = iota
	// MedianCutWeighted is go-quantize's median cut.
	MedianCutWeighted
)

func (q Quantizer) String() string {
	switch q {
	case MedianCut:
		return "gogif"
	case MedianCutWeighted:
		return "go-quantize"
	default:
		return "unknown"
	}
}

// ParseQuantizer maps "gogif" and "go-quantize" to a Quantizer.
func ParseQuantizer(s string) (Quantizer, bool) {
	switch s {
	case "gogif", "":
		return MedianCut, true
	case "go-quantize":
		return MedianCutWeighted, true
	}
	return MedianCut, false
}

// AnimOptions control GIF encoding.
type AnimOptions struct {
	// Scale is the integer upscale factor; 0 means DefaultPreviewScale.
	Scale int
	// FPS is the playback speed; 0 means DefaultFPS.
	FPS       int
	Quantizer Quantizer
}

func (o AnimOptions) scale() int {
	if o.Scale <= 0 {
		return DefaultPreviewScale
	}
	return o.Scale
}

// Delay is the per-frame delay in hundredths of a second for fps.
func Delay(fps int) int {
	if fps <= 0 {
		fps = DefaultFPS
	}
	d := 100 / fps
	if d < 1 {
		d = 1
	}
	return d
}

// maxColors leaves palette index 0 for transparency.
const maxColors = 255

// animPalette returns the palette shared by every frame. Index 0 is
// transparent. Frames with at most 255 opaque colors keep them exactly.
func animPalette(frames []image.Image, q Quantizer) color.Palette {
	seen := make(map[color.RGBA]bool)
	var exact color.Palette
	for _, img := range frames {
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
				if c.A == 0 || seen[c] {
					continue
				}
				seen[c] = true
				exact = append(exact, c)
			}
		}
	}
	pal := color.Palette{color.Transparent}
	if len(exact) <= maxColors {
		return append(pal, exact...)
	}

	// Quantize all frames together so they share one palette.
	strip := stack(frames)
	switch q {
	case MedianCutWeighted:
		mc := quantize.MedianCutQuantizer{}
		pal = append(pal, mc.Quantize(make(color.Palette, 0, maxColors), strip)...)
	default:
		p := image.NewPaletted(strip.Bounds(), nil)
		mc := gogif.MedianCutQuantizer{NumColor: maxColors}
		mc.Quantize(p, strip.Bounds(), strip, image.Point{})
		pal = append(pal, p.Palette...)
	}
	return pal
}

// stack pastes frames one under the other.
func stack(frames []image.Image) *image.RGBA {
	w, h := 0, 0
	for _, f := range frames {
		if f.Bounds().Dx() > w {
			w = f.Bounds().Dx()
		}
		h += f.Bounds().Dy()
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	y := 0
	for _, f := range frames {
		paste(img, image.Pt(0, y), f)
		y += f.Bounds().Dy()
	}
	return img
}

// toPaletted maps img onto pal. Transparent pixels take index 0; opaque
// ones take the nearest opaque entry.
func toPaletted(img image.Image, pal color.Palette) *image.Paletted {
	b := img.Bounds()
	out := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal)
	opaque := pal[1:]
	cache := make(map[color.RGBA]uint8)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if c.A == 0 || len(opaque) == 0 {
				continue
			}
			idx, ok := cache[c]
			if !ok {
				idx = uint8(opaque.Index(c) + 1)
				cache[c] = idx
			}
			out.SetColorIndex(x-b.Min.X, y-b.Min.Y, idx)
		}
	}
	return out
}

// Animation encodes frames, already at their final size, as an infinitely
// looping GIF with one frame per image.
func Animation(frames []image.Image, fps int, q Quantizer) (*gif.GIF, error) {
	if len(frames) == 0 {
		return nil, errors.New("animation has no frames")
	}
	pal := animPalette(frames, q)
	g := &gif.GIF{
		LoopCount:       0,
		BackgroundIndex: 0,
	}
	for _, img := range frames {
		g.Image = append(g.Image, toPaletted(img, pal))
		g.Delay = append(g.Delay, Delay(fps))
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	return g, nil
}

// DirectionAnimation animates one direction's walk cycle.
func DirectionAnimation(f *compositor.Frames, dir sprites.Direction, o AnimOptions) (*gif.GIF, error) {
	var frames []image.Image
	for _, fr := range f.Direction(dir) {
		frames = append(frames, Scale(fr, o.scale()))
	}
	if len(frames) == 0 {
		return nil, errors.Errorf("%q has no %s frames", f.ID, dir)
	}
	return Animation(frames, o.FPS, o.Quantizer)
}

// combinedLayout is the 2x2 direction grid of CombinedAnimation.
var combinedLayout = [2][2]sprites.Direction{
	{sprites.Down, sprites.Right},
	{sprites.Left, sprites.Up},
}

// CombinedAnimation tiles all four directions into one labeled 2x2 grid,
// down and right on top, left and up below. It has as many frames as the
// shortest direction.
func CombinedAnimation(f *compositor.Frames, o AnimOptions) (*gif.GIF, error) {
	scale := o.scale()
	n := -1
	for _, dir := range sprites.Directions {
		if c := len(f.Direction(dir)); n < 0 || c < n {
			n = c
		}
	}
	if n <= 0 {
		return nil, errors.Errorf("%q is missing frames for at least one direction", f.ID)
	}

	cw, ch := f.Width*scale, f.Height*scale
	pad := padding(scale)
	gridW := cw*2 + pad
	gridH := (ch+labelHeight)*2 + pad

	frames := make([]image.Image, n)
	for i := 0; i < n; i++ {
		canvas := image.NewRGBA(image.Rect(0, 0, gridW, gridH))
		for row, dirs := range combinedLayout {
			for col, dir := range dirs {
				x := col * (cw + pad)
				y := row * (ch + labelHeight + pad)
				drawCentered(canvas, x, y, cw, sprites.Label(dir), labelColor)
				paste(canvas, image.Pt(x, y+labelHeight), Scale(f.Direction(dir)[i], scale))
			}
		}
		frames[i] = canvas
	}
	return Animation(frames, o.FPS, o.Quantizer)
}
