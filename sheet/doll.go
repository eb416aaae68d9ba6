package sheet

import (
	"image"
	"image/color"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"badc0de.net/pkg/go-sprites"
	"badc0de.net/pkg/go-sprites/compositor"
)

var (
	dollBackground    = color.RGBA{30, 30, 35, 255}
	contactBackground = color.RGBA{40, 40, 40, 255}
)

// Cell is one isolated layer of a paper doll.
type Cell struct {
	Label string
	Image image.Image
}

// LayerLabel turns a template id into a paper-doll label.
func LayerLabel(templateID string) string {
	return strings.ReplaceAll(templateID, "_", " ")
}

func padding(scale int) int {
	if scale < 2 {
		return 2
	}
	return scale
}

// PaperDoll lays cells out left to right on a dark background, each
// upscaled by scale with its label centered under it. Labels wider than a
// cell are cut short with "...". A non-empty title is centered above the
// strip. Every cell is sized after the first one; other layers are scaled
// to fit it.
func PaperDoll(cells []Cell, scale int, title string) (*image.RGBA, error) {
	if len(cells) == 0 {
		return nil, errors.New("paper doll has no layers")
	}
	if scale < 1 {
		scale = 1
	}
	fb := cells[0].Image.Bounds()
	cw, ch := fb.Dx()*scale, fb.Dy()*scale
	pad := padding(scale)

	titleH := 0
	if title != "" {
		titleH = labelHeight + 2*pad
	}
	n := len(cells)
	w := n*cw + (n-1)*pad
	h := titleH + ch + labelHeight + 2 + pad

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(dollBackground), image.Point{}, draw.Src)
	if title != "" {
		drawCentered(img, 0, pad, w, truncate(title, w), dollTitle)
	}
	for i, c := range cells {
		x := i * (cw + pad)
		dst := image.Rect(x, titleH, x+cw, titleH+ch)
		draw.NearestNeighbor.Scale(img, dst, c.Image, c.Image.Bounds(), draw.Over, nil)
		drawCentered(img, x, titleH+ch+2, cw, truncate(c.Label, cw), dollLabel)
	}
	return img, nil
}

// PaperDollFromLayers renders every resolved layer of req in isolation,
// facing down, in its first walk cycle frame.
func PaperDollFromLayers(c *compositor.Compositor, req *compositor.Request, scale int, title string) (*image.RGBA, error) {
	layers, err := c.Layers(req)
	if err != nil {
		return nil, err
	}
	frame := "idle"
	if len(req.WalkCycle) > 0 {
		frame = req.WalkCycle[0]
	} else if wc := layers[0].Template.WalkCycle; len(wc) > 0 {
		frame = wc[0]
	}
	cells := make([]Cell, 0, len(layers))
	for _, l := range layers {
		cells = append(cells, Cell{
			Label: LayerLabel(l.Template.ID),
			Image: c.Render(l, sprites.Down, frame),
		})
	}
	return PaperDoll(cells, scale, title)
}

// ContactSheet draws every frame in a labeled grid: walk cycle frame names
// across the top, direction names down the left side.
func ContactSheet(f *compositor.Frames, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	const pad = 2
	cw, ch := f.Width*scale, f.Height*scale
	cols := columns(f)

	labelW := 0
	for _, dir := range sprites.Directions {
		if w := textWidth(strings.ToUpper(dir.String())); w > labelW {
			labelW = w
		}
	}
	labelW += 2 * pad
	headerH := labelHeight + pad

	w := labelW + (cw+pad)*cols + pad
	h := headerH + (ch+pad)*len(sprites.Directions) + pad
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(contactBackground), image.Point{}, draw.Src)

	for col := 0; col < cols; col++ {
		name := ""
		if col < len(f.WalkCycle) {
			name = f.WalkCycle[col]
		}
		x := labelW + pad + col*(cw+pad)
		drawCentered(img, x, pad, cw, truncate(name, cw), labelColor)
	}
	for row, dir := range sprites.Directions {
		y := headerH + pad + row*(ch+pad)
		drawText(img, pad, y+(ch-labelHeight)/2, strings.ToUpper(dir.String()), labelColor)
		for col, fr := range f.Direction(dir) {
			paste(img, image.Pt(labelW+pad+col*(cw+pad), y), Scale(fr, scale))
		}
	}
	return img
}
