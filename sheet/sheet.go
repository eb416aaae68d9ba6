// Package sheet assembles composited frames into sprite sheets, animated
// GIFs, paper-doll strips and batch mega-sheets.
//
// Everything here works on already rendered images; nothing reads palettes
// or templates. Upscaling is always nearest-neighbor by an integer factor.
package sheet

import (
	"image"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"badc0de.net/pkg/go-sprites"
	"badc0de.net/pkg/go-sprites/compositor"
)

// DefaultPreviewScale is the upscale factor of previews and GIFs.
const DefaultPreviewScale = 4

// Scale upscales src by n using nearest-neighbor sampling. n below 1 is
// treated as 1.
func Scale(src image.Image, n int) *image.RGBA {
	if n < 1 {
		n = 1
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*n, b.Dy()*n))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// paste copies src onto dst with its top left corner at at.
func paste(dst draw.Image, at image.Point, src image.Image) {
	b := src.Bounds()
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(b.Size())}, src, b.Min, draw.Over)
}

// columns is the widest direction's frame count.
func columns(f *compositor.Frames) int {
	cols := 0
	for _, dir := range sprites.Directions {
		if n := len(f.Direction(dir)); n > cols {
			cols = n
		}
	}
	return cols
}

// Static lays frames out one direction per row, in down, left, right, up
// order, and one walk cycle frame per column, then upscales by scale.
func Static(f *compositor.Frames, scale int) *image.RGBA {
	cols := columns(f)
	img := image.NewRGBA(image.Rect(0, 0, f.Width*cols, f.Height*len(sprites.Directions)))
	for row, dir := range sprites.Directions {
		for col, fr := range f.Direction(dir) {
			paste(img, image.Pt(col*f.Width, row*f.Height), fr)
		}
	}
	return Scale(img, scale)
}

// Preview is Static at scale, or at DefaultPreviewScale when scale is not
// positive.
func Preview(f *compositor.Frames, scale int) *image.RGBA {
	if scale <= 0 {
		scale = DefaultPreviewScale
	}
	return Static(f, scale)
}

// MegaSheetLayout returns the grid used for n sheets: as close to square
// as possible, filled row by row.
func MegaSheetLayout(n int) (cols, rows int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return cols, rows
}

// MegaSheet tiles sheets into one image. Every cell is as large as the
// largest sheet.
func MegaSheet(sheets []image.Image) (*image.RGBA, error) {
	if len(sheets) == 0 {
		return nil, errors.New("mega-sheet needs at least one sheet")
	}
	cw, ch := 0, 0
	for _, s := range sheets {
		if s.Bounds().Dx() > cw {
			cw = s.Bounds().Dx()
		}
		if s.Bounds().Dy() > ch {
			ch = s.Bounds().Dy()
		}
	}
	cols, rows := MegaSheetLayout(len(sheets))
	img := image.NewRGBA(image.Rect(0, 0, cols*cw, rows*ch))
	for i, s := range sheets {
		paste(img, image.Pt((i%cols)*cw, (i/cols)*ch), s)
	}
	return img, nil
}
