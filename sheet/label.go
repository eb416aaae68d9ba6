package sheet

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

var labelFace font.Face = inconsolata.Regular8x16

// labelHeight is the height of one line of label text.
var labelHeight = labelFace.Metrics().Height.Ceil()

var (
	labelColor = color.RGBA{200, 200, 200, 255}
	dollLabel  = color.RGBA{180, 175, 160, 255}
	dollTitle  = color.RGBA{220, 210, 190, 255}
)

func textWidth(s string) int {
	return font.MeasureString(labelFace, s).Ceil()
}

// drawText draws s with its top left corner at (x, y).
func drawText(dst draw.Image, x, y int, s string, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: labelFace,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y + labelFace.Metrics().Ascent.Ceil())},
	}
	d.DrawString(s)
}

// drawCentered draws s centered in the w pixels starting at x.
func drawCentered(dst draw.Image, x, y, w int, s string, c color.Color) {
	drawText(dst, x+(w-textWidth(s))/2, y, s, c)
}

// truncate shortens s with a trailing "..." until it fits in w pixels.
func truncate(s string, w int) string {
	if textWidth(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if t := string(r) + "..."; textWidth(t) <= w {
			return t
		}
	}
	return ""
}
