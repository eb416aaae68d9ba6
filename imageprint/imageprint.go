// Package imageprint prints sprite frames on a terminal.
//
// Pixels are printed as pairs of characters so a frame keeps its aspect
// ratio. Transparent pixels are printed as blanks on the terminal's own
// background.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/pkg/errors"
)

// Mode selects how pixels reach the terminal.
type Mode int

const (
	// TrueColor sets a 24 bit background color per pixel.
	TrueColor Mode = iota
	// Color256 goes through gookit/color, which downgrades to what the
	// terminal supports.
	Color256
	// NoColor prints ascii shades only.
	NoColor
	// ITerm sends one inline PNG using iTerm2's escape sequence.
	ITerm
	// RasTerm lets rasterm pick kitty, iTerm or sixel output.
	RasTerm
)

// ParseMode maps a mode name as used on command lines to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "truecolor", "24bit", "":
		return TrueColor, true
	case "256":
		return Color256, true
	case "none":
		return NoColor, true
	case "iterm":
		return ITerm, true
	case "rasterm":
		return RasTerm, true
	}
	return TrueColor, false
}

const reset = "\x1b[0m"

// Printer writes images to W.
type Printer struct {
	W    io.Writer
	Mode Mode
	// Blanks prints colored spaces instead of ascii shades.
	Blanks bool
}

// Print writes img in p's mode.
func (p *Printer) Print(img image.Image) error {
	switch p.Mode {
	case ITerm:
		return p.iterm(img, "sprite.png")
	case RasTerm:
		return printRasTerm(p.W, img)
	}
	var b strings.Builder
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			b.WriteString(p.pixel(img.At(x, y)))
		}
		if p.Mode != NoColor {
			b.WriteString(reset)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(p.W, b.String())
	return errors.Wrap(err, "printing image")
}

// PrintStrip prints frames side by side, gap pixels apart, top aligned.
func (p *Printer) PrintStrip(frames []image.Image, gap int) error {
	return p.Print(Strip(frames, gap))
}

// Strip lays frames out left to right on a transparent canvas.
func Strip(frames []image.Image, gap int) *image.RGBA {
	w, h := 0, 0
	for i, f := range frames {
		if i > 0 {
			w += gap
		}
		w += f.Bounds().Dx()
		if fh := f.Bounds().Dy(); fh > h {
			h = fh
		}
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	x := 0
	for _, f := range frames {
		r := image.Rect(x, 0, x+f.Bounds().Dx(), f.Bounds().Dy())
		draw.Draw(out, r, f, f.Bounds().Min, draw.Over)
		x += f.Bounds().Dx() + gap
	}
	return out
}

func shade(c ic.Color) string {
	r, g, b, _ := c.RGBA()
	switch a := ((r + g + b) / 3) >> 8; {
	case a < 32:
		return ".."
	case a < 64:
		return "--"
	case a < 128:
		return "=="
	default:
		return "##"
	}
}

func (p *Printer) pixel(c ic.Color) string {
	r, g, b, a := c.RGBA()
	if a == 0 {
		if p.Mode == NoColor {
			return "  "
		}
		return reset + "  "
	}
	s := "  "
	if !p.Blanks {
		s = shade(c)
	}
	switch p.Mode {
	case NoColor:
		return s
	case Color256:
		return color.RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8), true).Sprint(s)
	default:
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm%s%s", uint8(r>>8), uint8(g>>8), uint8(b>>8), s, reset)
	}
}

// iterm draws an image using iTerm2's escape sequences.
//
// https://www.iterm2.com/documentation-images.html
func (p *Printer) iterm(img image.Image, fn string) error {
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	enc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(enc, img); err != nil {
		return errors.Wrap(err, "encoding png for iterm")
	}
	enc.Close()
	_, err := fmt.Fprintf(p.W, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, b.Len(), img.Bounds().Dx(), img.Bounds().Dy(), b.String())
	return errors.Wrap(err, "printing image")
}
