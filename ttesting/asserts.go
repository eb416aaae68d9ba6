package ttesting

import (
	"image"
	"image/color"
	"testing"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

func AssertEqualBool(t *testing.T, name string, got, want bool) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %v; want %v", got, want)
		}
	})
}

func AssertEqualRGBA(t *testing.T, name string, got, want color.RGBA) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %v; want %v", got, want)
		}
	})
}

// AssertPixel compares the color of img at (x, y) after conversion to RGBA.
func AssertPixel(t *testing.T, name string, img image.Image, x, y int, want color.RGBA) {
	t.Run(name, func(t *testing.T) {
		got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
		if got != want {
			t.Errorf("pixel (%d,%d): got %v; want %v", x, y, got, want)
		}
	})
}

// AssertSize compares the bounds size of img.
func AssertSize(t *testing.T, name string, img image.Image, wantW, wantH int) {
	t.Run(name, func(t *testing.T) {
		sz := img.Bounds().Size()
		if sz.X != wantW || sz.Y != wantH {
			t.Errorf("got %dx%d; want %dx%d", sz.X, sz.Y, wantW, wantH)
		}
	})
}
