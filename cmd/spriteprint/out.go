package main

import (
	"image"

	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-sprites/imageprint"
)

// out prints img, shrunk to the terminal first when -downsize is set.
func out(p *imageprint.Printer, img image.Image) error {
	if *downsize {
		if ts, err := GetTermSize(); err == nil {
			img = fit(img, ts, p.Mode)
		}
	}
	return p.Print(img)
}

// fit shrinks img to the terminal. Image protocols get pixel dimensions
// when the terminal reports them; character output gets two columns per
// pixel.
func fit(img image.Image, ts TermSize, mode imageprint.Mode) image.Image {
	if ts.WSXPixel != 0 && ts.WSYPixel != 0 && (mode == imageprint.RasTerm || mode == imageprint.ITerm) {
		return resize.Thumbnail(ts.WSXPixel/2, ts.WSYPixel/2, img, resize.Lanczos3)
	}
	return resize.Thumbnail(ts.WSCol/2, ts.WSRow, img, resize.NearestNeighbor)
}
