//go:build !windows

package imageprint

import (
	"fmt"
	"image"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
	"github.com/pkg/errors"
)

// printRasTerm draws an image using the RasTerm library.
//
// This should enable drawing in Kitty terminal.
func printRasTerm(w io.Writer, i image.Image) error {
	var err error
	switch {
	case rasterm.IsTermKitty():
		err = rasterm.Settings{}.KittyWriteImage(w, i)
	case rasterm.IsTermItermWez():
		err = rasterm.Settings{}.ItermWriteImage(w, i)
	default:
		capable, cerr := rasterm.IsSixelCapable()
		if cerr != nil || !capable {
			return errors.New("terminal supports neither kitty, iterm nor sixel images")
		}
		paletted := image.NewPaletted(i.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(paletted, i.Bounds(), i, image.Point{})
		err = rasterm.Settings{}.SixelWriteImage(w, paletted)
	}
	if err != nil {
		return errors.Wrap(err, "rasterm")
	}
	_, err = fmt.Fprintln(w)
	return err
}
