//go:build windows

package imageprint

import (
	"image"
	"io"

	"github.com/pkg/errors"
)

func printRasTerm(w io.Writer, i image.Image) error {
	return errors.New("rasterm is not supported on windows")
}
