package sheet

import (
	"image"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WritePNG encodes img to path. The file only appears once it is complete.
func WritePNG(path string, img image.Image) error {
	return WriteFile(path, func(w io.Writer) error {
		return png.Encode(w, img)
	})
}

// WriteGIF encodes g to path. The file only appears once it is complete.
func WriteGIF(path string, g *gif.GIF) error {
	return WriteFile(path, func(w io.Writer) error {
		return gif.EncodeAll(w, g)
	})
}

// WriteFile runs encode against a temporary file next to path and renames it
// into place once encode and close succeed. On failure nothing is left at
// path.
func WriteFile(path string, encode func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "creating temporary file for %s", path)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := encode(tmp); err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	if err := tmp.Chmod(0644); err != nil {
		return errors.Wrapf(err, "chmod %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "renaming into %s", path)
	}
	return nil
}
