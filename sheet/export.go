package sheet

import (
	"fmt"
	"image"
	"image/gif"
	"path/filepath"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-sprites"
	"badc0de.net/pkg/go-sprites/compositor"
)

// Kind is a set of ExportAll outputs.
type Kind uint

const (
	KindSheet Kind = 1 << iota
	KindPreview
	KindGIF
	KindPaperDoll
	KindContact

	KindAll = KindSheet | KindPreview | KindGIF | KindPaperDoll | KindContact
)

// Options control ExportAll.
type Options struct {
	// Kinds selects the outputs; zero means KindAll.
	Kinds Kind
	// Name prefixes every file; empty means the request id.
	Name string
	// Scale is the preview, GIF, paper doll and contact sheet upscale; 0
	// means DefaultPreviewScale. The plain sprite sheet is never scaled.
	Scale int
	// FPS overrides the request's playback speed when positive.
	FPS       int
	Quantizer Quantizer
}

// output is one rendered file waiting to be written.
type output struct {
	path string
	img  image.Image
	anim *gif.GIF
}

// ExportAll composites req and writes the selected outputs under outDir:
//
//	sheets/<name>_spritesheet.png
//	previews/<name>_preview.png
//	previews/<name>_walk_<direction>.gif
//	previews/<name>_walk_all.gif
//	previews/<name>_paper_doll.png
//	previews/<name>_contact.png
//
// Everything is rendered before the first file is written, so a failing
// request leaves no output behind. It returns the written paths.
func ExportAll(c *compositor.Compositor, req *compositor.Request, outDir string, o Options) ([]string, error) {
	f, err := c.Composite(req)
	if err != nil {
		return nil, err
	}
	name := o.Name
	if name == "" {
		name = req.ID
	}
	scale := o.Scale
	if scale <= 0 {
		scale = DefaultPreviewScale
	}
	anim := AnimOptions{Scale: scale, FPS: f.FPS, Quantizer: o.Quantizer}
	if o.FPS > 0 {
		anim.FPS = o.FPS
	}
	kinds := o.Kinds
	if kinds == 0 {
		kinds = KindAll
	}
	sheets := filepath.Join(outDir, "sheets")
	previews := filepath.Join(outDir, "previews")

	var outs []output
	if kinds&KindSheet != 0 {
		outs = append(outs, output{path: filepath.Join(sheets, name+"_spritesheet.png"), img: Static(f, 1)})
	}
	if kinds&KindPreview != 0 {
		outs = append(outs, output{path: filepath.Join(previews, name+"_preview.png"), img: Preview(f, scale)})
	}
	if kinds&KindGIF != 0 {
		for _, dir := range sprites.Directions {
			g, err := DirectionAnimation(f, dir, anim)
			if err != nil {
				return nil, err
			}
			outs = append(outs, output{path: filepath.Join(previews, fmt.Sprintf("%s_walk_%s.gif", name, dir)), anim: g})
		}
		all, err := CombinedAnimation(f, anim)
		if err != nil {
			return nil, err
		}
		outs = append(outs, output{path: filepath.Join(previews, name+"_walk_all.gif"), anim: all})
	}
	if kinds&KindPaperDoll != 0 {
		title := req.DisplayName
		if title == "" {
			title = req.ID
		}
		doll, err := PaperDollFromLayers(c, req, scale, title)
		if err != nil {
			return nil, err
		}
		outs = append(outs, output{path: filepath.Join(previews, name+"_paper_doll.png"), img: doll})
	}
	if kinds&KindContact != 0 {
		outs = append(outs, output{path: filepath.Join(previews, name+"_contact.png"), img: ContactSheet(f, scale)})
	}

	paths := make([]string, 0, len(outs))
	for _, out := range outs {
		var err error
		if out.anim != nil {
			err = WriteGIF(out.path, out.anim)
		} else {
			err = WritePNG(out.path, out.img)
		}
		if err != nil {
			return paths, err
		}
		glog.Infof("wrote %s", out.path)
		paths = append(paths, out.path)
	}
	return paths, nil
}
