package batch

import (
	"encoding/json"
	"image"
	"io"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sprites/compositor"
	"badc0de.net/pkg/go-sprites/sheet"
)

// Definitions is the batch definitions document.
type Definitions struct {
	GeneratorID string                      `json:"generator_id"`
	Seed        int64                       `json:"seed"`
	Count       int                         `json:"count"`
	SpriteSize  []int                       `json:"sprite_size"`
	Scale       int                         `json:"scale"`
	NPCs        []*compositor.NPCDefinition `json:"npcs"`
}

// Exported lists what Export wrote.
type Exported struct {
	Sheets      []string
	MegaSheet   string
	Definitions string
	// Skipped lists requests that failed to composite.
	Skipped []string
}

// NewDefinitions echoes every generated request of res.
func NewDefinitions(p *Pool, res *Result, scale int) *Definitions {
	d := &Definitions{
		GeneratorID: p.GeneratorID,
		Seed:        res.Seed,
		Count:       len(res.Requests),
		SpriteSize:  p.BaseSpriteSize,
		Scale:       scale,
	}
	for _, r := range res.Requests {
		d.NPCs = append(d.NPCs, r.Definition())
	}
	return d
}

// Export composites every request of res into outDir:
//
//	sheets/<npc_id>.png
//	<generator_id>_mega_sheet.png
//	<generator_id>_definitions.json
//
// A request that fails to composite is skipped with a warning. All images
// are rendered before anything is written.
func Export(c *compositor.Compositor, p *Pool, res *Result, outDir string, scale int) (*Exported, error) {
	if scale < 1 {
		scale = 1
	}
	out := &Exported{}
	var sheets []image.Image
	var ids []string
	for i, req := range res.Requests {
		glog.Infof("[%d/%d] rendering %s", i+1, len(res.Requests), req.ID)
		f, err := c.Composite(req)
		if err != nil {
			glog.Warningf("skipping %s: %v", req.ID, err)
			out.Skipped = append(out.Skipped, req.ID)
			continue
		}
		sheets = append(sheets, sheet.Static(f, scale))
		ids = append(ids, req.ID)
	}
	var mega image.Image
	if len(sheets) > 0 {
		m, err := sheet.MegaSheet(sheets)
		if err != nil {
			return nil, err
		}
		mega = m
	}

	for i, img := range sheets {
		path := filepath.Join(outDir, "sheets", ids[i]+".png")
		if err := sheet.WritePNG(path, img); err != nil {
			return out, err
		}
		out.Sheets = append(out.Sheets, path)
	}
	if mega != nil {
		out.MegaSheet = filepath.Join(outDir, p.GeneratorID+"_mega_sheet.png")
		if err := sheet.WritePNG(out.MegaSheet, mega); err != nil {
			return out, err
		}
		glog.Infof("mega-sheet %s (%dx%d)", out.MegaSheet, mega.Bounds().Dx(), mega.Bounds().Dy())
	}

	defs := NewDefinitions(p, res, scale)
	out.Definitions = filepath.Join(outDir, p.GeneratorID+"_definitions.json")
	err := sheet.WriteFile(out.Definitions, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(defs)
	})
	if err != nil {
		return out, errors.Wrap(err, "writing definitions")
	}
	return out, nil
}
