// Package assets builds the palette and template indexes from a base
// directory laid out as
//
//	<base>/palettes/*.json
//	<base>/templates/<category>/*.json
//	<base>/templates/equipment/<category>/*.json
//
// The nested master palette lives in palettes/master_palette.json or any
// palettes/*_master_palette.json; every other palette file holds a list of
// flat palettes. The index is built once and only read afterwards.
package assets

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sprites/palette"
	"badc0de.net/pkg/go-sprites/template"
)

// Source is the id → document lookup the compositor works against.
type Source interface {
	Palettes() *palette.Store
	Templates() *template.Store
}

// Assets is an in-memory Source.
type Assets struct {
	palettes  *palette.Store
	templates *template.Store
}

// New returns an empty index, to be filled with the Add* methods.
func New() *Assets {
	return &Assets{
		palettes:  palette.NewStore(),
		templates: template.NewStore(),
	}
}

func (a *Assets) Palettes() *palette.Store {
	return a.palettes
}

func (a *Assets) Templates() *template.Store {
	return a.templates
}

// IsMasterPalette reports whether a palette file name holds the nested
// master palette rather than a list of flat palettes.
func IsMasterPalette(name string) bool {
	base := filepath.Base(name)
	return base == "master_palette.json" || strings.HasSuffix(base, "_master_palette.json")
}

// AddPaletteFile decodes one palette file and registers what it holds.
func (a *Assets) AddPaletteFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening palette file")
	}
	defer f.Close()

	if IsMasterPalette(path) {
		p, err := palette.DecodeNested(palette.MasterID, f)
		if err != nil {
			return errors.Wrapf(err, "parsing master palette %s", path)
		}
		a.palettes.Add(p)
		return nil
	}

	ps, err := palette.DecodeFlatList(f)
	if err != nil {
		return errors.Wrapf(err, "parsing palette list %s", path)
	}
	for _, p := range ps {
		a.palettes.Add(p)
	}
	return nil
}

// AddTemplateFile decodes one template document and registers it under
// category. A template whose id is already known is dropped.
func (a *Assets) AddTemplateFile(category, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening template file")
	}
	defer f.Close()

	t, err := template.Decode(f)
	if err != nil {
		return errors.Wrapf(err, "parsing template %s", path)
	}
	t.Source = path
	a.templates.Add(category, t)
	return nil
}

// FromDir scans base in a deterministic order: palette files sorted by
// name, then for every category its plain and equipment/ directories, each
// sorted by name. A nil categories uses template.DefaultCategories.
func FromDir(base string, categories []string) (*Assets, error) {
	if categories == nil {
		categories = template.DefaultCategories
	}
	a := New()

	palDir := filepath.Join(base, "palettes")
	files, err := jsonFiles(palDir)
	if err != nil {
		return nil, errors.Wrap(err, "listing palettes")
	}
	for _, path := range files {
		if err := a.AddPaletteFile(path); err != nil {
			return nil, err
		}
	}

	tplDir := filepath.Join(base, "templates")
	if fi, err := os.Stat(tplDir); err != nil || !fi.IsDir() {
		return nil, errors.Errorf("templates directory not found under %s", base)
	}
	for _, cat := range categories {
		for _, dir := range []string{
			filepath.Join(tplDir, cat),
			filepath.Join(tplDir, "equipment", cat),
		} {
			files, err := jsonFiles(dir)
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				return nil, errors.Wrapf(err, "listing %s templates", cat)
			}
			for _, path := range files {
				if err := a.AddTemplateFile(cat, path); err != nil {
					return nil, err
				}
			}
		}
	}

	glog.Infof("assets: %d palettes, %d templates from %s", a.palettes.Len(), a.templates.Len(), base)
	return a, nil
}

func jsonFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}
