package sheet

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"badc0de.net/pkg/go-sprites"
	"badc0de.net/pkg/go-sprites/assets"
	"badc0de.net/pkg/go-sprites/compositor"
	"badc0de.net/pkg/go-sprites/palette"
	"badc0de.net/pkg/go-sprites/render"
	"badc0de.net/pkg/go-sprites/template"
	"badc0de.net/pkg/go-sprites/ttesting"
)

var dirColor = map[sprites.Direction]color.RGBA{
	sprites.Down:  {255, 0, 0, 255},
	sprites.Left:  {0, 255, 0, 255},
	sprites.Right: {0, 0, 255, 255},
	sprites.Up:    {255, 255, 0, 255},
}

// solidFrames builds w x h frames, filled per direction, with the given
// number of frames per direction. Only the left pixel of the last row of
// each frame is painted; the rest is transparent.
func solidFrames(w, h int, counts map[sprites.Direction]int) *compositor.Frames {
	f := &compositor.Frames{
		ID:          "test",
		Width:       w,
		Height:      h,
		WalkCycle:   []string{"idle", "walk_1", "idle"},
		ByDirection: make(map[sprites.Direction][]*image.RGBA),
	}
	for _, dir := range sprites.Directions {
		n, ok := counts[dir]
		if !ok {
			n = 3
		}
		for i := 0; i < n; i++ {
			img := image.NewRGBA(image.Rect(0, 0, w, h))
			img.SetRGBA(0, h-1, dirColor[dir])
			f.ByDirection[dir] = append(f.ByDirection[dir], img)
		}
	}
	return f
}

func TestStatic(t *testing.T) {
	f := solidFrames(2, 1, nil)

	img := Static(f, 1)
	ttesting.AssertSize(t, "sheet", img, 6, 4)
	for row, dir := range sprites.Directions {
		ttesting.AssertPixel(t, "row "+dir.String(), img, 2, row, dirColor[dir])
		ttesting.AssertPixel(t, "transparent "+dir.String(), img, 3, row, color.RGBA{})
	}

	big := Static(f, 3)
	ttesting.AssertSize(t, "scaled sheet", big, 18, 12)
	ttesting.AssertPixel(t, "scaled right", big, 8, 8, dirColor[sprites.Right])
	ttesting.AssertPixel(t, "scaled gap", big, 9, 8, color.RGBA{})

	ttesting.AssertSize(t, "preview", Preview(f, 0), 6*DefaultPreviewScale, 4*DefaultPreviewScale)
}

func TestDelay(t *testing.T) {
	ttesting.AssertEqualInt(t, "8 fps", Delay(8), 12)
	ttesting.AssertEqualInt(t, "default fps", Delay(0), 100/DefaultFPS)
	ttesting.AssertEqualInt(t, "10 fps", Delay(10), 10)
	ttesting.AssertEqualInt(t, "fast", Delay(500), 1)
}

func TestDirectionAnimation(t *testing.T) {
	f := solidFrames(2, 2, nil)
	g, err := DirectionAnimation(f, sprites.Left, AnimOptions{Scale: 2, FPS: 10})
	if err != nil {
		t.Fatalf("DirectionAnimation: %v", err)
	}
	ttesting.AssertEqualInt(t, "frame count", len(g.Image), 3)
	ttesting.AssertEqualInt(t, "loops forever", g.LoopCount, 0)
	ttesting.AssertEqualInt(t, "delay", g.Delay[0], 10)
	ttesting.AssertEqualInt(t, "disposal", int(g.Disposal[0]), int(gif.DisposalBackground))

	frame := g.Image[0]
	ttesting.AssertSize(t, "frame", frame, 4, 4)
	if _, _, _, a := frame.Palette[0].RGBA(); a != 0 {
		t.Errorf("palette index 0 is not transparent")
	}
	ttesting.AssertEqualInt(t, "transparent index", int(frame.ColorIndexAt(3, 0)), 0)
	ttesting.AssertEqualRGBA(t, "painted pixel", color.RGBAModel.Convert(frame.At(0, 3)).(color.RGBA), dirColor[sprites.Left])

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}
	back, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	ttesting.AssertEqualInt(t, "decoded frames", len(back.Image), 3)
	ttesting.AssertEqualInt(t, "decoded loop", back.LoopCount, 0)
}

func TestAnimationQuantizes(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for i := 0; i < 400; i++ {
		img.SetRGBA(i%20, i/20, color.RGBA{uint8(i), uint8(i / 2), uint8(255 - i%256), 255})
	}
	for _, q := range []Quantizer{MedianCut, MedianCutWeighted} {
		g, err := Animation([]image.Image{img, img}, 8, q)
		if err != nil {
			t.Fatalf("%s: Animation: %v", q, err)
		}
		pal := g.Image[0].Palette
		if len(pal) > 256 {
			t.Errorf("%s: palette has %d colors", q, len(pal))
		}
		if _, _, _, a := pal[0].RGBA(); a != 0 {
			t.Errorf("%s: palette index 0 is not transparent", q)
		}
		var buf bytes.Buffer
		if err := gif.EncodeAll(&buf, g); err != nil {
			t.Errorf("%s: EncodeAll: %v", q, err)
		}
	}
}

func TestCombinedAnimation(t *testing.T) {
	f := solidFrames(2, 1, map[sprites.Direction]int{sprites.Down: 4, sprites.Up: 2})
	g, err := CombinedAnimation(f, AnimOptions{Scale: 2})
	if err != nil {
		t.Fatalf("CombinedAnimation: %v", err)
	}
	ttesting.AssertEqualInt(t, "shortest direction", len(g.Image), 2)

	// Cells are 4x2 with a 2 pixel gap and a label line above each.
	frame := g.Image[0]
	ttesting.AssertSize(t, "grid", frame, 4*2+2, (2+labelHeight)*2+2)
	at := func(x, y int) color.RGBA {
		return color.RGBAModel.Convert(frame.At(x, y)).(color.RGBA)
	}
	ttesting.AssertEqualRGBA(t, "down top left", at(0, labelHeight+1), dirColor[sprites.Down])
	ttesting.AssertEqualRGBA(t, "right top right", at(6, labelHeight+1), dirColor[sprites.Right])
	ttesting.AssertEqualRGBA(t, "left bottom left", at(0, 2*labelHeight+2+2+1), dirColor[sprites.Left])
	ttesting.AssertEqualRGBA(t, "up bottom right", at(6, 2*labelHeight+2+2+1), dirColor[sprites.Up])

	if _, err := CombinedAnimation(solidFrames(2, 1, map[sprites.Direction]int{sprites.Left: 0}), AnimOptions{}); err == nil {
		t.Errorf("CombinedAnimation without left frames succeeded")
	}
}

func TestPaperDoll(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 2, 1))
	a.SetRGBA(0, 0, dirColor[sprites.Down])
	b := image.NewRGBA(image.Rect(0, 0, 2, 1))

	img, err := PaperDoll([]Cell{{"body", a}, {"a very long armor name", b}}, 2, "")
	if err != nil {
		t.Fatalf("PaperDoll: %v", err)
	}
	ttesting.AssertSize(t, "strip", img, 2*4+2, 2+labelHeight+2+2)
	ttesting.AssertPixel(t, "layer", img, 1, 1, dirColor[sprites.Down])
	ttesting.AssertPixel(t, "background shows through", img, 3, 0, dollBackground)
	ttesting.AssertPixel(t, "gap", img, 4, 0, dollBackground)

	titled, err := PaperDoll([]Cell{{"body", a}}, 1, "Hero")
	if err != nil {
		t.Fatalf("PaperDoll: %v", err)
	}
	ttesting.AssertEqualInt(t, "title row", titled.Bounds().Dy(), labelHeight+2*2+1+labelHeight+2+2)

	if _, err := PaperDoll(nil, 1, ""); err == nil {
		t.Errorf("empty paper doll succeeded")
	}
}

func filled(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestPaperDollMixedSizes(t *testing.T) {
	red, blue := color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255}
	img, err := PaperDoll([]Cell{
		{"", filled(4, 4, red)},
		{"", filled(8, 8, blue)},
		{"", filled(4, 4, red)},
	}, 1, "")
	if err != nil {
		t.Fatalf("PaperDoll: %v", err)
	}
	pad := padding(1)
	ttesting.AssertSize(t, "strip", img, 3*4+2*pad, 4+labelHeight+2+pad)
	x := 4 + pad
	ttesting.AssertPixel(t, "cape top left", img, x, 0, blue)
	ttesting.AssertPixel(t, "cape bottom right", img, x+3, 3, blue)
	ttesting.AssertPixel(t, "below cape", img, x+1, 5, dollBackground)
	ttesting.AssertPixel(t, "gap after cape", img, x+4, 0, dollBackground)
	hat := 2 * (4 + pad)
	ttesting.AssertPixel(t, "hat", img, hat, 1, red)
	ttesting.AssertPixel(t, "hat corner", img, hat+3, 3, red)
}

func TestTruncate(t *testing.T) {
	ttesting.AssertEqualString(t, "fits", truncate("hat", 48), "hat")
	ttesting.AssertEqualString(t, "cut", truncate("chain mail armor", 48), "cha...")
	ttesting.AssertEqualString(t, "no room", truncate("chain", 8), "")
	ttesting.AssertEqualString(t, "label", LayerLabel("steel_plate_armor"), "steel plate armor")
}

func TestContactSheet(t *testing.T) {
	f := solidFrames(2, 1, nil)
	img := ContactSheet(f, 1)
	if img.Bounds().Dx() <= 3*(2+2) || img.Bounds().Dy() <= 4*(1+2) {
		t.Errorf("contact sheet %v too small for a 3x4 grid", img.Bounds())
	}
	ttesting.AssertPixel(t, "background", img, img.Bounds().Dx()-1, img.Bounds().Dy()-1, contactBackground)
}

func TestMegaSheet(t *testing.T) {
	for _, tc := range []struct{ n, cols, rows int }{
		{1, 1, 1}, {2, 2, 1}, {4, 2, 2}, {5, 3, 2}, {10, 4, 3},
	} {
		cols, rows := MegaSheetLayout(tc.n)
		if cols != tc.cols || rows != tc.rows {
			t.Errorf("MegaSheetLayout(%d) = %d,%d; want %d,%d", tc.n, cols, rows, tc.cols, tc.rows)
		}
	}

	small := image.NewRGBA(image.Rect(0, 0, 2, 2))
	wide := image.NewRGBA(image.Rect(0, 0, 3, 1))
	wide.SetRGBA(0, 0, dirColor[sprites.Up])
	img, err := MegaSheet([]image.Image{small, small, wide})
	if err != nil {
		t.Fatalf("MegaSheet: %v", err)
	}
	ttesting.AssertSize(t, "mega", img, 6, 4)
	ttesting.AssertPixel(t, "third sheet on second row", img, 0, 2, dirColor[sprites.Up])

	if _, err := MegaSheet(nil); err == nil {
		t.Errorf("empty mega-sheet succeeded")
	}
}

func TestWriteLeavesNoPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "a.png")
	if err := WritePNG(path, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("written file missing: %v", err)
	}

	bad := filepath.Join(dir, "out", "b.gif")
	if err := WriteGIF(bad, &gif.GIF{}); err == nil {
		t.Errorf("WriteGIF of an empty animation succeeded")
	}
	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	ttesting.AssertEqualInt(t, "only the good file", len(entries), 1)
}

func TestExportAll(t *testing.T) {
	a := assets.New()
	p, err := palette.DecodeNested(palette.MasterID, strings.NewReader(`{"skin":{"base":"#F0C080"},"cloth":{"base":"#801010"}}`))
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	a.Palettes().Add(p)
	for _, doc := range []string{
		`{"template_id":"body","size":[2,2],"directions":{"down":{"idle":[["skin.base","skin.base"],["skin.base",0]]},
			"left":{"idle":[["skin.base",0]]}},"mirror_right_from_left":true}`,
		`{"template_id":"steel_cap","size":[2,2],"z_order":3,"directions":{"down":{"idle":[["cloth.base",0]]}}}`,
	} {
		tp, err := template.Decode(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("template: %v", err)
		}
		a.Templates().Add("body", tp)
	}
	c := compositor.New(a, render.Renderer{})
	req := (&compositor.Loadout{LoadoutID: "hero", DisplayName: "Hero", Body: "body", Equipment: []string{"steel_cap", "missing"}}).Request()

	out := t.TempDir()
	paths, err := ExportAll(c, req, out, Options{Scale: 2})
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}
	ttesting.AssertEqualInt(t, "files", len(paths), 9)
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s: %v", p, err)
		}
	}

	only, err := ExportAll(c, req, filepath.Join(out, "only"), Options{Name: "doll", Kinds: KindPaperDoll | KindSheet})
	if err != nil {
		t.Fatalf("ExportAll paper doll: %v", err)
	}
	ttesting.AssertEqualInt(t, "selected files", len(only), 2)
	ttesting.AssertEqualString(t, "sheet first", filepath.Base(only[0]), "doll_spritesheet.png")
	ttesting.AssertEqualString(t, "then doll", filepath.Base(only[1]), "doll_paper_doll.png")

	f, err := os.Open(filepath.Join(out, "previews", "hero_walk_down.gif"))
	if err != nil {
		t.Fatalf("open gif: %v", err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	ttesting.AssertEqualInt(t, "frames match walk cycle", len(g.Image), len(sprites.DefaultWalkCycle()))

	if _, err := ExportAll(c, &compositor.Request{ID: "ghost", Layers: []compositor.LayerSpec{{Template: "nobody"}}}, filepath.Join(out, "ghost"), Options{}); err == nil {
		t.Errorf("ExportAll with a missing body succeeded")
	}
	if _, err := os.Stat(filepath.Join(out, "ghost")); !os.IsNotExist(err) {
		t.Errorf("failed export left output behind")
	}
}
