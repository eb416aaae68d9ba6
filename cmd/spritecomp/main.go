// Command spritecomp composites one loadout or NPC definition and exports
// its sprite sheet, previews, walk GIFs, paper doll and contact sheet.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-sprites/assets"
	"badc0de.net/pkg/go-sprites/compositor"
	"badc0de.net/pkg/go-sprites/config"
	"badc0de.net/pkg/go-sprites/paths"
	"badc0de.net/pkg/go-sprites/sheet"
)

var (
	requestPath = flag.String("request", "", "path to a loadout or NPC definition JSON file")
	name        = flag.String("name", "", "output file name prefix; defaults to the request id")
	categories  = flag.String("categories", "", "comma separated template categories to load; empty loads the default set")

	sheetOut   = flag.Bool("sheet", false, "export the unscaled sprite sheet")
	previewOut = flag.Bool("preview", false, "export the scaled sprite sheet preview")
	gifOut     = flag.Bool("gif", false, "export per-direction and combined walk GIFs")
	dollOut    = flag.Bool("paper_doll", false, "export the isolated layer paper doll")
	contactOut = flag.Bool("contact", false, "export the labeled contact sheet")

	baseDir    string
	outputDir  string
	scale      int
	fps        int
	markerMode string
	quantizer  string
)

func setupFlags(cfg *config.Config) {
	paths.SetupBaseDirFlag("base_dir", cfg.BaseDir, &baseDir)
	flag.StringVar(&outputDir, "output_dir", cfg.OutputDir, "root output directory")
	flag.IntVar(&scale, "scale", cfg.Scale, "integer upscale for previews, GIFs and the paper doll")
	flag.IntVar(&fps, "fps", cfg.FPS, "GIF playback speed; 0 uses the request's")
	flag.StringVar(&markerMode, "marker_mode", cfg.MarkerMode, "how unresolved palette keys are painted: transparent or marker")
	flag.StringVar(&quantizer, "quantizer", cfg.Quantizer, "GIF quantizer for sprites with over 255 colors: gogif or go-quantize")
}

func kinds() sheet.Kind {
	var k sheet.Kind
	for _, sel := range []struct {
		on   bool
		kind sheet.Kind
	}{
		{*sheetOut, sheet.KindSheet},
		{*previewOut, sheet.KindPreview},
		{*gifOut, sheet.KindGIF},
		{*dollOut, sheet.KindPaperDoll},
		{*contactOut, sheet.KindContact},
	} {
		if sel.on {
			k |= sel.kind
		}
	}
	return k
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "spritecomp: %v\n", err)
		os.Exit(2)
	}
	setupFlags(cfg)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *requestPath == "" {
		glog.Exitf("-request is required")
	}
	if baseDir == "" {
		glog.Exitf("no asset directory found; pass -base_dir or set SPRITES_BASE_DIR")
	}
	r, err := config.Renderer(markerMode)
	if err != nil {
		glog.Exitf("%v", err)
	}
	q, ok := sheet.ParseQuantizer(quantizer)
	if !ok {
		glog.Exitf("unknown quantizer %q", quantizer)
	}

	f, err := os.Open(*requestPath)
	if err != nil {
		glog.Exitf("opening request: %v", err)
	}
	req, err := compositor.DecodeRequest(f)
	f.Close()
	if err != nil {
		glog.Exitf("%s: %v", *requestPath, err)
	}

	a, err := assets.FromDir(baseDir, splitList(*categories))
	if err != nil {
		glog.Exitf("loading assets: %v", err)
	}
	glog.Infof("request %q (%s): %d layers, base dir %s, output dir %s", req.ID, req.DisplayName, len(req.Layers), baseDir, outputDir)

	written, err := sheet.ExportAll(compositor.New(a, r), req, outputDir, sheet.Options{
		Name:      *name,
		Kinds:     kinds(),
		Scale:     scale,
		FPS:       fps,
		Quantizer: q,
	})
	if err != nil {
		glog.Exitf("export failed: %v", err)
	}
	glog.Infof("export complete: %d files", len(written))
}
