// Command spriteprint composites a request and prints its frames on the
// terminal, one row of walk cycle frames per direction.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strings"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-sprites"
	"badc0de.net/pkg/go-sprites/assets"
	"badc0de.net/pkg/go-sprites/compositor"
	"badc0de.net/pkg/go-sprites/config"
	"badc0de.net/pkg/go-sprites/imageprint"
	"badc0de.net/pkg/go-sprites/paths"
	"badc0de.net/pkg/go-sprites/sheet"
)

var (
	requestPath = flag.String("request", "", "path to a loadout or NPC definition JSON file")
	direction   = flag.String("direction", "", "print only this direction; empty prints all four")
	frame       = flag.Int("frame", -1, "print only this walk cycle index; -1 prints the whole cycle")
	printMode   = flag.String("print_mode", "truecolor", "truecolor, 256, none, iterm or rasterm")
	blanks      = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize    = flag.Bool("downsize", false, "shrink the output to fit the terminal")
	banner      = flag.Bool("banner", true, "print the display name as a banner first")
	upscale     = flag.Int("upscale", 1, "integer upscale before printing")

	baseDir    string
	markerMode string
)

func setupFlags(cfg *config.Config) {
	paths.SetupBaseDirFlag("base_dir", cfg.BaseDir, &baseDir)
	flag.StringVar(&markerMode, "marker_mode", cfg.MarkerMode, "how unresolved palette keys are painted: transparent or marker")
}

func directions() ([]sprites.Direction, error) {
	if *direction == "" {
		return sprites.Directions, nil
	}
	d := sprites.Direction(strings.ToLower(*direction))
	if !d.Valid() {
		return nil, fmt.Errorf("unknown direction %q", *direction)
	}
	return []sprites.Direction{d}, nil
}

func strip(f *compositor.Frames, dir sprites.Direction) []image.Image {
	var out []image.Image
	for i, img := range f.Direction(dir) {
		if *frame >= 0 && i != *frame {
			continue
		}
		out = append(out, sheet.Scale(img, *upscale))
	}
	return out
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "spriteprint: %v\n", err)
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
	mode, ok := imageprint.ParseMode(*printMode)
	if !ok {
		glog.Exitf("unknown -print_mode %q", *printMode)
	}
	dirs, err := directions()
	if err != nil {
		glog.Exitf("%v", err)
	}
	r, err := config.Renderer(markerMode)
	if err != nil {
		glog.Exitf("%v", err)
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
	a, err := assets.FromDir(baseDir, nil)
	if err != nil {
		glog.Exitf("loading assets: %v", err)
	}
	frames, err := compositor.New(a, r).Composite(req)
	if err != nil {
		glog.Exitf("%v", err)
	}

	if *banner {
		title := req.DisplayName
		if title == "" {
			title = req.ID
		}
		for _, line := range figure.NewFigure(title, "", false).Slicify() {
			fmt.Println(line)
		}
	}

	p := &imageprint.Printer{W: os.Stdout, Mode: mode, Blanks: *blanks}
	for _, dir := range dirs {
		fmt.Printf("%s (%s)\n", sprites.Label(dir), strings.Join(frames.WalkCycle, ", "))
		if err := out(p, imageprint.Strip(strip(frames, dir), 1)); err != nil {
			glog.Errorf("printing %s: %v", dir, err)
		}
	}
}
