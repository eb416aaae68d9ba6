// Command spritebatch generates a batch of distinct random NPCs from a
// generator pool and exports one sheet per NPC, a mega-sheet and a
// definitions file.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-sprites/assets"
	"badc0de.net/pkg/go-sprites/batch"
	"badc0de.net/pkg/go-sprites/compositor"
	"badc0de.net/pkg/go-sprites/config"
	"badc0de.net/pkg/go-sprites/paths"
)

var (
	count = flag.Int("count", 10, "number of NPCs to generate")
	seed  = flag.Int64("seed", 0, "random seed; 0 picks one from the clock and logs it")
	scale = flag.Int("scale", 1, "integer upscale of every exported sheet")

	poolPath   string
	baseDir    string
	outputDir  string
	markerMode string
)

func setupFlags(cfg *config.Config) {
	paths.SetupFilePathFlag("generators/npc_pool.yaml", "pool", &poolPath)
	paths.SetupBaseDirFlag("base_dir", cfg.BaseDir, &baseDir)
	flag.StringVar(&outputDir, "output_dir", filepath.Join(cfg.OutputDir, "batch"), "output directory")
	flag.StringVar(&markerMode, "marker_mode", cfg.MarkerMode, "how unresolved palette keys are painted: transparent or marker")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "spritebatch: %v\n", err)
		os.Exit(2)
	}
	setupFlags(cfg)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *count < 1 {
		glog.Exitf("-count must be at least 1")
	}
	if baseDir == "" {
		glog.Exitf("no asset directory found; pass -base_dir or set SPRITES_BASE_DIR")
	}
	r, err := config.Renderer(markerMode)
	if err != nil {
		glog.Exitf("%v", err)
	}

	var pool *batch.Pool
	if poolPath == "" {
		glog.Warningf("no generator pool given, using the stock single-option pool")
		pool = &batch.Pool{}
		pool.Defaults()
	} else if pool, err = batch.LoadPool(poolPath); err != nil {
		glog.Exitf("%s: %v", poolPath, err)
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
		glog.Infof("using seed %d", s)
	}

	a, err := assets.FromDir(baseDir, nil)
	if err != nil {
		glog.Exitf("loading assets: %v", err)
	}

	res := batch.Generate(pool, *count, s, nil)
	exp, err := batch.Export(compositor.New(a, r), pool, res, outputDir, *scale)
	if err != nil {
		glog.Exitf("export failed: %v", err)
	}

	glog.Infof("NPCs generated: %d", len(res.Requests))
	glog.Infof("sheets created: %d", len(exp.Sheets))
	if len(exp.Skipped) > 0 {
		glog.Warningf("skipped: %v", exp.Skipped)
	}
	if exp.MegaSheet != "" {
		glog.Infof("mega-sheet: %s", exp.MegaSheet)
	}
	glog.Infof("definitions: %s", exp.Definitions)
}
