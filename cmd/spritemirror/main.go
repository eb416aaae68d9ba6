// Command spritemirror works on template files that mirror their right
// direction from their left one.
//
//	spritemirror -mode=expand -out=knight_full.json knight.json
//	spritemirror -mode=verify knight_full.json
//	spritemirror -mode=symmetry knight.json
//
// expand writes the template with explicit right frames, verify reports
// right frames that are not the mirror of their left counterparts and
// symmetry scores every down and up frame for left-right symmetry.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-sprites"
	"badc0de.net/pkg/go-sprites/mirror"
	"badc0de.net/pkg/go-sprites/sheet"
	"badc0de.net/pkg/go-sprites/template"
)

var (
	mode = flag.String("mode", "verify", "expand, verify or symmetry")
	out  = flag.String("out", "", "expand: output path; empty prints to stdout")
)

func load(path string) (*template.Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return template.Decode(f)
}

func expand(t *template.Template) error {
	full, ok := mirror.Materialize(t)
	if !ok {
		glog.Warningf("template %q has nothing to mirror, writing it unchanged", t.ID)
	}
	if *out == "" {
		return full.Encode(os.Stdout)
	}
	if err := sheet.WriteFile(*out, func(w io.Writer) error { return full.Encode(w) }); err != nil {
		return err
	}
	glog.Infof("wrote %s", *out)
	return nil
}

func verify(t *template.Template) (bool, error) {
	mismatches, err := mirror.Verify(t)
	if err != nil {
		return false, err
	}
	for _, m := range mismatches {
		fmt.Printf("%s: %s\n", t.ID, m)
	}
	return len(mismatches) == 0, nil
}

func symmetry(w io.Writer, t *template.Template) {
	for _, dir := range sprites.Directions {
		frames, ok := t.Directions[dir]
		if !ok {
			continue
		}
		names := make([]string, 0, len(frames))
		for name := range frames {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			status := "asymmetric"
			if mirror.Symmetric(frames[name]) {
				status = "symmetric"
			}
			fmt.Fprintf(w, "%s %s/%s: %.1f%% %s\n", t.ID, dir, name, 100*mirror.Symmetry(frames[name]), status)
		}
	}
}

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if flag.NArg() == 0 {
		glog.Exitf("usage: spritemirror [-mode=expand|verify|symmetry] template.json...")
	}
	if *mode == "expand" && *out != "" && flag.NArg() > 1 {
		glog.Exitf("-out takes a single template")
	}

	failed := false
	for _, path := range flag.Args() {
		t, err := load(path)
		if err != nil {
			glog.Errorf("%s: %v", path, err)
			failed = true
			continue
		}
		switch *mode {
		case "expand":
			err = expand(t)
		case "verify":
			var ok bool
			if ok, err = verify(t); err == nil && !ok {
				failed = true
			}
		case "symmetry":
			symmetry(os.Stdout, t)
		default:
			glog.Exitf("unknown -mode %q", *mode)
		}
		if err != nil {
			glog.Errorf("%s: %v", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
