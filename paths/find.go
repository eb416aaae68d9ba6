// Package paths locates the asset directory and files relative to it.
package paths

import (
	"os"
	"path/filepath"

	"github.com/golang/glog"
)

// Dirs lists the directories searched for assets, in order: the working
// directory, its assets/ subdirectory, then the same two next to the
// running binary and in its runfiles tree.
func Dirs() []string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd, filepath.Join(wd, "assets"))
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		dirs = append(dirs, dir, filepath.Join(dir, "assets"), filepath.Join(dir, "..", "assets"))
	}
	dirs = append(dirs, os.Args[0]+".runfiles/go_sprites/assets")
	return dirs
}

// IsBaseDir reports whether dir holds both palettes/ and templates/.
func IsBaseDir(dir string) bool {
	for _, sub := range []string{"palettes", "templates"} {
		fi, err := os.Stat(filepath.Join(dir, sub))
		if err != nil || !fi.IsDir() {
			return false
		}
	}
	return true
}

// FindBaseDir returns the first of dirs that is an asset base directory,
// or an empty string.
func FindBaseDir(dirs []string) string {
	for _, dir := range dirs {
		if IsBaseDir(dir) {
			glog.Infof("paths.FindBaseDir()=%s", dir)
			return dir
		}
	}
	return ""
}

// Find locates fileName, a path relative to an asset directory such as
// "generators/npc_pool.yaml", and returns the first of dirs holding it. An
// absolute or already reachable fileName is returned as is. If nothing is
// found, an empty string is returned.
func Find(fileName string, dirs []string) string {
	if _, err := os.Stat(fileName); err == nil {
		return fileName
	}
	if filepath.IsAbs(fileName) {
		return ""
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, fileName)
		if f, err := os.Open(path); err == nil {
			f.Close()
			glog.Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}
