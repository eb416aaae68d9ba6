package paths

import (
	"os"
	"path/filepath"
	"testing"

	"badc0de.net/pkg/go-sprites/ttesting"
)

func mkdirs(t *testing.T, base string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(base, d), 0755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindBaseDir(t *testing.T) {
	empty := t.TempDir()
	half := t.TempDir()
	mkdirs(t, half, "palettes")
	full := t.TempDir()
	mkdirs(t, full, "palettes", "templates/bodies")
	other := t.TempDir()
	mkdirs(t, other, "palettes", "templates")

	ttesting.AssertEqualBool(t, "empty", IsBaseDir(empty), false)
	ttesting.AssertEqualBool(t, "palettes only", IsBaseDir(half), false)
	ttesting.AssertEqualString(t, "first match wins", FindBaseDir([]string{empty, half, full, other}), full)
	ttesting.AssertEqualString(t, "none", FindBaseDir([]string{empty, half}), "")
}

func TestFind(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	mkdirs(t, b, "generators")
	pool := filepath.Join(b, "generators", "npc_pool.yaml")
	if err := os.WriteFile(pool, []byte("generator_id: npc\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ttesting.AssertEqualString(t, "relative", Find("generators/npc_pool.yaml", []string{a, b}), pool)
	ttesting.AssertEqualString(t, "absolute", Find(pool, nil), pool)
	ttesting.AssertEqualString(t, "missing", Find("generators/guards.yaml", []string{a, b}), "")
	ttesting.AssertEqualString(t, "missing absolute", Find(filepath.Join(a, "nope.json"), []string{b}), "")
}
