// Package mirror derives right-facing frames from left-facing ones by
// horizontal reflection, and checks templates that store both.
package mirror

import (
	"fmt"
	"sort"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-sprites"
	"badc0de.net/pkg/go-sprites/template"
)

// Row returns a reversed copy of row.
func Row(row []template.Cell) []template.Cell {
	out := make([]template.Cell, len(row))
	for i, c := range row {
		out[len(row)-1-i] = c
	}
	return out
}

// Frame reverses every row of g left to right. Row and column counts are
// preserved, and Frame(Frame(g)) equals g.
func Frame(g template.Grid) template.Grid {
	if g == nil {
		return nil
	}
	out := make(template.Grid, len(g))
	for i, row := range g {
		out[i] = Row(row)
	}
	return out
}

// Materialize returns a copy of t with an explicit right direction built by
// mirroring every left frame, and with MirrorRightFromLeft cleared. It
// returns t itself and false when t does not mirror or has no left frames.
func Materialize(t *template.Template) (*template.Template, bool) {
	if !t.MirrorRightFromLeft {
		return t, false
	}
	left, ok := t.Directions[sprites.Left]
	if !ok {
		glog.Warningf("template %q mirrors right from left but has no left frames", t.ID)
		return t, false
	}

	out := t.Clone()
	right := make(template.Frames, len(left))
	for name, g := range left {
		right[name] = Frame(g)
	}
	out.Directions[sprites.Right] = right
	out.MirrorRightFromLeft = false
	return out, true
}

// Mismatch is one disagreement between a stored right frame and the mirror
// of its left frame. Row is -1 when the whole frame is missing or the row
// counts differ.
type Mismatch struct {
	Frame string
	Row   int
}

func (m Mismatch) String() string {
	if m.Row < 0 {
		return fmt.Sprintf("right/%s missing or differently sized", m.Frame)
	}
	return fmt.Sprintf("right/%s row %d", m.Frame, m.Row)
}

// Verify compares each stored right frame with the mirror of the left frame
// of the same name. It returns an error when t lacks either direction.
func Verify(t *template.Template) ([]Mismatch, error) {
	left, okL := t.Directions[sprites.Left]
	right, okR := t.Directions[sprites.Right]
	if !okL || !okR {
		return nil, fmt.Errorf("template %q: need both left and right frames to verify", t.ID)
	}

	names := make([]string, 0, len(left))
	for name := range left {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Mismatch
	for _, name := range names {
		got, ok := right[name]
		want := Frame(left[name])
		if !ok || len(got) != len(want) {
			out = append(out, Mismatch{Frame: name, Row: -1})
			continue
		}
		for i := range want {
			if !rowEqual(want[i], got[i]) {
				out = append(out, Mismatch{Frame: name, Row: i})
			}
		}
	}
	return out, nil
}

func rowEqual(a, b []template.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SymmetryThreshold is the score at or above which a frame counts as
// symmetric.
const SymmetryThreshold = 0.95

// Symmetric reports whether g scores at least SymmetryThreshold.
func Symmetric(g template.Grid) bool {
	return Symmetry(g) >= SymmetryThreshold
}

// Symmetry scores how closely g matches its own mirror image: the share of
// column pairs (i, w-1-i) with at least one painted cell in which both cells
// agree. A grid with no painted pairs scores 1.
func Symmetry(g template.Grid) float64 {
	total, matching := 0, 0
	for _, row := range g {
		w := len(row)
		for i := 0; i < w/2; i++ {
			l, r := row[i], row[w-1-i]
			if l.IsTransparent() && r.IsTransparent() {
				continue
			}
			total++
			if l == r {
				matching++
			}
		}
	}
	if total == 0 {
		return 1
	}
	return float64(matching) / float64(total)
}
