package template

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"badc0de.net/pkg/go-sprites"
	"badc0de.net/pkg/go-sprites/ttesting"
)

const capeDoc = `{
	"template_id": "cape_red",
	"type": "accessory",
	"size": [3, 2],
	"palette_type": "nested",
	"mirror_right_from_left": true,
	"z_order": 2,
	"z_order_override": {"up": 5},
	"directions": {
		"down": {"idle": [[0, "cloth.base", null], ["0", 7, "cloth.dark"]]},
		"left": {"idle": [[0, "cloth.base"]]}
	}
}`

func TestDecode(t *testing.T) {
	tp, err := Decode(strings.NewReader(capeDoc))
	if err != nil {
		t.Fatalf("failed to decode template: %v", err)
	}

	ttesting.AssertEqualString(t, "id", tp.ID, "cape_red")
	ttesting.AssertEqualInt(t, "width", tp.Width(), 3)
	ttesting.AssertEqualInt(t, "height", tp.Height(), 2)
	ttesting.AssertEqualInt(t, "z order", tp.ZOrder, 2)
	ttesting.AssertEqualInt(t, "z order override up", tp.ZOrderOverride[sprites.Up], 5)
	ttesting.AssertEqualBool(t, "mirror", tp.MirrorRightFromLeft, true)
	ttesting.AssertEqualString(t, "default walk cycle", strings.Join(tp.WalkCycle, ","), "idle,walk_1,idle,walk_2")

	g, ok := tp.Grid(sprites.Down, "idle")
	if !ok {
		t.Fatalf("down/idle missing")
	}
	ttesting.AssertEqualBool(t, "0 is transparent", g[0][0].IsTransparent(), true)
	ttesting.AssertEqualString(t, "string is key", g[0][1].Key(), "cloth.base")
	ttesting.AssertEqualBool(t, "null is transparent", g[0][2].IsTransparent(), true)
	ttesting.AssertEqualBool(t, `"0" is transparent`, g[1][0].IsTransparent(), true)
	ttesting.AssertEqualString(t, "number is key", g[1][1].Key(), "7")

	if _, ok := tp.Grid(sprites.Right, "idle"); ok {
		t.Errorf("right/idle present; want it absent until materialized")
	}
}

func TestDecodeDimensionsAndDefaults(t *testing.T) {
	tp, err := Decode(strings.NewReader(`{"template_id":"x","dimensions":{"width":16,"height":24}}`))
	if err != nil {
		t.Fatalf("failed to decode template: %v", err)
	}
	ttesting.AssertEqualInt(t, "width", tp.Width(), 16)
	ttesting.AssertEqualInt(t, "height", tp.Height(), 24)

	tp, err = Decode(strings.NewReader(`{"template_id":"y"}`))
	if err != nil {
		t.Fatalf("failed to decode template: %v", err)
	}
	ttesting.AssertEqualBool(t, "has size", tp.HasSize, false)
	ttesting.AssertEqualInt(t, "default width", tp.Width(), DefaultWidth)
	ttesting.AssertEqualInt(t, "default height", tp.Height(), DefaultHeight)

	for _, doc := range []string{
		`{"size":[1,1]}`,
		`{"template_id":"z","size":[1]}`,
		`{"template_id":"z","size":[0,4]}`,
		`{"template_id":"z","directions":{"down":{"idle":[[true]]}}}`,
	} {
		if _, err := Decode(strings.NewReader(doc)); err == nil {
			t.Errorf("Decode(%s) succeeded; want an error", doc)
		}
	}
}

func TestEncodeRoundTripsCells(t *testing.T) {
	tp, err := Decode(strings.NewReader(capeDoc))
	if err != nil {
		t.Fatalf("failed to decode template: %v", err)
	}
	var buf bytes.Buffer
	if err := tp.Encode(&buf); err != nil {
		t.Fatalf("failed to encode template: %v", err)
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("failed to decode encoded template: %v", err)
	}
	a, _ := tp.Grid(sprites.Down, "idle")
	b, _ := back.Grid(sprites.Down, "idle")
	ttesting.AssertEqualBool(t, "grids equal", a.Equal(b), true)
	ttesting.AssertEqualInt(t, "override kept", back.ZOrderOverride[sprites.Up], 5)
}

func TestEncodeKeepsUnknownFields(t *testing.T) {
	doc := `{"template_id":"cape","author":"mira","notes":{"rev":3},"directions":{"down":{"idle":[["a",0]]}}}`
	tp, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("failed to decode template: %v", err)
	}
	ttesting.AssertEqualInt(t, "extra fields", len(tp.Extra), 2)

	var buf bytes.Buffer
	if err := tp.Clone().Encode(&buf); err != nil {
		t.Fatalf("failed to encode template: %v", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &fields); err != nil {
		t.Fatalf("encoded template is not an object: %v", err)
	}
	ttesting.AssertEqualString(t, "author", string(fields["author"]), `"mira"`)
	ttesting.AssertEqualString(t, "notes", string(bytes.Join(bytes.Fields(fields["notes"]), nil)), `{"rev":3}`)
	ttesting.AssertEqualString(t, "id", string(fields["template_id"]), `"cape"`)

	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("failed to decode encoded template: %v", err)
	}
	g, _ := back.Grid(sprites.Down, "idle")
	ttesting.AssertEqualString(t, "cell", g[0][0].Key(), "a")
}

func TestStoreFirstMatchWins(t *testing.T) {
	s := NewStore()
	a := &Template{ID: "hat", Source: "accessories/a.json"}
	b := &Template{ID: "hat", Source: "accessories/b.json"}
	ttesting.AssertEqualBool(t, "first kept", s.Add("accessories", a), true)
	ttesting.AssertEqualBool(t, "second dropped", s.Add("accessories", b), false)

	got, err := s.Template("hat")
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	ttesting.AssertEqualString(t, "winner", got.Source, "accessories/a.json")
	ttesting.AssertEqualString(t, "category", s.Category("hat"), "accessories")

	if _, err := s.Template("boots"); !sprites.IsNotFound(err) {
		t.Errorf("got %v; want a not-found error", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	tp, err := Decode(strings.NewReader(capeDoc))
	if err != nil {
		t.Fatalf("failed to decode template: %v", err)
	}
	c := tp.Clone()
	c.Directions[sprites.Down]["idle"][0][0] = Key("cloth.dark")
	c.ZOrderOverride[sprites.Up] = 9

	g, _ := tp.Grid(sprites.Down, "idle")
	ttesting.AssertEqualBool(t, "original cell untouched", g[0][0].IsTransparent(), true)
	ttesting.AssertEqualInt(t, "original override untouched", tp.ZOrderOverride[sprites.Up], 5)
}
