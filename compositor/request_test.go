package compositor

import (
	"fmt"
	"strings"
	"testing"

	"badc0de.net/pkg/go-sprites"
	"badc0de.net/pkg/go-sprites/palette"
	"badc0de.net/pkg/go-sprites/template"
	"badc0de.net/pkg/go-sprites/ttesting"
)

func TestDecodeLoadout(t *testing.T) {
	req, err := DecodeRequest(strings.NewReader(`{
		"loadout_id": "knight_basic",
		"display_name": "Knight",
		"body": "body_male",
		"equipment": ["steel_helm", "steel_sword"]
	}`))
	if err != nil {
		t.Fatalf("DecodeRequest: %v", err)
	}
	ttesting.AssertEqualString(t, "id", req.ID, "knight_basic")
	ttesting.AssertEqualString(t, "display name", req.DisplayName, "Knight")
	ttesting.AssertEqualInt(t, "layers", len(req.Layers), 3)
	ttesting.AssertEqualString(t, "primary", req.Layers[0].Template, "body_male")
	for i, l := range req.Layers {
		ttesting.AssertEqualString(t, fmt.Sprintf("layer %d palette", i), l.Palette, palette.MasterID)
	}
}

func TestDecodeNPCDefinition(t *testing.T) {
	req, err := DecodeRequest(strings.NewReader(`{
		"npc_id": "guard_01",
		"sprite_size": [16, 24],
		"layers": [
			{"template": "body_medium", "palette": "skin_dark", "z_order": 0},
			{"template": "hat", "palette": "accessory_gold", "z_order": 3},
			{"template": "cape", "palette": "clothing_red"}
		],
		"animation": {"frame_order": ["idle", "walk_1"], "walk_speed_fps": 6},
		"metadata": {"tags": ["guard"]}
	}`))
	if err != nil {
		t.Fatalf("DecodeRequest: %v", err)
	}
	ttesting.AssertEqualString(t, "id", req.ID, "guard_01")
	ttesting.AssertEqualInt(t, "width", req.Width, 16)
	ttesting.AssertEqualInt(t, "height", req.Height, 24)
	ttesting.AssertEqualInt(t, "fps", req.FPS, 6)
	ttesting.AssertEqualString(t, "walk cycle", strings.Join(req.WalkCycle, ","), "idle,walk_1")
	ttesting.AssertEqualInt(t, "hat z", *req.Layers[1].ZOrder, 3)
	ttesting.AssertEqualBool(t, "cape z unset", req.Layers[2].ZOrder == nil, true)

	def := req.Definition()
	ttesting.AssertEqualString(t, "round trip id", def.NPCID, "guard_01")
	ttesting.AssertEqualInt(t, "round trip fps", def.Animation.WalkSpeedFPS, 6)
	ttesting.AssertEqualInt(t, "round trip size", len(def.SpriteSize), 2)
}

func TestParseRequestErrors(t *testing.T) {
	for name, doc := range map[string]map[string]interface{}{
		"neither":        {"loadout_id": "x"},
		"empty body":     {"loadout_id": "x", "body": ""},
		"no npc id":      {"layers": []interface{}{}},
		"bad size shape": {"npc_id": "x", "layers": []interface{}{}, "sprite_size": []interface{}{16}},
		"zero size":      {"npc_id": "x", "layers": []interface{}{}, "sprite_size": []interface{}{0, 24}},
	} {
		if _, err := ParseRequest(doc); err == nil {
			t.Errorf("%s: ParseRequest accepted %v", name, doc)
		}
	}
}

func ExampleEffectiveZ() {
	helm, err := template.Decode(strings.NewReader(`{"template_id":"helm","z_order":2,"z_order_override":{"up":5}}`))
	if err != nil {
		fmt.Println(err)
		return
	}
	base := 4
	fmt.Println(EffectiveZ(helm, sprites.Down, nil), EffectiveZ(helm, sprites.Up, nil))
	fmt.Println(EffectiveZ(helm, sprites.Down, &base), EffectiveZ(helm, sprites.Up, &base))
	// Output:
	// 2 5
	// 4 5
}
