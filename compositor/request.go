package compositor

import (
	"encoding/json"
	"io"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sprites/palette"
)

// LayerSpec binds a template to a palette. ZOrder, when set, replaces the
// template's base z-order; direction overrides still win over it.
type LayerSpec struct {
	Template string `json:"template" mapstructure:"template"`
	Palette  string `json:"palette" mapstructure:"palette"`
	ZOrder   *int   `json:"z_order,omitempty" mapstructure:"z_order"`
}

// Request is one composite request. The first layer is the primary (body)
// layer; it must resolve or the composite fails. Zero Width/Height and an
// empty WalkCycle fall back to the primary template.
type Request struct {
	ID          string
	DisplayName string
	Width       int
	Height      int
	WalkCycle   []string
	FPS         int
	Layers      []LayerSpec
	Metadata    map[string]interface{}
}

// Loadout is the shared-master-palette request document.
type Loadout struct {
	LoadoutID   string   `json:"loadout_id" mapstructure:"loadout_id"`
	DisplayName string   `json:"display_name,omitempty" mapstructure:"display_name"`
	Body        string   `json:"body" mapstructure:"body"`
	Equipment   []string `json:"equipment" mapstructure:"equipment"`
	WalkCycle   []string `json:"walk_cycle,omitempty" mapstructure:"walk_cycle"`
}

// Animation carries an NPC definition's playback settings.
type Animation struct {
	FrameOrder   []string `json:"frame_order,omitempty" mapstructure:"frame_order"`
	WalkSpeedFPS int      `json:"walk_speed_fps,omitempty" mapstructure:"walk_speed_fps"`
}

// NPCDefinition is the per-layer-palette request document.
type NPCDefinition struct {
	NPCID       string                 `json:"npc_id" mapstructure:"npc_id"`
	DisplayName string                 `json:"display_name,omitempty" mapstructure:"display_name"`
	SpriteSize  []int                  `json:"sprite_size,omitempty" mapstructure:"sprite_size"`
	Layers      []LayerSpec            `json:"layers" mapstructure:"layers"`
	Animation   *Animation             `json:"animation,omitempty" mapstructure:"animation"`
	Metadata    map[string]interface{} `json:"metadata,omitempty" mapstructure:"metadata"`
}

// Request turns a loadout into a request against the master palette.
func (l *Loadout) Request() *Request {
	req := &Request{
		ID:          l.LoadoutID,
		DisplayName: l.DisplayName,
		WalkCycle:   l.WalkCycle,
	}
	req.Layers = append(req.Layers, LayerSpec{Template: l.Body, Palette: palette.MasterID})
	for _, id := range l.Equipment {
		req.Layers = append(req.Layers, LayerSpec{Template: id, Palette: palette.MasterID})
	}
	return req
}

// Request turns an NPC definition into a request.
func (n *NPCDefinition) Request() (*Request, error) {
	req := &Request{
		ID:          n.NPCID,
		DisplayName: n.DisplayName,
		Layers:      n.Layers,
		Metadata:    n.Metadata,
	}
	switch len(n.SpriteSize) {
	case 0:
	case 2:
		if n.SpriteSize[0] <= 0 || n.SpriteSize[1] <= 0 {
			return nil, errors.Errorf("npc %q: sprite_size %v is not positive", n.NPCID, n.SpriteSize)
		}
		req.Width, req.Height = n.SpriteSize[0], n.SpriteSize[1]
	default:
		return nil, errors.Errorf("npc %q: sprite_size wants [w,h], got %v", n.NPCID, n.SpriteSize)
	}
	if n.Animation != nil {
		req.WalkCycle = n.Animation.FrameOrder
		req.FPS = n.Animation.WalkSpeedFPS
	}
	return req, nil
}

// Definition renders req back out as an NPC definition.
func (r *Request) Definition() *NPCDefinition {
	def := &NPCDefinition{
		NPCID:       r.ID,
		DisplayName: r.DisplayName,
		Layers:      r.Layers,
		Metadata:    r.Metadata,
	}
	if r.Width > 0 && r.Height > 0 {
		def.SpriteSize = []int{r.Width, r.Height}
	}
	if len(r.WalkCycle) > 0 || r.FPS > 0 {
		def.Animation = &Animation{FrameOrder: r.WalkCycle, WalkSpeedFPS: r.FPS}
	}
	return def
}

// ParseRequest builds a request from a generic decoded document. A document
// with "layers" is an NPC definition; one with "body" is a loadout.
func ParseRequest(doc map[string]interface{}) (*Request, error) {
	if _, ok := doc["layers"]; ok {
		var n NPCDefinition
		if err := mapstructure.Decode(doc, &n); err != nil {
			return nil, errors.Wrap(err, "decoding npc definition")
		}
		if n.NPCID == "" {
			return nil, errors.New("npc definition has no npc_id")
		}
		return n.Request()
	}
	if _, ok := doc["body"]; ok {
		var l Loadout
		if err := mapstructure.Decode(doc, &l); err != nil {
			return nil, errors.Wrap(err, "decoding loadout")
		}
		if l.Body == "" {
			return nil, errors.Errorf("loadout %q has an empty body", l.LoadoutID)
		}
		return l.Request(), nil
	}
	return nil, errors.New("request is neither a loadout (body) nor an npc definition (layers)")
}

// DecodeRequest reads one JSON request document.
func DecodeRequest(r io.Reader) (*Request, error) {
	var doc map[string]interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding request")
	}
	return ParseRequest(doc)
}
