package batch

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Pool is a generator config: the options each random NPC is drawn from.
// A nil entry in AccessoryOptions means "no accessory".
type Pool struct {
	GeneratorID       string    `json:"generator_id" yaml:"generator_id"`
	BaseSpriteSize    []int     `json:"base_sprite_size" yaml:"base_sprite_size"`
	BodyTemplates     []string  `json:"body_templates" yaml:"body_templates"`
	ClothingOptions   []string  `json:"clothing_options" yaml:"clothing_options"`
	HairOptions       []string  `json:"hair_options" yaml:"hair_options"`
	AccessoryOptions  []*string `json:"accessory_options" yaml:"accessory_options"`
	SkinPalettes      []string  `json:"skin_palettes" yaml:"skin_palettes"`
	HairPalettes      []string  `json:"hair_palettes" yaml:"hair_palettes"`
	ClothingPalettes  []string  `json:"clothing_palettes" yaml:"clothing_palettes"`
	AccessoryPalettes []string  `json:"accessory_palettes" yaml:"accessory_palettes"`
}

// DefaultGeneratorID names NPCs of a pool that does not name itself.
const DefaultGeneratorID = "npc"

// Defaults fills every empty field with the stock single-option pool.
func (p *Pool) Defaults() {
	if p.GeneratorID == "" {
		p.GeneratorID = DefaultGeneratorID
	}
	if len(p.BaseSpriteSize) != 2 {
		p.BaseSpriteSize = []int{16, 24}
	}
	def := func(s *[]string, v string) {
		if len(*s) == 0 {
			*s = []string{v}
		}
	}
	def(&p.BodyTemplates, "body_medium")
	def(&p.ClothingOptions, "tunic_simple")
	def(&p.HairOptions, "hair_short")
	def(&p.SkinPalettes, "skin_light")
	def(&p.HairPalettes, "hair_brown")
	def(&p.ClothingPalettes, "clothing_brown")
	def(&p.AccessoryPalettes, "accessory_gold")
	if len(p.AccessoryOptions) == 0 {
		p.AccessoryOptions = []*string{nil}
	}
}

// Validate checks what Defaults cannot fix.
func (p *Pool) Validate() error {
	if p.BaseSpriteSize[0] <= 0 || p.BaseSpriteSize[1] <= 0 {
		return errors.Errorf("pool %q: base_sprite_size %v is not positive", p.GeneratorID, p.BaseSpriteSize)
	}
	return nil
}

// DecodePool reads a pool document. JSON is used when isJSON is set,
// YAML otherwise. Defaults are applied.
func DecodePool(r io.Reader, isJSON bool) (*Pool, error) {
	var p Pool
	if isJSON {
		if err := json.NewDecoder(r).Decode(&p); err != nil {
			return nil, errors.Wrap(err, "decoding json pool")
		}
	} else {
		if err := yaml.NewDecoder(r).Decode(&p); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "decoding yaml pool")
		}
	}
	p.Defaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadPool reads the pool at path, picking the format by extension.
func LoadPool(path string) (*Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening pool")
	}
	defer f.Close()
	return DecodePool(f, strings.ToLower(filepath.Ext(path)) == ".json")
}
