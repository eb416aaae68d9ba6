// Package batch draws random, distinct NPC composite requests from a pool
// and exports them as sprite sheets, a mega-sheet and a definitions file.
//
// Generation is deterministic for a given seed: the same pool, count and
// seed always produce the same requests in the same order.
package batch

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"badc0de.net/pkg/go-sprites"
	"badc0de.net/pkg/go-sprites/compositor"
)

// Counter hands out sequence numbers for one batch.
type Counter struct {
	n int
}

// Next advances the counter and returns the new value.
func (c *Counter) Next() int {
	c.n++
	return c.n
}

// Undo gives back the last number handed out.
func (c *Counter) Undo() {
	if c.n > 0 {
		c.n--
	}
}

// Value is the last number handed out.
func (c *Counter) Value() int {
	return c.n
}

// Choice is one random draw from a pool. An empty Accessory means none.
type Choice struct {
	Body             string
	Clothing         string
	Hair             string
	Accessory        string
	SkinPalette      string
	HairPalette      string
	ClothingPalette  string
	AccessoryPalette string
}

// Sample draws one option per category, always in the same order: body,
// clothing, hair, accessory, then the skin, hair, clothing and accessory
// palettes. The accessory palette is drawn even when no accessory is.
func Sample(p *Pool, rng *rand.Rand) Choice {
	pick := func(s []string) string {
		return s[rng.Intn(len(s))]
	}
	var c Choice
	c.Body = pick(p.BodyTemplates)
	c.Clothing = pick(p.ClothingOptions)
	c.Hair = pick(p.HairOptions)
	if acc := p.AccessoryOptions[rng.Intn(len(p.AccessoryOptions))]; acc != nil {
		c.Accessory = *acc
	}
	c.SkinPalette = pick(p.SkinPalettes)
	c.HairPalette = pick(p.HairPalettes)
	c.ClothingPalette = pick(p.ClothingPalettes)
	c.AccessoryPalette = pick(p.AccessoryPalettes)
	return c
}

// Layers binds the choice's templates to palettes, body at the back.
func (c Choice) Layers() []compositor.LayerSpec {
	z := func(n int) *int { return &n }
	layers := []compositor.LayerSpec{
		{Template: c.Body, Palette: c.SkinPalette, ZOrder: z(0)},
		{Template: c.Clothing, Palette: c.ClothingPalette, ZOrder: z(1)},
		{Template: c.Hair, Palette: c.HairPalette, ZOrder: z(2)},
	}
	if c.Accessory != "" {
		layers = append(layers, compositor.LayerSpec{Template: c.Accessory, Palette: c.AccessoryPalette, ZOrder: z(3)})
	}
	return layers
}

// Signature identifies a choice by its template:palette pairs.
func Signature(layers []compositor.LayerSpec) string {
	parts := make([]string, len(layers))
	for i, l := range layers {
		parts[i] = l.Template + ":" + l.Palette
	}
	return strings.Join(parts, "|")
}

// DisplayName turns an id such as townfolk_003 into "Townfolk 003".
func DisplayName(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

// DefaultFPS is the walk speed written into generated requests.
const DefaultFPS = 8

func (c Choice) request(p *Pool, id string) *compositor.Request {
	var accessory, accessoryPalette interface{}
	if c.Accessory != "" {
		accessory, accessoryPalette = c.Accessory, c.AccessoryPalette
	}
	return &compositor.Request{
		ID:          id,
		DisplayName: DisplayName(id),
		Width:       p.BaseSpriteSize[0],
		Height:      p.BaseSpriteSize[1],
		WalkCycle:   sprites.DefaultWalkCycle(),
		FPS:         DefaultFPS,
		Layers:      c.Layers(),
		Metadata: map[string]interface{}{
			"generator":         p.GeneratorID,
			"body":              c.Body,
			"clothing":          c.Clothing,
			"hair":              c.Hair,
			"accessory":         accessory,
			"skin_palette":      c.SkinPalette,
			"hair_palette":      c.HairPalette,
			"clothing_palette":  c.ClothingPalette,
			"accessory_palette": accessoryPalette,
			"tags":              []string{"generated"},
		},
	}
}

// Result is the outcome of one Generate call.
type Result struct {
	Requests []*compositor.Request
	Choices  []Choice
	// Counter is the batch's sequence counter after the last request.
	Counter *Counter
	// Attempts is how many candidates were drawn, duplicates included.
	Attempts int
	// Shortfall is how many requested NPCs could not be made distinct
	// within the attempt limit.
	Shortfall int
	Seed      int64
}

// MaxAttempts bounds candidate draws for a batch of count.
func MaxAttempts(count int) int {
	return count * 10
}

// Generate draws up to count distinct requests from p. A candidate whose
// signature was already produced in this batch is discarded and its id
// reused. Running out of attempts is reported in Result.Shortfall, not as
// an error. Empty option lists in p are filled by Defaults first.
//
// Ids continue from c, which is advanced in place and returned in
// Result.Counter. A nil c starts a fresh sequence at 1.
func Generate(p *Pool, count int, seed int64, c *Counter) *Result {
	p.Defaults()
	if c == nil {
		c = &Counter{}
	}
	rng := rand.New(rand.NewSource(seed))
	res := &Result{Counter: c, Seed: seed}
	seen := make(map[string]bool)

	for len(res.Requests) < count && res.Attempts < MaxAttempts(count) {
		res.Attempts++
		c := Sample(p, rng)
		id := fmt.Sprintf("%s_%03d", p.GeneratorID, res.Counter.Next())
		sig := Signature(c.Layers())
		if seen[sig] {
			glog.V(2).Infof("batch %q: duplicate %s", p.GeneratorID, sig)
			res.Counter.Undo()
			continue
		}
		seen[sig] = true
		res.Requests = append(res.Requests, c.request(p, id))
		res.Choices = append(res.Choices, c)
	}

	if n := len(res.Requests); n < count {
		res.Shortfall = count - n
		glog.Warningf("batch %q: only %d unique NPCs of %d requested after %d attempts", p.GeneratorID, n, count, res.Attempts)
	}
	return res
}
