package palette

import (
	"image/color"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-sprites"
)

// MasterID is the id under which a nested master palette is registered.
const MasterID = "master"

// Store is an id → palette index. It is built once, before rendering, and
// only read afterwards.
type Store struct {
	byID  map[string]Palette
	order []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[string]Palette)}
}

// Add registers p. The first palette registered for an id wins; later ones
// are dropped with a warning.
func (s *Store) Add(p Palette) {
	if _, ok := s.byID[p.ID()]; ok {
		glog.Warningf("palette %q registered twice; keeping the first", p.ID())
		return
	}
	s.byID[p.ID()] = p
	s.order = append(s.order, p.ID())
}

// Palette returns the palette registered as id, or a *sprites.NotFoundError.
func (s *Store) Palette(id string) (Palette, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, &sprites.NotFoundError{Kind: "palette", ID: id}
}

// Master is shorthand for Palette(MasterID).
func (s *Store) Master() (Palette, error) {
	return s.Palette(MasterID)
}

// IDs lists registered ids in registration order.
func (s *Store) IDs() []string {
	return append([]string(nil), s.order...)
}

// Len is the number of registered palettes.
func (s *Store) Len() int {
	return len(s.order)
}

// Resolve looks key up in the palette registered as id. It is the
// resolve(palette_ref, key) form of the lookup; an unknown palette is an
// error, an unknown key is a miss.
func (s *Store) Resolve(id, key string) (color.RGBA, bool, error) {
	p, err := s.Palette(id)
	if err != nil {
		return color.RGBA{}, false, err
	}
	c, ok := p.Resolve(key)
	return c, ok, nil
}
