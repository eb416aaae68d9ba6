package template

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-sprites"
)

// DefaultCategories is the category scan order. It covers both the
// body/armor/weapons layout and the bodies/clothing/hair/accessories layout.
var DefaultCategories = []string{
	"body",
	"armor",
	"weapons",
	"bodies",
	"clothing",
	"hair",
	"accessories",
}

// Store is an id → template index built once before rendering.
//
// Documents must be added in scan order: categories in their configured
// order, and within a category in a stable order such as lexicographic by
// source name. The first document that declares an id wins.
type Store struct {
	byID     map[string]*Template
	category map[string]string
	order    []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		byID:     make(map[string]*Template),
		category: make(map[string]string),
	}
}

// Add registers t under category. It reports whether t was kept; a template
// whose id is already registered is dropped.
func (s *Store) Add(category string, t *Template) bool {
	if prev, ok := s.byID[t.ID]; ok {
		glog.Warningf("template %q in %q shadowed by earlier %q", t.ID, t.Source, prev.Source)
		return false
	}
	s.byID[t.ID] = t
	s.category[t.ID] = category
	s.order = append(s.order, t.ID)
	return true
}

// Template returns the template registered as id, or a
// *sprites.NotFoundError.
func (s *Store) Template(id string) (*Template, error) {
	if t, ok := s.byID[id]; ok {
		return t, nil
	}
	return nil, &sprites.NotFoundError{Kind: "template", ID: id}
}

// Category returns the category id was registered under.
func (s *Store) Category(id string) string {
	return s.category[id]
}

// IDs lists registered ids in scan order.
func (s *Store) IDs() []string {
	return append([]string(nil), s.order...)
}

// Len is the number of registered templates.
func (s *Store) Len() int {
	return len(s.order)
}
