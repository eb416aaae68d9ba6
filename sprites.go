// Package sprites holds the vocabulary shared by the compositing packages:
// facing directions, the default walk cycle and the not-found error used by
// the palette and template stores.
//
// The engine itself lives in subpackages. palette and template resolve
// documents by id, render rasterizes one layer, compositor stacks layers
// into frames, sheet lays frames out into PNG and GIF outputs, and batch
// samples random composite requests from a pool.
package sprites

import (
	"fmt"

	"github.com/pkg/errors"
)

// Direction is a facing direction of a character.
type Direction string

const (
	Down  = Direction("down")
	Left  = Direction("left")
	Right = Direction("right")
	Up    = Direction("up")
)

// Directions lists the four canonical directions in sheet row order.
var Directions = []Direction{Down, Left, Right, Up}

func (d Direction) String() string {
	return string(d)
}

// Label is the capitalized direction name used on sheets.
func Label(d Direction) string {
	switch d {
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Up:
		return "Up"
	}
	return string(d)
}

// Valid reports whether d is one of the four canonical directions.
func (d Direction) Valid() bool {
	switch d {
	case Down, Left, Right, Up:
		return true
	}
	return false
}

// DefaultWalkCycle is used whenever neither the request nor the primary
// template names frames.
func DefaultWalkCycle() []string {
	return []string{"idle", "walk_1", "idle", "walk_2"}
}

// ErrNotFound is the cause of every NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a palette, template or other document missing from
// an index.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// Cause lets errors.Cause reach ErrNotFound.
func (e *NotFoundError) Cause() error {
	return ErrNotFound
}

// Unwrap lets errors.Is reach ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// IsNotFound reports whether err, or anything it wraps, is a NotFoundError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
