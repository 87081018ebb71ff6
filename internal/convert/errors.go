package convert

import (
	"fmt"

	"svggeo/internal/geom"
	"svggeo/internal/svgpath"
)

var (
	ErrInvalidArgument   = svgpath.ErrInvalidArgument
	ErrNoCurrentPoint    = svgpath.ErrNoCurrentPoint
	ErrMissingDimensions = geom.ErrMissingDimensions
)

// ElementError names the element a conversion failed on.
type ElementError struct {
	Index int
	Kind  string
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }
