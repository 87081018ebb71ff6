// Package svgpath holds normalized, absolute path segments and flattens
// their cubic curves into straight runs.
package svgpath

import (
	"fmt"

	"seehuhn.de/go/geom/vec"
)

// Segment is one normalized path command in drawing space.
// Implementations are MoveTo, LineTo, CurveTo and ClosePath.
type Segment interface {
	isSegment()
}

// MoveTo starts a new subpath at Point.
type MoveTo struct {
	Point vec.Vec2
}

// LineTo draws a straight segment to Point.
type LineTo struct {
	Point vec.Vec2
}

// CurveTo is a cubic Bézier starting at the current point.
type CurveTo struct {
	C1, C2, End vec.Vec2
}

// ClosePath closes the current subpath.
type ClosePath struct{}

func (MoveTo) isSegment()    {}
func (LineTo) isSegment()    {}
func (CurveTo) isSegment()   {}
func (ClosePath) isSegment() {}

func (s MoveTo) String() string { return fmt.Sprintf("M %g %g", s.Point.X, s.Point.Y) }
func (s LineTo) String() string { return fmt.Sprintf("L %g %g", s.Point.X, s.Point.Y) }
func (s CurveTo) String() string {
	return fmt.Sprintf("C %g %g %g %g %g %g", s.C1.X, s.C1.Y, s.C2.X, s.C2.Y, s.End.X, s.End.Y)
}
func (ClosePath) String() string { return "Z" }

// Pt is shorthand for a drawing-space point.
func Pt(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

// HasCurves reports whether segs contains at least one CurveTo.
func HasCurves(segs []Segment) bool {
	for _, s := range segs {
		if _, ok := s.(CurveTo); ok {
			return true
		}
	}
	return false
}
