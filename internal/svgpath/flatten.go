package svgpath

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
)

const (
	DefaultComplexity = 5
	DefaultTolerance  = 1e-9

	// curves shorter than this are dropped
	minArcLength = 1e-12
)

var (
	// ErrInvalidArgument reports an unusable flattening parameter.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoCurrentPoint reports a curve with nothing before it to start from.
	ErrNoCurrentPoint = errors.New("curve without a current point")
)

// Flattener replaces every CurveTo with Complexity LineTo segments spaced
// at equal arc length. Tolerance bounds the absolute arc length error in
// drawing units; zero selects DefaultTolerance.
type Flattener struct {
	Complexity int
	Tolerance  float64
}

// Flatten runs a Flattener with the default tolerance.
func Flatten(segs []Segment, complexity int) ([]Segment, error) {
	return Flattener{Complexity: complexity}.Flatten(segs)
}

// cursor is the state carried from one segment to the next.
type cursor struct {
	current vec.Vec2
	start   vec.Vec2
	valid   bool
}

func (f Flattener) Flatten(segs []Segment) ([]Segment, error) {
	if f.Complexity < 1 {
		return nil, fmt.Errorf("%w: complexity %d, need at least 1", ErrInvalidArgument, f.Complexity)
	}
	tol, err := f.tolerance()
	if err != nil {
		return nil, err
	}
	out := make([]Segment, 0, len(segs))
	var cur cursor
	for i, s := range segs {
		cur, out, err = f.step(cur, s, out, tol)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return out, nil
}

func (f Flattener) tolerance() (float64, error) {
	switch {
	case f.Tolerance == 0:
		return DefaultTolerance, nil
	case f.Tolerance < 0 || math.IsNaN(f.Tolerance) || math.IsInf(f.Tolerance, 0):
		return 0, fmt.Errorf("%w: tolerance %g", ErrInvalidArgument, f.Tolerance)
	}
	return f.Tolerance, nil
}

// step consumes one segment, appends its flattened form to out and
// returns the updated cursor.
func (f Flattener) step(cur cursor, s Segment, out []Segment, tol float64) (cursor, []Segment, error) {
	switch s := s.(type) {
	case MoveTo:
		return cursor{current: s.Point, start: s.Point, valid: true}, append(out, s), nil
	case LineTo:
		if !cur.valid {
			cur.start = s.Point
		}
		cur.current, cur.valid = s.Point, true
		return cur, append(out, s), nil
	case ClosePath:
		// the ring returns to where the subpath began
		cur.current = cur.start
		return cur, append(out, s), nil
	case CurveTo:
		if !cur.valid {
			return cur, out, ErrNoCurrentPoint
		}
		c := cubic{p0: cur.current, p1: s.C1, p2: s.C2, p3: s.End}
		out = f.sample(c, tol, out)
		cur.current = s.End
		return cur, out, nil
	default:
		return cur, out, fmt.Errorf("%w: unknown segment %T", ErrInvalidArgument, s)
	}
}

// sample appends the equal arc length points of c, ending exactly on c.p3.
func (f Flattener) sample(c cubic, tol float64, out []Segment) []Segment {
	if c.p0 == c.p3 {
		return out
	}
	total := c.arcLen(0, 1, tol)
	if !(total >= minArcLength) {
		return out
	}
	n := f.Complexity
	t, s := 0.0, 0.0
	for k := 1; k < n; k++ {
		target := total * float64(k) / float64(n)
		t = c.solve(t, s, target, total, tol)
		s = target
		out = append(out, LineTo{Point: c.eval(t)})
	}
	return append(out, LineTo{Point: c.p3})
}
