package svgpath

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// 5-point Gauss-Legendre rule on [-1, 1].
var (
	glNodes   = [5]float64{0, -0.5384693101056831, 0.5384693101056831, -0.9061798459386640, 0.9061798459386640}
	glWeights = [5]float64{0.5688888888888889, 0.4786286704993665, 0.4786286704993665, 0.2369268850561891, 0.2369268850561891}
)

const (
	maxQuadDepth  = 18
	maxNewtonIter = 40
)

// cubic is a Bézier curve with its start anchor resolved.
type cubic struct {
	p0, p1, p2, p3 vec.Vec2
}

func (c cubic) eval(t float64) vec.Vec2 {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return vec.Vec2{
		X: a*c.p0.X + b*c.p1.X + d*c.p2.X + e*c.p3.X,
		Y: a*c.p0.Y + b*c.p1.Y + d*c.p2.Y + e*c.p3.Y,
	}
}

func (c cubic) deriv(t float64) vec.Vec2 {
	mt := 1 - t
	a := 3 * mt * mt
	b := 6 * mt * t
	d := 3 * t * t
	return vec.Vec2{
		X: a*(c.p1.X-c.p0.X) + b*(c.p2.X-c.p1.X) + d*(c.p3.X-c.p2.X),
		Y: a*(c.p1.Y-c.p0.Y) + b*(c.p2.Y-c.p1.Y) + d*(c.p3.Y-c.p2.Y),
	}
}

func (c cubic) speed(t float64) float64 {
	return c.deriv(t).Length()
}

// gauss integrates the speed over [a, b] with a single 5-point rule.
func (c cubic) gauss(a, b float64) float64 {
	h := (b - a) / 2
	m := (a + b) / 2
	var sum float64
	for i, x := range glNodes {
		sum += glWeights[i] * c.speed(m+h*x)
	}
	return sum * h
}

// arcLen returns the length of the curve between parameters a and b,
// refined until the halves agree with the whole to within tol.
func (c cubic) arcLen(a, b, tol float64) float64 {
	if a == b {
		return 0
	}
	return c.adaptive(a, b, c.gauss(a, b), tol, maxQuadDepth)
}

func (c cubic) adaptive(a, b, whole, tol float64, depth int) float64 {
	m := (a + b) / 2
	left := c.gauss(a, m)
	right := c.gauss(m, b)
	if depth == 0 || math.Abs(left+right-whole) <= tol {
		return left + right
	}
	return c.adaptive(a, m, left, tol/2, depth-1) + c.adaptive(m, b, right, tol/2, depth-1)
}

// solve finds t in [a, 1] where the arc length from 0 reaches target,
// given that the length up to a is sa. Newton steps that leave the
// current bracket fall back to bisection.
func (c cubic) solve(a, sa, target, total, tol float64) float64 {
	lo, hi := a, 1.0
	t := target / total
	if t <= lo || t >= hi {
		t = (lo + hi) / 2
	}
	for i := 0; i < maxNewtonIter; i++ {
		diff := sa + c.arcLen(a, t, tol) - target
		if math.Abs(diff) <= tol {
			break
		}
		if diff > 0 {
			hi = t
		} else {
			lo = t
		}
		next := math.NaN()
		if v := c.speed(t); v > 0 {
			next = t - diff/v
		}
		if !(next > lo && next < hi) {
			next = (lo + hi) / 2
		}
		if next == t {
			break
		}
		t = next
	}
	return t
}
