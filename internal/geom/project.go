package geom

import (
	"github.com/paulmach/orb"

	"seehuhn.de/go/geom/vec"
)

// Projection maps drawing space onto Bounds: x runs west to east over
// [0, Width], y runs north to south over [0, Height]. The maps are not
// clamped and non-finite input stays non-finite.
type Projection struct {
	bounds Bounds
	dims   Dimensions
}

func NewProjection(b Bounds, d Dimensions) Projection {
	return Projection{bounds: b, dims: d}
}

func (p Projection) Bounds() Bounds         { return p.bounds }
func (p Projection) Dimensions() Dimensions { return p.dims }

// MapX returns the longitude for drawing x.
func (p Projection) MapX(x float64) float64 {
	return lerp(p.bounds.West, p.bounds.East, x/p.dims.Width)
}

// MapY returns the latitude for drawing y. Drawing y grows downward, so
// y = 0 is the north edge.
func (p Projection) MapY(y float64) float64 {
	return lerp(p.bounds.North, p.bounds.South, y/p.dims.Height)
}

// Project returns [lon, lat].
func (p Projection) Project(v vec.Vec2) orb.Point {
	return orb.Point{p.MapX(v.X), p.MapY(v.Y)}
}

// lerp hits a and b exactly at t = 0 and t = 1.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
