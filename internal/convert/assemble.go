package convert

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"seehuhn.de/go/geom/vec"

	"svggeo/internal/geom"
	"svggeo/internal/svgpath"
)

// Assemble builds the feature for one flattened element. MoveTo and
// LineTo give their own point, ClosePath repeats the first point of the
// path. Open kinds become a LineString, everything else a single-ring
// Polygon whose ring is closed. Only requested attributes with a
// non-empty value end up in the properties.
func Assemble(kind string, flat []svgpath.Segment, proj geom.Projection, requested []string, attrs Lookup) *geojson.Feature {
	coords := make([]orb.Point, 0, len(flat)+1)
	var first vec.Vec2
	seen := false
	for _, s := range flat {
		var p vec.Vec2
		switch s := s.(type) {
		case svgpath.MoveTo:
			p = s.Point
		case svgpath.LineTo:
			p = s.Point
		case svgpath.ClosePath:
			if !seen {
				continue
			}
			p = first
		default:
			continue
		}
		if !seen {
			first, seen = p, true
		}
		coords = append(coords, proj.Project(p))
	}

	var g orb.Geometry
	switch {
	case IsOpenKind(kind):
		g = orb.LineString(coords)
	case len(coords) == 0:
		g = orb.Polygon{}
	default:
		g = orb.Polygon{closeRing(coords)}
	}

	f := geojson.NewFeature(g)
	if attrs == nil {
		return f
	}
	for _, name := range requested {
		if v, ok := attrs.Lookup(name); ok && v != "" {
			f.Properties[name] = v
		}
	}
	return f
}

func closeRing(coords []orb.Point) orb.Ring {
	if coords[0] != coords[len(coords)-1] {
		coords = append(coords, coords[0])
	}
	return orb.Ring(coords)
}
