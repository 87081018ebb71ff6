package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadGeo reads a GeoJSON file (collection, feature or bare geometry).
func LoadGeo(path string) (*geojson.FeatureCollection, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeGeoJSON(b)
}

// DecodeGeoJSON accepts a FeatureCollection, a single Feature or a bare
// geometry and always returns a collection.
func DecodeGeoJSON(b []byte) (*geojson.FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case "":
		return nil, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		return geojson.UnmarshalFeatureCollection(b)
	case "Feature":
		f, err := geojson.UnmarshalFeature(b)
		if err != nil {
			return nil, err
		}
		return geojson.NewFeatureCollection().Append(f), nil
	default:
		g, err := geojson.UnmarshalGeometry(b)
		if err != nil {
			return nil, err
		}
		return geojson.NewFeatureCollection().Append(geojson.NewFeature(g.Geometry())), nil
	}
}

// FromCollection flattens every feature geometry into render buckets.
func FromCollection(fc *geojson.FeatureCollection) (Data, error) {
	var d Data
	bound := orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{-1, -1}}
	addPt := func(p orb.Point) {
		if bound.IsEmpty() {
			bound = p.Bound()
		} else {
			bound = bound.Extend(p)
		}
	}
	addLine := func(ls []orb.Point) {
		line := make([][2]float64, 0, len(ls))
		for _, p := range ls {
			addPt(p)
			line = append(line, [2]float64(p))
		}
		d.Lines = append(d.Lines, line)
	}
	addPoly := func(poly orb.Polygon) {
		rings := make([][][2]float64, 0, len(poly))
		for _, r := range poly {
			ring := make([][2]float64, 0, len(r))
			for _, p := range r {
				addPt(p)
				ring = append(ring, [2]float64(p))
			}
			rings = append(rings, ring)
		}
		d.Polygons = append(d.Polygons, rings)
	}
	var walk func(g orb.Geometry)
	walk = func(g orb.Geometry) {
		switch g := g.(type) {
		case orb.Point:
			addPt(g)
			d.Points = append(d.Points, [2]float64(g))
		case orb.MultiPoint:
			for _, p := range g {
				walk(p)
			}
		case orb.LineString:
			addLine(g)
		case orb.MultiLineString:
			for _, ls := range g {
				addLine(ls)
			}
		case orb.Ring:
			addPoly(orb.Polygon{g})
		case orb.Polygon:
			addPoly(g)
		case orb.MultiPolygon:
			for _, p := range g {
				addPoly(p)
			}
		case orb.Collection:
			for _, c := range g {
				walk(c)
			}
		case orb.Bound:
			addPoly(g.ToPolygon())
		}
	}
	for _, f := range fc.Features {
		if f != nil && f.Geometry != nil {
			walk(f.Geometry)
		}
	}
	if d.Empty() {
		return Data{}, errors.New("no geometries found")
	}
	if !bound.IsEmpty() {
		d.BBox = BBox{MinX: bound.Min[0], MinY: bound.Min[1], MaxX: bound.Max[0], MaxY: bound.Max[1]}
	}
	return d, nil
}

// CollectionBound returns the bound of every coordinate in fc, or false
// when the collection has no coordinates.
func CollectionBound(fc *geojson.FeatureCollection) (orb.Bound, bool) {
	var b orb.Bound
	found := false
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil || isEmptyGeometry(f.Geometry) {
			continue
		}
		fb := f.Geometry.Bound()
		if !found {
			b, found = fb, true
			continue
		}
		b = b.Union(fb)
	}
	return b, found
}

func isEmptyGeometry(g orb.Geometry) bool {
	switch g := g.(type) {
	case orb.LineString:
		return len(g) == 0
	case orb.Polygon:
		return len(g) == 0 || len(g[0]) == 0
	}
	return false
}

func (b BBox) String() string {
	return fmt.Sprintf("[%.5f, %.5f, %.5f, %.5f]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}
