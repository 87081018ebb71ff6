package geom

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
)

// WriteWKT writes one WKT geometry per feature, one per line, in
// collection order.
func WriteWKT(w io.Writer, fc *geojson.FeatureCollection) error {
	bw := bufio.NewWriter(w)
	for i, f := range fc.Features {
		if f.Geometry == nil {
			if _, err := bw.WriteString("GEOMETRYCOLLECTION EMPTY\n"); err != nil {
				return fmt.Errorf("feature %d: %w", i, err)
			}
			continue
		}
		if _, err := bw.WriteString(wkt.MarshalString(f.Geometry) + "\n"); err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
	}
	return bw.Flush()
}

type featureDoc struct {
	ID         any                `json:"id,omitempty"`
	Type       string             `json:"type"`
	BBox       geojson.BBox       `json:"bbox,omitempty"`
	Geometry   *geojson.Geometry  `json:"geometry"`
	Properties geojson.Properties `json:"properties"`
}

type collectionDoc struct {
	Type     string       `json:"type"`
	BBox     geojson.BBox `json:"bbox,omitempty"`
	Features []featureDoc `json:"features"`
}

// MarshalGeoJSON encodes fc with every feature's properties written as an
// object, "{}" when empty. orb writes empty properties as null.
func MarshalGeoJSON(fc *geojson.FeatureCollection, indent bool) ([]byte, error) {
	doc := collectionDoc{
		Type:     "FeatureCollection",
		BBox:     fc.BBox,
		Features: make([]featureDoc, 0, len(fc.Features)),
	}
	for _, f := range fc.Features {
		fd := featureDoc{ID: f.ID, Type: "Feature", BBox: f.BBox, Properties: f.Properties}
		if f.Geometry != nil {
			fd.Geometry = geojson.NewGeometry(f.Geometry)
		}
		if fd.Properties == nil {
			fd.Properties = geojson.Properties{}
		}
		doc.Features = append(doc.Features, fd)
	}
	if indent {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// WriteGeoJSON encodes the collection followed by a newline.
func WriteGeoJSON(w io.Writer, fc *geojson.FeatureCollection, indent bool) error {
	b, err := MarshalGeoJSON(fc, indent)
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
