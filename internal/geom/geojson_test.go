package geom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func TestFromCollection(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Polygon{{{0, 0}, {2, 0}, {2, 2}, {0, 0}}}))
	fc.Append(geojson.NewFeature(orb.LineString{{-1, 5}, {3, 4}}))
	fc.Append(geojson.NewFeature(orb.Point{1, 1}))

	d, err := FromCollection(fc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Polygons) != 1 || len(d.Lines) != 1 || len(d.Points) != 1 {
		t.Fatalf("unexpected counts: poly=%d ls=%d pts=%d", len(d.Polygons), len(d.Lines), len(d.Points))
	}
	want := BBox{MinX: -1, MinY: 0, MaxX: 3, MaxY: 5}
	if d.BBox != want {
		t.Errorf("expected bbox %v, got %v", want, d.BBox)
	}
}

func TestFromCollectionEmpty(t *testing.T) {
	if _, err := FromCollection(geojson.NewFeatureCollection()); err == nil {
		t.Fatal("expected error for empty collection")
	}
}

func TestLoadGeoVariants(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"fc.geojson":      `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}]}`,
		"feature.geojson": `{"type":"Feature","properties":{"id":"a"},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}`,
		"bare.geojson":    `{"type":"LineString","coordinates":[[0,0],[1,1]]}`,
	}
	for name, body := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		fc, err := LoadGeo(p)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		d, err := FromCollection(fc)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if d := cmp.Diff([][][2]float64{{{0, 0}, {1, 1}}}, d.Lines); d != "" {
			t.Errorf("%s: lines mismatch (-want +got):\n%s", name, d)
		}
	}
}

func TestLoadGeoMissingType(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x.geojson")
	if err := os.WriteFile(p, []byte(`{"features":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGeo(p); err == nil {
		t.Fatal("expected error for document without type")
	}
}

func TestCollectionBound(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.LineString{}))
	if _, ok := CollectionBound(fc); ok {
		t.Fatal("expected no bound for empty geometry")
	}
	fc.Append(geojson.NewFeature(orb.Polygon{{{0, 10}, {10, 10}, {10, 0}, {0, 10}}}))
	fc.Append(geojson.NewFeature(orb.LineString{{-5, 3}, {1, 1}}))
	b, ok := CollectionBound(fc)
	if !ok {
		t.Fatal("expected a bound")
	}
	want := orb.Bound{Min: orb.Point{-5, 0}, Max: orb.Point{10, 10}}
	if !b.Equal(want) {
		t.Errorf("expected %v, got %v", want, b)
	}
}
