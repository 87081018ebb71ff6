package tui

import (
	"fmt"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type featureItem struct {
	title, desc string
	index       int
}

func (f featureItem) Title() string       { return f.title }
func (f featureItem) Description() string { return f.desc }
func (f featureItem) FilterValue() string { return f.title + " " + f.desc }

// vertexCount counts the coordinates of a Point, LineString or Polygon.
func vertexCount(g orb.Geometry) int {
	switch g := g.(type) {
	case orb.Point:
		return 1
	case orb.LineString:
		return len(g)
	case orb.Polygon:
		n := 0
		for _, r := range g {
			n += len(r)
		}
		return n
	}
	return 0
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "none"
	}
	return g.GeoJSONType()
}

// featureLabel prefers an id-like property for the list title.
func featureLabel(i int, f *geojson.Feature) string {
	for _, k := range []string{"id", "name", "title"} {
		if v, ok := f.Properties[k].(string); ok && v != "" {
			return fmt.Sprintf("#%d %s", i+1, v)
		}
	}
	return fmt.Sprintf("#%d", i+1)
}

func (m *Model) refreshFeatureList() {
	if m.fc == nil {
		m.l.SetItems(nil)
		return
	}
	items := make([]list.Item, 0, len(m.fc.Features))
	for i, f := range m.fc.Features {
		items = append(items, featureItem{
			title: featureLabel(i, f),
			desc:  fmt.Sprintf("%s, %d vertices", geometryType(f.Geometry), vertexCount(f.Geometry)),
			index: i,
		})
	}
	m.l.SetItems(items)
}

// describeFeature renders the inspect popup for feature i.
func (m Model) describeFeature(i int) string {
	f := m.fc.Features[i]
	meta := []string{
		fmt.Sprintf("feature: %s", featureLabel(i, f)),
		fmt.Sprintf("geometry: %s", geometryType(f.Geometry)),
		fmt.Sprintf("vertices: %d", vertexCount(f.Geometry)),
	}
	if f.Geometry != nil && vertexCount(f.Geometry) > 0 {
		b := f.Geometry.Bound()
		meta = append(meta, fmt.Sprintf("bbox: [%.6f, %.6f, %.6f, %.6f]", b.Min[0], b.Min[1], b.Max[0], b.Max[1]))
	}
	keys := make([]string, 0, len(f.Properties))
	for k := range f.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		meta = append(meta, fmt.Sprintf("%s: %v", k, f.Properties[k]))
	}
	return strings.Join(meta, "\n")
}
