package tui

import (
	"strings"

	"github.com/paulmach/orb"
)

// cellToLonLat converts a map cell coordinate back to lon/lat using bbox, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := m.bbox.MinX + nx*(m.bbox.MaxX-m.bbox.MinX)
	lat := m.bbox.MinY + ny*(m.bbox.MaxY-m.bbox.MinY)
	return lon, lat, true
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w*2-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(h*4-1)) + m.offsetY*4
	return sx, sy, true
}

func (m Model) projectAll(pts [][2]float64, w, h int) [][2]int {
	out := make([][2]int, 0, len(pts))
	for _, p := range pts {
		if mx, my, ok := m.screenXYMicro(p[0], p[1], w, h); ok {
			out = append(out, [2]int{mx, my})
		}
	}
	return out
}

func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)

	if m.showPolys {
		for _, poly := range m.polygons {
			for i, ring := range poly {
				sm := m.projectAll(ring, w, h)
				if i == 0 {
					br.fillRing(sm)
				}
				br.polyline(sm, true)
			}
		}
	}
	if m.showLines {
		for _, ls := range m.lines {
			br.polyline(m.projectAll(ls, w, h), false)
		}
	}
	if m.showVertices {
		for _, p := range m.projectAll(m.vertices, w, h) {
			br.setPixel(p[0], p[1])
		}
	}

	// cell grid so markers can be styled without shifting columns
	cells := make([][]string, h)
	for y, row := range br.toLines() {
		cells[y] = make([]string, 0, w)
		for _, r := range row {
			cells[y] = append(cells[y], string(r))
		}
	}
	mark := func(mx, my int, glyph string) {
		cx, cy := mx/2, my/4
		if cy >= 0 && cy < len(cells) && cx >= 0 && cx < len(cells[cy]) {
			cells[cy][cx] = glyph
		}
	}

	// selected feature: accent dots on each vertex
	if m.fc != nil && m.selected >= 0 && m.selected < len(m.fc.Features) {
		dot := selectedStyle.Render("•")
		for _, p := range m.projectAll(geometryPoints(m.fc.Features[m.selected].Geometry), w, h) {
			mark(p[0], p[1], dot)
		}
	}
	// hovered vertex
	if m.hovering {
		mark(m.hoverMicX, m.hoverMicY, hoverStyle.Render("◯"))
	}

	lines := make([]string, h)
	for y := range cells {
		lines[y] = strings.Join(cells[y], "")
	}
	return strings.Join(lines, "\n")
}

func geometryPoints(g orb.Geometry) [][2]float64 {
	var pts [][2]float64
	switch g := g.(type) {
	case orb.Point:
		pts = append(pts, g)
	case orb.LineString:
		for _, p := range g {
			pts = append(pts, p)
		}
	case orb.Polygon:
		for _, r := range g {
			for _, p := range r {
				pts = append(pts, p)
			}
		}
	}
	return pts
}

// nearestVertex returns the microgrid position of the vertex closest to
// (mx, my).
func (m Model) nearestVertex(mx, my, w, h int) (int, int, bool) {
	best := -1
	bx, by := mx, my
	for _, p := range m.projectAll(m.vertices, w, h) {
		dx, dy := p[0]-mx, p[1]-my
		if d := dx*dx + dy*dy; best < 0 || d < best {
			best, bx, by = d, p[0], p[1]
		}
	}
	return bx, by, best >= 0
}

// featureAt returns the feature owning the vertex closest to the
// viewport center.
func (m Model) featureAt(w, h int) (int, bool) {
	if m.fc == nil {
		return 0, false
	}
	cx, cy := w, h*2
	best, idx := -1, 0
	for i, f := range m.fc.Features {
		for _, p := range m.projectAll(geometryPoints(f.Geometry), w, h) {
			dx, dy := p[0]-cx, p[1]-cy
			if d := dx*dx + dy*dy; best < 0 || d < best {
				best, idx = d, i
			}
		}
	}
	return idx, best >= 0
}
