package tui

import (
	"context"
	"log/slog"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb/geojson"

	"svggeo/internal/convert"
	"svggeo/internal/geom"
)

// Source re-runs a conversion with a given curve complexity.
type Source struct {
	Name    string
	Bounds  geom.Bounds
	Drawing convert.Drawing
	Options convert.Options
	Log     *slog.Logger
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// Feature list
	l        list.Model
	selected int

	// Source; nil when previewing a finished collection
	src        *Source
	complexity int
	converting bool
	name       string

	// Data
	fc       *geojson.FeatureCollection
	bbox     geom.BBox
	lines    [][][2]float64
	polygons [][][][2]float64
	vertices [][2]float64

	// layer visibility
	showLines    bool
	showPolys    bool
	showVertices bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// properties table
	showAttrs bool
	tbl       table.Model
}

func newModel(name string) Model {
	m := Model{
		helpVisible: true,
		zoom:        1.0,
		status:      "svggeo preview",
		showLines:   true,
		showPolys:   true,
		selected:    -1,
		name:        name,
	}
	d := list.NewDefaultDelegate()
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Features"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	return m
}

// New previews a drawing and converts it again whenever the curve
// complexity changes.
func New(src Source) Model {
	m := newModel(src.Name)
	m.src = &src
	m.complexity = src.Options.Complexity
	m.converting = true
	m.status = "converting " + src.Name
	return m
}

// NewWithCollection previews an already converted collection.
func NewWithCollection(name string, fc *geojson.FeatureCollection) Model {
	m := newModel(name)
	m.setCollection(fc)
	return m
}

func (m Model) Init() tea.Cmd {
	if m.src == nil {
		return nil
	}
	return m.convertCmd()
}

type convertedMsg struct {
	complexity int
	fc         *geojson.FeatureCollection
	err        error
}

func (m *Model) convertCmd() tea.Cmd {
	src := *m.src
	opts := src.Options
	opts.Complexity = m.complexity
	m.converting = true
	return func() tea.Msg {
		fc, err := convert.New(opts, src.Log).Convert(context.Background(), src.Bounds, src.Drawing)
		return convertedMsg{complexity: opts.Complexity, fc: fc, err: err}
	}
}

// setCollection swaps in a new collection and rebuilds everything derived
// from it.
func (m *Model) setCollection(fc *geojson.FeatureCollection) {
	m.fc = fc
	m.lines, m.polygons, m.vertices = nil, nil, nil
	d, err := geom.FromCollection(fc)
	if err != nil {
		m.status = "preview: " + err.Error()
	} else {
		m.lines, m.polygons, m.bbox = d.Lines, d.Polygons, padBBox(d.BBox)
		m.vertices = append(m.vertices, d.Points...)
		for _, ls := range d.Lines {
			m.vertices = append(m.vertices, ls...)
		}
		for _, poly := range d.Polygons {
			for _, ring := range poly {
				m.vertices = append(m.vertices, ring...)
			}
		}
	}
	if m.selected >= len(fc.Features) {
		m.selected = -1
	}
	m.refreshFeatureList()
	if m.showAttrs {
		m.refreshAttrs()
	}
}

// padBBox gives flat extents some room so the view transform stays finite.
func padBBox(b geom.BBox) geom.BBox {
	const eps = 1e-9
	if b.MaxX-b.MinX < eps {
		b.MinX -= eps
		b.MaxX += eps
	}
	if b.MaxY-b.MinY < eps {
		b.MinY -= eps
		b.MaxY += eps
	}
	return b
}
