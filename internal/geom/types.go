package geom

// Bounds is the geographic rectangle a drawing is placed into. Nothing
// requires North > South or East > West; inverted bounds mirror the drawing.
type Bounds struct {
	North float64 `mapstructure:"north" json:"north"`
	East  float64 `mapstructure:"east" json:"east"`
	South float64 `mapstructure:"south" json:"south"`
	West  float64 `mapstructure:"west" json:"west"`
}

// Dimensions is the drawing-space extent, both values positive and finite.
type Dimensions struct {
	Width  float64
	Height float64
}

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Data is a minimal geometry container for rendering
type Data struct {
	Points   [][2]float64
	Lines    [][][2]float64
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox
}

// Empty reports whether d holds no geometry at all.
func (d Data) Empty() bool {
	return len(d.Points) == 0 && len(d.Lines) == 0 && len(d.Polygons) == 0
}
