// Package drawing reads the JSON document a path normalizer writes for
// one drawing:
//
//	{
//	  "width": "100", "height": "100", "viewBox": "0 0 100 100",
//	  "elements": [
//	    {"kind": "rect",
//	     "path": [{"op": "M", "pts": [[0, 0]]}, {"op": "L", "pts": [[100, 0]]}, {"op": "Z"}],
//	     "attributes": {"id": "a"}}
//	  ]
//	}
//
// Ops are M, L, C (two controls then the end point) and Z, all absolute.
package drawing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"seehuhn.de/go/geom/vec"

	"svggeo/internal/convert"
	"svggeo/internal/svgpath"
)

var ErrInvalidDocument = errors.New("invalid drawing document")

type Document struct {
	Width    Size      `json:"width,omitempty"`
	Height   Size      `json:"height,omitempty"`
	ViewBox  string    `json:"viewBox,omitempty"`
	Elements []Element `json:"elements"`
}

type Element struct {
	Kind       string            `json:"kind"`
	Path       []Command         `json:"path"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type Command struct {
	Op  string       `json:"op"`
	Pts [][2]float64 `json:"pts,omitempty"`
}

// Size keeps a declared dimension as text. JSON numbers are accepted too.
type Size string

func (s *Size) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = Size(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("%w: size %s", ErrInvalidDocument, b)
	}
	*s = Size(n.String())
	return nil
}

var arity = map[string]int{"M": 1, "L": 1, "C": 3, "Z": 0}

// Segment checks op arity and returns the command as a path segment.
func (c Command) Segment() (svgpath.Segment, error) {
	op := strings.ToUpper(c.Op)
	n, ok := arity[op]
	if !ok {
		return nil, fmt.Errorf("%w: unknown op %q", ErrInvalidDocument, c.Op)
	}
	if len(c.Pts) != n {
		return nil, fmt.Errorf("%w: op %s takes %d points, got %d", ErrInvalidDocument, op, n, len(c.Pts))
	}
	switch op {
	case "M":
		return svgpath.MoveTo{Point: svgpath.Pt(c.Pts[0][0], c.Pts[0][1])}, nil
	case "L":
		return svgpath.LineTo{Point: svgpath.Pt(c.Pts[0][0], c.Pts[0][1])}, nil
	case "C":
		return svgpath.CurveTo{
			C1:  svgpath.Pt(c.Pts[0][0], c.Pts[0][1]),
			C2:  svgpath.Pt(c.Pts[1][0], c.Pts[1][1]),
			End: svgpath.Pt(c.Pts[2][0], c.Pts[2][1]),
		}, nil
	}
	return svgpath.ClosePath{}, nil
}

// Drawing converts the document into converter input.
func (d Document) Drawing() (convert.Drawing, error) {
	out := convert.Drawing{
		Width:    string(d.Width),
		Height:   string(d.Height),
		ViewBox:  d.ViewBox,
		Elements: make([]convert.Element, 0, len(d.Elements)),
	}
	for i, e := range d.Elements {
		segs := make([]svgpath.Segment, 0, len(e.Path))
		for j, c := range e.Path {
			s, err := c.Segment()
			if err != nil {
				return convert.Drawing{}, fmt.Errorf("element %d command %d: %w", i, j, err)
			}
			segs = append(segs, s)
		}
		out.Elements = append(out.Elements, convert.Element{
			Kind:  e.Kind,
			Path:  segs,
			Attrs: convert.Attrs(e.Attributes),
		})
	}
	return out, nil
}

// Decode reads one document from r.
func Decode(r io.Reader) (convert.Drawing, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return convert.Drawing{}, fmt.Errorf("decode drawing: %w", err)
	}
	return doc.Drawing()
}

// Load reads a document from a file, or from stdin when path is "-".
func Load(path string) (convert.Drawing, error) {
	if path == "-" {
		return Decode(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return convert.Drawing{}, err
	}
	defer f.Close()
	return Decode(f)
}

// command is the inverse of Command.Segment.
func command(s svgpath.Segment) Command {
	pt := func(v vec.Vec2) [2]float64 { return [2]float64{v.X, v.Y} }
	switch s := s.(type) {
	case svgpath.MoveTo:
		return Command{Op: "M", Pts: [][2]float64{pt(s.Point)}}
	case svgpath.LineTo:
		return Command{Op: "L", Pts: [][2]float64{pt(s.Point)}}
	case svgpath.CurveTo:
		return Command{Op: "C", Pts: [][2]float64{pt(s.C1), pt(s.C2), pt(s.End)}}
	}
	return Command{Op: "Z"}
}

// FromDrawing builds the document for d. Attributes survive only when the
// element carries a convert.Attrs map.
func FromDrawing(d convert.Drawing) (Document, error) {
	doc := Document{
		Width:    Size(d.Width),
		Height:   Size(d.Height),
		ViewBox:  d.ViewBox,
		Elements: make([]Element, 0, len(d.Elements)),
	}
	for i, e := range d.Elements {
		segs := e.Path
		if len(segs) == 0 && e.Outline != nil {
			var err error
			if segs, err = svgpath.FromData(e.Outline); err != nil {
				return Document{}, fmt.Errorf("element %d: %w", i, err)
			}
		}
		el := Element{Kind: e.Kind, Path: make([]Command, 0, len(segs))}
		for _, s := range segs {
			el.Path = append(el.Path, command(s))
		}
		if a, ok := e.Attrs.(convert.Attrs); ok && len(a) > 0 {
			el.Attributes = map[string]string(a)
		}
		doc.Elements = append(doc.Elements, el)
	}
	return doc, nil
}

// Encode writes d as one indented document.
func Encode(w io.Writer, d convert.Drawing) error {
	doc, err := FromDrawing(d)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
