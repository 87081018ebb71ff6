package convert

import (
	"strings"

	"seehuhn.de/go/geom/path"

	"svggeo/internal/svgpath"
)

// Lookup resolves attribute values on a drawing element.
type Lookup interface {
	Lookup(name string) (string, bool)
}

// Attrs is a plain attribute map.
type Attrs map[string]string

func (a Attrs) Lookup(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(name string) (string, bool)

func (f LookupFunc) Lookup(name string) (string, bool) { return f(name) }

// Element is one shape handed over by the path normalizer. Path holds
// absolute segments; Outline is an alternative geom path used when Path
// is empty.
type Element struct {
	Kind    string
	Path    []svgpath.Segment
	Outline *path.Data
	Attrs   Lookup
}

// Drawing is a normalized document: its declared size strings, exactly
// as written, and its elements in document order.
type Drawing struct {
	Width    string
	Height   string
	ViewBox  string
	Elements []Element
}

// IsOpenKind reports whether elements of this kind become LineStrings.
func IsOpenKind(kind string) bool {
	switch strings.ToLower(kind) {
	case "polyline", "line":
		return true
	}
	return false
}

func (e Element) segments() ([]svgpath.Segment, error) {
	if len(e.Path) > 0 || e.Outline == nil {
		return e.Path, nil
	}
	return svgpath.FromData(e.Outline)
}
