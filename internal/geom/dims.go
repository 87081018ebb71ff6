package geom

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrMissingDimensions means neither the declared size nor the viewBox
// gives a usable width and height.
var ErrMissingDimensions = errors.New("missing dimensions")

// ResolveDimensions picks the drawing extent. Declared width and height
// win when both are usable; otherwise the last two viewBox numbers are
// used. Empty strings stand for absent attributes.
func ResolveDimensions(width, height, viewBox string) (Dimensions, error) {
	if w, ok := parseLength(width); ok {
		if h, ok := parseLength(height); ok {
			return Dimensions{Width: w, Height: h}, nil
		}
	}
	if vb, ok := parseViewBox(viewBox); ok {
		if w, h := vb[2], vb[3]; positive(w) && positive(h) {
			return Dimensions{Width: w, Height: h}, nil
		}
	}
	return Dimensions{}, fmt.Errorf("%w: width=%q height=%q viewBox=%q",
		ErrMissingDimensions, width, height, viewBox)
}

// parseLength accepts a plain number, optionally in px.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !positive(v) {
		return 0, false
	}
	return v, true
}

// parseViewBox splits "minX minY width height" on whitespace and commas.
func parseViewBox(s string) ([4]float64, bool) {
	var vb [4]float64
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) != 4 {
		return vb, false
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return vb, false
		}
		vb[i] = v
	}
	return vb, true
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
