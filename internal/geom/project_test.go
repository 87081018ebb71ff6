package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"

	"seehuhn.de/go/geom/vec"
)

func TestProjectionCorners(t *testing.T) {
	testCases := []struct {
		name string
		b    Bounds
		d    Dimensions
	}{
		{"unit", Bounds{North: 1, East: 1, South: 0, West: 0}, Dimensions{100, 100}},
		{"real world", Bounds{North: 51.5203, East: -0.0702, South: 51.4953, West: -0.1357}, Dimensions{793.7, 1122.5}},
		{"inverted", Bounds{North: -10, East: -20, South: 10, West: 20}, Dimensions{3, 7}},
		{"odd sizes", Bounds{North: 0.3, East: 0.7, South: 0.1, West: 0.2}, Dimensions{0.1, 1.0 / 3}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProjection(tc.b, tc.d)
			if got, want := p.Project(vec.Vec2{X: 0, Y: 0}), (orb.Point{tc.b.West, tc.b.North}); got != want {
				t.Errorf("origin: expected %v, got %v", want, got)
			}
			far := vec.Vec2{X: tc.d.Width, Y: tc.d.Height}
			if got, want := p.Project(far), (orb.Point{tc.b.East, tc.b.South}); got != want {
				t.Errorf("far corner: expected %v, got %v", want, got)
			}
		})
	}
}

func TestProjectionLinear(t *testing.T) {
	p := NewProjection(Bounds{North: 10, East: 10, South: 0, West: 0}, Dimensions{100, 100})
	got := []orb.Point{
		p.Project(vec.Vec2{X: 50, Y: 50}),
		p.Project(vec.Vec2{X: 25, Y: 0}),
		p.Project(vec.Vec2{X: 150, Y: -100}),
		p.Project(vec.Vec2{X: -50, Y: 200}),
	}
	want := []orb.Point{{5, 5}, {2.5, 10}, {15, 20}, {-5, -10}}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("projection mismatch (-want +got):\n%s", d)
	}
}

func TestProjectionNonFinite(t *testing.T) {
	p := NewProjection(Bounds{North: 1, East: 1}, Dimensions{1, 1})
	got := p.Project(vec.Vec2{X: math.NaN(), Y: math.Inf(1)})
	if !math.IsNaN(got[0]) {
		t.Errorf("expected NaN longitude, got %v", got[0])
	}
	if !math.IsNaN(got[1]) && !math.IsInf(got[1], 0) {
		t.Errorf("expected non-finite latitude, got %v", got[1])
	}
}
