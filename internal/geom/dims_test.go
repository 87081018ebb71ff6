package geom

import (
	"errors"
	"testing"
)

func TestResolveDimensions(t *testing.T) {
	testCases := []struct {
		name                   string
		width, height, viewBox string
		want                   Dimensions
	}{
		{"declared only", "100", "50", "", Dimensions{100, 50}},
		{"declared wins over viewBox", "100", "50", "0 0 300 200", Dimensions{100, 50}},
		{"px suffix", "100px", " 50px ", "", Dimensions{100, 50}},
		{"fractional", "12.5", "1e2", "", Dimensions{12.5, 100}},
		{"missing width", "", "50", "0 0 300 200", Dimensions{300, 200}},
		{"missing both", "", "", "0 0 300 200", Dimensions{300, 200}},
		{"non numeric", "auto", "50%", "0 0 300 200", Dimensions{300, 200}},
		{"zero width", "0", "50", "10 20 300 200", Dimensions{300, 200}},
		{"negative height", "100", "-5", "0 0 300 200", Dimensions{300, 200}},
		{"infinite", "Inf", "50", "0 0 300 200", Dimensions{300, 200}},
		{"comma viewBox", "", "", "0,0,64,32", Dimensions{64, 32}},
		{"mixed separators", "", "", " -10, -10\t640 \n480 ", Dimensions{640, 480}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveDimensions(tc.width, tc.height, tc.viewBox)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestResolveDimensionsMissing(t *testing.T) {
	testCases := []struct {
		name                   string
		width, height, viewBox string
	}{
		{"nothing", "", "", ""},
		{"short viewBox", "", "", "0 0 100"},
		{"long viewBox", "", "", "0 0 100 100 5"},
		{"garbage viewBox", "", "", "a b c d"},
		{"zero viewBox size", "", "", "0 0 0 100"},
		{"negative viewBox size", "", "", "0 0 100 -1"},
		{"nan viewBox", "", "", "0 0 NaN 100"},
		{"half declared", "100", "", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveDimensions(tc.width, tc.height, tc.viewBox)
			if !errors.Is(err, ErrMissingDimensions) {
				t.Errorf("expected ErrMissingDimensions, got %v", err)
			}
		})
	}
}
