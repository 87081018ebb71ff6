package convert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/errgroup"

	"svggeo/internal/geom"
	"svggeo/internal/svgpath"
)

type Options struct {
	// Complexity is the number of line segments each curve becomes.
	Complexity int
	// Tolerance is the absolute arc length error in drawing units;
	// zero means svgpath.DefaultTolerance.
	Tolerance float64
	// Attributes lists the element attributes copied into properties.
	Attributes []string
	// Workers above one converts elements concurrently.
	Workers int
	// BBox adds a bbox member to the collection.
	BBox bool
}

func DefaultOptions() Options {
	return Options{Complexity: svgpath.DefaultComplexity, Workers: 1}
}

// Converter turns normalized drawings into feature collections. It holds
// no per-call state and may be shared.
type Converter struct {
	opts Options
	log  *slog.Logger
}

func New(opts Options, log *slog.Logger) *Converter {
	if log == nil {
		log = slog.Default()
	}
	return &Converter{opts: opts, log: log}
}

func (c *Converter) Options() Options { return c.opts }

// Convert places every element of d inside b. The first failure aborts
// the call and no collection is returned.
func (c *Converter) Convert(ctx context.Context, b geom.Bounds, d Drawing) (*geojson.FeatureCollection, error) {
	fl := svgpath.Flattener{Complexity: c.opts.Complexity, Tolerance: c.opts.Tolerance}
	if fl.Complexity < 1 {
		return nil, fmt.Errorf("%w: complexity %d, need at least 1", ErrInvalidArgument, fl.Complexity)
	}
	dims, err := geom.ResolveDimensions(d.Width, d.Height, d.ViewBox)
	if err != nil {
		return nil, err
	}
	proj := geom.NewProjection(b, dims)

	features := make([]*geojson.Feature, len(d.Elements))
	convertOne := func(i int) error {
		f, err := c.element(fl, proj, i, d.Elements[i])
		if err != nil {
			return err
		}
		features[i] = f
		return nil
	}

	if c.opts.Workers <= 1 {
		for i := range d.Elements {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := convertOne(i); err != nil {
				return nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.opts.Workers)
		for i := range d.Elements {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return convertOne(i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	fc := geojson.NewFeatureCollection()
	fc.Features = features
	if c.opts.BBox {
		if bound, ok := geom.CollectionBound(fc); ok {
			fc.BBox = geojson.NewBBox(bound)
		}
	}
	c.log.Info("drawing converted",
		"features", len(features),
		"width", dims.Width,
		"height", dims.Height,
		"complexity", fl.Complexity,
		"workers", max(1, c.opts.Workers))
	return fc, nil
}

func (c *Converter) element(fl svgpath.Flattener, proj geom.Projection, i int, e Element) (*geojson.Feature, error) {
	segs, err := e.segments()
	if err != nil {
		return nil, &ElementError{Index: i, Kind: e.Kind, Err: err}
	}
	flat, err := fl.Flatten(segs)
	if err != nil {
		return nil, &ElementError{Index: i, Kind: e.Kind, Err: err}
	}
	f := Assemble(e.Kind, flat, proj, c.opts.Attributes, e.Attrs)
	c.log.Debug("element converted",
		"index", i,
		"kind", e.Kind,
		"segments", len(segs),
		"flattened", len(flat),
		"geometry", f.Geometry.GeoJSONType())
	return f, nil
}

// Convert runs a one-off sequential conversion.
func Convert(b geom.Bounds, d Drawing, complexity int, attrs ...string) (*geojson.FeatureCollection, error) {
	opts := DefaultOptions()
	opts.Complexity = complexity
	opts.Attributes = attrs
	return New(opts, nil).Convert(context.Background(), b, d)
}
