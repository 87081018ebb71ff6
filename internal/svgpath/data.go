package svgpath

import (
	"fmt"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// FromData converts a geom path into segments. Quadratic pieces are
// raised to the equivalent cubic so the flattener only deals with one
// curve kind.
func FromData(p *path.Data) ([]Segment, error) {
	if p == nil {
		return nil, nil
	}
	segs := make([]Segment, 0, len(p.Cmds))
	var current, start vec.Vec2
	idx := 0
	need := func(n int) error {
		if idx+n > len(p.Coords) {
			return fmt.Errorf("%w: command %d needs %d coordinates, %d left",
				ErrInvalidArgument, len(segs), n, len(p.Coords)-idx)
		}
		return nil
	}
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if err := need(1); err != nil {
				return nil, err
			}
			current = p.Coords[idx]
			start = current
			segs = append(segs, MoveTo{Point: current})
			idx++
		case path.CmdLineTo:
			if err := need(1); err != nil {
				return nil, err
			}
			current = p.Coords[idx]
			segs = append(segs, LineTo{Point: current})
			idx++
		case path.CmdQuadTo:
			if err := need(2); err != nil {
				return nil, err
			}
			q, end := p.Coords[idx], p.Coords[idx+1]
			segs = append(segs, CurveTo{
				C1:  vec.Vec2{X: current.X + 2.0/3*(q.X-current.X), Y: current.Y + 2.0/3*(q.Y-current.Y)},
				C2:  vec.Vec2{X: end.X + 2.0/3*(q.X-end.X), Y: end.Y + 2.0/3*(q.Y-end.Y)},
				End: end,
			})
			current = end
			idx += 2
		case path.CmdCubeTo:
			if err := need(3); err != nil {
				return nil, err
			}
			segs = append(segs, CurveTo{C1: p.Coords[idx], C2: p.Coords[idx+1], End: p.Coords[idx+2]})
			current = p.Coords[idx+2]
			idx += 3
		case path.CmdClose:
			current = start
			segs = append(segs, ClosePath{})
		}
	}
	return segs, nil
}
