package perimeter

import (
	"context"
	"math"

	"github.com/slic3r/slicer-core/geom"
	"github.com/slic3r/slicer-core/medialaxis"
)

// shellState accumulates the per-island results of the onion-shell loop
// (spec §4.2.1) before nesting and overhang classification run.
type shellState struct {
	loopsByDepth [][]*Loop
	thinWalls    []geom.ThickPolyline
	gapRegions   geom.ExPolys
	loopCount    int
}

// buildOnionShells implements spec §4.2.1: repeatedly inset the island,
// registering one Loop per resulting ExPoly/hole at each depth, collecting
// thin-wall candidates at depth 0 and gap-fill candidates at depth >= 1.
func buildOnionShells(in Input) (shellState, geom.ExPolys) {
	var st shellState
	last := geom.ExPolys{geom.ExPoly{Outer: geom.Simplify(in.Island.Outer, float64(geom.EpsS))}}
	for _, h := range in.Island.Holes {
		last[0].Holes = append(last[0].Holes, geom.Simplify(h, float64(geom.EpsS)))
	}

	for i := 0; ; i++ {
		next, thin := insetOneLevel(last, in, i)
		if i == 0 && in.DetectThinWalls {
			st.thinWalls = append(st.thinWalls, thin...)
		}
		if i >= 1 && in.GapFill {
			goodSpacing := in.Spacing
			if i == 1 {
				goodSpacing = in.ExtSpacing
			}
			gap := gapCandidate(last, next, goodSpacing)
			st.gapRegions = append(st.gapRegions, gap...)
		}
		if len(next) == 0 {
			st.loopCount = i - 1
			break
		}
		if i >= in.Perimeters && !in.Overhangs {
			break
		}
		if i >= in.Perimeters && in.Overhangs {
			hasOverhangHere := overhangPresent(next, in.LowerSlices, in.NozzleDiameter)
			if !hasOverhangHere {
				break
			}
		}

		depth := make([]*Loop, 0, len(next)*2)
		for _, ex := range next {
			depth = append(depth, &Loop{Polygon: ex.Outer, Depth: i, IsContour: true})
			for _, h := range ex.Holes {
				depth = append(depth, &Loop{Polygon: h, Depth: i, IsContour: false})
			}
		}
		st.loopsByDepth = append(st.loopsByDepth, depth)
		last = next
	}
	return st, last
}

// insetOneLevel computes the i'th inward offset per spec §4.2.1, plus the
// thin-wall candidate zone at i==0 when requested.
func insetOneLevel(last geom.ExPolys, in Input, i int) (geom.ExPolys, []geom.ThickPolyline) {
	if i == 0 {
		if in.DetectThinWalls {
			d1 := -(float64(in.ExtWidth)/2 + float64(in.ExtMinSpacing)/2 - 1)
			d2 := float64(in.ExtMinSpacing)/2 - 1
			next, err := geom.Offset2(last, d1, d2, geom.JoinMiter)
			if err != nil {
				return nil, nil
			}
			thin := thinWallZone(last, next, in)
			return next, thin
		}
		next, err := geom.Offset(last, -float64(in.ExtWidth)/2, geom.JoinMiter, 2.0)
		if err != nil {
			return nil, nil
		}
		return next, nil
	}

	goodSpacing := in.Spacing
	if i == 1 {
		goodSpacing = in.ExtSpacing
	}
	if in.DetectThinWalls {
		d1 := -(float64(goodSpacing) - 1)
		d2 := 1.0
		next, err := geom.Offset2(last, d1, d2, geom.JoinMiter)
		if err != nil {
			return nil, nil
		}
		return next, nil
	}
	next, err := geom.Offset(last, -float64(goodSpacing), geom.JoinMiter, 2.0)
	if err != nil {
		return nil, nil
	}
	return next, nil
}

// thinWallZone implements the depth-0 thin-wall path of spec §4.2.1:
// thin_zone = last \ (next (+) ext_width/2); half it, grow it back, anchor
// it inside last \ thin_zone, and run MAX on each half-thin island.
func thinWallZone(last, next geom.ExPolys, in Input) []geom.ThickPolyline {
	grown, err := geom.Offset(next, float64(in.ExtWidth)/2, geom.JoinMiter, 2.0)
	if err != nil {
		return nil
	}
	thinZone, err := geom.Difference(last, grown)
	if err != nil || len(thinZone) == 0 {
		return nil
	}
	halfThin, err := geom.Offset(thinZone, -float64(in.ExtWidth)/4, geom.JoinMiter, 2.0)
	if err != nil {
		return nil
	}
	halfThin, err = geom.Offset(halfThin, float64(in.ExtWidth)/4, geom.JoinMiter, 2.0)
	if err != nil {
		return nil
	}
	anchor, err := geom.Difference(last, thinZone)
	if err != nil {
		return nil
	}

	var out []geom.ThickPolyline
	for _, island := range halfThin {
		params := medialaxis.Params{
			Surface:        island,
			Bounds:         geom.ExPoly{Outer: boundsUnion(anchor)},
			Anchors:        anchor,
			MinWidth:       in.ExtWidth / 2,
			MaxWidth:       in.ExtWidth * 2,
			NozzleDiameter: in.NozzleDiameter,
			Height:         in.LayerHeight,
		}
		lines, err := medialaxis.Run(context.Background(), params)
		if err != nil {
			continue
		}
		out = append(out, lines...)
	}
	return out
}

func boundsUnion(exs geom.ExPolys) geom.Polygon {
	if len(exs) == 0 {
		return nil
	}
	min, max := geom.Bounds(exs[0].Outer)
	for _, e := range exs[1:] {
		mn, mx := geom.Bounds(e.Outer)
		if mn.X < min.X {
			min.X = mn.X
		}
		if mn.Y < min.Y {
			min.Y = mn.Y
		}
		if mx.X > max.X {
			max.X = mx.X
		}
		if mx.Y > max.Y {
			max.Y = mx.Y
		}
	}
	return geom.Polygon{min, {X: max.X, Y: min.Y}, max, {X: min.X, Y: max.Y}}
}

// gapCandidate implements the depth>=1 gap-fill collection of spec §4.2.1:
// gap <- difference(offset(last,-spacing/2), offset(next,+spacing/2+safety)).
func gapCandidate(last, next geom.ExPolys, goodSpacing geom.Coord) geom.ExPolys {
	const safety = 10.0 // Coord units, a small margin against coincident-edge noise
	a, err := geom.Offset(last, -float64(goodSpacing)/2, geom.JoinMiter, 2.0)
	if err != nil {
		return nil
	}
	b, err := geom.Offset(next, float64(goodSpacing)/2+safety, geom.JoinMiter, 2.0)
	if err != nil {
		return nil
	}
	gap, err := geom.Difference(a, b)
	if err != nil {
		return nil
	}
	return gap
}

func overhangPresent(next geom.ExPolys, lower geom.ExPolys, nozzle geom.Coord) bool {
	if len(lower) == 0 {
		return false
	}
	dilated, err := geom.Offset(lower, float64(nozzle)/2, geom.JoinRound, 2.0)
	if err != nil {
		return false
	}
	uncovered, err := geom.Difference(next, dilated)
	if err != nil {
		return false
	}
	total := 0.0
	for _, e := range uncovered {
		total += math.Abs(e.Area())
	}
	return total > 0
}
