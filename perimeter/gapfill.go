package perimeter

import (
	"context"
	"math"

	"github.com/slic3r/slicer-core/geom"
	"github.com/slic3r/slicer-core/medialaxis"
)

// filterGaps implements spec §4.2.4: after all shells are generated,
// gap_ex = difference(offset2(gap,-min/2,+min/2), offset2(gap,-max/2,+max/2))
// with min=0.2*perim_width*(1-OVERLAP_TOL), max=2*perim_spacing. Only
// expolygons whose area exceeds min*max survive; each is run through MAX
// with width band (min,max).
func filterGaps(gapRegions geom.ExPolys, in Input) []geom.ThickPolyline {
	if len(gapRegions) == 0 {
		return nil
	}
	const overlapTol = 0.4
	min := 0.2 * float64(in.ExtWidth) * (1 - overlapTol)
	max := 2 * float64(in.Spacing)

	inner, err := geom.Offset2(gapRegions, -min/2, min/2, geom.JoinMiter)
	if err != nil {
		return nil
	}
	outer, err := geom.Offset2(gapRegions, -max/2, max/2, geom.JoinMiter)
	if err != nil {
		return nil
	}
	gapEx, err := geom.Difference(inner, outer)
	if err != nil {
		return nil
	}

	var out []geom.ThickPolyline
	for _, ex := range gapEx {
		if math.Abs(ex.Area()) <= min*max {
			continue
		}
		params := medialaxis.Params{
			Surface:        ex,
			Bounds:         ex,
			MinWidth:       geom.Coord(min),
			MaxWidth:       geom.Coord(max),
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
