package perimeter

import (
	"context"

	"github.com/slic3r/slicer-core/geom"
	"github.com/slic3r/slicer-core/pipeline"
)

// Run is PG's top-level entry point (spec §4.2): generate the onion-shell
// loops for one island, nest them into a forest, classify overhangs
// against lower slices, filter and skeletonise gap regions, induce extra
// perimeters against upper slices, and compute the infill seed.
func Run(ctx context.Context, in Input) (Output, error) {
	if err := pipeline.CheckCancel(ctx); err != nil {
		return Output{}, err
	}

	st, last := buildOnionShells(in)
	roots := nestLoops(st.loopsByDepth)
	classifyOverhangs(roots, in.LowerSlices, in.NozzleDiameter)

	extra := induceExtraPerimeters(roots, in)
	if extra > 0 {
		// Re-run the onion-shell loop with the induced count folded into
		// Perimeters, so the extra rings spec §4.2.5 calls for are actual
		// generated shell geometry, not just a re-stamped HasOverhang flag
		// on the ring the first pass already produced.
		grown := in
		grown.Perimeters = in.Perimeters + extra
		st2, last2 := buildOnionShells(grown)
		roots2 := nestLoops(st2.loopsByDepth)
		classifyOverhangs(roots2, in.LowerSlices, in.NozzleDiameter)
		markDeepestContoursOverhang(roots2)
		st, last, roots = st2, last2, roots2
	}

	gapFill := filterGaps(st.gapRegions, in)

	inset := float64(in.ExtSpacing)
	seed, err := geom.Offset2(last, -inset-float64(in.MinInfillSpacing)/2+float64(in.Overlap), float64(in.MinInfillSpacing)/2, geom.JoinMiter)
	if err != nil {
		return Output{}, err
	}

	return Output{
		Contours:   roots,
		ThinWalls:  st.thinWalls,
		GapFill:    gapFill,
		InfillSeed: seed,
	}, nil
}

// markDeepestContoursOverhang flags the innermost ring of each tree with
// HasOverhang, marking the ring that the §4.2.5 extra-perimeter count
// actually grew into; the additional shell geometry itself comes from
// buildOnionShells having been re-run with Perimeters increased by extra.
func markDeepestContoursOverhang(roots []*Loop) {
	for _, r := range roots {
		deepest := r
		walkLoops(r, func(l *Loop) {
			if l.IsContour && l.Depth >= deepest.Depth {
				deepest = l
			}
		})
		deepest.HasOverhang = true
	}
}
