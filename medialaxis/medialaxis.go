package medialaxis

import (
	"context"
	"math"

	"github.com/slic3r/slicer-core/geom"
	"github.com/slic3r/slicer-core/pipeline"
)

// Run is MAX's top-level entry point (spec §4.1). It simplifies the input
// region, tries the circular fast path, otherwise builds the segment
// Voronoi diagram and walks it into raw polylines, then applies the
// thirteen-stage post-processing pipeline. Failure semantics: regions
// whose simplified area is below MinWidth^2 are skipped (zero polylines,
// no error); a VoronoiDegenerate-range skeleton area ratio triggers one
// retry against a surface offset outward by EpsS, keeping whichever of
// the two attempts lands closer to a unit ratio.
func Run(ctx context.Context, p Params) ([]geom.ThickPolyline, error) {
	if err := pipeline.CheckCancel(ctx); err != nil {
		return nil, err
	}

	simplified, err := simplifySurface(p)
	if err != nil {
		return nil, err
	}
	if len(simplified.Outer) == 0 {
		return nil, nil
	}
	minArea := float64(p.MinWidth) * float64(p.MinWidth)
	if math.Abs(simplified.Area()) < minArea {
		return nil, nil
	}
	p.Surface = simplified

	if fast, ok := circularFastPath(simplified, p.MinWidth); ok {
		return []geom.ThickPolyline{fast}, nil
	}

	lines, ratio, err := buildAndWalk(p)
	if err != nil {
		return nil, err
	}
	if ratio < 1/1.1 || ratio > 1.1 {
		retryP := p
		retryP.Surface, err = offsetOutward(simplified, float64(geom.EpsS))
		if err == nil {
			retryLines, retryRatio, retryErr := buildAndWalk(retryP)
			if retryErr == nil && math.Abs(retryRatio-1) < math.Abs(ratio-1) {
				lines = retryLines
			}
		}
	}

	if err := pipeline.CheckCancel(ctx); err != nil {
		return nil, err
	}
	return runPostProcessing(p, lines), nil
}

func offsetOutward(surf geom.ExPoly, delta float64) (geom.ExPoly, error) {
	out, err := geom.Offset(geom.ExPolys{surf}, delta, geom.JoinMiter, 2.0)
	if err != nil || len(out) == 0 {
		return geom.ExPoly{}, err
	}
	return out[0], nil
}

// buildAndWalk builds valid Voronoi edges and raw polylines for p.Surface,
// and returns the ratio of the induced skeleton's covered area to
// p.Surface's area -- the validation check of spec §4.1.3.
func buildAndWalk(p Params) ([]geom.ThickPolyline, float64, error) {
	edges, diag, err := buildValidEdges(p.Surface, p.MaxWidth)
	if err != nil {
		return nil, 0, err
	}
	if len(edges) == 0 {
		return nil, 1, nil
	}
	lines := buildPolylines(edges, diag)
	ratio := skeletonAreaRatio(lines, p.Surface)
	return lines, ratio, nil
}

// skeletonAreaRatio estimates the ratio between the area swept by the
// thick-polyline skeleton (sum of segment-length * width rectangles, a
// coarse area proxy) and the source region's own area.
func skeletonAreaRatio(lines []geom.ThickPolyline, surf geom.ExPoly) float64 {
	swept := 0.0
	for _, l := range lines {
		for i := 1; i < len(l.Pts); i++ {
			segLen := geom.Dist(l.Pts[i-1], l.Pts[i])
			avgWidth := (float64(l.Width[i-1]) + float64(l.Width[i])) / 2
			swept += segLen * avgWidth
		}
	}
	area := math.Abs(surf.Area())
	if area == 0 {
		return 1
	}
	return swept / area
}
