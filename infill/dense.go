package infill

import "github.com/slic3r/slicer-core/geom"

// TagDenseRegions implements spec §4.3.4: when infill_dense is on and the
// region's density is below 40%, scan layers top-down and tag each sparse
// surface sitting directly under a solid surface (after an erode-then-
// dilate morphological cleanup of their intersection by infill_width) with
// max_solid_above=1, splitting the dense sub-region out as its own Surface
// with priority = depth in the overlap chain + 1. Each DenseAlgorithm
// variant controls how the dense region is enlarged before the split.
func TagDenseRegions(allLayers []Surfaces, in RegionInput) ([]Surfaces, error) {
	if !in.InfillDense || in.InfillDensityPct >= 40 {
		return allLayers, nil
	}
	out := make([]Surfaces, len(allLayers))
	copy(out, allLayers)

	for k := len(out) - 1; k > 0; k-- {
		above := out[k].ByTag(Tag{Position: PositionInternal, Density: DensitySolid})
		if len(above) == 0 {
			continue
		}
		below := out[k-1].ByTag(Tag{Position: PositionInternal, Density: DensitySparse})
		if len(below) == 0 {
			continue
		}
		overlap, err := geom.Intersection(below.Regions(), above.Regions())
		if err != nil {
			return nil, err
		}
		overlap, err = geom.Offset2(overlap, -float64(in.InfillWidth), float64(in.InfillWidth), geom.JoinMiter)
		if err != nil {
			return nil, err
		}
		if len(overlap) == 0 {
			continue
		}
		dense := enlargeDenseRegion(overlap, in)
		if len(dense) == 0 {
			continue
		}

		remaining, err := geom.Difference(below.Regions(), dense)
		if err != nil {
			return nil, err
		}
		var newLayer Surfaces
		for _, sf := range out[k-1] {
			if sf.Tag.Position == PositionInternal && sf.Tag.Density == DensitySparse {
				continue
			}
			newLayer.Append(sf)
		}
		sparseTag := Tag{Position: PositionInternal, Density: DensitySparse}
		for _, ex := range remaining {
			newLayer.Append(Surface{Region: ex, Tag: sparseTag})
		}
		denseTag := Tag{Position: PositionInternal, Density: DensitySparse}
		depth := overlapDepth(out, k)
		for _, ex := range dense {
			newLayer.Append(Surface{Region: ex, Tag: denseTag, MaxSolidAbove: 1, Priority: depth + 1})
		}
		out[k-1] = newLayer
	}
	return out, nil
}

// overlapDepth counts how many consecutive layers from k upward already carry
// max_solid_above, giving the priority chain depth used for newly tagged
// sub-surfaces.
func overlapDepth(layers []Surfaces, k int) int {
	depth := 0
	for i := k; i < len(layers); i++ {
		found := false
		for _, sf := range layers[i] {
			if sf.MaxSolidAbove > 0 {
				found = true
				break
			}
		}
		if !found {
			break
		}
		depth++
	}
	return depth
}

// enlargeDenseRegion applies the variant-specific enlargement of spec
// §4.3.4.
func enlargeDenseRegion(overlap geom.ExPolys, in RegionInput) geom.ExPolys {
	switch in.DenseAlgorithm {
	case DenseEnlarged:
		return growByMargin(overlap, in.ExternalInfillMargin)
	case DenseAutoNotFull:
		return fitToSize(overlap, in)
	case DenseAutoOrEnlarged:
		if isLargeArea(overlap) {
			return growByMargin(overlap, in.ExternalInfillMargin)
		}
		return fitToSize(overlap, in)
	default: // DenseAutomatic
		return overlap
	}
}

func growByMargin(overlap geom.ExPolys, margin geom.Coord) geom.ExPolys {
	grown, err := geom.Offset(overlap, float64(margin), geom.JoinMiter, 2.0)
	if err != nil {
		return overlap
	}
	return grown
}

// fitToSize bisects an inward-offset factor so the dense region still
// covers the solid-above intersection while staying as small as possible
// (spec §4.3.4 dense_fill_fit_to_size).
func fitToSize(overlap geom.ExPolys, in RegionInput) geom.ExPolys {
	lo, hi := 0.0, float64(in.ExternalInfillMargin)
	best := overlap
	for i := 0; i < 8; i++ {
		mid := (lo + hi) / 2
		candidate, err := geom.Offset(overlap, mid, geom.JoinMiter, 2.0)
		if err != nil {
			break
		}
		covers, err := fullyCovers(candidate, overlap)
		if err != nil {
			break
		}
		if covers {
			best = candidate
			hi = mid
		} else {
			lo = mid
		}
	}
	return best
}

func fullyCovers(outer, inner geom.ExPolys) (bool, error) {
	diff, err := geom.Difference(inner, outer)
	if err != nil {
		return false, err
	}
	return len(diff) == 0, nil
}

func isLargeArea(exs geom.ExPolys) bool {
	const largeThreshold = 100 * geom.Scale * geom.Scale // 100mm^2 in scaled area units
	total := 0.0
	for _, e := range exs {
		a := e.Area()
		if a < 0 {
			a = -a
		}
		total += a
	}
	return total > float64(largeThreshold)
}
