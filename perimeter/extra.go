package perimeter

import (
	"github.com/slic3r/slicer-core/geom"
)

// maxExtraPerimeters bounds the incremental-extra-perimeter loop of spec
// §4.2.5 so a pathological config cannot spin forever; not part of the
// spec text itself, a defensive bound on an otherwise open "saturates" term.
const maxExtraPerimeters = 8

// induceExtraPerimeters implements spec §4.2.5: while a critical annular
// ring around the current shell (starting from the first root contour)
// contains upper-slice coverage exceeding 30% of the upper slice's boundary
// length, count one more extra perimeter, and report how many additional
// shells downstream generation should add. The loops are not modified.
func induceExtraPerimeters(roots []*Loop, in Input) int {
	if !in.ExtraPerimeters || len(in.UpperSlices) == 0 || len(roots) == 0 {
		return 0
	}
	extra := 0
	current := roots[0].Polygon
	for extra < maxExtraPerimeters {
		ringOuter, err := geom.Offset(geom.ExPolys{{Outer: current}}, -float64(in.Spacing), geom.JoinMiter, 2.0)
		if err != nil || len(ringOuter) == 0 {
			break
		}
		ringInner, err := geom.Offset(ringOuter, -float64(in.Spacing), geom.JoinMiter, 2.0)
		if err != nil {
			break
		}
		ring, err := geom.Difference(ringOuter, ringInner)
		if err != nil {
			break
		}
		coverage, err := geom.Intersection(ring, in.UpperSlices)
		if err != nil {
			break
		}
		coveredLen := perimeterLength(coverage)
		upperBoundaryLen := boundaryLength(in.UpperSlices)
		if upperBoundaryLen == 0 || coveredLen/upperBoundaryLen <= 0.3 {
			break
		}
		extra++
		if len(ringInner) == 0 {
			break
		}
		current = ringInner[0].Outer
	}
	return extra
}

func perimeterLength(exs geom.ExPolys) float64 {
	total := 0.0
	for _, e := range exs {
		total += polygonPerimeter(e.Outer)
		for _, h := range e.Holes {
			total += polygonPerimeter(h)
		}
	}
	return total
}

func boundaryLength(exs geom.ExPolys) float64 {
	return perimeterLength(exs)
}

func polygonPerimeter(p geom.Polygon) float64 {
	n := len(p)
	total := 0.0
	for i := 0; i < n; i++ {
		total += geom.Dist(p[i], p[(i+1)%n])
	}
	return total
}
