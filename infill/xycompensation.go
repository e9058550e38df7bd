package infill

import (
	"math"

	"github.com/slic3r/slicer-core/geom"
)

// XYCompensation groups the three deltas and first-layer extra delta of
// spec §4.3.5.
type XYCompensation struct {
	DeltaOuter, DeltaInner, DeltaHole geom.Coord
	ElephantFootDelta                 geom.Coord
	FirstLayers                       int
}

const convexHoleAngleTolerance = 5.7 * math.Pi / 180

// ApplyXYCompensation implements spec §4.3.5 for a single-region layer:
// grow by the positive parts first, then apply elephant-foot compensation
// on the first FirstLayers layers, then shrink by the negative parts.
// Holes are only grown using DeltaHole when convex within
// convexHoleAngleTolerance.
func ApplyXYCompensation(slice geom.ExPoly, comp XYCompensation, layerIdx int) (geom.ExPoly, error) {
	out := geom.ExPolys{slice}
	var err error

	if comp.DeltaOuter > 0 {
		out, err = geom.Offset(out, float64(comp.DeltaOuter), geom.JoinMiter, 2.0)
		if err != nil {
			return geom.ExPoly{}, err
		}
	}
	out = growConvexHoles(out, comp.DeltaHole)

	if layerIdx < comp.FirstLayers && comp.ElephantFootDelta != 0 {
		out, err = geom.Offset(out, float64(comp.ElephantFootDelta), geom.JoinMiter, 2.0)
		if err != nil {
			return geom.ExPoly{}, err
		}
	}

	if comp.DeltaOuter < 0 {
		out, err = geom.Offset(out, float64(comp.DeltaOuter), geom.JoinMiter, 2.0)
		if err != nil {
			return geom.ExPoly{}, err
		}
	}
	if comp.DeltaInner < 0 {
		out = shrinkContourHoles(out, comp.DeltaInner)
	}

	if len(out) == 0 {
		return geom.ExPoly{}, nil
	}
	return out[0], nil
}

// growConvexHoles grows only holes classified convex within
// convexHoleAngleTolerance, per spec §4.3.5's area-softened classification.
func growConvexHoles(exs geom.ExPolys, deltaHole geom.Coord) geom.ExPolys {
	if deltaHole <= 0 {
		return exs
	}
	out := make(geom.ExPolys, len(exs))
	for i, e := range exs {
		newHoles := make([]geom.Polygon, len(e.Holes))
		for j, h := range e.Holes {
			if isConvexHole(h) {
				grown, err := geom.Offset(geom.ExPolys{{Outer: h.Reversed()}}, float64(deltaHole), geom.JoinMiter, 2.0)
				if err == nil && len(grown) > 0 {
					newHoles[j] = grown[0].Outer.Reversed()
					continue
				}
			}
			newHoles[j] = h
		}
		out[i] = geom.ExPoly{Outer: e.Outer, Holes: newHoles}
	}
	return out
}

// shrinkContourHoles offsets the whole ExPolys by deltaInner, the final
// negative-delta pass mirroring _shrink_contour_holes; the offset moves
// holes as well as the outer contour.
func shrinkContourHoles(exs geom.ExPolys, deltaInner geom.Coord) geom.ExPolys {
	out, err := geom.Offset(exs, float64(deltaInner), geom.JoinMiter, 2.0)
	if err != nil {
		return exs
	}
	return out
}

func isConvexHole(h geom.Polygon) bool {
	n := len(h)
	if n < 3 {
		return false
	}
	areaSoftenThreshold := math.Abs(h.Area()) * 0.02
	for i := 0; i < n; i++ {
		a := h[(i-1+n)%n]
		b := h[i]
		c := h[(i+1)%n]
		v1x, v1y := float64(a.X-b.X), float64(a.Y-b.Y)
		v2x, v2y := float64(c.X-b.X), float64(c.Y-b.Y)
		cross := v1x*v2y - v1y*v2x
		if cross > areaSoftenThreshold || math.Abs(cross) <= convexHoleAngleTolerance*1e6 {
			continue
		}
		return false
	}
	return true
}
