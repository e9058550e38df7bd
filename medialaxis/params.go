// Package medialaxis implements MAX (spec §4.1): variable-width centerline
// extraction for thin or irregular regions, via a segment Voronoi diagram
// of the region's own edges.
//
// Grounded on original_source/src/libslic3r/MedialAxis.cpp: the simplify /
// circular-fast-path / Voronoi-walk / thirteen-stage post-processing
// pipeline below mirrors that file's structure, generalized from its
// member-state design (DESIGN NOTES "free functions reading member state")
// into pure functions over an explicit, immutable Params value.
package medialaxis

import "github.com/slic3r/slicer-core/geom"

// Params groups every read-only input MAX's helpers need, replacing the
// original's `this->expolygon`, `this->bounds`, `this->max_width` member
// reads (DESIGN NOTES) with one value passed by reference to every stage.
type Params struct {
	Surface geom.ExPoly // the region to skeletonise
	Bounds  geom.ExPoly // enclosing reference region, used for endpoint extension
	Anchors geom.ExPolys // additional anchor regions extension may terminate against

	MinWidth, MaxWidth geom.Coord
	NozzleDiameter     geom.Coord
	Height             geom.Coord
	TaperSize          geom.Coord
	StopAtMinWidth     bool
}

// inAnchorRegion reports whether pt lies in Bounds or any Anchors region,
// used by extends_line (§4.1.5 stage 5) and grow_to_nozzle_diameter
// (stage 11, "points not lying within anchor regions").
func (p Params) inAnchorRegion(pt geom.Point) bool {
	if p.Bounds.Contains(pt) {
		return true
	}
	for _, a := range p.Anchors {
		if a.Contains(pt) {
			return true
		}
	}
	return false
}
