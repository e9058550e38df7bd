package medialaxis

import (
	"github.com/slic3r/slicer-core/geom"
	"github.com/slic3r/slicer-core/voronoi"
)

// validEdge is a candidate VD edge plus the thickness values computed for
// it (spec §4.1.3's VoronoiEdgeRecord, spec §3).
type validEdge struct {
	idx    voronoi.EdgeIdx
	a, b   geom.Point
	w0, w1 geom.Coord
}

// buildValidEdges implements spec §4.1.3: build the VD of surface.Lines(),
// then keep edges whose endpoints are finite, whose segment (a,b) lies
// within surface (allowing EpsS total excursion), and which are not both
// thicker than 1.05*maxWidth.
func buildValidEdges(surf geom.ExPoly, maxWidth geom.Coord) ([]validEdge, *voronoi.Diagram, error) {
	segs := surf.Lines()
	if len(segs) == 0 {
		return nil, nil, nil
	}
	min, max := boundingBoxOf(surf)
	diag, err := voronoi.Build(segs, min, max)
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[voronoi.EdgeIdx]bool)
	var out []validEdge
	for i := range diag.Edges {
		e := voronoi.EdgeIdx(i)
		if seen[e] || !diag.IsValidCandidate(e) {
			continue
		}
		twin := diag.TwinOf(e)
		seen[e] = true
		seen[twin] = true

		a, b := diag.EdgeEndpoints(e)
		w0 := geom.Coord(2 * diag.DistToSource(e, a))
		w1 := geom.Coord(2 * diag.DistToSource(e, b))

		if !edgeGeometryValid(a, b, surf) {
			continue
		}
		if w0 > geom.Coord(1.05*float64(maxWidth)) && w1 > geom.Coord(1.05*float64(maxWidth)) {
			continue
		}
		out = append(out, validEdge{idx: e, a: a, b: b, w0: w0, w1: w1})
		out = append(out, validEdge{idx: twin, a: b, b: a, w0: w1, w1: w0})
	}
	return out, diag, nil
}

func boundingBoxOf(surf geom.ExPoly) (geom.Point, geom.Point) {
	min, max := geom.Bounds(surf.Outer)
	margin := geom.Coord(1000) // generous margin so Voronoi vertices land strictly inside
	return geom.Point{X: min.X - margin, Y: min.Y - margin}, geom.Point{X: max.X + margin, Y: max.Y + margin}
}

// edgeGeometryValid checks "line segment (a,b) lies within surface except
// for total excursion length <= EpsS" by sampling the segment and summing
// the length of the portions that fall outside surf.
func edgeGeometryValid(a, b geom.Point, surf geom.ExPoly) bool {
	const samples = 8
	excursion := 0.0
	var prevOutside geom.Point
	wasOutside := false
	for i := 0; i <= samples; i++ {
		t := float64(i) / samples
		p := geom.Point{
			X: a.X + geom.Coord(float64(b.X-a.X)*t),
			Y: a.Y + geom.Coord(float64(b.Y-a.Y)*t),
		}
		outside := !surf.Contains(p)
		if outside {
			if wasOutside {
				excursion += geom.Dist(prevOutside, p)
			}
			prevOutside = p
			wasOutside = true
		} else {
			wasOutside = false
		}
	}
	return excursion <= float64(geom.EpsS)
}
