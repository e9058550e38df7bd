package perimeter

import "github.com/slic3r/slicer-core/geom"

// nestLoops implements spec §4.2.2: holes at every depth are nested first,
// innermost depth outward, each into the first deeper hole containing its
// first point, else into the deepest containing contour; contours nest
// next, deepest to depth 1, into the shallowest containing contour.
// The returned slice holds the depth-0 contour roots.
func nestLoops(loopsByDepth [][]*Loop) []*Loop {
	if len(loopsByDepth) == 0 {
		return nil
	}
	maxDepth := len(loopsByDepth) - 1

	for d := maxDepth; d >= 0; d-- {
		for _, l := range loopsByDepth[d] {
			if l.IsContour {
				continue
			}
			if parent := findHoleParent(l, loopsByDepth, d, maxDepth); parent != nil {
				parent.Children = append(parent.Children, l)
			}
		}
	}
	for d := maxDepth; d >= 1; d-- {
		for _, l := range loopsByDepth[d] {
			if !l.IsContour {
				continue
			}
			if parent := findContourParent(l, loopsByDepth, d); parent != nil {
				parent.Children = append(parent.Children, l)
			}
		}
	}
	var roots []*Loop
	for _, l := range loopsByDepth[0] {
		if l.IsContour {
			roots = append(roots, l)
		}
	}
	return roots
}

// findHoleParent scans holes at depths d+1..maxDepth for the first whose
// polygon contains l's first point; if none, scans contours from maxDepth
// down to 0.
func findHoleParent(l *Loop, byDepth [][]*Loop, d, maxDepth int) *Loop {
	p0 := l.Polygon[0]
	for dd := d + 1; dd <= maxDepth; dd++ {
		for _, cand := range byDepth[dd] {
			if !cand.IsContour && contains(cand.Polygon, p0) {
				return cand
			}
		}
	}
	for dd := maxDepth; dd >= 0; dd-- {
		for _, cand := range byDepth[dd] {
			if cand.IsContour && contains(cand.Polygon, p0) {
				return cand
			}
		}
	}
	return nil
}

// findContourParent scans contours from d-1 down to 0 for the shallowest
// one containing l's first point.
func findContourParent(l *Loop, byDepth [][]*Loop, d int) *Loop {
	p0 := l.Polygon[0]
	var best *Loop
	for dd := d - 1; dd >= 0; dd-- {
		for _, cand := range byDepth[dd] {
			if cand.IsContour && contains(cand.Polygon, p0) {
				best = cand
			}
		}
	}
	return best
}

func contains(poly geom.Polygon, pt geom.Point) bool {
	return geom.PointInPolygon(pt, poly) != 0 // clipper.Outside == 0
}
