package medialaxis

import (
	"math"

	"github.com/slic3r/slicer-core/geom"
)

// simplifySurface implements spec §4.1.1: collinear vertices within EpsS
// are removed; if bounds differs from surface, off-bounds vertices are
// snapped to the nearest bounds point (if strictly closer than half the
// distance to this vertex's neighbours) or dropped, then the result is
// intersected with bounds; finally vertices closer than Scale*RES to their
// predecessor are removed.
//
// RES is the minimum resolvable segment length as a fraction of EpsU; the
// original uses SCALED_EPSILON-derived constants here, so this package
// takes half of geom.EpsS as RES's scaled form.
func simplifySurface(p Params) (geom.ExPoly, error) {
	surf := p.Surface
	surf.Outer = simplifyLoop(surf.Outer)
	for i := range surf.Holes {
		surf.Holes[i] = simplifyLoop(surf.Holes[i])
	}

	if !sameExPoly(p.Bounds, p.Surface) {
		surf.Outer = snapOrDropOffBounds(surf.Outer, p.Bounds)
		for i := range surf.Holes {
			surf.Holes[i] = snapOrDropOffBounds(surf.Holes[i], p.Bounds)
		}
		clipped, err := geom.Intersection(geom.ExPolys{surf}, geom.ExPolys{p.Bounds})
		if err != nil {
			return geom.ExPoly{}, err
		}
		if len(clipped) == 0 {
			return geom.ExPoly{}, nil
		}
		surf = clipped[0]
	}

	surf.Outer = removeTooClose(surf.Outer)
	for i := range surf.Holes {
		surf.Holes[i] = removeTooClose(surf.Holes[i])
	}
	return surf, nil
}

func simplifyLoop(poly geom.Polygon) geom.Polygon {
	return geom.Simplify(poly, float64(geom.EpsS))
}

func removeTooClose(poly geom.Polygon) geom.Polygon {
	const resFactor = 0.5 // RES fraction of EpsS used as the minimum spacing
	minSpacing := float64(geom.EpsS) * resFactor
	if len(poly) < 2 {
		return poly
	}
	out := make(geom.Polygon, 0, len(poly))
	out = append(out, poly[0])
	for i := 1; i < len(poly); i++ {
		if geom.Dist(out[len(out)-1], poly[i]) >= minSpacing {
			out = append(out, poly[i])
		}
	}
	if len(out) > 1 && geom.Dist(out[0], out[len(out)-1]) < minSpacing {
		out = out[:len(out)-1]
	}
	return out
}

func snapOrDropOffBounds(poly geom.Polygon, bounds geom.ExPoly) geom.Polygon {
	contour := bounds.Outer
	out := make(geom.Polygon, 0, len(poly))
	n := len(poly)
	for i, v := range poly {
		if geom.PointInPolygon(v, contour) != 0 && onContour(v, contour) {
			out = append(out, v)
			continue
		}
		nearest, d := nearestOnContour(v, contour)
		prev := poly[(i-1+n)%n]
		next := poly[(i+1)%n]
		neighborDist := math.Min(geom.Dist(v, prev), geom.Dist(v, next))
		if d < neighborDist/2 {
			out = append(out, nearest)
		}
		// else: dropped
	}
	return out
}

func onContour(v geom.Point, contour geom.Polygon) bool {
	_, d := nearestOnContour(v, contour)
	return d <= float64(geom.EpsS)
}

func nearestOnContour(v geom.Point, contour geom.Polygon) (geom.Point, float64) {
	best := contour[0]
	bestD := math.MaxFloat64
	n := len(contour)
	for i := 0; i < n; i++ {
		a, b := contour[i], contour[(i+1)%n]
		q, d := closestPointOnSegment(v, a, b)
		if d < bestD {
			bestD = d
			best = q
		}
	}
	return best, bestD
}

func closestPointOnSegment(p, a, b geom.Point) (geom.Point, float64) {
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)
	px, py := float64(p.X), float64(p.Y)
	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((px-ax)*dx + (py-ay)*dy) / lenSq
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
	}
	q := geom.Point{X: geom.Coord(ax + t*dx), Y: geom.Coord(ay + t*dy)}
	return q, geom.Dist(p, q)
}

func sameExPoly(a, b geom.ExPoly) bool {
	if len(a.Outer) != len(b.Outer) || len(a.Holes) != len(b.Holes) {
		return false
	}
	for i := range a.Outer {
		if a.Outer[i] != b.Outer[i] {
			return false
		}
	}
	return true
}

// circularFastPath implements spec §4.1.2: if the simplified region has no
// holes, is convex, has more than 4 vertices, and max(R)-min(R) < minWidth/4
// (R = distance-to-centroid), emit a single closed thick polyline equal to
// the inward offset contour at radius -R/2 with uniform width R. Returns
// ok=false if the fast path does not apply.
func circularFastPath(surf geom.ExPoly, minWidth geom.Coord) (geom.ThickPolyline, bool) {
	if len(surf.Holes) != 0 || len(surf.Outer) <= 4 {
		return geom.ThickPolyline{}, false
	}
	if !isConvex(surf.Outer) {
		return geom.ThickPolyline{}, false
	}
	c := geom.Centroid(surf.Outer)
	minR, maxR := math.MaxFloat64, 0.0
	for _, v := range surf.Outer {
		r := geom.Dist(v, c)
		if r < minR {
			minR = r
		}
		if r > maxR {
			maxR = r
		}
	}
	if maxR-minR >= float64(minWidth)/4 {
		return geom.ThickPolyline{}, false
	}
	radius := (minR + maxR) / 2
	inset, err := geom.Offset(geom.ExPolys{surf}, -radius/2, geom.JoinRound, 2.0)
	if err != nil || len(inset) == 0 {
		return geom.ThickPolyline{}, false
	}
	poly := inset[0].Outer
	width := geom.Coord(radius)
	pts := make([]geom.Point, len(poly))
	widths := make([]geom.Coord, len(poly))
	for i, v := range poly {
		pts[i] = v
		widths[i] = width
	}
	return geom.ThickPolyline{Pts: pts, Width: widths, Endpoints: [2]bool{false, false}}, true
}

func isConvex(poly geom.Polygon) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	sign := 0
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		c := poly[(i+2)%n]
		cross := float64(b.X-a.X)*float64(c.Y-b.Y) - float64(b.Y-a.Y)*float64(c.X-b.X)
		if cross == 0 {
			continue
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if sign != s {
			return false
		}
	}
	return true
}
