package geom

import (
	"math"

	clipper "github.com/go-clipper/clipper2"
)

// Join mirrors clipper.JoinType: how offset corners are joined (spec §2.1
// CLIP.offset(d, join, miter_limit)).
type Join = clipper.JoinType

const (
	JoinSquare Join = clipper.Square
	JoinMiter  Join = clipper.Miter
	JoinRound  Join = clipper.Round
)

const defaultMiterLimit = 2.0

func toExPolys(paths clipper.Paths64) ExPolys {
	// Clipper returns a flat path list; classify by orientation: CCW paths
	// are outers, CW paths are holes nested into the most recent outer.
	// This mirrors how PG and IRC consume boolean-op output: one outer
	// followed by its holes in encounter order.
	var out ExPolys
	for _, p := range paths {
		poly := fromClipperPath(p)
		if poly.IsCCW() || len(out) == 0 {
			out = append(out, ExPoly{Outer: poly})
		} else {
			out[len(out)-1].Holes = append(out[len(out)-1].Holes, poly)
		}
	}
	return out
}

// Union returns the union of a and b (spec CLIP.union).
func Union(a, b ExPolys) (ExPolys, error) {
	res, err := clipper.Union64(a.toClipperPaths(), b.toClipperPaths(), clipper.NonZero)
	if err != nil {
		return nil, err
	}
	return toExPolys(res), nil
}

// Intersection returns the intersection of a and b (spec CLIP.intersection).
func Intersection(a, b ExPolys) (ExPolys, error) {
	res, err := clipper.Intersect64(a.toClipperPaths(), b.toClipperPaths(), clipper.NonZero)
	if err != nil {
		return nil, err
	}
	return toExPolys(res), nil
}

// Difference returns a minus b (spec CLIP.difference).
func Difference(a, b ExPolys) (ExPolys, error) {
	res, err := clipper.Difference64(a.toClipperPaths(), b.toClipperPaths(), clipper.NonZero)
	if err != nil {
		return nil, err
	}
	return toExPolys(res), nil
}

// Offset insets (delta<0) or outsets (delta>0) polygons by delta Coord
// units, joined per join with the given miter limit (spec CLIP.offset).
func Offset(a ExPolys, delta float64, join Join, miterLimit float64) (ExPolys, error) {
	if miterLimit <= 0 {
		miterLimit = defaultMiterLimit
	}
	res, err := clipper.InflatePaths64(a.toClipperPaths(), delta, join, clipper.ClosedPolygon,
		clipper.OffsetOptions{MiterLimit: miterLimit, ArcTolerance: 0.25})
	if err != nil {
		return nil, err
	}
	return toExPolys(res), nil
}

// OffsetOpen offsets open polylines with round end caps. No package in
// this module calls it.
func OffsetOpen(lines []Polygon, delta float64, join Join) (ExPolys, error) {
	paths := make(clipper.Paths64, len(lines))
	for i, l := range lines {
		paths[i] = l.toClipper()
	}
	res, err := clipper.InflatePaths64(paths, delta, join, clipper.OpenRound,
		clipper.OffsetOptions{MiterLimit: defaultMiterLimit, ArcTolerance: 0.25})
	if err != nil {
		return nil, err
	}
	return toExPolys(res), nil
}

// Offset2 applies two successive offsets, the idiom used throughout PG for
// "collapse-then-reopen" shell insets (spec §4.2.1, §4.2.4; grounded on
// original_source ClipperUtils.cpp's offset2 helper).
func Offset2(a ExPolys, delta1, delta2 float64, join Join) (ExPolys, error) {
	mid, err := Offset(a, delta1, join, defaultMiterLimit)
	if err != nil {
		return nil, err
	}
	if len(mid) == 0 {
		return ExPolys{}, nil
	}
	return Offset(mid, delta2, join, defaultMiterLimit)
}

// Simplify removes vertices within tol of the line through their neighbors
// (spec §4.1.1's "collinear vertices within EPS_S are removed").
func Simplify(p Polygon, tol float64) Polygon {
	path, err := clipper.SimplifyPath64(p.toClipper(), tol, true)
	if err != nil {
		return p
	}
	return fromClipperPath(path)
}

// PointInPolygon reports whether pt lies inside, outside, or on the
// boundary of p.
func PointInPolygon(pt Point, p Polygon) clipper.PolygonLocation {
	return clipper.PointInPolygon64(pt.toClipper(), p.toClipper(), clipper.NonZero)
}

// Contains reports whether the ExPoly's filled region contains pt (inside
// the outer, and not inside any hole). Used by overhang detection and
// anchor-region tests throughout MAX.
func (e ExPoly) Contains(pt Point) bool {
	if PointInPolygon(pt, e.Outer) == clipper.Outside {
		return false
	}
	for _, h := range e.Holes {
		if loc := PointInPolygon(pt, h); loc == clipper.Inside {
			return false
		}
	}
	return true
}

// dist returns the Euclidean distance between two points.
func dist(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Dist is the exported form of dist, used across medialaxis/perimeter/infill.
func Dist(a, b Point) float64 { return dist(a, b) }

// Bounds returns the minimum and maximum corners of p's axis-aligned
// bounding box.
func Bounds(p Polygon) (min, max Point) {
	r := clipper.Bounds64(p.toClipper())
	return Point{X: r.Left, Y: r.Top}, Point{X: r.Right, Y: r.Bottom}
}

// Centroid returns the area-weighted centroid of a simple polygon.
func Centroid(p Polygon) Point {
	var cx, cy, a float64
	n := len(p)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		x0, y0 := float64(p[i].X), float64(p[i].Y)
		x1, y1 := float64(p[j].X), float64(p[j].Y)
		cross := x0*y1 - x1*y0
		a += cross
		cx += (x0 + x1) * cross
		cy += (y0 + y1) * cross
	}
	if a == 0 {
		return Point{}
	}
	a *= 0.5
	cx /= (6 * a)
	cy /= (6 * a)
	return Point{X: Coord(cx), Y: Coord(cy)}
}
