// Package geom is the FIX-POINT data model shared by every stage of the
// toolpath pipeline: medial axis extraction, perimeter generation, and
// infill classification all operate on the Point/Polygon/ExPoly/ThickPolyline
// value types defined here, and all geometric set algebra is delegated to
// clipper2 (the CLIP primitive).
//
// Coordinates are scaled integers. SCALE converts millimeters to Coord;
// EPS_S is the working tolerance used throughout the pipeline.
package geom

import clipper "github.com/go-clipper/clipper2"

// Coord is a scaled integer coordinate (mirrors clipper.Point64's components).
type Coord = int64

const (
	// Scale converts millimeters to Coord: Coord = round(mm * Scale).
	Scale = 1_000_000
	// EpsU is the working tolerance in millimeters.
	EpsU = 1e-4
	// EpsS is the working tolerance in Coord units: round(Scale * EpsU).
	EpsS Coord = 100
)

// MMToCoord converts a millimeter value to a Coord.
func MMToCoord(mm float64) Coord {
	if mm >= 0 {
		return Coord(mm*Scale + 0.5)
	}
	return Coord(mm*Scale - 0.5)
}

// CoordToMM converts a Coord back to millimeters.
func CoordToMM(c Coord) float64 {
	return float64(c) / Scale
}

// Point is a single vertex in fixed-point 2D.
type Point struct {
	X, Y Coord
}

func (p Point) toClipper() clipper.Point64 { return clipper.Point64{X: p.X, Y: p.Y} }

func fromClipperPoint(p clipper.Point64) Point { return Point{X: p.X, Y: p.Y} }

// Polygon is an ordered, implicitly-closed sequence of points. Outer
// polygons are CCW, holes are CW (spec §6.3).
type Polygon []Point

func (p Polygon) toClipper() clipper.Path64 {
	out := make(clipper.Path64, len(p))
	for i, pt := range p {
		out[i] = pt.toClipper()
	}
	return out
}

func fromClipperPath(path clipper.Path64) Polygon {
	out := make(Polygon, len(path))
	for i, pt := range path {
		out[i] = fromClipperPoint(pt)
	}
	return out
}

// Area returns the signed area of the polygon; positive means CCW.
func (p Polygon) Area() float64 {
	return clipper.Area64(p.toClipper())
}

// IsCCW reports whether the polygon winds counter-clockwise.
func (p Polygon) IsCCW() bool {
	return clipper.IsPositive64(p.toClipper())
}

// Reversed returns the polygon with its point order reversed.
func (p Polygon) Reversed() Polygon {
	return fromClipperPath(clipper.Reverse64(p.toClipper()))
}

// Lines returns the closed sequence of segments (p[i], p[i+1]) implied by
// the polygon, wrapping from the last point back to the first. Used as VD
// input (spec §4.1.3: "Build VD of surface.lines()").
func (p Polygon) Lines() []Segment {
	n := len(p)
	if n < 2 {
		return nil
	}
	segs := make([]Segment, 0, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		segs = append(segs, Segment{A: p[i], B: p[j]})
	}
	return segs
}

// Segment is a directed line segment, e.g. one edge of a Polygon or one
// entry of an open ThickPolyline walk.
type Segment struct {
	A, B Point
}

// ExPoly is an outer Polygon plus its (possibly empty) ordered holes.
type ExPoly struct {
	Outer Polygon
	Holes []Polygon
}

// Area returns outer area minus the sum of hole areas (holes are CW so
// their signed area is already negative; this returns the net positive
// filled area).
func (e ExPoly) Area() float64 {
	a := e.Outer.Area()
	for _, h := range e.Holes {
		a += h.Area()
	}
	return a
}

// Lines returns the outer contour's segments followed by every hole's.
func (e ExPoly) Lines() []Segment {
	segs := e.Outer.Lines()
	for _, h := range e.Holes {
		segs = append(segs, h.Lines()...)
	}
	return segs
}

// ExPolys is a slice of ExPoly, the unit of currency for CLIP boolean ops.
type ExPolys []ExPoly

func (es ExPolys) toClipperPaths() clipper.Paths64 {
	var paths clipper.Paths64
	for _, e := range es {
		paths = append(paths, e.Outer.toClipper())
		for _, h := range e.Holes {
			paths = append(paths, h.toClipper())
		}
	}
	return paths
}

func polygonToExPoly(p Polygon) ExPoly {
	return ExPoly{Outer: p}
}

// ThickPolyline is a medial-axis centerline: a sequence of points each
// carrying a local extrusion width, plus free-endpoint flags (spec §3).
type ThickPolyline struct {
	Pts       []Point
	Width     []Coord
	Endpoints [2]bool // Endpoints[0] => Pts[0] is free; Endpoints[1] => Pts[last] is free
}

// Len returns the number of points.
func (t ThickPolyline) Len() int { return len(t.Pts) }

// IsClosed reports whether both endpoints are non-free (a loop, spec §4.1.4).
func (t ThickPolyline) IsClosed() bool {
	return !t.Endpoints[0] && !t.Endpoints[1]
}

// Length returns the polyline's total Euclidean length in Coord units.
func (t ThickPolyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(t.Pts); i++ {
		total += dist(t.Pts[i-1], t.Pts[i])
	}
	return total
}

// Reversed returns a copy of the polyline with point order, widths, and
// endpoint flags reversed. Used by MAX post-processing stages that walk
// backward from the twin edge (spec §4.1.4) and by property 4 (reversal
// invariance, spec §8.1).
func (t ThickPolyline) Reversed() ThickPolyline {
	n := len(t.Pts)
	out := ThickPolyline{
		Pts:       make([]Point, n),
		Width:     make([]Coord, n),
		Endpoints: [2]bool{t.Endpoints[1], t.Endpoints[0]},
	}
	for i := 0; i < n; i++ {
		out.Pts[i] = t.Pts[n-1-i]
		out.Width[i] = t.Width[n-1-i]
	}
	return out
}
