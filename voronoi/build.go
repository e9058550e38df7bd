package voronoi

import (
	"fmt"
	"math"
	"sort"

	"github.com/slic3r/slicer-core/geom"
)

const maxSamplesPerSegment = 6

type site struct {
	pos    geom.Point
	segIdx int
}

// Build constructs the segment Voronoi diagram of segments, clipped to
// bbox (the enclosing reference region, large enough that every true
// Voronoi vertex of the input lies strictly inside it). bbox is typically
// derived from the MAX caller's bounds expanded by a safety margin.
//
// Build samples each segment into point sites, computes each site's
// point-Voronoi cell by half-plane intersection via the clipper CLIP
// engine, and then unions same-segment sample cells back into one cell per
// segment -- see the package doc for why this approximates the true
// segment Voronoi diagram closely enough for MAX's purposes.
func Build(segments []geom.Segment, bboxMin, bboxMax geom.Point) (*Diagram, error) {
	if len(segments) == 0 {
		return &Diagram{}, nil
	}

	sites := sampleSites(segments)
	bbox := geom.Polygon{
		{X: bboxMin.X, Y: bboxMin.Y},
		{X: bboxMax.X, Y: bboxMin.Y},
		{X: bboxMax.X, Y: bboxMax.Y},
		{X: bboxMin.X, Y: bboxMax.Y},
	}
	diag := float64(bboxMax.X-bboxMin.X) + float64(bboxMax.Y-bboxMin.Y) + 1

	siteCells := make([]geom.ExPolys, len(sites))
	for i := range sites {
		cell, err := pointCell(sites, i, bbox, diag)
		if err != nil {
			return nil, fmt.Errorf("voronoi: build cell %d: %w", i, err)
		}
		siteCells[i] = cell
	}

	// Union same-segment sample cells into one cell per segment.
	segCells := make([]geom.ExPolys, len(segments))
	for i, c := range siteCells {
		seg := sites[i].segIdx
		if segCells[seg] == nil {
			segCells[seg] = c
			continue
		}
		merged, err := geom.Union(segCells[seg], c)
		if err != nil {
			return nil, fmt.Errorf("voronoi: merge segment %d: %w", seg, err)
		}
		segCells[seg] = merged
	}

	return assemble(segments, segCells, bboxMin, bboxMax)
}

func sampleSites(segments []geom.Segment) []site {
	var sites []site
	for i, s := range segments {
		length := geom.Dist(s.A, s.B)
		n := int(length / (length + 1) * maxSamplesPerSegment)
		if n < 1 {
			n = 1
		}
		if n > maxSamplesPerSegment {
			n = maxSamplesPerSegment
		}
		sites = append(sites, site{pos: s.A, segIdx: i})
		for k := 1; k <= n; k++ {
			t := float64(k) / float64(n+1)
			p := geom.Point{
				X: s.A.X + geom.Coord(float64(s.B.X-s.A.X)*t),
				Y: s.A.Y + geom.Coord(float64(s.B.Y-s.A.Y)*t),
			}
			sites = append(sites, site{pos: p, segIdx: i})
		}
		sites = append(sites, site{pos: s.B, segIdx: i})
	}
	return sites
}

// pointCell computes the point-Voronoi cell of sites[i] by intersecting
// bbox with the half-plane bisector constraint against every other site.
func pointCell(sites []site, i int, bbox geom.Polygon, big float64) (geom.ExPolys, error) {
	cell := geom.ExPolys{{Outer: bbox}}
	c := sites[i].pos
	for j, s := range sites {
		if j == i || (s.pos.X == c.X && s.pos.Y == c.Y) {
			continue
		}
		hp := halfPlane(c, s.pos, big)
		next, err := geom.Intersection(cell, geom.ExPolys{{Outer: hp}})
		if err != nil {
			return nil, err
		}
		if len(next) == 0 {
			return geom.ExPolys{}, nil
		}
		cell = next
	}
	return cell, nil
}

// halfPlane returns a large quadrilateral covering every point closer to
// center than to other (the region on center's side of their bisector).
func halfPlane(center, other geom.Point, big float64) geom.Polygon {
	mx, my := float64(center.X+other.X)/2, float64(center.Y+other.Y)/2
	nx, ny := float64(other.X-center.X), float64(other.Y-center.Y)
	norm := math.Hypot(nx, ny)
	if norm == 0 {
		norm = 1
	}
	nx, ny = nx/norm, ny/norm
	// perpendicular direction along the bisector line
	px, py := -ny, nx

	p1 := geom.Point{X: geom.Coord(mx + px*big), Y: geom.Coord(my + py*big)}
	p2 := geom.Point{X: geom.Coord(mx - px*big), Y: geom.Coord(my - py*big)}
	p3 := geom.Point{X: geom.Coord(mx - px*big - nx*big), Y: geom.Coord(my - py*big - ny*big)}
	p4 := geom.Point{X: geom.Coord(mx + px*big - nx*big), Y: geom.Coord(my + py*big - ny*big)}
	return geom.Polygon{p1, p2, p3, p4}
}

// assemble walks each merged segment cell's boundary and builds the
// edge/vertex arena, pairing twins by coincident reversed endpoints.
func assemble(segments []geom.Segment, segCells []geom.ExPolys, bboxMin, bboxMax geom.Point) (*Diagram, error) {
	d := &Diagram{Segments: segments}
	type key struct{ x0, y0, x1, y1 geom.Coord }
	round := func(c geom.Coord) geom.Coord {
		return (c / (geom.EpsS / 2)) * (geom.EpsS / 2)
	}
	edgeByKey := make(map[key]EdgeIdx)

	onBBox := func(p geom.Point) bool {
		return p.X <= bboxMin.X+geom.EpsS || p.X >= bboxMax.X-geom.EpsS ||
			p.Y <= bboxMin.Y+geom.EpsS || p.Y >= bboxMax.Y-geom.EpsS
	}

	vertexIdx := make(map[[2]geom.Coord]VertexIdx)
	vertexOf := func(p geom.Point) VertexIdx {
		k := [2]geom.Coord{round(p.X), round(p.Y)}
		if idx, ok := vertexIdx[k]; ok {
			return idx
		}
		idx := VertexIdx(len(d.Vertices))
		d.Vertices = append(d.Vertices, Vertex{P: p})
		vertexIdx[k] = idx
		return idx
	}

	for segIdx, cells := range segCells {
		for _, ex := range cells {
			cellID := CellID(len(d.Cells))
			cell := Cell{Source: segments[segIdx], SourceIdx: segIdx}
			poly := ex.Outer
			n := len(poly)
			for i := 0; i < n; i++ {
				a := poly[i]
				b := poly[(i+1)%n]
				if a == b {
					continue
				}
				eIdx := EdgeIdx(len(d.Edges))
				e := Edge{
					V0:       vertexOf(a),
					V1:       vertexOf(b),
					Twin:     -1,
					Cell:     cellID,
					Infinite: onBBox(a) && onBBox(b),
				}
				d.Edges = append(d.Edges, e)
				cell.Edges = append(cell.Edges, eIdx)

				fwd := key{round(a.X), round(a.Y), round(b.X), round(b.Y)}
				rev := key{round(b.X), round(b.Y), round(a.X), round(a.Y)}
				if twinIdx, ok := edgeByKey[rev]; ok {
					d.Edges[eIdx].Twin = twinIdx
					d.Edges[twinIdx].Twin = eIdx
				} else {
					edgeByKey[fwd] = eIdx
				}
			}
			d.Cells = append(d.Cells, cell)
		}
	}

	// Edges with no twin found border the outer bbox or a numerical gap;
	// treat them as infinite so MAX's valid-edge walk skips them.
	for i, e := range d.Edges {
		if e.Twin < 0 {
			d.Edges[i].Infinite = true
		}
	}

	sort.SliceStable(d.Cells, func(i, j int) bool { return d.Cells[i].SourceIdx < d.Cells[j].SourceIdx })
	return d, nil
}

// DistToSource returns the distance from p to the segment that generated
// cell, used by medialaxis to compute VoronoiEdgeRecord widths (spec
// §4.1.3: w = 2*dist(vertex, generating segment)).
func (d *Diagram) DistToSource(e EdgeIdx, p geom.Point) float64 {
	seg := d.Cells[d.Edges[e].Cell].Source
	return distPointSegment(p, seg)
}

func distPointSegment(p geom.Point, s geom.Segment) float64 {
	ax, ay := float64(s.A.X), float64(s.A.Y)
	bx, by := float64(s.B.X), float64(s.B.Y)
	px, py := float64(p.X), float64(p.Y)
	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	cx, cy := ax+t*dx, ay+t*dy
	return math.Hypot(px-cx, py-cy)
}
