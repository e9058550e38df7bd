package medialaxis

import (
	"github.com/slic3r/slicer-core/geom"
	"github.com/slic3r/slicer-core/voronoi"
)

// buildPolylines implements spec §4.1.4: repeatedly pick an unused valid
// edge, then walk forward and backward around ROT at each endpoint --
// exactly one valid neighbour extends, zero ends the polyline with a free
// endpoint, two or more ends it at a junction (not free). Consuming an
// edge consumes its twin too.
func buildPolylines(edges []validEdge, diag *voronoi.Diagram) []geom.ThickPolyline {
	byVertex := make(map[geom.Point][]int)
	for i, e := range edges {
		byVertex[e.a] = append(byVertex[e.a], i)
	}
	used := make(map[voronoi.EdgeIdx]bool)

	var out []geom.ThickPolyline
	for i, e0 := range edges {
		if used[e0.idx] {
			continue
		}
		used[e0.idx] = true
		used[diag.TwinOf(e0.idx)] = true

		fwdPts := []geom.Point{e0.a, e0.b}
		fwdW := []geom.Coord{e0.w0, e0.w1}
		fwdFree := walkFrom(edges, diag, byVertex, used, e0, &fwdPts, &fwdW)

		back0 := edges[i] // conceptually the twin, walking from e0.a
		back0.a, back0.b = e0.b, e0.a
		back0.w0, back0.w1 = e0.w1, e0.w0
		back0.idx = diag.TwinOf(e0.idx)
		bwdPts := []geom.Point{back0.a, back0.b}
		bwdW := []geom.Coord{back0.w0, back0.w1}
		bwdFree := walkFrom(edges, diag, byVertex, used, back0, &bwdPts, &bwdW)

		// bwdPts currently runs from e0.b backward; reverse and drop the
		// duplicated shared point before prepending to the forward walk.
		pts := reversePoints(bwdPts)
		widths := reverseWidths(bwdW)
		pts = append(pts, fwdPts[2:]...)
		widths = append(widths, fwdW[2:]...)

		closed := pts[0] == pts[len(pts)-1] && len(pts) > 2
		endpoints := [2]bool{bwdFree, fwdFree}
		if closed {
			endpoints = [2]bool{false, false}
		}
		out = append(out, geom.ThickPolyline{Pts: pts, Width: widths, Endpoints: endpoints})
	}
	return out
}

// walkFrom extends pts/widths starting from e's endpoint (e.b), returning
// whether the walk terminated at a free endpoint (true) or a junction
// (false).
func walkFrom(edges []validEdge, diag *voronoi.Diagram, byVertex map[geom.Point][]int, used map[voronoi.EdgeIdx]bool, cur validEdge, pts *[]geom.Point, widths *[]geom.Coord) bool {
	for {
		cands := byVertex[cur.b]
		var next *validEdge
		count := 0
		for _, ci := range cands {
			cand := edges[ci]
			if cand.idx == diag.TwinOf(cur.idx) {
				continue
			}
			if used[cand.idx] {
				continue
			}
			count++
			if count == 1 {
				c := cand
				next = &c
			}
		}
		if count == 0 {
			return true // free endpoint
		}
		if count >= 2 {
			return false // T/star junction
		}
		used[next.idx] = true
		used[diag.TwinOf(next.idx)] = true
		*pts = append(*pts, next.b)
		*widths = append(*widths, next.w1)
		cur = *next
	}
}

func reversePoints(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func reverseWidths(w []geom.Coord) []geom.Coord {
	out := make([]geom.Coord, len(w))
	for i, v := range w {
		out[len(w)-1-i] = v
	}
	return out
}
