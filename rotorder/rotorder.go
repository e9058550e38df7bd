// Package rotorder implements ROT (spec §2.1): a deterministic rotation
// order around each vertex over its incident edges. No other package in
// this module imports it: medialaxis walks the skeleton graph by counting
// each vertex's valid neighbours in a vertex map.
//
// Grounded on katalvlaran-lvlath/core's adjacency enumeration, which always
// returns neighbors in a fixed, deterministic order (there sorted
// lexicographically by vertex ID; here sorted by polar angle around the
// shared vertex, since edge identity has no natural total order of its own).
package rotorder

import "math"

// Neighbor is one incident edge, described by the vector from the shared
// center vertex to the edge's other endpoint plus an opaque payload the
// caller uses to recover which edge/cell it came from.
type Neighbor struct {
	DX, DY  float64
	Payload int
}

// Order returns the indices of neighbors sorted by counter-clockwise polar
// angle starting from the positive X axis (spec §6.3's ccw_angle convention).
// Ties (coincident directions) keep their input order (stable sort).
func Order(neighbors []Neighbor) []int {
	idx := make([]int, len(neighbors))
	angle := make([]float64, len(neighbors))
	for i, n := range neighbors {
		idx[i] = i
		a := math.Atan2(n.DY, n.DX)
		if a < 0 {
			a += 2 * math.Pi
		}
		angle[i] = a
	}
	// Simple stable insertion sort: neighbor counts per vertex are small
	// (bounded by the local polygon degree), so O(n^2) is not a concern.
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && angle[idx[j-1]] > angle[idx[j]]; j-- {
			idx[j-1], idx[j] = idx[j], idx[j-1]
		}
	}
	return idx
}

// Next returns the neighbor immediately counter-clockwise from the one at
// position cur in the order produced by Order, wrapping around. This is
// rot_next: walking the skeleton "around ROT" from an incoming edge picks
// the next outgoing edge in rotation order (spec §4.1.4).
func Next(order []int, cur int) int {
	for i, v := range order {
		if v == cur {
			return order[(i+1)%len(order)]
		}
	}
	return cur
}
