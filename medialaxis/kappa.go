package medialaxis

import (
	"math"

	"github.com/slic3r/slicer-core/geom"
)

// kappaCache memoises the contour angle coefficient per point across one
// main_fusion run (spec §4.1.6: "Cache per-point across main_fusion
// iterations").
type kappaCache struct {
	bounds geom.Polygon
	cache  map[geom.Point]float64
}

func newKappaCache(bounds geom.Polygon) *kappaCache {
	return &kappaCache{bounds: bounds, cache: make(map[geom.Point]float64)}
}

// kappa implements spec §4.1.6: find the two nearest contour vertices to p
// separated by at least minDist, compute their incident signed interior
// angle, and return 1 - |angle - pi/2| / (pi/2).
func (k *kappaCache) kappa(p geom.Point, minDist float64) float64 {
	if v, ok := k.cache[p]; ok {
		return v
	}
	v := k.compute(p, minDist)
	k.cache[p] = v
	return v
}

func (k *kappaCache) compute(p geom.Point, minDist float64) float64 {
	n := len(k.bounds)
	if n < 3 {
		return 1
	}
	type cand struct {
		idx int
		d   float64
	}
	cands := make([]cand, n)
	for i, v := range k.bounds {
		cands[i] = cand{i, geom.Dist(p, v)}
	}
	// selection of the nearest vertex, then the nearest vertex at least
	// minDist away from the first
	best := cands[0]
	for _, c := range cands[1:] {
		if c.d < best.d {
			best = c
		}
	}
	var second cand
	secondSet := false
	for _, c := range cands {
		if c.idx == best.idx {
			continue
		}
		if geom.Dist(k.bounds[c.idx], k.bounds[best.idx]) < minDist {
			continue
		}
		if !secondSet || c.d < second.d {
			second = c
			secondSet = true
		}
	}
	if !secondSet {
		return 1
	}
	prev := k.bounds[(best.idx-1+n)%n]
	cur := k.bounds[best.idx]
	next := k.bounds[(best.idx+1)%n]
	alpha := interiorAngle(prev, cur, next)
	_ = second
	return 1 - math.Abs(alpha-math.Pi/2)/(math.Pi/2)
}

// interiorAngle returns the signed interior angle at b formed by a-b-c,
// using the spec §6.3 ccw_angle(prev,next) convention in [0, 2*pi).
func interiorAngle(a, b, c geom.Point) float64 {
	v1x, v1y := float64(a.X-b.X), float64(a.Y-b.Y)
	v2x, v2y := float64(c.X-b.X), float64(c.Y-b.Y)
	a1 := math.Atan2(v1y, v1x)
	a2 := math.Atan2(v2y, v2x)
	angle := a2 - a1
	for angle < 0 {
		angle += 2 * math.Pi
	}
	for angle >= 2*math.Pi {
		angle -= 2 * math.Pi
	}
	return angle
}
