package medialaxis

import (
	"math"

	"github.com/slic3r/slicer-core/geom"
)

// runPostProcessing applies the thirteen stages of spec §4.1.5 in their
// exact order, each called once in a straight-line sequence; stages that
// need repeated passes loop internally. Several stages modify the
// polylines they are given in place and return the same slice.
func runPostProcessing(p Params, lines []geom.ThickPolyline) []geom.ThickPolyline {
	kc := newKappaCache(p.Bounds.Outer)

	lines = concat(lines)                                 // 1
	lines = fusionCurve(lines, p)                          // 2
	lines = mainFusion(lines, p, kc)                       // 3
	lines = fusionCorners(lines, p, kc)                    // 4
	lines = extendsLineBothEnds(lines, p)                  // 5
	lines = removeTooThinExtrusion(lines, p.MinWidth)      // 6
	lines = removeTooThinPoints(lines, p.MinWidth)         // 7
	lines = concatenateWithCrossing(lines)                 // 8
	lines = removeTooShortPolylines(lines, 2*p.MaxWidth)   // 9
	lines = ensureNotOverextrude(lines, p.Bounds)          // 10
	lines = growToNozzleDiameter(lines, p)                 // 11
	lines = taperEnds(lines, p)                            // 12
	lines = removeBits(lines)                              // 13
	return lines
}

// concat (stage 1): merge polylines that share a free endpoint into one
// continuous piece.
func concat(lines []geom.ThickPolyline) []geom.ThickPolyline {
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(lines); i++ {
			for j := i + 1; j < len(lines); j++ {
				merged, ok := tryConcat(lines[i], lines[j])
				if !ok {
					continue
				}
				lines[i] = merged
				lines = append(lines[:j], lines[j+1:]...)
				changed = true
				break
			}
			if changed {
				break
			}
		}
	}
	return lines
}

func tryConcat(a, b geom.ThickPolyline) (geom.ThickPolyline, bool) {
	if a.IsClosed() || b.IsClosed() {
		return geom.ThickPolyline{}, false
	}
	an, bn := len(a.Pts)-1, len(b.Pts)-1
	switch {
	case a.Endpoints[1] && b.Endpoints[0]:
		return joinPolylines(a, b), true
	case a.Endpoints[1] && b.Endpoints[1]:
		return joinPolylines(a, b.Reversed()), true
	case a.Endpoints[0] && b.Endpoints[1]:
		return joinPolylines(b, a), true
	case a.Endpoints[0] && b.Endpoints[0]:
		return joinPolylines(a.Reversed(), b), true
	}
	_, _ = an, bn
	return geom.ThickPolyline{}, false
}

func joinPolylines(a, b geom.ThickPolyline) geom.ThickPolyline {
	pts := append(append([]geom.Point{}, a.Pts...), b.Pts[1:]...)
	widths := append(append([]geom.Coord{}, a.Width...), b.Width[1:]...)
	return geom.ThickPolyline{Pts: pts, Width: widths, Endpoints: [2]bool{a.Endpoints[0], b.Endpoints[1]}}
}

// fusionCurve (stage 2): remove short Y-branches whose tip touches the
// contour at a shallow angle.
func fusionCurve(lines []geom.ThickPolyline, p Params) []geom.ThickPolyline {
	kc := newKappaCache(p.Bounds.Outer)
	const shallowThreshold = 0.3
	const shortBranchFactor = 1.5

	var out []geom.ThickPolyline
	for _, l := range lines {
		if l.IsClosed() || l.Length() > shortBranchFactor*float64(p.MaxWidth) {
			out = append(out, l)
			continue
		}
		tip := l.Pts[0]
		if !l.Endpoints[0] {
			tip = l.Pts[len(l.Pts)-1]
		}
		if kc.kappa(tip, float64(p.MinWidth)) < shallowThreshold {
			continue // drop shallow-angle short branch
		}
		out = append(out, l)
	}
	return out
}

// mainFusion (stage 3): the central merge operation. Among pairs of
// polylines sharing a free endpoint, greedily merge the straightest pair,
// subject to the conditions of spec §4.1.5 item 3, interpolating points
// along percent-length and averaging widths per the weighted formula.
func mainFusion(lines []geom.ThickPolyline, p Params, kc *kappaCache) []geom.ThickPolyline {
	changed := true
	for changed {
		changed = false
		bestI, bestJ, bestScore := -1, -1, -2.0
		for i := 0; i < len(lines); i++ {
			if lines[i].IsClosed() {
				continue
			}
			for j := i + 1; j < len(lines); j++ {
				if lines[j].IsClosed() {
					continue
				}
				score, ok := fusionCandidateScore(lines[i], lines[j], p)
				if !ok {
					continue
				}
				if score > bestScore {
					bestScore, bestI, bestJ = score, i, j
				}
			}
		}
		if bestI < 0 {
			break
		}
		merged, ok := mergePolylines(lines[bestI], lines[bestJ], p, kc)
		if !ok {
			break
		}
		lines[bestI] = merged
		lines = append(lines[:bestJ], lines[bestJ+1:]...)
		changed = true
	}
	return lines
}

// fusionCandidateScore returns a straightness dot-product score for
// merging a and b if they share a free endpoint (a), their lengths agree
// within a factor of 4 (b), and neither carries a width above
// 1.05*MaxWidth (d); ok is false otherwise. Whether a main branch exists
// at the shared point is not checked.
func fusionCandidateScore(a, b geom.ThickPolyline, p Params) (float64, bool) {
	sharedIdx := sharedFreeEndpoint(a, b)
	if sharedIdx < 0 {
		return 0, false
	}
	la, lb := a.Length(), b.Length()
	if la == 0 || lb == 0 {
		return 0, false
	}
	ratio := la / lb
	if ratio < 0.25 || ratio > 4 {
		return 0, false // (b) lengths agree within factor 4
	}
	dirA := tangentAt(a, sharedIdx == 0)
	dirB := tangentAt(b, sharedIdx == 1)
	score := -(dirA.X*dirB.X + dirA.Y*dirB.Y) // straightness: opposing tangents score high
	impliedWidth := math.Max(float64(maxWidthOf(a)), float64(maxWidthOf(b)))
	if impliedWidth > 1.05*float64(p.MaxWidth) {
		return 0, false // (d) merged width above cap
	}
	return score, true
}

type unitVec struct{ X, Y float64 }

func tangentAt(l geom.ThickPolyline, atStart bool) unitVec {
	var a, b geom.Point
	if atStart {
		a, b = l.Pts[1], l.Pts[0]
	} else {
		n := len(l.Pts)
		a, b = l.Pts[n-2], l.Pts[n-1]
	}
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	norm := math.Hypot(dx, dy)
	if norm == 0 {
		return unitVec{}
	}
	return unitVec{dx / norm, dy / norm}
}

func maxWidthOf(l geom.ThickPolyline) geom.Coord {
	m := geom.Coord(0)
	for _, w := range l.Width {
		if w > m {
			m = w
		}
	}
	return m
}

// sharedFreeEndpoint returns 0 if a's start touches a free endpoint of b,
// 1 if a's end does, or -1 if they share no free endpoint (or either is a
// T-junction at the shared point, condition (a)).
func sharedFreeEndpoint(a, b geom.ThickPolyline) int {
	if a.Endpoints[0] && endpointFreeAt(b, a.Pts[0]) {
		return 0
	}
	if a.Endpoints[1] && endpointFreeAt(b, a.Pts[len(a.Pts)-1]) {
		return 1
	}
	return -1
}

func endpointFreeAt(b geom.ThickPolyline, pt geom.Point) bool {
	return (b.Endpoints[0] && b.Pts[0] == pt) || (b.Endpoints[1] && b.Pts[len(b.Pts)-1] == pt)
}

// mergePolylines synchronously interpolates both polylines along
// percent-length and averages them with the kappa-weighted formula of spec
// §4.1.5 item 3.
func mergePolylines(a, b geom.ThickPolyline, p Params, kc *kappaCache) (geom.ThickPolyline, bool) {
	// Orient both so a's end meets b's start, tail to head.
	if sharedFreeEndpoint(a, b) == 0 {
		a = a.Reversed()
	}
	if b.Endpoints[0] && b.Pts[0] == a.Pts[len(a.Pts)-1] {
		// already tail-to-head
	} else {
		b = b.Reversed()
	}

	const n = 16 // sampling resolution along percent-length
	aSamples := resample(a, n)
	bSamples := resample(b, n)
	maxLen := math.Max(a.Length(), b.Length())
	if maxLen == 0 {
		return geom.ThickPolyline{}, false
	}

	pts := make([]geom.Point, n+1)
	widths := make([]geom.Coord, n+1)
	for i := 0; i <= n; i++ {
		kappaA := kc.kappa(aSamples[i].pt, float64(p.MinWidth))
		kappaB := kc.kappa(bSamples[i].pt, float64(p.MinWidth))
		wPoly := (2 - a.Length()/maxLen) * kappaA
		wCand := (2 - b.Length()/maxLen) * kappaB
		d := geom.Dist(aSamples[i].pt, bSamples[i].pt)

		mix := mixPoint(aSamples[i].pt, bSamples[i].pt, wPoly, wCand)
		width := 0.5*float64(aSamples[i].width)*wPoly + 0.5*float64(bSamples[i].width)*wCand + 2*d*math.Sqrt(geom.Min(wPoly, wCand)/math.Max(geom.Max(wPoly, wCand), 1e-9))
		width = math.Min(width, float64(p.MaxWidth))

		pts[i] = mix
		widths[i] = geom.Coord(width)
	}
	return geom.ThickPolyline{Pts: pts, Width: widths, Endpoints: [2]bool{a.Endpoints[0] == false, b.Endpoints[1]}}, true
}

type sample struct {
	pt    geom.Point
	width geom.Coord
}

func resample(l geom.ThickPolyline, n int) []sample {
	total := l.Length()
	out := make([]sample, n+1)
	if total == 0 {
		for i := range out {
			out[i] = sample{l.Pts[0], l.Width[0]}
		}
		return out
	}
	cum := make([]float64, len(l.Pts))
	for i := 1; i < len(l.Pts); i++ {
		cum[i] = cum[i-1] + geom.Dist(l.Pts[i-1], l.Pts[i])
	}
	for i := 0; i <= n; i++ {
		target := total * float64(i) / float64(n)
		out[i] = sampleAt(l, cum, target)
	}
	return out
}

func sampleAt(l geom.ThickPolyline, cum []float64, target float64) sample {
	for i := 1; i < len(cum); i++ {
		if target <= cum[i] || i == len(cum)-1 {
			segLen := cum[i] - cum[i-1]
			t := 0.0
			if segLen > 0 {
				t = (target - cum[i-1]) / segLen
			}
			a, b := l.Pts[i-1], l.Pts[i]
			pt := geom.Point{X: a.X + geom.Coord(float64(b.X-a.X)*t), Y: a.Y + geom.Coord(float64(b.Y-a.Y)*t)}
			wa, wb := l.Width[i-1], l.Width[i]
			w := geom.Coord(float64(wa) + (float64(wb)-float64(wa))*t)
			return sample{pt, w}
		}
	}
	return sample{l.Pts[len(l.Pts)-1], l.Width[len(l.Width)-1]}
}

func mixPoint(a, b geom.Point, wa, wb float64) geom.Point {
	total := wa + wb
	if total == 0 {
		total = 1
	}
	x := (float64(a.X)*wa + float64(b.X)*wb) / total
	y := (float64(a.Y)*wa + float64(b.Y)*wb) / total
	return geom.Point{X: geom.Coord(x), Y: geom.Coord(y)}
}

// fusionCorners (stage 4): merge tiny Y-pulls on convex external curves,
// translating the meeting point outward by at most ~14.4% of the branch
// length, scaled by the contour-angle coefficient. The commented-out
// symmetry mitigation from the original ("also pull points near this one")
// is intentionally not ported (spec §9 Open Questions: disabled here).
func fusionCorners(lines []geom.ThickPolyline, p Params, kc *kappaCache) []geom.ThickPolyline {
	const maxPullFraction = 0.144
	for i, l := range lines {
		if l.IsClosed() || l.Length() == 0 {
			continue
		}
		for _, endIsLast := range []bool{false, true} {
			idx := 0
			free := l.Endpoints[0]
			if endIsLast {
				idx = len(l.Pts) - 1
				free = l.Endpoints[1]
			}
			if !free {
				continue
			}
			tip := l.Pts[idx]
			k := kc.kappa(tip, float64(p.MinWidth))
			if k <= 0 {
				continue
			}
			pull := maxPullFraction * l.Length() * k
			dir := outwardNormal(l, idx, endIsLast)
			lines[i].Pts[idx] = geom.Point{
				X: tip.X + geom.Coord(dir.X*pull),
				Y: tip.Y + geom.Coord(dir.Y*pull),
			}
		}
	}
	return lines
}

func outwardNormal(l geom.ThickPolyline, idx int, atEnd bool) unitVec {
	t := tangentAt(l, !atEnd)
	return unitVec{t.X, t.Y}
}

// extendsLineBothEnds (stage 5): extend free endpoints along their local
// tangent until they meet bounds (or any anchor ExPoly).
func extendsLineBothEnds(lines []geom.ThickPolyline, p Params) []geom.ThickPolyline {
	var out []geom.ThickPolyline
	for _, l := range lines {
		if l.IsClosed() {
			out = append(out, l)
			continue
		}
		l2, ok := extendEnd(l, p, false)
		if !ok {
			continue
		}
		l2, ok = extendEnd(l2, p, true)
		if !ok {
			continue
		}
		out = append(out, l2)
	}
	return out
}

func extendEnd(l geom.ThickPolyline, p Params, atEnd bool) (geom.ThickPolyline, bool) {
	idx := 0
	free := l.Endpoints[0]
	if atEnd {
		idx = len(l.Pts) - 1
		free = l.Endpoints[1]
	}
	if !free {
		return l, true
	}
	tip := l.Pts[idx]
	if p.inAnchorRegion(tip) {
		return l, true // already anchored, extension policy per stop_at_min_width is a no-op here
	}
	dir := tangentAt(l, !atEnd)
	if dir.X == 0 && dir.Y == 0 {
		return l, true
	}
	const maxExtend = 1_000_000 // Coord units; generous bound before declaring a miss
	hit, ok := raycastToBounds(tip, dir, p, maxExtend)
	if !ok {
		return geom.ThickPolyline{}, false // ExtensionMiss: delete the polyline
	}
	if atEnd {
		l.Pts[idx] = hit
	} else {
		l.Pts[idx] = hit
	}
	return l, true
}

func raycastToBounds(from geom.Point, dir unitVec, p Params, maxDist float64) (geom.Point, bool) {
	const step = 64.0
	for d := step; d <= maxDist; d += step {
		pt := geom.Point{X: from.X + geom.Coord(dir.X*d), Y: from.Y + geom.Coord(dir.Y*d)}
		if p.inAnchorRegion(pt) {
			return pt, true
		}
	}
	return geom.Point{}, false
}

// removeTooThinExtrusion (stage 6): trim endpoints where width drops below
// minWidth.
func removeTooThinExtrusion(lines []geom.ThickPolyline, minWidth geom.Coord) []geom.ThickPolyline {
	var out []geom.ThickPolyline
	for _, l := range lines {
		start, end := 0, len(l.Pts)-1
		for start < end && l.Width[start] < minWidth {
			start++
		}
		for end > start && l.Width[end] < minWidth {
			end--
		}
		if end-start < 1 {
			continue
		}
		l.Pts = l.Pts[start : end+1]
		l.Width = l.Width[start : end+1]
		out = append(out, l)
	}
	return out
}

// removeTooThinPoints (stage 7): split polylines at interior points
// thinner than minWidth.
func removeTooThinPoints(lines []geom.ThickPolyline, minWidth geom.Coord) []geom.ThickPolyline {
	var out []geom.ThickPolyline
	for _, l := range lines {
		start := 0
		for i := 1; i < len(l.Pts)-1; i++ {
			if l.Width[i] < minWidth {
				if i-start >= 1 {
					out = append(out, sliceSegment(l, start, i, start == 0, false))
				}
				start = i + 1
			}
		}
		if start < len(l.Pts)-1 || start == 0 {
			out = append(out, sliceSegment(l, start, len(l.Pts)-1, start == 0 && l.Endpoints[0], l.Endpoints[1]))
		}
	}
	return out
}

func sliceSegment(l geom.ThickPolyline, from, to int, freeStart, freeEnd bool) geom.ThickPolyline {
	return geom.ThickPolyline{
		Pts:       append([]geom.Point{}, l.Pts[from:to+1]...),
		Width:     append([]geom.Coord{}, l.Width[from:to+1]...),
		Endpoints: [2]bool{freeStart, freeEnd},
	}
}

// concatenateWithCrossing (stage 8): a second merge pass accepting pairs
// meeting at junctions, choosing the straightest continuation.
func concatenateWithCrossing(lines []geom.ThickPolyline) []geom.ThickPolyline {
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(lines); i++ {
			if lines[i].IsClosed() {
				continue
			}
			for j := i + 1; j < len(lines); j++ {
				if lines[j].IsClosed() {
					continue
				}
				if merged, ok := tryConcat(lines[i], lines[j]); ok {
					lines[i] = merged
					lines = append(lines[:j], lines[j+1:]...)
					changed = true
					break
				}
			}
			if changed {
				break
			}
		}
	}
	return lines
}

// removeTooShortPolylines (stage 9): iteratively drop the shortest
// free-endpoint polyline below minSize.
func removeTooShortPolylines(lines []geom.ThickPolyline, minSize geom.Coord) []geom.ThickPolyline {
	for {
		shortestIdx := -1
		shortestLen := math.MaxFloat64
		for i, l := range lines {
			if l.IsClosed() {
				continue
			}
			if !l.Endpoints[0] && !l.Endpoints[1] {
				continue
			}
			length := l.Length()
			if length < float64(minSize) && length < shortestLen {
				shortestLen = length
				shortestIdx = i
			}
		}
		if shortestIdx < 0 {
			return lines
		}
		lines = append(lines[:shortestIdx], lines[shortestIdx+1:]...)
	}
}

// ensureNotOverextrude (stage 10): scale all widths uniformly so the
// planar volume does not exceed bounds' reference solid volume, accounting
// for the (1 - pi/4) corner allowance. Idempotent (spec §8.2).
func ensureNotOverextrude(lines []geom.ThickPolyline, bounds geom.ExPoly) []geom.ThickPolyline {
	const cornerAllowance = 1 - math.Pi/4
	planarVolume := 0.0
	for _, l := range lines {
		for i := 1; i < len(l.Pts); i++ {
			segLen := geom.Dist(l.Pts[i-1], l.Pts[i])
			avgWidth := (float64(l.Width[i-1]) + float64(l.Width[i])) / 2
			planarVolume += segLen*avgWidth + cornerAllowance*avgWidth*avgWidth
		}
	}
	refVolume := math.Abs(bounds.Area())
	if planarVolume <= refVolume || planarVolume == 0 {
		return lines
	}
	scale := refVolume / planarVolume
	for i := range lines {
		for j := range lines[i].Width {
			lines[i].Width[j] = geom.Coord(float64(lines[i].Width[j]) * scale)
		}
	}
	return lines
}

// growToNozzleDiameter (stage 11): grow width to the nozzle diameter for
// points not lying within any anchor region.
func growToNozzleDiameter(lines []geom.ThickPolyline, p Params) []geom.ThickPolyline {
	for i, l := range lines {
		for j, pt := range l.Pts {
			if p.inAnchorRegion(pt) {
				continue
			}
			if lines[i].Width[j] < p.NozzleDiameter {
				lines[i].Width[j] = p.NozzleDiameter
			}
		}
	}
	return lines
}

// taperEnds (stage 12): linearly reduce width from minSize over taperSize.
func taperEnds(lines []geom.ThickPolyline, p Params) []geom.ThickPolyline {
	if p.TaperSize <= 0 {
		return lines
	}
	minSize := math.Max(0.1*float64(p.NozzleDiameter), float64(p.Height)*(1-math.Pi/4))
	for i, l := range lines {
		if l.IsClosed() {
			continue
		}
		applyTaper(lines[i].Pts, lines[i].Width, minSize, p.TaperSize, l.Endpoints[0], false)
		applyTaper(lines[i].Pts, lines[i].Width, minSize, p.TaperSize, l.Endpoints[1], true)
	}
	return lines
}

func applyTaper(pts []geom.Point, widths []geom.Coord, minSize float64, taperSize geom.Coord, free bool, atEnd bool) {
	if !free {
		return
	}
	n := len(pts)
	cum := 0.0
	if atEnd {
		for i := n - 1; i > 0 && cum < float64(taperSize); i-- {
			seg := geom.Dist(pts[i], pts[i-1])
			t := cum / float64(taperSize)
			target := geom.Coord(minSize + (float64(widths[i])-minSize)*t)
			if target < widths[i] {
				widths[i] = target
			}
			cum += seg
		}
		return
	}
	for i := 0; i < n-1 && cum < float64(taperSize); i++ {
		seg := geom.Dist(pts[i], pts[i+1])
		t := cum / float64(taperSize)
		target := geom.Coord(minSize + (float64(widths[i])-minSize)*t)
		if target < widths[i] {
			widths[i] = target
		}
		cum += seg
	}
}

// removeBits (stage 13): remove tiny stubs at multi-branch joints when two
// longer neighbours exist. Since concat (stages 1, 8) has already merged
// continuous runs, a "stub" here is a very short free-ended polyline whose
// endpoint coincides with the interior of a much longer one -- a residue
// of the junction splitting done in removeTooThinPoints. Compare to
// pp[crosspoint[0]] per the original: spec §9 flags that the original
// appears to compare the same element twice where pp[crosspoint[1]] was
// likely intended; this port compares against both stub endpoints rather
// than replicate the apparent typo.
func removeBits(lines []geom.ThickPolyline) []geom.ThickPolyline {
	const stubFactor = 0.5
	var out []geom.ThickPolyline
	for _, l := range lines {
		if l.IsClosed() || l.Length() == 0 {
			out = append(out, l)
			continue
		}
		isStub := false
		if !l.Endpoints[0] || !l.Endpoints[1] {
			longerNeighbours := 0
			for _, other := range lines {
				if &other == &l || other.Length() <= l.Length() {
					continue
				}
				if endpointFreeAt(other, l.Pts[0]) || endpointFreeAt(other, l.Pts[len(l.Pts)-1]) ||
					pointNearPolyline(l.Pts[0], other) || pointNearPolyline(l.Pts[len(l.Pts)-1], other) {
					longerNeighbours++
				}
			}
			isStub = longerNeighbours >= 2 && l.Length() < stubFactor*maxWidthAcross(lines)
		}
		if !isStub {
			out = append(out, l)
		}
	}
	return out
}

func pointNearPolyline(p geom.Point, l geom.ThickPolyline) bool {
	for i := 1; i < len(l.Pts); i++ {
		_, d := closestPointOnSegment(p, l.Pts[i-1], l.Pts[i])
		if d <= float64(geom.EpsS) {
			return true
		}
	}
	return false
}

func maxWidthAcross(lines []geom.ThickPolyline) geom.Coord {
	m := geom.Coord(0)
	for _, l := range lines {
		if w := maxWidthOf(l); w > m {
			m = w
		}
	}
	return m
}
