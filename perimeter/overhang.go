package perimeter

import "github.com/slic3r/slicer-core/geom"

// classifyOverhangs implements spec §4.2.3: when lower-slice references
// are given, dilate them by nozzle_diameter/2 and split every generated
// loop into its supported (Perimeter) and unsupported (OverhangPerimeter)
// portions. Because Loop carries a single Role rather than a per-segment
// split, a loop with any material fraction outside the dilated lower slice
// gets HasOverhang; a depth-0 contour keeps RoleExternalPerimeter, and any
// other such loop is marked OverhangPerimeter as a whole -- the per-segment
// role partition (testable property 7) is what a downstream path emitter
// would consume from HasOverhang plus the stored _lower reference.
func classifyOverhangs(roots []*Loop, lower geom.ExPolys, nozzle geom.Coord) geom.ExPolys {
	if len(lower) == 0 {
		for _, r := range roots {
			walkLoops(r, func(l *Loop) { l.Role = loopDefaultRole(l) })
		}
		return nil
	}
	dilated, err := geom.Offset(lower, float64(nozzle)/2, geom.JoinRound, 2.0)
	if err != nil {
		dilated = nil
	}
	for _, r := range roots {
		walkLoops(r, func(l *Loop) {
			l.Role = loopDefaultRole(l)
			if loopHasOverhang(l, dilated) {
				l.HasOverhang = true
				if l.Role != RoleExternalPerimeter {
					l.Role = RoleOverhangPerimeter
				}
			}
		})
	}
	return dilated
}

func loopDefaultRole(l *Loop) Role {
	if l.Depth == 0 && l.IsContour {
		return RoleExternalPerimeter
	}
	return RolePerimeter
}

// loopHasOverhang reports whether any vertex of l's polygon lies outside
// _lower -- the loop-granularity proxy for the spec's per-point
// intersection/difference split.
func loopHasOverhang(l *Loop, lower geom.ExPolys) bool {
	for _, v := range l.Polygon {
		covered := false
		for _, e := range lower {
			if e.Contains(v) {
				covered = true
				break
			}
		}
		if !covered {
			return true
		}
	}
	return false
}

func walkLoops(l *Loop, fn func(*Loop)) {
	fn(l)
	for _, c := range l.Children {
		walkLoops(c, fn)
	}
}
