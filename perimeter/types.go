// Package perimeter implements PG (spec §4.2): onion-shell loop generation,
// loop nesting into a forest, overhang classification, gap filtering, and
// extra-perimeter induction, grounded on
// original_source/src/libslic3r/PerimeterGenerator.cpp.
package perimeter

import (
	"github.com/slic3r/slicer-core/geom"
)

// Role is the extrusion role assigned to a generated loop or path (spec §6.2).
type Role int

const (
	RolePerimeter Role = iota
	RoleExternalPerimeter
	RoleOverhangPerimeter
)

func (r Role) String() string {
	switch r {
	case RoleExternalPerimeter:
		return "ExternalPerimeter"
	case RoleOverhangPerimeter:
		return "OverhangPerimeter"
	default:
		return "Perimeter"
	}
}

// Loop is one onion-shell ring (spec §3's Loop entity). Children are nested
// per §4.2.2; Polygon is CCW for a contour, CW for a hole.
type Loop struct {
	Polygon     geom.Polygon
	Depth       int
	IsContour   bool
	HasOverhang bool
	Role        Role
	Children    []*Loop
}

// Flow describes the extrusion geometry for one role (spec §6.1 Flow oracle).
type Flow struct {
	Width, Spacing, Nozzle, Height geom.Coord
}

// Input groups one island's PG parameters (spec §4.2 Inputs).
type Input struct {
	Island geom.ExPoly

	Perimeters int

	ExtSpacing, Spacing geom.Coord
	ExtWidth            geom.Coord
	ExtMinSpacing       geom.Coord
	MinInfillSpacing    geom.Coord
	Overlap             geom.Coord // infill_overlap, applied to infill_seed

	DetectThinWalls  bool
	GapFill          bool
	ExtraPerimeters  bool
	Overhangs        bool

	LowerSlices geom.ExPolys
	UpperSlices geom.ExPolys

	NozzleDiameter geom.Coord
	LayerHeight    geom.Coord
}

// Output groups one island's PG results (spec §4.2 Output).
type Output struct {
	Contours    []*Loop
	ThinWalls   []geom.ThickPolyline
	GapFill     []geom.ThickPolyline
	InfillSeed  geom.ExPolys
}
