// Package collab holds the collaborator interfaces the core consumes
// without owning (spec §6.1): the slicer, the flow oracle, and the bridge
// detector. The core treats every implementation as opaque; test fakes
// live alongside the packages that consume them.
package collab

import "github.com/slic3r/slicer-core/geom"

// Role names a flow role (spec §6.1 Flow oracle).
type Role int

const (
	RoleExternalPerimeter Role = iota
	RolePerimeter
	RoleInfill
	RoleSolidInfill
	RoleTopInfill
	RoleSupportMaterial
)

// FlowSpec is the geometry one role's flow implies.
type FlowSpec struct {
	Width, Spacing, Nozzle, Height geom.Coord
}

// FlowOracle answers flow(role) and new_from_spacing (spec §6.1).
type FlowOracle interface {
	Flow(role Role) FlowSpec
	NewFromSpacing(spacing, nozzle, height geom.Coord, bridge bool) FlowSpec
}

// Slicer produces region/modifier cross-sections (spec §6.1).
type Slicer interface {
	SliceRegion(regionID int, zList []geom.Coord, mode int) ([]geom.ExPolys, error)
	SliceModifiers(regionID int, zList []geom.Coord, mode int) ([]geom.ExPolys, error)
}

// BridgeDetector answers detect_angle (spec §6.1).
type BridgeDetector interface {
	DetectAngle(unsupported, lowerIsland geom.ExPolys, spacing geom.Coord, preferred float64) (angle float64, coverage geom.ExPolys, ok bool)
}
