// Package infill implements IRC (spec §4.3): top/bottom detection,
// vertical-shell enforcement, bridge-over-infill promotion, dense-region
// tagging, and layer XY compensation, grounded on
// original_source/xs/src/libslic3r/Surface.{cpp,hpp} and
// original_source/xs/src/libslic3r/SurfaceCollection.{cpp,hpp}.
package infill

import "github.com/slic3r/slicer-core/geom"

// Position is the Top|Bottom|Internal axis of SurfaceTag (spec §3).
type Position int

const (
	PositionInternal Position = iota
	PositionTop
	PositionBottom
)

// Density is the Solid|Sparse|Void axis of SurfaceTag.
type Density int

const (
	DensitySparse Density = iota
	DensitySolid
	DensityVoid
)

// Modifier is the None|Bridge|OverBridge axis of SurfaceTag.
type Modifier int

const (
	ModNone Modifier = iota
	ModBridge
	ModOverBridge
)

// Tag is the bitfield-equivalent SurfaceTag of spec §3, split into three
// small enums rather than a packed bitfield -- idiomatic Go favours
// explicit fields over manual bit packing here, with no loss of the
// "valid combinations only" invariant since each axis is independently typed.
type Tag struct {
	Position Position
	Density  Density
	Modifier Modifier
}

// Surface is PG's output / IRC's working unit (spec §3). Region is the
// unfilled interior (infill boundary).
type Surface struct {
	Region         geom.ExPoly
	Tag            Tag
	Thickness      geom.Coord
	ExtraPerimeters int
	BridgeAngle    float64
	HasBridgeAngle bool
	MaxSolidAbove  int
	Priority       int
}

// Surfaces is an ordered collection of Surface, the supplemented
// SurfaceCollection-style grouping helper (spec SPEC_FULL.md's supplemented
// feature, grounded on original_source SurfaceCollection.{cpp,hpp}).
type Surfaces []Surface

// ByTag returns the subset of surfaces matching tag exactly.
func (s Surfaces) ByTag(tag Tag) Surfaces {
	var out Surfaces
	for _, sf := range s {
		if sf.Tag == tag {
			out = append(out, sf)
		}
	}
	return out
}

// ByPosition returns the subset of surfaces whose Position matches pos.
func (s Surfaces) ByPosition(pos Position) Surfaces {
	var out Surfaces
	for _, sf := range s {
		if sf.Tag.Position == pos {
			out = append(out, sf)
		}
	}
	return out
}

// Group partitions surfaces into buckets keyed by their full Tag,
// mirroring SurfaceCollection::group's role of collecting same-tag
// surfaces for a single fill pass.
func (s Surfaces) Group() map[Tag]Surfaces {
	groups := make(map[Tag]Surfaces)
	for _, sf := range s {
		groups[sf.Tag] = append(groups[sf.Tag], sf)
	}
	return groups
}

// Append adds surfaces to the collection, mirroring
// SurfaceCollection::append's role as the sole mutation point used by
// every IRC stage below.
func (s *Surfaces) Append(more ...Surface) {
	*s = append(*s, more...)
}

// Regions returns the ExPolys of every surface, the unit CLIP boolean ops
// consume.
func (s Surfaces) Regions() geom.ExPolys {
	out := make(geom.ExPolys, len(s))
	for i, sf := range s {
		out[i] = sf.Region
	}
	return out
}

// LayerView is an immutable per-layer snapshot IRC routines read instead
// of holding back-pointers into a mutable layer/object graph (spec §9
// DESIGN NOTES "Shared mutable state with back-pointers").
type LayerView struct {
	PrintZ geom.Coord
	Slices geom.ExPolys
	Height geom.Coord
}

// RegionInput groups one region's per-layer IRC inputs.
type RegionInput struct {
	Layers []LayerView

	UpperSlices []geom.ExPolys // per layer, slices of the layer above (nil if none)
	LowerSlices []geom.ExPolys // per layer, slices of the layer below (nil if none)

	ExtPerimWidth geom.Coord

	TopSolidLayers    int
	BottomSolidLayers int
	TopSolidMinThickness    geom.Coord
	BottomSolidMinThickness geom.Coord

	EnsureVerticalShellThickness bool
	MinInfillSpacing             geom.Coord

	BridgeHeight geom.Coord

	InfillDense       bool
	InfillDensityPct  float64
	DenseAlgorithm    DenseAlgorithm
	InfillWidth       geom.Coord
	ExternalInfillMargin geom.Coord
}

// DenseAlgorithm selects the dense-region enlargement policy of spec
// §4.3.4.
type DenseAlgorithm int

const (
	DenseAutomatic DenseAlgorithm = iota
	DenseAutoNotFull
	DenseEnlarged
	DenseAutoOrEnlarged
)
