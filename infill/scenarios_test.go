package infill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slic3r/slicer-core/geom"
)

// fixedAngleDetector is a collab.BridgeDetector test fake that reports the
// entire unsupported region as bridged at a fixed angle.
type fixedAngleDetector struct {
	angle float64
}

func (d fixedAngleDetector) DetectAngle(unsupported, lowerIsland geom.ExPolys, spacing geom.Coord, preferred float64) (float64, geom.ExPolys, bool) {
	return d.angle, unsupported, true
}

// S5. Top-of-dome detection: the topmost of three layers has no upper
// slices, so its whole internal area is tagged Top|Solid by
// DetectSurfaceTypes; the two layers below it should then pick up
// Internal|Solid coverage once EnforceVerticalShellThickness projects that
// Top window downward (spec §8.3 scenario S5).
func TestS5_TopOfDomeDetection(t *testing.T) {
	side := 10 * geom.Scale
	height := geom.MMToCoord(0.2)

	topLayer := LayerView{Slices: geom.ExPolys{squareExPoly(side)}, Height: height}
	topSurfaces, err := DetectSurfaceTypes(topLayer, nil, nil, geom.MMToCoord(0.45), false)
	require.NoError(t, err)
	top := topSurfaces.ByPosition(PositionTop)
	require.NotEmpty(t, top, "topmost layer should be entirely Top-tagged with no upper slice")

	internalTag := Tag{Position: PositionInternal, Density: DensitySparse}
	allLayers := []Surfaces{
		{{Region: squareExPoly(side), Tag: internalTag}},
		{{Region: squareExPoly(side), Tag: internalTag}},
		topSurfaces,
	}
	layers := []LayerView{
		{Slices: geom.ExPolys{squareExPoly(side)}, Height: height},
		{Slices: geom.ExPolys{squareExPoly(side)}, Height: height},
		topLayer,
	}
	in := RegionInput{
		Layers:                       layers,
		TopSolidLayers:               2,
		MinInfillSpacing:             geom.MMToCoord(0.45),
		EnsureVerticalShellThickness: true,
	}

	below1, err := EnforceVerticalShellThickness(allLayers, 1, in)
	require.NoError(t, err)
	assert.NotEmpty(t, below1.ByTag(Tag{Position: PositionInternal, Density: DensitySolid}),
		"layer directly under the dome top should gain Internal|Solid shell")

	allLayers[1] = below1
	below0, err := EnforceVerticalShellThickness(allLayers, 0, in)
	require.NoError(t, err)
	assert.NotEmpty(t, below0.ByTag(Tag{Position: PositionInternal, Density: DensitySolid}),
		"second layer under the dome top should also gain Internal|Solid shell")
}

// S6. A flat slab at z=2 over four posts at z=1 leaves a central sparse
// pocket; the slab's Internal|Solid surface above that pocket should be
// promoted to Internal|Solid|Bridge with the reported bridge angle attached
// (spec §8.3 scenario S6).
func TestS6_BridgeOverSparse(t *testing.T) {
	side := 20 * geom.Scale
	solidTag := Tag{Position: PositionInternal, Density: DensitySolid}
	sparseTag := Tag{Position: PositionInternal, Density: DensitySparse}

	postsLayer := Surfaces{{Region: squareExPoly(side), Tag: sparseTag}}
	slabLayer := Surfaces{{Region: squareExPoly(side), Tag: solidTag}}

	allLayers := []Surfaces{postsLayer, slabLayer}
	layers := []LayerView{
		{Slices: geom.ExPolys{squareExPoly(side)}, Height: geom.MMToCoord(0.2)},
		{Slices: geom.ExPolys{squareExPoly(side)}, Height: geom.MMToCoord(0.2)},
	}

	const bridgeAngle = 45.0
	detector := fixedAngleDetector{angle: bridgeAngle}
	promoted, err := PromoteBridgeOverInfill(allLayers, 1, layers, geom.MMToCoord(0.45), geom.MMToCoord(0.2), detector)
	require.NoError(t, err)

	bridges := promoted.ByTag(Tag{Position: PositionInternal, Density: DensitySolid, Modifier: ModBridge})
	require.NotEmpty(t, bridges, "slab surface above the sparse pocket should be promoted to a bridge")
	for _, sf := range bridges {
		require.True(t, sf.HasBridgeAngle)
		assert.Equal(t, bridgeAngle, sf.BridgeAngle)
	}
}
