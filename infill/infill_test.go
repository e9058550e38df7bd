package infill

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slic3r/slicer-core/geom"
)

func TestDetectSurfaceTypes_NoUpperNoLower(t *testing.T) {
	layer := LayerView{Slices: geom.ExPolys{squareExPoly(10 * geom.Scale)}, Height: geom.MMToCoord(0.2)}
	sfs, err := DetectSurfaceTypes(layer, nil, nil, geom.MMToCoord(0.45), false)
	require.NoError(t, err)
	require.NotEmpty(t, sfs)

	top := sfs.ByPosition(PositionTop)
	bottom := sfs.ByPosition(PositionBottom)
	assert.NotEmpty(t, top)
	// with neither neighbour the whole slice is both top and bottom, and
	// the overlap goes to Top
	assert.Empty(t, bottom)
	for _, sf := range bottom {
		assert.Equal(t, ModBridge, sf.Tag.Modifier)
	}
}

func TestRun_TopBottomPipeline(t *testing.T) {
	slices := []geom.ExPolys{{squareExPoly(10 * geom.Scale)}, {squareExPoly(10 * geom.Scale)}}
	layers := []LayerView{
		{Slices: slices[0], Height: geom.MMToCoord(0.2)},
		{Slices: slices[1], Height: geom.MMToCoord(0.2)},
	}
	in := RegionInput{
		ExtPerimWidth:    geom.MMToCoord(0.45),
		MinInfillSpacing: geom.MMToCoord(0.45),
		InfillWidth:      geom.MMToCoord(0.45),
		BridgeHeight:     geom.MMToCoord(0.2),
	}
	result, err := Run(context.Background(), slices, []geom.ExPolys{nil, nil}, []geom.ExPolys{nil, nil}, layers, in, nil)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.NotEmpty(t, result[0])
}
