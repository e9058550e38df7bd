package infill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slic3r/slicer-core/geom"
)

func squareExPoly(side geom.Coord) geom.ExPoly {
	return geom.ExPoly{Outer: geom.Polygon{
		{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side},
	}}
}

// Property 8 (tag coverage, approximate): the union of all surfaces tagged
// for a layer should account for the entire input slice.
func TestTagCoverage(t *testing.T) {
	layer := LayerView{Slices: geom.ExPolys{squareExPoly(10 * geom.Scale)}, Height: geom.MMToCoord(0.2)}
	sfs, err := DetectSurfaceTypes(layer, nil, nil, geom.MMToCoord(0.45), false)
	require.NoError(t, err)
	covered, err := geom.Union(sfs.Regions(), geom.ExPolys{})
	require.NoError(t, err)
	total := 0.0
	for _, e := range covered {
		total += e.Area()
	}
	assert.InDelta(t, layer.Slices[0].Area(), total, float64(geom.EpsS)*1e6)
}
