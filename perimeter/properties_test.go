package perimeter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slic3r/slicer-core/geom"
)

func square(side geom.Coord) geom.Polygon {
	return geom.Polygon{{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side}}
}

// Property 5/6: loop nesting forms a tree and inner loops are contained in
// their parents (spec §8.1 properties 5, 6).
func TestNesting_IsATree(t *testing.T) {
	outer := &Loop{Polygon: square(100 * geom.Scale), Depth: 0, IsContour: true}
	hole := &Loop{Polygon: geom.Polygon{
		{X: 25 * geom.Scale, Y: 25 * geom.Scale},
		{X: 25 * geom.Scale, Y: 75 * geom.Scale},
		{X: 75 * geom.Scale, Y: 75 * geom.Scale},
		{X: 75 * geom.Scale, Y: 25 * geom.Scale},
	}, Depth: 1, IsContour: false}
	roots := nestLoops([][]*Loop{{outer}, {hole}})
	require.Len(t, roots, 1)
	assert.Len(t, roots[0].Children, 1)
	assert.Same(t, hole, roots[0].Children[0])
}
