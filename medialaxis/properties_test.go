package medialaxis

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slic3r/slicer-core/geom"
)

func rect(x0, y0, x1, y1 geom.Coord) geom.Polygon {
	return geom.Polygon{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}
}

func thinRectangleParams() Params {
	outer := rect(0, 0, 20*geom.Scale, 2*geom.Scale) // 20mm x 2mm sliver
	surf := geom.ExPoly{Outer: outer}
	return Params{
		Surface:        surf,
		Bounds:         surf,
		MinWidth:       geom.MMToCoord(0.1),
		MaxWidth:       geom.MMToCoord(3),
		NozzleDiameter: geom.MMToCoord(0.4),
		Height:         geom.MMToCoord(0.2),
		TaperSize:      geom.MMToCoord(1),
	}
}

// Property 1: width bounds -- no emitted width exceeds 1.05*MaxWidth once
// growToNozzleDiameter/ensureNotOverextrude have run (spec §8.1 property 1).
func TestProperty1_WidthBounds(t *testing.T) {
	p := thinRectangleParams()
	lines, err := Run(context.Background(), p)
	require.NoError(t, err)
	for _, l := range lines {
		for _, w := range l.Width {
			assert.LessOrEqual(t, w, geom.Coord(float64(p.MaxWidth)*1.05))
		}
	}
}

// Property 4: reversing a polyline preserves its point multiset, length,
// and closedness (spec §8.1 property 4).
func TestProperty4_ReversalInvariance(t *testing.T) {
	l := geom.ThickPolyline{
		Pts:       []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
		Width:     []geom.Coord{1, 2, 3},
		Endpoints: [2]bool{true, true},
	}
	r := l.Reversed()
	assert.Equal(t, l.Length(), r.Length())
	assert.Equal(t, l.Pts[0], r.Pts[len(r.Pts)-1])
	assert.Equal(t, l.Endpoints[0], r.Endpoints[1])
	assert.Equal(t, l.Endpoints[1], r.Endpoints[0])
	assert.False(t, l.IsClosed())
}

// Property: a region whose simplified area is below MinWidth^2 is skipped
// with no error and no output polylines (spec §4.1 failure semantics).
func TestRun_SkipsTinyRegion(t *testing.T) {
	tiny := rect(0, 0, 10, 10) // far smaller than any reasonable MinWidth^2
	p := thinRectangleParams()
	p.Surface = geom.ExPoly{Outer: tiny}
	p.Bounds = p.Surface
	lines, err := Run(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

// Circular fast path: a regular octagon close to circular should take the
// single-closed-polyline fast path rather than the full Voronoi walk.
func TestCircularFastPath_Octagon(t *testing.T) {
	const r = 5 * geom.Scale
	var outer geom.Polygon
	for i := 0; i < 8; i++ {
		angle := float64(i) / 8 * 2 * 3.14159265358979
		outer = append(outer, geom.Point{
			X: geom.Coord(r * cosApprox(angle)),
			Y: geom.Coord(r * sinApprox(angle)),
		})
	}
	surf := geom.ExPoly{Outer: outer}
	_, ok := circularFastPath(surf, geom.MMToCoord(1))
	assert.True(t, ok)
}

func cosApprox(x float64) float64 {
	// exact cosine, so every fixture vertex lies on the circle of radius r
	return math.Cos(x)
}

func sinApprox(x float64) float64 {
	return math.Sin(x)
}
