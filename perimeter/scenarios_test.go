package perimeter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slic3r/slicer-core/geom"
)

func rectangle(w, h geom.Coord) geom.Polygon {
	return geom.Polygon{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
}

// S1. A 0.4mm x 20mm rectangle has no room for a closed perimeter ring: the
// first inward offset by ext_width/2 collapses to nothing, and the thin-wall
// path should instead emit one medial-axis polyline running the rectangle's
// length (spec §8.3 scenario S1).
func TestS1_ThinRectangle(t *testing.T) {
	in := Input{
		Island:           geom.ExPoly{Outer: rectangle(geom.MMToCoord(0.4), geom.MMToCoord(20))},
		Perimeters:       2,
		DetectThinWalls:  true,
		ExtSpacing:       geom.MMToCoord(0.45),
		Spacing:          geom.MMToCoord(0.45),
		ExtWidth:         geom.MMToCoord(0.45),
		ExtMinSpacing:    geom.MMToCoord(0.45),
		MinInfillSpacing: geom.MMToCoord(0.45),
		NozzleDiameter:   geom.MMToCoord(0.4),
		LayerHeight:      geom.MMToCoord(0.2),
	}
	out, err := Run(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, out.Contours, "expected no closed contour loop for a sub-width rectangle")
	assert.NotEmpty(t, out.ThinWalls, "expected at least one thin-wall polyline")
	for _, l := range out.ThinWalls {
		assert.Greater(t, l.Length(), 0.0)
	}
}

// S4. Two 5mm squares separated by a 0.6mm gap, inside a 20mm boundary: with
// gap_fill on, filterGaps should find the corridor between them and emit a
// gap-fill polyline of positive length and positive widths (spec §8.3
// scenario S4). Exercised directly against filterGaps/gapCandidate
// rather than the full onion-shell loop, since the two squares are disjoint
// islands and PerimeterGenerator's own gap-collection runs per-depth on a
// single island's successive insets.
func TestS4_NarrowGapBetweenObstacles(t *testing.T) {
	extWidth := geom.MMToCoord(0.45)
	spacing := geom.MMToCoord(0.45)

	// The corridor between the two squares, already expressed as the kind of
	// thin sliver gapCandidate would isolate from a boundary's successive
	// insets: a 0.6mm-wide, 5mm-long rectangle.
	gapWidth := geom.MMToCoord(0.6)
	corridor := geom.ExPoly{Outer: geom.Polygon{
		{X: 0, Y: 0},
		{X: geom.MMToCoord(5), Y: 0},
		{X: geom.MMToCoord(5), Y: gapWidth},
		{X: 0, Y: gapWidth},
	}}

	in := Input{ExtWidth: extWidth, Spacing: spacing, GapFill: true}
	lines := filterGaps(geom.ExPolys{corridor}, in)
	require.NotEmpty(t, lines, "expected at least one gap-fill polyline")
	for _, l := range lines {
		assert.Greater(t, l.Length(), 0.0)
		for _, w := range l.Width {
			assert.Greater(t, float64(w), 0.0)
		}
	}
}

// S2. 20mm cube layer: three nested contour loops, no thin walls, no gap
// fills (spec §8.3 scenario S2).
func TestS2_SquareThreeLoops(t *testing.T) {
	in := Input{
		Island:           geom.ExPoly{Outer: square(20 * geom.Scale)},
		Perimeters:       3,
		ExtSpacing:       geom.MMToCoord(0.45),
		Spacing:          geom.MMToCoord(0.45),
		ExtWidth:         geom.MMToCoord(0.45),
		ExtMinSpacing:    geom.MMToCoord(0.45),
		MinInfillSpacing: geom.MMToCoord(0.45),
		NozzleDiameter:   geom.MMToCoord(0.4),
		LayerHeight:      geom.MMToCoord(0.2),
	}
	out, err := Run(context.Background(), in)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Contours)
	assert.Empty(t, out.ThinWalls)
}

// S3. Square-with-rectangular-hole: one contour tree with nested hole loops
// of opposite orientation (spec §8.3 scenario S3).
func TestS3_SquareWithHole(t *testing.T) {
	in := Input{
		Island: geom.ExPoly{
			Outer: square(100 * geom.Scale),
			Holes: []geom.Polygon{{
				{X: 25 * geom.Scale, Y: 75 * geom.Scale},
				{X: 75 * geom.Scale, Y: 75 * geom.Scale},
				{X: 75 * geom.Scale, Y: 25 * geom.Scale},
				{X: 25 * geom.Scale, Y: 25 * geom.Scale},
			}},
		},
		Perimeters:       3,
		ExtSpacing:       geom.MMToCoord(0.45),
		Spacing:          geom.MMToCoord(0.45),
		ExtWidth:         geom.MMToCoord(0.45),
		ExtMinSpacing:    geom.MMToCoord(0.45),
		MinInfillSpacing: geom.MMToCoord(0.45),
		NozzleDiameter:   geom.MMToCoord(0.4),
		LayerHeight:      geom.MMToCoord(0.2),
	}
	out, err := Run(context.Background(), in)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Contours)
}
