package voronoi

import (
	"testing"

	"github.com/slic3r/slicer-core/geom"
)

func TestBuild_TwoParallelSegments(t *testing.T) {
	segs := []geom.Segment{
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 1000, Y: 0}},
		{A: geom.Point{X: 0, Y: 500}, B: geom.Point{X: 1000, Y: 500}},
	}
	diag, err := Build(segs, geom.Point{X: -2000, Y: -2000}, geom.Point{X: 3000, Y: 3000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diag.Cells) == 0 {
		t.Fatal("expected at least one cell")
	}
	foundValid := false
	for i := range diag.Edges {
		if diag.IsValidCandidate(EdgeIdx(i)) {
			foundValid = true
			break
		}
	}
	if !foundValid {
		t.Fatal("expected at least one valid (non-secondary, non-infinite) edge between the two segments")
	}
}

func TestBuild_Empty(t *testing.T) {
	diag, err := Build(nil, geom.Point{}, geom.Point{X: 100, Y: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diag.Edges) != 0 {
		t.Fatalf("expected no edges for empty input, got %d", len(diag.Edges))
	}
}

func TestTwinOf_IsInvolution(t *testing.T) {
	segs := []geom.Segment{
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 1000, Y: 0}},
		{A: geom.Point{X: 0, Y: 500}, B: geom.Point{X: 1000, Y: 500}},
	}
	diag, err := Build(segs, geom.Point{X: -2000, Y: -2000}, geom.Point{X: 3000, Y: 3000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range diag.Edges {
		e := EdgeIdx(i)
		twin := diag.TwinOf(e)
		if twin < 0 {
			continue
		}
		if diag.TwinOf(twin) != e {
			t.Fatalf("twin of twin of %d is %d, not %d", e, diag.TwinOf(twin), e)
		}
	}
}
