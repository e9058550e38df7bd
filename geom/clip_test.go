package geom

import "testing"

func squareExPoly(side Coord) ExPoly {
	return ExPoly{Outer: Polygon{{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side}}}
}

func TestOffset_InsetShrinksArea(t *testing.T) {
	sq := squareExPoly(1000)
	inset, err := Offset(ExPolys{sq}, -100, JoinMiter, 2.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inset) != 1 {
		t.Fatalf("expected 1 result, got %d", len(inset))
	}
	if a := inset[0].Area(); a >= sq.Area() {
		t.Fatalf("expected inset area smaller than %v, got %v", sq.Area(), a)
	}
}

func TestUnionIntersectionDifference(t *testing.T) {
	a := squareExPoly(1000)
	b := ExPoly{Outer: Polygon{{X: 500, Y: 0}, {X: 1500, Y: 0}, {X: 1500, Y: 1000}, {X: 500, Y: 1000}}}

	union, err := Union(ExPolys{a}, ExPolys{b})
	if err != nil {
		t.Fatalf("union error: %v", err)
	}
	if len(union) != 1 {
		t.Fatalf("expected single unioned region, got %d", len(union))
	}

	inter, err := Intersection(ExPolys{a}, ExPolys{b})
	if err != nil {
		t.Fatalf("intersection error: %v", err)
	}
	if len(inter) != 1 {
		t.Fatalf("expected single intersection region, got %d", len(inter))
	}

	diff, err := Difference(ExPolys{a}, ExPolys{b})
	if err != nil {
		t.Fatalf("difference error: %v", err)
	}
	if len(diff) != 1 {
		t.Fatalf("expected single difference region, got %d", len(diff))
	}
}

func TestContains(t *testing.T) {
	ex := squareExPoly(1000)
	if !ex.Contains(Point{X: 500, Y: 500}) {
		t.Fatal("expected center to be contained")
	}
	if ex.Contains(Point{X: 2000, Y: 2000}) {
		t.Fatal("expected far point not contained")
	}
}

func TestBoundsAndCentroid(t *testing.T) {
	sq := squareExPoly(1000).Outer
	min, max := Bounds(sq)
	if min != (Point{X: 0, Y: 0}) || max != (Point{X: 1000, Y: 1000}) {
		t.Fatalf("unexpected bounds: %v %v", min, max)
	}
	c := Centroid(sq)
	if c.X != 500 || c.Y != 500 {
		t.Fatalf("expected centroid (500,500), got %v", c)
	}
}
