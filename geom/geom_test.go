package geom

import "testing"

func TestMMToCoordRoundTrip(t *testing.T) {
	cases := []float64{0, 1, 0.4, -0.4, 12.345, -12.345}
	for _, mm := range cases {
		c := MMToCoord(mm)
		back := CoordToMM(c)
		if diff := back - mm; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("MMToCoord(%v) -> CoordToMM = %v, want ~%v", mm, back, mm)
		}
	}
}

func TestPolygonAreaAndOrientation(t *testing.T) {
	square := Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if !square.IsCCW() {
		t.Fatal("expected square to be CCW")
	}
	if a := square.Area(); a != 100 {
		t.Fatalf("expected area 100, got %v", a)
	}
	rev := square.Reversed()
	if rev.IsCCW() {
		t.Fatal("expected reversed square to be CW")
	}
}

func TestPolygonLines_WrapsAround(t *testing.T) {
	tri := Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	lines := tri.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(lines))
	}
	last := lines[len(lines)-1]
	if last.B != tri[0] {
		t.Fatalf("expected last segment to wrap to first point, got %v", last.B)
	}
}

func TestExPolyArea_SubtractsHoles(t *testing.T) {
	outer := Polygon{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
	hole := Polygon{{X: 10, Y: 10}, {X: 10, Y: 20}, {X: 20, Y: 20}, {X: 20, Y: 10}}
	ex := ExPoly{Outer: outer, Holes: []Polygon{hole}}
	want := outer.Area() + hole.Area() // hole is CW, already negative area
	if got := ex.Area(); got != want {
		t.Fatalf("ExPoly.Area() = %v, want %v", got, want)
	}
}

func TestThickPolylineReversed(t *testing.T) {
	l := ThickPolyline{
		Pts:       []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
		Width:     []Coord{1, 2, 3},
		Endpoints: [2]bool{true, false},
	}
	r := l.Reversed()
	if r.Pts[0] != l.Pts[2] || r.Pts[2] != l.Pts[0] {
		t.Fatal("expected point order reversed")
	}
	if r.Endpoints[0] != l.Endpoints[1] || r.Endpoints[1] != l.Endpoints[0] {
		t.Fatal("expected endpoint flags swapped")
	}
	if r.Length() != l.Length() {
		t.Fatalf("expected equal length, got %v vs %v", r.Length(), l.Length())
	}
}
