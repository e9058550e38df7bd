package rotorder

import "testing"

func TestOrder_FourCardinalDirections(t *testing.T) {
	// indices: 0=east (angle 0), 1=south (angle 3pi/2), 2=west (angle pi), 3=north (angle pi/2)
	neighbors := []Neighbor{
		{DX: 1, DY: 0, Payload: 0},
		{DX: 0, DY: -1, Payload: 1},
		{DX: -1, DY: 0, Payload: 2},
		{DX: 0, DY: 1, Payload: 3},
	}
	order := Order(neighbors)
	if len(order) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(order))
	}
	// ascending-angle order: east(0), north(3), west(2), south(1)
	want := []int{0, 3, 2, 1}
	for i, idx := range order {
		if idx != want[i] {
			t.Fatalf("position %d: got index %d, want %d", i, idx, want[i])
		}
	}
}

func TestNext_WrapsAround(t *testing.T) {
	order := []int{3, 1, 0, 2}
	if got := Next(order, 2); got != 3 {
		t.Fatalf("Next(order, 2) = %d, want 3 (wraps to front)", got)
	}
	if got := Next(order, 1); got != 0 {
		t.Fatalf("Next(order, 1) = %d, want 0", got)
	}
}
