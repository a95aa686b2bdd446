package solver

import "testing"

func TestVarHeapOrdering(t *testing.T) {
	activity := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	h := newVarHeap(activity)
	var order []int
	for !h.empty() {
		order = append(order, h.removeMin())
	}
	prev := activity[order[0]]
	for _, v := range order[1:] {
		if activity[v] > prev {
			t.Fatalf("heap did not pop in descending activity order: %v", order)
		}
		prev = activity[v]
	}
	if len(order) != len(activity) {
		t.Fatalf("expected %d elements, got %d", len(activity), len(order))
	}
}

func TestVarHeapDecrease(t *testing.T) {
	activity := []float64{1, 1, 1}
	h := newVarHeap(activity)
	activity[2] = 100
	h.decrease(2)
	if got := h.removeMin(); got != 2 {
		t.Fatalf("expected var 2 to have priority after bump, got %d", got)
	}
}

func TestVarHeapContains(t *testing.T) {
	activity := []float64{1, 2}
	h := newVarHeap(activity)
	if !h.contains(0) || !h.contains(1) {
		t.Fatal("freshly built heap should contain every inserted var")
	}
	h.removeMin()
	if h.contains(1) {
		t.Fatal("removed var should no longer be contained")
	}
}
