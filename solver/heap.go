/*
Adapted from MiniSat's mtl/Heap.h (Niklas Een, Niklas Sorensson), as
carried by the teacher's queue.go: an indexed binary heap keyed by a
shared activity slice, supporting decrease/increase-key in O(log n).
*/
package solver

// varHeap is the VSIDS priority queue: a binary heap over variable
// indices, ordered by descending activity.
type varHeap struct {
	activity []float64 // shared with Solver.vars.activity; never copied
	content  []int
	indices  []int // content-index of each variable, or -1 if absent
}

func newVarHeap(activity []float64) *varHeap {
	h := &varHeap{activity: activity}
	for i := range activity {
		h.insert(i)
	}
	return h
}

func (h *varHeap) less(i, j int) bool { return h.activity[i] > h.activity[j] }

func heapLeft(i int) int   { return i*2 + 1 }
func heapRight(i int) int  { return (i + 1) * 2 }
func heapParent(i int) int { return (i - 1) >> 1 }

func (h *varHeap) percolateUp(i int) {
	x := h.content[i]
	p := heapParent(i)
	for i != 0 && h.less(x, h.content[p]) {
		h.content[i] = h.content[p]
		h.indices[h.content[p]] = i
		i = p
		p = heapParent(p)
	}
	h.content[i] = x
	h.indices[x] = i
}

func (h *varHeap) percolateDown(i int) {
	x := h.content[i]
	for heapLeft(i) < len(h.content) {
		child := heapLeft(i)
		if r := heapRight(i); r < len(h.content) && h.less(h.content[r], h.content[child]) {
			child = r
		}
		if !h.less(h.content[child], x) {
			break
		}
		h.content[i] = h.content[child]
		h.indices[h.content[i]] = i
		i = child
	}
	h.content[i] = x
	h.indices[x] = i
}

func (h *varHeap) empty() bool { return len(h.content) == 0 }

func (h *varHeap) contains(n int) bool {
	return n < len(h.indices) && h.indices[n] >= 0
}

// decrease must be called after activity[n] has increased (VSIDS bumps
// only ever increase activity, so "decrease" here means the heap key
// moved toward the root).
func (h *varHeap) decrease(n int) {
	if h.contains(n) {
		h.percolateUp(h.indices[n])
	}
}

func (h *varHeap) insert(n int) {
	for i := len(h.indices); i <= n; i++ {
		h.indices = append(h.indices, -1)
	}
	h.indices[n] = len(h.content)
	h.content = append(h.content, n)
	h.percolateUp(h.indices[n])
}

// removeMin pops and returns the variable with the highest activity.
func (h *varHeap) removeMin() int {
	x := h.content[0]
	last := len(h.content) - 1
	h.content[0] = h.content[last]
	h.indices[h.content[0]] = 0
	h.indices[x] = -1
	h.content = h.content[:last]
	if len(h.content) > 1 {
		h.percolateDown(0)
	}
	return x
}

// build rebuilds the heap from scratch using exactly the elements in ns.
func (h *varHeap) build(ns []int) {
	for _, v := range h.content {
		h.indices[v] = -1
	}
	h.content = h.content[:0]
	for i, v := range ns {
		h.indices[v] = i
		h.content = append(h.content, v)
	}
	for i := len(h.content)/2 - 1; i >= 0; i-- {
		h.percolateDown(i)
	}
}
