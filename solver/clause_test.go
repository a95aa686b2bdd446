package solver

import "testing"

func TestComputeLBD(t *testing.T) {
	a, b, c := litOf(0, false), litOf(1, false), litOf(2, false)
	cl := newLearntClause([]Lit{a, b, c})
	levels := map[Var]int{0: 1, 1: 2, 2: 1}
	cl.computeLBD(func(v Var) int { return levels[v] })
	if cl.lbd() != 2 {
		t.Fatalf("lbd() = %d, want 2 (two distinct levels)", cl.lbd())
	}
}

func TestClauseLockUnlock(t *testing.T) {
	a, b := litOf(0, false), litOf(1, false)
	cl := newClause([]Lit{a, b})
	if cl.isLocked() {
		t.Fatal("fresh clause should not be locked")
	}
	cl.lock()
	if !cl.isLocked() {
		t.Fatal("lock() should mark the clause locked")
	}
	cl.unlock()
	if cl.isLocked() {
		t.Fatal("unlock() should clear the lock")
	}
}

func TestClauseEval(t *testing.T) {
	a, b := litOf(0, false), litOf(1, true)
	cl := newClause([]Lit{a, b}) // a ∨ ¬b
	if cl.Eval(Model{false, true}) {
		t.Fatal("clause (a ∨ ¬b) should be false when a=false, b=true")
	}
	if !cl.Eval(Model{true, false}) {
		t.Fatal("clause (a ∨ ¬b) should be true when a=true")
	}
}

func TestCNFRendersDimacsLine(t *testing.T) {
	a, b := litOf(0, false), litOf(1, true)
	cl := newClause([]Lit{a, b})
	if got, want := cl.CNF(), "1 -2 0"; got != want {
		t.Fatalf("CNF() = %q, want %q", got, want)
	}
}
