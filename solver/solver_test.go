package solver

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSolveTrivialSat(t *testing.T) {
	s := New()
	a := s.NewVar()
	b := s.NewVar()
	s.AddClause(a.Pos(), b.Pos())
	s.AddClause(a.Neg(), b.Neg())
	if got := s.Solve(); got != Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	m := s.GetModel()
	if m.Value(a.Pos()) == m.Value(b.Pos()) {
		t.Fatalf("expected a and b to differ, model = %v", m)
	}
}

func TestSolveTrivialUnsat(t *testing.T) {
	s := New()
	a := s.NewVar()
	s.AddClause(a.Pos())
	s.AddClause(a.Neg())
	if got := s.Solve(); got != Unsat {
		t.Fatalf("Solve() = %v, want Unsat", got)
	}
}

func TestSolveRequiresConflictAnalysis(t *testing.T) {
	// Deciding x1 true propagates to a conflict (x1->x3->x4, which the
	// last clause forbids alongside x1), forcing a backjump to x1 false,
	// from which the rest of the unique model is forced by unit
	// propagation alone. VSIDS has no activity history to go on yet, so
	// x1 is the natural first decision and this exercises analyze/
	// undoUntil rather than pure propagation.
	s := New()
	vs := s.NewVars(4)
	x1, x2, x3, x4 := vs[0], vs[1], vs[2], vs[3]
	s.AddClause(x1.Pos(), x2.Pos())
	s.AddClause(x1.Neg(), x3.Pos())
	s.AddClause(x2.Neg(), x3.Pos())
	s.AddClause(x3.Neg(), x4.Pos())
	s.AddClause(x1.Neg(), x4.Neg())
	if got := s.Solve(); got != Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	m := s.GetModel()
	want := Model{false, true, true, true}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestAddClauseTautologyDropped(t *testing.T) {
	s := New()
	a := s.NewVar()
	if err := s.AddClause(a.Pos(), a.Neg()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status() == Unsat {
		t.Fatal("a tautological clause must not mark the problem unsat")
	}
}

func TestAddClauseEmptyReturnsError(t *testing.T) {
	s := New()
	if err := s.AddClause(); err != ErrEmptyClause {
		t.Fatalf("AddClause() error = %v, want ErrEmptyClause", err)
	}
	if s.Status() == Unsat {
		t.Fatal("AddClause() with no literals is a caller error, not an assertion of unsatisfiability")
	}
}

func TestPBAtLeastForcesAssignment(t *testing.T) {
	s := New()
	vs := s.NewVars(3)
	lits := []Lit{vs[0].Pos(), vs[1].Pos(), vs[2].Pos()}
	if err := s.AddPBAtLeast(lits, 3); err != nil {
		t.Fatalf("AddPBAtLeast: %v", err)
	}
	if got := s.Solve(); got != Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	m := s.GetModel()
	for _, l := range lits {
		if !m.Value(l) {
			t.Fatalf("AtLeast(lits, 3) should force every literal true, model = %v", m)
		}
	}
}

func TestPBAtMostConflictsWithClause(t *testing.T) {
	s := New()
	vs := s.NewVars(2)
	a, b := vs[0], vs[1]
	s.AddClause(a.Pos())
	s.AddClause(b.Pos())
	if err := s.AddPBAtMost([]Lit{a.Pos(), b.Pos()}, 1); err != nil {
		t.Fatalf("AddPBAtMost: %v", err)
	}
	if got := s.Solve(); got != Unsat {
		t.Fatalf("Solve() = %v, want Unsat", got)
	}
}

func TestPBWeightedAtLeast(t *testing.T) {
	s := New()
	vs := s.NewVars(3)
	lits := []Lit{vs[0].Pos(), vs[1].Pos(), vs[2].Pos()}
	coeffs := []int{5, 1, 1}
	if err := s.AddPBGtEq(lits, coeffs, 5); err != nil {
		t.Fatalf("AddPBGtEq: %v", err)
	}
	s.AddClause(vs[0].Neg())
	if got := s.Solve(); got != Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	m := s.GetModel()
	if !m.Value(vs[1].Pos()) || !m.Value(vs[2].Pos()) {
		t.Fatalf("with vs[0] forced false, both small-weight literals must be forced true, model = %v", m)
	}
}

func TestSoftPBVacuousWhenSelectorFalse(t *testing.T) {
	s := New()
	vs := s.NewVars(2)
	sel := s.NewVar()
	c := AtLeast([]Lit{vs[0].Pos(), vs[1].Pos()}, 2)
	if err := s.AddSoftPB(c, sel.Pos()); err != nil {
		t.Fatalf("AddSoftPB: %v", err)
	}
	s.AddClause(sel.Neg())
	s.AddClause(vs[0].Neg())
	s.AddClause(vs[1].Neg())
	if got := s.Solve(); got != Sat {
		t.Fatalf("Solve() = %v, want Sat (selector false makes the PB constraint vacuous)", got)
	}
}

func TestSolveContextCancellation(t *testing.T) {
	s := New()
	vs := s.NewVars(20)
	// A loosely constrained problem with many variables and no unit
	// propagation to speak of, to give cancellation a chance to land
	// before the search otherwise finishes.
	for i := 0; i+1 < len(vs); i++ {
		s.AddClause(vs[i].Pos(), vs[i+1].Pos())
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	got := s.SolveContext(ctx)
	if got != Unknown && got != Sat {
		t.Fatalf("SolveContext() = %v, want Unknown or Sat", got)
	}
}

func TestModelCheckPassesOnGenuineModel(t *testing.T) {
	s := New()
	vs := s.NewVars(3)
	s.SetModelCheck(true)
	s.AddClause(vs[0].Pos(), vs[1].Pos())
	s.AddPBAtLeast([]Lit{vs[1].Pos(), vs[2].Pos()}, 1)
	if got := s.Solve(); got != Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
}

func TestPuebloHandlerAgreesWithCounter(t *testing.T) {
	build := func(kind PBHandlerKind) Status {
		s := New()
		s.SetPBHandler(kind)
		vs := s.NewVars(5)
		lits := make([]Lit, len(vs))
		coeffs := make([]int, len(vs))
		for i, v := range vs {
			lits[i] = v.Pos()
			coeffs[i] = i + 1
		}
		s.AddPBGtEq(lits, coeffs, 10)
		s.AddClause(vs[4].Neg())
		return s.Solve()
	}
	counter := build(CounterHandler)
	pueblo := build(PuebloHandler)
	if counter != pueblo {
		t.Fatalf("handlers disagree: counter=%v pueblo=%v", counter, pueblo)
	}
}
