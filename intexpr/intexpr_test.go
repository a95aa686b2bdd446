package intexpr

import (
	"testing"

	"github.com/satkit/satkit/solver"
)

func TestIntVarRespectsBounds(t *testing.T) {
	s := solver.New()
	b := NewBuilder(s)
	x, err := b.IntVar(3, 7)
	if err != nil {
		t.Fatalf("IntVar: %v", err)
	}
	if got := s.Solve(); got != solver.Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	v := x.Value(s.GetModel())
	if v < 3 || v > 7 {
		t.Fatalf("x = %d, want in [3,7]", v)
	}
}

func TestAssertEqPinsValue(t *testing.T) {
	s := solver.New()
	b := NewBuilder(s)
	x, err := b.IntVar(0, 15)
	if err != nil {
		t.Fatalf("IntVar: %v", err)
	}
	if err := b.AssertEq(x, 9); err != nil {
		t.Fatalf("AssertEq: %v", err)
	}
	if got := s.Solve(); got != solver.Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	if v := x.Value(s.GetModel()); v != 9 {
		t.Fatalf("x = %d, want 9", v)
	}
}

func TestAddCombinesTwoVars(t *testing.T) {
	s := solver.New()
	b := NewBuilder(s)
	x, _ := b.IntVar(0, 3)
	y, _ := b.IntVar(0, 3)
	sum := x.Add(y)
	if err := b.AssertEq(sum, 5); err != nil {
		t.Fatalf("AssertEq: %v", err)
	}
	if got := s.Solve(); got != solver.Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	m := s.GetModel()
	if got := x.Value(m) + y.Value(m); got != 5 {
		t.Fatalf("x+y = %d, want 5", got)
	}
}

func TestGuardZeroesWhenSelectorFalse(t *testing.T) {
	s := solver.New()
	b := NewBuilder(s)
	x, _ := b.IntVar(1, 5)
	sel := s.NewVar()
	guarded := b.Guard(x, sel.Pos())
	s.AddClause(sel.Neg())
	if err := b.AssertEq(guarded, 0); err != nil {
		t.Fatalf("AssertEq: %v", err)
	}
	if got := s.Solve(); got != solver.Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	if v := guarded.Value(s.GetModel()); v != 0 {
		t.Fatalf("guarded value = %d, want 0", v)
	}
}

func TestMulLinearizesBitProduct(t *testing.T) {
	s := solver.New()
	b := NewBuilder(s)
	a := s.NewVar()
	c := s.NewVar()
	prod := Const(0).Mul(1, a.Pos(), c.Pos())
	lit, constant, err := b.Linearize(prod)
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}
	if constant != 0 {
		t.Fatalf("constant = %d, want 0", constant)
	}
	s.AddClause(a.Pos())
	s.AddClause(c.Pos())
	if got := s.Solve(); got != solver.Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	if !s.GetModel().Value(lit) {
		t.Fatal("lit should be true when both factors are true")
	}
}

func TestMulLinearizesToFalseWhenOneFactorFalse(t *testing.T) {
	s := solver.New()
	b := NewBuilder(s)
	a := s.NewVar()
	c := s.NewVar()
	prod := Const(0).Mul(1, a.Pos(), c.Pos())
	lit, _, err := b.Linearize(prod)
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}
	s.AddClause(a.Neg())
	if got := s.Solve(); got != solver.Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	if s.GetModel().Value(lit) {
		t.Fatal("lit should be false when a factor is false")
	}
}

func TestLinearizeRejectsMultiTermExpr(t *testing.T) {
	s := solver.New()
	b := NewBuilder(s)
	x, err := b.IntVar(0, 3)
	if err != nil {
		t.Fatalf("IntVar: %v", err)
	}
	if _, _, err := b.Linearize(x); err != ErrNotBoolean {
		t.Fatalf("Linearize err = %v, want ErrNotBoolean", err)
	}
}

func TestInfeasibleRangeIsUnsat(t *testing.T) {
	s := solver.New()
	b := NewBuilder(s)
	x, _ := b.IntVar(0, 3)
	if err := b.AssertGtEq(x, 10); err != nil {
		t.Fatalf("AssertGtEq: %v", err)
	}
	if got := s.Solve(); got != solver.Unsat {
		t.Fatalf("Solve() = %v, want Unsat", got)
	}
}
