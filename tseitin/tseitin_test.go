package tseitin

import (
	"testing"

	"github.com/satkit/satkit/solver"
)

func TestEncodeConjForcesAllOrNone(t *testing.T) {
	s := solver.New()
	vs := s.NewVars(3)
	e := NewEncoder(s)
	y := e.EncodeConj([]solver.Lit{vs[0].Pos(), vs[1].Pos(), vs[2].Pos()})
	s.AddClause(y)
	if got := s.Solve(); got != solver.Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	m := s.GetModel()
	for _, v := range vs {
		if !m.Value(v.Pos()) {
			t.Fatalf("asserting the conjunction literal should force every conjunct true, model = %v", m)
		}
	}
}

func TestEncodeConjCaches(t *testing.T) {
	s := solver.New()
	vs := s.NewVars(2)
	e := NewEncoder(s)
	lits := []solver.Lit{vs[0].Pos(), vs[1].Pos()}
	a := e.EncodeConj(lits)
	b := e.EncodeConj([]solver.Lit{vs[1].Pos(), vs[0].Pos()})
	if a != b {
		t.Fatalf("EncodeConj should cache by canonical literal set regardless of order, got %v and %v", a, b)
	}
}

func TestEncodeConjSingleton(t *testing.T) {
	s := solver.New()
	v := s.NewVar()
	e := NewEncoder(s)
	if got := e.EncodeConj([]solver.Lit{v.Pos()}); got != v.Pos() {
		t.Fatalf("EncodeConj of a single literal should return it unchanged")
	}
}

func TestEncodePBRoundtrips(t *testing.T) {
	s := solver.New()
	vs := s.NewVars(2)
	e := NewEncoder(s)
	c := solver.AtLeast([]solver.Lit{vs[0].Pos(), vs[1].Pos()}, 2)
	y := e.EncodePB(c)
	s.AddClause(y)
	if got := s.Solve(); got != solver.Sat {
		t.Fatalf("Solve() = %v, want Sat", got)
	}
	m := s.GetModel()
	if !m.Value(vs[0].Pos()) || !m.Value(vs[1].Pos()) {
		t.Fatalf("asserting the reification literal should force the constraint true, model = %v", m)
	}
}
