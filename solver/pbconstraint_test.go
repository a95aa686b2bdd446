package solver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPBConstraintNormalizesNegativeCoeffs(t *testing.T) {
	a := litOf(0, false)
	b := litOf(1, false)
	c := newPBConstraint([]Lit{a, b}, []int{-3, 2}, 1)
	if c.k != 1+3 {
		t.Fatalf("k = %d, want %d", c.k, 1+3)
	}
	want := []PBTerm{
		{Coeff: 3, Lit: a.Negation()},
		{Coeff: 2, Lit: b},
	}
	if diff := cmp.Diff(want, c.terms); diff != "" {
		t.Fatalf("terms mismatch (-want +got):\n%s", diff)
	}
}

func TestAtMostIsAtLeastOverNegatedLits(t *testing.T) {
	a, b, c := litOf(0, false), litOf(1, false), litOf(2, false)
	con := AtMost([]Lit{a, b, c}, 1)
	if con.k != 2 {
		t.Fatalf("AtMost(3 lits, 1) should become AtLeast(negated, 2), got k=%d", con.k)
	}
}

func TestEqConstraintsOmitsTrivialHalf(t *testing.T) {
	a, b := litOf(0, false), litOf(1, false)
	cs := EqConstraints([]Lit{a, b}, []int{1, 1}, 0)
	for _, con := range cs {
		if con.k <= 0 {
			t.Fatalf("EqConstraints should omit trivially-satisfied halves, got k=%d", con.k)
		}
	}
}

func TestPBConstraintEvalRespectsSelector(t *testing.T) {
	a, b := litOf(0, false), litOf(1, false)
	sel := litOf(2, false)
	con := AtLeast([]Lit{a, b}, 2).WithSelector(sel)
	if !con.Eval(Model{false, false, false}) {
		t.Fatal("a soft constraint with a false selector must be vacuously satisfied")
	}
	if con.Eval(Model{false, false, true}) {
		t.Fatal("an active soft constraint must still be evaluated for real")
	}
	if !con.Eval(Model{true, true, true}) {
		t.Fatal("an active soft constraint whose terms meet K should hold")
	}
}

func TestSlack(t *testing.T) {
	a, b := litOf(0, false), litOf(1, false)
	con := GtEq([]Lit{a, b}, []int{3, 2}, 4)
	falsified := func(l Lit) bool { return l == a }
	if got := con.Slack(falsified); got != 2-4 {
		t.Fatalf("Slack = %d, want %d", got, 2-4)
	}
}
