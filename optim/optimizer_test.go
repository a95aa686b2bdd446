package optim

import (
	"context"
	"testing"

	"github.com/satkit/satkit/solver"
)

func TestHardOnlyProblem(t *testing.T) {
	p, err := New(
		HardClause(Pos("a"), Pos("b")),
		HardClause(Neg("a"), Neg("b")),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st, cost, _ := p.Optimizer().Optimize(context.Background())
	if st.String() != "OPTIMUM FOUND" {
		t.Fatalf("status = %v, want OPTIMUM FOUND", st)
	}
	if cost != 0 {
		t.Fatalf("cost = %d, want 0 (no soft constraints)", cost)
	}
}

func TestSoftClausesMinimizeViolations(t *testing.T) {
	for _, strategy := range []Strategy{Linear, Binary, UnsatCore, Hybrid} {
		p, err := New(
			HardClause(Neg("x")),             // forces x = false
			SoftClause(10, Pos("x"), Pos("y")), // avoidable: y can take up the slack for free
			HardClause(Neg("z")),             // forces z = false
			SoftClause(1, Pos("z")),          // unavoidable: nothing else can satisfy it
		)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		st, cost, m := p.Optimizer().SetStrategy(strategy).Optimize(context.Background())
		if st.String() != "OPTIMUM FOUND" {
			t.Fatalf("strategy %v: status = %v, want OPTIMUM FOUND", strategy, st)
		}
		if cost != 1 {
			t.Fatalf("strategy %v: cost = %d, want 1 (only the unavoidable weight-1 clause stays violated)", strategy, cost)
		}
		_ = m
	}
}

func TestOptimizerCallbacks(t *testing.T) {
	p, err := New(
		SoftClause(5, Pos("a")),
		HardClause(Neg("a")),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var improvedCalls int
	var lastCost int
	_, _, _ = p.Optimizer().
		OnImproved(func(cost int, m solver.Model) {
			improvedCalls++
			lastCost = cost
		}).
		Optimize(context.Background())
	if improvedCalls == 0 {
		t.Fatal("expected OnImproved to fire at least once")
	}
	if lastCost != 5 {
		t.Fatalf("final reported cost = %d, want 5 (the soft clause is unavoidably violated)", lastCost)
	}
}
