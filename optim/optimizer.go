package optim

import (
	"context"

	"github.com/satkit/satkit/solver"
)

// Strategy selects the search procedure used to minimize the total
// weight of violated soft constraints, per spec.md §4.8.
type Strategy int

const (
	// Linear repeatedly tightens the cost bound by one below the best
	// model found so far, until no better model exists.
	Linear Strategy = iota
	// Binary bisects the cost range [0, worst], each test done under a
	// reified bound literal passed as a solve-time assumption so a
	// failed test never pollutes the hard constraint set.
	Binary
	// UnsatCore searches upward from a cost of zero. It approximates the
	// classic Fu-Malik unsat-core-guided procedure without requiring the
	// solver to expose failed-assumption cores: see DESIGN.md.
	UnsatCore
	// Hybrid takes one Linear step to get a reasonably good bound
	// quickly, then finishes with Binary.
	Hybrid
)

// Optimizer drives the search for a minimum-cost model of a Problem.
type Optimizer struct {
	p        *Problem
	strategy Strategy
	improved func(cost int, m solver.Model)
	lower    func(cost int)
}

// SetStrategy overrides the search procedure.
func (o *Optimizer) SetStrategy(s Strategy) *Optimizer {
	o.strategy = s
	return o
}

// OnImproved registers a callback invoked every time a strictly better
// model is found.
func (o *Optimizer) OnImproved(f func(cost int, m solver.Model)) *Optimizer {
	o.improved = f
	return o
}

// OnLowerBound registers a callback invoked when the search proves no
// model can cost less than cost.
func (o *Optimizer) OnLowerBound(f func(cost int)) *Optimizer {
	o.lower = f
	return o
}

func (o *Optimizer) notifyImproved(cost int, m solver.Model) {
	if o.improved != nil {
		o.improved(cost, m)
	}
}

func (o *Optimizer) notifyLowerBound(cost int) {
	if o.lower != nil {
		o.lower(cost)
	}
}

// Optimize runs the selected strategy and returns the final status
// (Optimum if a minimum-cost model was found and proven minimal, Sat if a
// model was found but ctx ran out before optimality could be proven,
// Unsat if the hard constraints alone are unsatisfiable, Unknown if ctx
// was cancelled before any model was found at all), its cost, and the
// corresponding model.
func (o *Optimizer) Optimize(ctx context.Context) (solver.Status, int, solver.Model) {
	switch o.strategy {
	case Binary:
		return o.binarySearch(ctx)
	case UnsatCore:
		return o.unsatCoreSearch(ctx)
	case Hybrid:
		return o.hybridSearch(ctx)
	default:
		return o.linearSearch(ctx)
	}
}

// boundLit returns a literal equivalent to "total violated weight <= max".
func (o *Optimizer) boundLit(max int) solver.Lit {
	if max < 0 {
		max = 0
	}
	neg := make([]solver.Lit, len(o.p.blockingLits))
	for i, l := range o.p.blockingLits {
		neg[i] = l.Negation()
	}
	total := 0
	for _, w := range o.p.weights {
		total += w
	}
	con := solver.GtEq(neg, o.p.weights, total-max)
	return o.p.enc.EncodePB(con)
}

func (o *Optimizer) linearSearch(ctx context.Context) (solver.Status, int, solver.Model) {
	status := o.p.s.SolveContext(ctx)
	if status != solver.Sat {
		return status, 0, nil
	}
	bestModel := o.p.s.GetModel()
	bestCost := o.p.cost(bestModel)
	o.notifyImproved(bestCost, bestModel)
	proven := bestCost == 0
	for bestCost > 0 {
		if ctx.Err() != nil {
			return solver.Sat, bestCost, bestModel
		}
		lit := o.boundLit(bestCost - 1)
		st := o.p.s.SolveWith(ctx, []solver.Lit{lit})
		if st == solver.Unknown {
			return solver.Sat, bestCost, bestModel
		}
		if st != solver.Sat {
			o.notifyLowerBound(bestCost)
			proven = true
			break
		}
		bestModel = o.p.s.GetModel()
		bestCost = o.p.cost(bestModel)
		o.notifyImproved(bestCost, bestModel)
	}
	if proven {
		return solver.Optimum, bestCost, bestModel
	}
	return solver.Sat, bestCost, bestModel
}

func (o *Optimizer) binarySearch(ctx context.Context) (solver.Status, int, solver.Model) {
	status := o.p.s.SolveContext(ctx)
	if status != solver.Sat {
		return status, 0, nil
	}
	bestModel := o.p.s.GetModel()
	bestCost := o.p.cost(bestModel)
	o.notifyImproved(bestCost, bestModel)

	lo, hi := 0, bestCost
	for lo < hi {
		if ctx.Err() != nil {
			return solver.Sat, bestCost, bestModel
		}
		mid := (lo + hi) / 2
		lit := o.boundLit(mid)
		st := o.p.s.SolveWith(ctx, []solver.Lit{lit})
		if st == solver.Sat {
			m := o.p.s.GetModel()
			c := o.p.cost(m)
			if c < bestCost {
				bestModel, bestCost = m, c
				o.notifyImproved(bestCost, bestModel)
			}
			hi = c
		} else if st == solver.Unsat {
			lo = mid + 1
		} else {
			return solver.Sat, bestCost, bestModel
		}
	}
	o.notifyLowerBound(lo)
	return solver.Optimum, bestCost, bestModel
}

// unsatCoreSearch tests increasing cost bounds from zero upward, the
// cheapest sound substitute for Fu-Malik-style relaxation available
// without solver support for extracting a minimal unsat core from a
// failed assumption set.
func (o *Optimizer) unsatCoreSearch(ctx context.Context) (solver.Status, int, solver.Model) {
	hardStatus := o.p.s.SolveContext(ctx)
	if hardStatus != solver.Sat {
		return hardStatus, 0, nil
	}
	m0 := o.p.s.GetModel()
	total := 0
	for _, w := range o.p.weights {
		total += w
	}
	for cost := 0; cost <= total; cost++ {
		if ctx.Err() != nil {
			return solver.Sat, o.p.cost(m0), m0
		}
		lit := o.boundLit(cost)
		st := o.p.s.SolveWith(ctx, []solver.Lit{lit})
		if st == solver.Sat {
			m := o.p.s.GetModel()
			o.notifyImproved(o.p.cost(m), m)
			return solver.Optimum, o.p.cost(m), m
		}
		if st == solver.Unknown {
			return solver.Sat, o.p.cost(m0), m0
		}
		o.notifyLowerBound(cost + 1)
	}
	return solver.Unsat, 0, nil
}

func (o *Optimizer) hybridSearch(ctx context.Context) (solver.Status, int, solver.Model) {
	status := o.p.s.SolveContext(ctx)
	if status != solver.Sat {
		return status, 0, nil
	}
	bestModel := o.p.s.GetModel()
	bestCost := o.p.cost(bestModel)
	o.notifyImproved(bestCost, bestModel)
	if bestCost == 0 {
		return solver.Optimum, bestCost, bestModel
	}
	lit := o.boundLit(bestCost - 1)
	if st := o.p.s.SolveWith(ctx, []solver.Lit{lit}); st == solver.Sat {
		m := o.p.s.GetModel()
		if c := o.p.cost(m); c < bestCost {
			bestModel, bestCost = m, c
			o.notifyImproved(bestCost, bestModel)
		}
	}

	lo, hi := 0, bestCost
	for lo < hi {
		if ctx.Err() != nil {
			return solver.Sat, bestCost, bestModel
		}
		mid := (lo + hi) / 2
		lit := o.boundLit(mid)
		st := o.p.s.SolveWith(ctx, []solver.Lit{lit})
		if st == solver.Sat {
			m := o.p.s.GetModel()
			c := o.p.cost(m)
			if c < bestCost {
				bestModel, bestCost = m, c
				o.notifyImproved(bestCost, bestModel)
			}
			hi = c
		} else if st == solver.Unsat {
			lo = mid + 1
		} else {
			return solver.Sat, bestCost, bestModel
		}
	}
	return solver.Optimum, bestCost, bestModel
}
