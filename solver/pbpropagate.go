package solver

// PBHandlerKind selects the runtime representation used to propagate PB
// constraints, per spec.md §3/§4.3.
type PBHandlerKind int

const (
	// CounterHandler maintains a single running slack integer per
	// constraint, recomputed on every assignment to any of its terms.
	CounterHandler PBHandlerKind = iota
	// PuebloHandler additionally maintains an explicit watched subset of
	// terms (the largest coefficients, kept above k plus the constraint's
	// max coefficient) as described in spec.md §3. As long as the
	// watched subset's coefficients sum above that threshold, no term —
	// watched or not — can possibly be forced, so onLitTrue skips the
	// scan over every term entirely; only when the watched set cannot be
	// replenished above threshold does it fall back to a full scan, same
	// as CounterHandler always does.
	PuebloHandler
)

// puebloState is the auxiliary bookkeeping PuebloHandler keeps on top of
// the exact slack every PBConstraint carries: the indices of the
// currently-watched (largest-coefficient, non-falsified) terms, kept so
// that their summed coefficient exceeds k + the constraint's max
// coefficient, as spec.md §3 describes.
type puebloState struct {
	order      []int // term indices, sorted by descending coefficient
	watched    map[int]bool
	watchedSum int
}

// pbRuntime is the per-constraint state used by the active propagator. It
// lives on PBConstraint.watchData.
type pbRuntime struct {
	slack  int
	pueblo *puebloState // nil under CounterHandler
}

// pbWatchLists indexes, for each literal, the PB constraints that must be
// re-examined when that literal becomes true (i.e. when one of their
// terms gets falsified or, symmetrically during undo, un-falsified).
type pbWatchLists struct {
	byLit [][]*PBConstraint
	all   []*PBConstraint // every constraint ever registered, for SetModelCheck
}

func newPBWatchLists(nbVars int) *pbWatchLists {
	return &pbWatchLists{byLit: make([][]*PBConstraint, nbVars*2)}
}

func (w *pbWatchLists) growVars(nbVars int) {
	for len(w.byLit) < nbVars*2 {
		w.byLit = append(w.byLit, nil)
	}
}

// registerPB wires c into the wake-up lists and initializes its runtime
// slack for the handler kind currently active on s.
func (s *Solver) registerPB(c *PBConstraint) {
	rt := &pbRuntime{}
	rt.slack = c.WeightSum() - c.k
	for _, t := range c.terms {
		if s.litStatus(t.Lit) == Unsat {
			rt.slack -= t.Coeff
		}
	}
	if s.pbHandler == PuebloHandler {
		rt.pueblo = newPuebloState(s, c)
	}
	c.watchData = rt
	s.pbWatches.all = append(s.pbWatches.all, c)
	for _, t := range c.terms {
		idx := t.Lit.Negation()
		s.pbWatches.byLit[idx] = append(s.pbWatches.byLit[idx], c)
	}
	if c.hasSel {
		s.pbWatches.byLit[c.selector] = append(s.pbWatches.byLit[c.selector], c)
	}
}

// puebloThreshold is the sum the watched subset must exceed for the
// invariant "no term, watched or not, can possibly be forced" to hold: any
// single term's coefficient is bounded by c.MaxCoeff(), so a watched sum
// strictly above k+MaxCoeff leaves every term at least MaxCoeff below the
// true slack.
func puebloThreshold(c *PBConstraint) int { return c.k + c.MaxCoeff() }

func newPuebloState(s *Solver, c *PBConstraint) *puebloState {
	order := make([]int, len(c.terms))
	for i := range order {
		order[i] = i
	}
	// simple insertion sort by descending coefficient: PB constraints
	// encountered in practice have few terms, so O(n^2) is fine and keeps
	// this deterministic without importing sort for a throwaway slice.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && c.terms[order[j]].Coeff > c.terms[order[j-1]].Coeff; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	watched := make(map[int]bool)
	sum := 0
	threshold := puebloThreshold(c)
	for _, idx := range order {
		if sum > threshold {
			break
		}
		if s.litStatus(c.terms[idx].Lit) == Unsat {
			continue
		}
		watched[idx] = true
		sum += c.terms[idx].Coeff
	}
	return &puebloState{order: order, watched: watched, watchedSum: sum}
}

func runtimeOf(c *PBConstraint) *pbRuntime { return c.watchData.(*pbRuntime) }

// onLitTrue updates c's slack after lit has just become true. If lit is
// the negation of one of c's term literals, that term has just been
// falsified and the slack is decremented; this happens regardless of
// whether c is currently active, so its slack never goes stale while a
// soft constraint's selector is false. active reports whether c's
// selector (if any) is currently true; forced/conflict are only derived
// while active, since a soft constraint with a false selector is
// vacuously satisfied regardless of its slack.
func (s *Solver) onLitTrue(c *PBConstraint, lit Lit, active bool) (forced []Lit, conflict *PBConstraint) {
	rt := runtimeOf(c)
	idx := -1
	for i, t := range c.terms {
		if t.Lit.Negation() == lit {
			idx = i
			break
		}
	}
	if idx >= 0 {
		rt.slack -= c.terms[idx].Coeff
		if rt.pueblo != nil && rt.pueblo.watched[idx] {
			delete(rt.pueblo.watched, idx)
			rt.pueblo.watchedSum -= c.terms[idx].Coeff
		}
	}
	if !active {
		return nil, nil
	}
	if rt.slack < 0 {
		return nil, c
	}
	if rt.pueblo != nil && idx >= 0 && s.replenishPueblo(c, rt) {
		// The watched subset still sums above threshold, which proves no
		// term can be forced regardless of what the unwatched terms are
		// doing: skip the scan CounterHandler always has to run.
		return nil, nil
	}
	for _, t := range c.terms {
		if s.litStatus(t.Lit) != Indet {
			continue
		}
		if t.Coeff > rt.slack {
			forced = append(forced, t.Lit)
		}
	}
	return forced, nil
}

// onLitUndo restores c's slack after lit (previously true) has just been
// unassigned during backtracking.
func (s *Solver) onLitUndo(c *PBConstraint, lit Lit) {
	rt := runtimeOf(c)
	for i, t := range c.terms {
		if t.Lit.Negation() == lit {
			rt.slack += t.Coeff
			if rt.pueblo != nil && !rt.pueblo.watched[i] {
				rt.pueblo.watched[i] = true
				rt.pueblo.watchedSum += t.Coeff
			}
			break
		}
	}
}

// replenishPueblo tries to restore the watched-sum-above-threshold
// invariant after a watched term was just falsified, greedily adding
// unwatched non-falsified terms in descending-coefficient order. It
// reports whether the invariant held (or was restored); when it returns
// false, the watched set has grown to include every non-falsified term
// there is, so scanning it would be no cheaper than scanning c.terms and
// the caller falls back to the ordinary full scan.
func (s *Solver) replenishPueblo(c *PBConstraint, rt *pbRuntime) bool {
	threshold := puebloThreshold(c)
	if rt.pueblo.watchedSum > threshold {
		return true
	}
	for _, idx := range rt.pueblo.order {
		if rt.pueblo.watchedSum > threshold {
			break
		}
		if rt.pueblo.watched[idx] {
			continue
		}
		if s.litStatus(c.terms[idx].Lit) == Unsat {
			continue
		}
		rt.pueblo.watched[idx] = true
		rt.pueblo.watchedSum += c.terms[idx].Coeff
	}
	return rt.pueblo.watchedSum > threshold
}
