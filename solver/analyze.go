package solver

// CCMinLevel selects how aggressively learnt clauses are shrunk after the
// initial 1-UIP derivation, per spec.md §4.4.
type CCMinLevel int

const (
	// CCMinNone keeps the clause exactly as produced by 1-UIP resolution.
	CCMinNone CCMinLevel = iota
	// CCMinLocal drops a literal when its direct antecedents are already
	// subsumed by the rest of the learnt clause.
	CCMinLocal
	// CCMinRecursive follows antecedent chains transitively.
	CCMinRecursive
)

// explainLits returns the set of literals that justify reason, as a
// disjunction implied by the original constraint: for a clause reason
// this is simply its literals; for a PB reason it is forced (if any,
// litNone otherwise) together with every term falsified on the trail
// before forced's variable was assigned (every currently falsified term
// when forced is litNone), plus the negated selector of a soft
// constraint. This generalizes clausal resolution to PB antecedents by
// weakening to a plain clause, so every learnt clause this package
// produces is an ordinary Clause even when a PB constraint took part in
// the conflict.
func explainLits(s *Solver, r reasonRef, forced Lit) []Lit {
	if r.clause != nil {
		return r.clause.lits
	}
	lits := make([]Lit, 0, r.pb.Len()+2)
	limit := len(s.trail.lits)
	if forced != litNone {
		lits = append(lits, forced)
		for i, l := range s.trail.lits {
			if l.Var() == forced.Var() {
				limit = i
				break
			}
		}
	}
	if r.pb.hasSel {
		lits = append(lits, r.pb.selector.Negation())
	}
	before := make(map[Var]bool, limit)
	for _, l := range s.trail.lits[:limit] {
		before[l.Var()] = true
	}
	for _, t := range r.pb.terms {
		if t.Lit == forced {
			continue
		}
		if s.litStatus(t.Lit) == Unsat && before[t.Lit.Var()] {
			lits = append(lits, t.Lit)
		}
	}
	return lits
}

// analyze performs 1-UIP conflict analysis (C5): it walks the trail
// backward from confl, resolving away every literal assigned at the
// current decision level except one (the UIP), and returns the learnt
// clause (UIP negation first) together with the level to back-jump to.
func (s *Solver) analyze(confl reasonRef) (learnt []Lit, backtrackLevel int) {
	n := s.vars.numVars()
	if s.seen == nil || len(s.seen) < n {
		s.seen = make([]bool, n)
	}
	seen := s.seen
	learnt = append(learnt, litNone) // placeholder for the UIP literal
	pathC := 0
	p := litNone
	idx := len(s.trail.lits)
	reason := confl

	for {
		if reason.clause != nil {
			s.bumpClauseActivity(reason.clause)
		}
		for _, q := range explainLits(s, reason, p) {
			if q == p {
				continue
			}
			v := q.Var()
			if seen[v] {
				continue
			}
			if s.levelOf(v) == 0 {
				continue
			}
			seen[v] = true
			s.bumpVarActivity(v)
			if s.levelOf(v) >= s.trail.currentLevel() {
				pathC++
			} else {
				learnt = append(learnt, q)
			}
		}
		for {
			idx--
			if seen[s.trail.lits[idx].Var()] {
				break
			}
		}
		p = s.trail.lits[idx]
		seen[p.Var()] = false
		pathC--
		if pathC <= 0 {
			break
		}
		reason = s.reasonOf(p.Var())
	}
	learnt[0] = p.Negation()

	learnt = s.minimizeLearnt(learnt, seen)

	backtrackLevel = 0
	for _, l := range learnt[1:] {
		if lvl := s.levelOf(l.Var()); lvl > backtrackLevel {
			backtrackLevel = lvl
		}
	}
	for _, l := range learnt {
		seen[l.Var()] = false
	}
	return learnt, backtrackLevel
}

// minimizeLearnt drops literals from learnt[1:] whose antecedents are
// already covered by the rest of the clause, per s.ccMin.
func (s *Solver) minimizeLearnt(learnt []Lit, seen []bool) []Lit {
	if s.ccMin == CCMinNone {
		return learnt
	}
	for _, l := range learnt {
		seen[l.Var()] = true
	}
	out := learnt[:1]
	for _, l := range learnt[1:] {
		if !s.litRedundant(l, seen) {
			out = append(out, l)
		}
	}
	return out
}

// litRedundant reports whether l's antecedents are all already marked
// seen (directly, under CCMinLocal; transitively, under CCMinRecursive),
// making l removable from the learnt clause being built.
func (s *Solver) litRedundant(l Lit, seen []bool) bool {
	r := s.reasonOf(l.Var())
	if r.isNil() {
		return false
	}
	for _, q := range explainLits(s, r, l) {
		if q == l {
			continue
		}
		v := q.Var()
		if s.levelOf(v) == 0 || seen[v] {
			continue
		}
		if s.ccMin != CCMinRecursive || !s.litRedundant(q, seen) {
			return false
		}
	}
	return true
}

// bumpVarActivity applies the VSIDS bump-and-decay update to v, rescaling
// every activity (and the increment itself) if it would otherwise
// overflow, and reheapifying v's position.
func (s *Solver) bumpVarActivity(v Var) {
	s.vars.activity[v] += s.varActInc
	if s.vars.activity[v] > 1e100 {
		for i := range s.vars.activity {
			s.vars.activity[i] *= 1e-100
		}
		s.varActInc *= 1e-100
	}
	if s.order.contains(int(v)) {
		s.order.decrease(int(v))
	}
}

// decayVarActivity grows the bump increment instead of shrinking every
// activity, the standard VSIDS trick for an O(1) decay.
func (s *Solver) decayVarActivity() {
	s.varActInc /= s.varDecay
}

// bumpClauseActivity applies clause-activity bump-and-decay, mirroring
// bumpVarActivity, to drive activity-based reduceDB ordering.
func (s *Solver) bumpClauseActivity(c *Clause) {
	c.activity += s.clauseActInc
	if c.activity > 1e20 {
		for _, c2 := range s.wl.clauses {
			c2.activity *= 1e-20
		}
		s.clauseActInc *= 1e-20
	}
}

func (s *Solver) decayClauseActivity() {
	s.clauseActInc /= s.clauseDecay
}
