package solver

import (
	"context"
	"math/rand"

	"github.com/pkg/errors"
)

// Solver is a CDCL search engine over a set of variables, propositional
// clauses and pseudo-Boolean constraints (C1-C6). The zero value is not
// usable; construct one with New.
type Solver struct {
	vars  varState
	trail trail
	wl    *watchLists
	pbWatches *pbWatchLists
	order *varHeap
	seen  []bool

	pbHandler   PBHandlerKind
	ccMin       CCMinLevel
	phaseSaving bool
	subsumeFwd  bool
	subsumeBwd  bool

	varActInc    float64
	varDecay     float64
	clauseActInc float32
	clauseDecay  float32

	restarts      *restartScheduler
	nbMaxLearnts  int
	learntSizeInc int

	randFreq float64
	rng      *rand.Rand

	logger     Logger
	modelCheck bool

	Stats Stats
	model Model
	status Status

	solving bool
}

// New returns an empty Solver, ready to accept variables and constraints.
func New() *Solver {
	s := &Solver{
		wl:            newWatchLists(0),
		pbWatches:     newPBWatchLists(0),
		order:         newVarHeap(nil),
		varActInc:     1,
		varDecay:      defaultVarDecay,
		clauseActInc:  1,
		clauseDecay:   defaultClauseDecay,
		restarts:      newRestartScheduler(),
		nbMaxLearnts:  defaultLearntSizeFirst,
		learntSizeInc: defaultLearntSizeInc,
		phaseSaving:   true,
		status:        Indet,
	}
	return s
}

// growTo ensures the solver has room for n variables (0-based), extending
// every struct-of-arrays slice in lockstep and inserting the newly
// created variables into the VSIDS heap.
func (s *Solver) growTo(n int) {
	have := s.vars.numVars()
	if n <= have {
		return
	}
	s.vars.growVars(n - have)
	s.wl.growVars(n)
	s.pbWatches.growVars(n)
	s.order.activity = s.vars.activity
	for v := have; v < n; v++ {
		s.order.insert(v)
	}
}

// NewVar allocates and returns a fresh variable.
func (s *Solver) NewVar() Var {
	v := Var(s.vars.numVars())
	s.growTo(int(v) + 1)
	return v
}

// NewVars allocates n fresh variables and returns them in allocation
// order.
func (s *Solver) NewVars(n int) []Var {
	start := s.vars.numVars()
	s.growTo(start + n)
	vs := make([]Var, n)
	for i := range vs {
		vs[i] = Var(start + i)
	}
	return vs
}

// ResizeVarCapacity makes sure at least n variables exist, allocating the
// missing ones (Var NbVars() up to n-1) exactly as NewVars would; it never
// removes variables.
func (s *Solver) ResizeVarCapacity(n int) { s.growTo(n) }

// NbVars returns the number of variables allocated so far.
func (s *Solver) NbVars() int { return s.vars.numVars() }

func simplifyClauseLits(lits []Lit) (out []Lit, tautology bool) {
	seen := make(map[Lit]bool, len(lits))
	out = make([]Lit, 0, len(lits))
	for _, l := range lits {
		if seen[l.Negation()] {
			return nil, true
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out, false
}

// AddClause asserts the disjunction of lits. Calling it with no literals at
// all is a caller error (an empty clause isn't a contradiction being
// asserted, there's simply nothing to assert) and returns ErrEmptyClause. A
// tautological clause (one containing both a literal and its negation) is
// silently dropped; a unit clause is enqueued as a root-level fact
// immediately. AddClause may be called before the first Solve/SolveContext
// or between successive solves; it runs no propagation itself, so the
// consequences of a unit clause are derived at the start of the next solve.
func (s *Solver) AddClause(lits ...Lit) error {
	if len(lits) == 0 {
		return ErrEmptyClause
	}
	if err := s.checkLits(lits); err != nil {
		return err
	}
	out, taut := simplifyClauseLits(lits)
	if taut {
		return nil
	}
	if len(out) == 1 {
		if !s.enqueue(out[0], reasonRef{}) {
			s.status = Unsat
		}
		return nil
	}
	if s.subsumeFwd || s.subsumeBwd {
		if s.applySubsumption(out) {
			return nil
		}
	}
	s.wl.add(newClause(out))
	return nil
}

// addPBConstraint validates and registers c with the active PB
// propagation handler.
func (s *Solver) addPBConstraint(c *PBConstraint) error {
	lits := make([]Lit, len(c.terms))
	for i, t := range c.terms {
		lits[i] = t.Lit
	}
	if err := s.checkLits(lits); err != nil {
		return err
	}
	if c.hasSel {
		if err := s.checkLits([]Lit{c.selector}); err != nil {
			return err
		}
	}
	if c.k <= 0 {
		return nil // trivially satisfied
	}
	if !c.hasSel && c.k > c.WeightSum() {
		s.status = Unsat
		return nil
	}
	s.registerPB(c)
	return nil
}

// AddPBAtLeast asserts AtLeast(lits, n).
func (s *Solver) AddPBAtLeast(lits []Lit, n int) error { return s.addPBConstraint(AtLeast(lits, n)) }

// AddPBAtMost asserts AtMost(lits, n).
func (s *Solver) AddPBAtMost(lits []Lit, n int) error { return s.addPBConstraint(AtMost(lits, n)) }

// AddPBExactly asserts both halves of Exactly(lits, n).
func (s *Solver) AddPBExactly(lits []Lit, n int) error {
	for _, c := range Exactly(lits, n) {
		if err := s.addPBConstraint(c); err != nil {
			return err
		}
	}
	return nil
}

// AddPBGtEq asserts GtEq(lits, coeffs, n).
func (s *Solver) AddPBGtEq(lits []Lit, coeffs []int, n int) error {
	if len(lits) != len(coeffs) {
		return ErrMalformedPB
	}
	return s.addPBConstraint(GtEq(lits, coeffs, n))
}

// AddPBLtEq asserts LtEq(lits, coeffs, n).
func (s *Solver) AddPBLtEq(lits []Lit, coeffs []int, n int) error {
	if len(lits) != len(coeffs) {
		return ErrMalformedPB
	}
	return s.addPBConstraint(LtEq(lits, coeffs, n))
}

// AddPBEq asserts both halves of EqConstraints(lits, coeffs, n).
func (s *Solver) AddPBEq(lits []Lit, coeffs []int, n int) error {
	if len(lits) != len(coeffs) {
		return ErrMalformedPB
	}
	for _, c := range EqConstraints(lits, coeffs, n) {
		if err := s.addPBConstraint(c); err != nil {
			return err
		}
	}
	return nil
}

// AddSoftPB registers c (built with AtLeast/GtEq/etc.) as enforced only
// while sel is true.
func (s *Solver) AddSoftPB(c *PBConstraint, sel Lit) error {
	return s.addPBConstraint(c.WithSelector(sel))
}

// GetModel returns the satisfying assignment found by the most recent
// Solve call, valid only once that call returned Sat.
func (s *Solver) GetModel() Model { return s.model }

// Status returns the outcome of the most recent Solve call. An Unsat that
// SolveWith reports because of its assumptions is not recorded, so Status
// then still reports the earlier outcome.
func (s *Solver) Status() Status { return s.status }

// Solve runs the search to completion with no assumptions and no
// cancellation.
func (s *Solver) Solve() Status { return s.SolveContext(context.Background()) }

// SolveWith runs the search under the given assumed literals (C6):
// assumptions are treated as forced root-of-this-call decisions. If they
// are immediately contradictory, SolveWith returns Unsat without
// touching the learnt clause database.
func (s *Solver) SolveWith(ctx context.Context, assumptions []Lit) Status {
	return s.solve(ctx, assumptions)
}

// SolveContext runs the search with no assumptions, returning Unknown if
// ctx is cancelled before a result is reached.
func (s *Solver) SolveContext(ctx context.Context) Status {
	return s.solve(ctx, nil)
}

func (s *Solver) solve(ctx context.Context, assumptions []Lit) Status {
	if s.solving {
		panic(errors.Wrap(ErrSolverClosed, "Solve"))
	}
	s.solving = true
	defer func() { s.solving = false }()

	if s.status == Unsat {
		return Unsat
	}
	if conflict := s.propagate(); !conflict.isNil() {
		s.status = Unsat
		return Unsat
	}

	for _, a := range assumptions {
		if s.litStatus(a) == Unsat {
			return Unsat
		}
	}

	status := s.search(ctx, assumptions)
	if status != Unsat {
		s.status = status
	}
	if status == Sat {
		s.model = s.extractModel()
		if s.modelCheck {
			s.checkModel(s.model)
		}
	}
	s.undoUntil(0)
	return status
}

// checkModel panics if m does not actually satisfy every clause and PB
// constraint known to the solver. Only called when SetModelCheck(true) is
// in effect.
func (s *Solver) checkModel(m Model) {
	for _, c := range s.wl.clauses {
		if !c.Eval(m) {
			panic(errors.Errorf("model check failed: clause %q not satisfied", c.CNF()))
		}
	}
	for _, c := range s.pbWatches.all {
		if !c.Eval(m) {
			panic(errors.Errorf("model check failed: PB constraint %q not satisfied", c.PBString()))
		}
	}
}

func (s *Solver) extractModel() Model {
	m := make(Model, s.vars.numVars())
	for v := 0; v < len(m); v++ {
		m[v] = s.vars.assign[v] == isTrue
	}
	return m
}

// search is the main CDCL loop (C2): decide, propagate, and on conflict
// analyze-and-backjump, restarting and reducing the learnt database on
// their own schedules, until every variable is assigned (Sat) or the
// root level itself conflicts (Unsat), or ctx is cancelled (Unknown).
func (s *Solver) search(ctx context.Context, assumptions []Lit) Status {
	conflictsSinceRestart := 0
	restartLimit := s.restarts.nextLimit()

	for {
		if ctx.Err() != nil {
			return Unknown
		}
		conflict := s.propagate()
		if !conflict.isNil() {
			s.Stats.NbConflicts++
			conflictsSinceRestart++
			if conflict.pb != nil {
				s.Stats.NbLearntPB++
			}
			if s.trail.currentLevel() == 0 {
				s.status = Unsat
				return Unsat
			}
			learnt, backLevel := s.analyze(conflict)
			s.decayVarActivity()
			s.decayClauseActivity()
			s.undoUntil(backLevel)
			s.recordLearnt(learnt)
			continue
		}

		if s.trail.currentLevel() >= len(assumptions) &&
			s.restarts.strategy == ArminRestart && s.restarts.mustRestart() {
			s.undoUntil(0)
			s.restarts.onRestart()
			conflictsSinceRestart = 0
			s.Stats.NbRestarts++
			s.logEvent("restart", map[string]interface{}{"nbRestarts": s.Stats.NbRestarts})
			continue
		}
		if s.restarts.strategy != ArminRestart && conflictsSinceRestart >= restartLimit {
			s.undoUntil(0)
			s.restarts.onRestart()
			conflictsSinceRestart = 0
			restartLimit = s.restarts.nextLimit()
			s.Stats.NbRestarts++
			s.logEvent("restart", map[string]interface{}{"nbRestarts": s.Stats.NbRestarts})
			continue
		}

		if s.numLearntClauses() >= s.nbMaxLearnts {
			s.reduceDB()
			s.logEvent("reduce_db", map[string]interface{}{"nbLearnts": s.numLearntClauses()})
		}

		lit, ok := s.pickDecisionLiteral(assumptions)
		if !ok {
			return Sat
		}
		if s.trail.currentLevel() < len(assumptions) && s.litStatus(lit) == Unsat {
			return Unsat
		}
		s.decide(lit)
	}
}

func (s *Solver) numLearntClauses() int {
	n := 0
	for _, c := range s.wl.clauses {
		if c.Learnt() {
			n++
		}
	}
	return n
}

// pickDecisionLiteral returns the next literal to branch on: the next
// unsatisfied assumption if any remain, otherwise the highest-VSIDS-
// activity unassigned variable (or a uniformly random one, at randFreq),
// oriented by phase saving or the caller's preferred polarity. ok is
// false when every variable is already assigned.
func (s *Solver) pickDecisionLiteral(assumptions []Lit) (Lit, bool) {
	lvl := s.trail.currentLevel()
	if lvl < len(assumptions) {
		return assumptions[lvl], true
	}
	var v Var
	found := false
	if s.rng != nil && s.randFreq > 0 && s.rng.Float64() < s.randFreq && !s.order.empty() {
		candidates := make([]int, 0, len(s.order.content))
		for _, n := range s.order.content {
			if s.vars.assign[n] == unassigned {
				candidates = append(candidates, n)
			}
		}
		if len(candidates) > 0 {
			v = Var(candidates[s.rng.Intn(len(candidates))])
			found = true
		}
	}
	for !found {
		if s.order.empty() {
			return 0, false
		}
		cand := Var(s.order.removeMin())
		if s.vars.assign[cand] != unassigned {
			continue
		}
		v = cand
		found = true
	}
	return litOf(v, s.wantNegative(v)), true
}

// wantNegative orients a fresh decision on v: the saved polarity from its
// last assignment (if phase saving is on and v has been assigned before)
// takes priority, then the caller's SetPreferredPolarity hint, then
// positive. This makes a preferred-polarity hint apply only up to v's first
// assignment, as SetPreferredPolarity documents: phase saving, once it has
// something to save, shadows it on every decision after that.
func (s *Solver) wantNegative(v Var) bool {
	if s.phaseSaving && s.vars.assigned[v] {
		return s.vars.polarity[v]
	}
	if s.vars.preferred[v] >= 0 {
		return s.vars.preferred[v] == 0
	}
	return false
}

// recordLearnt finalizes a learnt clause: as a unit, it is enqueued
// directly at the root level; otherwise it is watched and its first two
// literals are the two highest-level ones, asserting the UIP immediately.
func (s *Solver) recordLearnt(lits []Lit) {
	s.Stats.NbLearntClauses++
	if len(lits) == 1 {
		s.enqueue(lits[0], reasonRef{})
		return
	}
	c := newLearntClause(lits)
	c.computeLBD(s.levelOf)
	s.restarts.onLearnt(c.lbd())
	s.bumpClauseActivity(c)
	s.placeAssertingLiterals(c)
	s.wl.add(c)
	s.enqueue(c.Get(0), reasonRef{clause: c})
}

// placeAssertingLiterals ensures lits[0] is the asserting (now-unit)
// literal and lits[1] is the literal with the highest decision level
// among the rest, the pair MiniSAT watches on a freshly learnt clause.
func (s *Solver) placeAssertingLiterals(c *Clause) {
	maxIdx, maxLevel := 1, -1
	for i := 1; i < c.Len(); i++ {
		if lvl := s.levelOf(c.Get(i).Var()); lvl > maxLevel {
			maxLevel, maxIdx = lvl, i
		}
	}
	c.swap(1, maxIdx)
}
