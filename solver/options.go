package solver

import "math/rand"

const (
	defaultVarDecay    = 0.999
	defaultClauseDecay = 0.999
)

// SetPBHandler selects the runtime representation used for pseudo-boolean
// propagation (C4.3). It must be called before any PB constraint is
// added; changing it mid-search is not supported.
func (s *Solver) SetPBHandler(kind PBHandlerKind) { s.pbHandler = kind }

// SetRestartStrategy picks the schedule used to decide when to restart
// (C4.5).
func (s *Solver) SetRestartStrategy(strategy RestartStrategy) {
	s.restarts.strategy = strategy
}

// SetRestartParams overrides the first restart's conflict budget (used by
// MiniSATRestart and LubyRestart) and the geometric growth factor (used by
// MiniSATRestart only; LubyRestart scales first by the Luby sequence).
func (s *Solver) SetRestartParams(first int, inc float64) {
	s.restarts.first = first
	s.restarts.inc = inc
}

// SetLearntSizeParams overrides when reduceDB first kicks in and by how
// much the threshold grows after each pass (C4.6).
func (s *Solver) SetLearntSizeParams(first, inc int) {
	s.nbMaxLearnts = first
	s.learntSizeInc = inc
}

// SetCCMin selects how aggressively learnt clauses are minimized after
// 1-UIP derivation (C4.4).
func (s *Solver) SetCCMin(level CCMinLevel) { s.ccMin = level }

// SetPhaseSaving toggles whether undoUntil restores a variable's last
// assigned polarity as its preferred next decision, versus always
// defaulting to the same polarity.
func (s *Solver) SetPhaseSaving(enabled bool) { s.phaseSaving = enabled }

// SetPreferredPolarity hints that v should be tried as want (true for
// positive) when it is first decided, overriding phase saving until v has
// actually been assigned once.
func (s *Solver) SetPreferredPolarity(v Var, want bool) {
	pref := int8(0)
	if want {
		pref = 1
	}
	s.vars.preferred[v] = pref
}

// SetSubsumption toggles forward and backward subsumption checking against
// the original clauses, applied as each new clause is added via AddClause
// (C4.6): fwd drops a newly added clause if an existing one already
// subsumes it, bwd removes existing clauses subsumed by the newly added
// one. Either can be enabled independently; both default to off.
func (s *Solver) SetSubsumption(fwd, bwd bool) {
	s.subsumeFwd = fwd
	s.subsumeBwd = bwd
}

// SetVarDecay overrides the VSIDS decay factor (must be in (0,1)).
func (s *Solver) SetVarDecay(decay float64) { s.varDecay = decay }

// SetClauseDecay overrides the learnt-clause activity decay factor.
func (s *Solver) SetClauseDecay(decay float32) { s.clauseDecay = decay }

// SetLogger installs l as the sink for restart and reduceDB events;
// passing nil disables logging.
func (s *Solver) SetLogger(l Logger) { s.logger = l }

// SetModelCheck toggles an expensive post-solve assertion, meant for test
// suites only: once enabled, every successful Solve/SolveWith/SolveContext
// call re-evaluates every registered clause and PB constraint against the
// model it is about to return, panicking if any one of them does not
// actually hold. It is O(total literals) per call and off by default.
func (s *Solver) SetModelCheck(enabled bool) { s.modelCheck = enabled }

// SetRandomFreq sets the fraction (0 to 1) of decisions made by picking a
// uniformly random unassigned variable instead of following VSIDS, seeded
// from seed for reproducibility. The polarity of such a decision is chosen
// the same way as for any other decision (phase saving, then the preferred
// polarity, then positive).
func (s *Solver) SetRandomFreq(freq float64, seed int64) {
	s.randFreq = freq
	s.rng = rand.New(rand.NewSource(seed))
}
