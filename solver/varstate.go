package solver

// assignment is the ternary value of a variable.
type assignment int8

const (
	unassigned assignment = 0
	isTrue     assignment = 1
	isFalse    assignment = 2
)

func (a assignment) status(signed bool) Status {
	switch {
	case a == unassigned:
		return Indet
	case (a == isTrue) != signed:
		return Sat
	default:
		return Unsat
	}
}

// reasonRef is a tagged reference to the constraint that forced a
// variable's assignment, or the zero value if the variable was never
// assigned or was assigned by a decision.
type reasonRef struct {
	clause *Clause
	pb     *PBConstraint
}

func (r reasonRef) isNil() bool { return r.clause == nil && r.pb == nil }

func (r reasonRef) lock() {
	if r.clause != nil {
		r.clause.lock()
	} else if r.pb != nil {
		r.pb.lock()
	}
}

func (r reasonRef) unlock() {
	if r.clause != nil {
		r.clause.unlock()
	} else if r.pb != nil {
		r.pb.unlock()
	}
}

// varState is the struct-of-arrays holding every per-variable field named
// in spec.md §3. All slices are grown in lockstep by growVars, which is
// the only place that appends to them.
type varState struct {
	assign    []assignment
	level     []int32
	reason    []reasonRef
	activity  []float64
	polarity  []bool  // phase-saving: last assigned polarity, true means negative
	preferred []int8  // caller hint: -1 unset, 0 want-false, 1 want-true
	assigned  []bool  // has this var ever been assigned (for phase saving vs. preferred priority)
}

func (vs *varState) growVars(n int) {
	vs.assign = append(vs.assign, make([]assignment, n)...)
	vs.level = append(vs.level, make([]int32, n)...)
	vs.reason = append(vs.reason, make([]reasonRef, n)...)
	vs.activity = append(vs.activity, make([]float64, n)...)
	vs.polarity = append(vs.polarity, make([]bool, n)...)
	vs.assigned = append(vs.assigned, make([]bool, n)...)
	pref := make([]int8, n)
	for i := range pref {
		pref[i] = -1
	}
	vs.preferred = append(vs.preferred, pref...)
}

func (vs *varState) numVars() int { return len(vs.assign) }
