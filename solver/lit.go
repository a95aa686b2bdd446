package solver

import "fmt"

// Status is the status of a problem, a clause or a constraint at a given
// moment of the search.
type Status byte

const (
	// Indet means the problem is not proven sat or unsat yet.
	Indet = Status(iota)
	// Sat means the problem or constraint is satisfied.
	Sat
	// Unsat means the problem or constraint is unsatisfied.
	Unsat
	// Unknown means the search was interrupted before a model was found and
	// before unsatisfiability was proven.
	Unknown
	// Optimum means an optimizer found a model and proved no better one
	// exists, as opposed to Sat on its own, which an optimizer also
	// returns for a feasible-but-not-yet-proven-optimal model (e.g. one
	// found right before a context deadline cuts the search short).
	Optimum
)

func (s Status) String() string {
	switch s {
	case Indet:
		return "INDETERMINATE"
	case Sat:
		return "SATISFIABLE"
	case Unsat:
		return "UNSATISFIABLE"
	case Unknown:
		return "UNKNOWN"
	case Optimum:
		return "OPTIMUM FOUND"
	default:
		return "INVALID"
	}
}

// watchStatus is the local result of testing a constraint against the
// current trail; it is distinct from Status because propagation also
// needs to distinguish "exactly one literal left" from "several left".
type watchStatus byte

const (
	watchSat watchStatus = iota
	watchUnsat
	watchUnit
	watchMany
)

// Var is a variable identifier. Variables are allocated sequentially
// starting at 0 by Solver.NewVar; variable v corresponds to the
// caller-facing 1-based identifier v+1.
type Var int32

// Lit is a signed reference to a Var: the variable is recoverable by right
// shifting away the polarity bit, which is stored in the low bit so that
// negation is a single XOR.
type Lit int32

// litOf builds the Lit for variable v with the given polarity: signed is
// true for the negative literal.
func litOf(v Var, signed bool) Lit {
	if signed {
		return Lit(v<<1 | 1)
	}
	return Lit(v << 1)
}

// Pos returns the positive literal for v.
func (v Var) Pos() Lit { return Lit(v << 1) }

// Neg returns the negative literal for v.
func (v Var) Neg() Lit { return Lit(v<<1 | 1) }

// IntToLit converts a DIMACS-style signed integer literal (no 0) to a Lit.
func IntToLit(i int32) Lit {
	if i < 0 {
		return litOf(Var(-i-1), true)
	}
	return litOf(Var(i-1), false)
}

// IntToVar converts a 1-based DIMACS variable identifier to a Var.
func IntToVar(i int32) Var { return Var(i - 1) }

// Var returns the variable referenced by l.
func (l Lit) Var() Var { return Var(l >> 1) }

// IsPositive is true iff l is the positive literal of its variable.
func (l Lit) IsPositive() bool { return l&1 == 0 }

// Negation returns the literal for the same variable with the opposite
// polarity.
func (l Lit) Negation() Lit { return l ^ 1 }

// Int returns the DIMACS-style signed integer for l.
func (l Lit) Int() int32 {
	n := int32(l>>1) + 1
	if !l.IsPositive() {
		return -n
	}
	return n
}

func (l Lit) String() string {
	return fmt.Sprintf("%d", l.Int())
}

// Model is a binding for every variable known to a Solver, indexed by Var.
type Model []bool

// Value returns the binding of l under m.
func (m Model) Value(l Lit) bool {
	return m[l.Var()] == l.IsPositive()
}
