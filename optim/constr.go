// Package optim builds weighted MaxSAT / pseudo-boolean optimization
// problems over named boolean variables, merging the teacher's maxsat
// and optim facades into one: callers name their variables as strings
// instead of pre-allocating solver.Var values, and constraints are
// either hard (must hold) or soft (violating one costs its weight).
package optim

// Lit is a literal over a named variable, the same shape as the
// teacher's maxsat.Lit.
type Lit struct {
	Name    string
	Negated bool
}

// Pos returns the positive literal for name.
func Pos(name string) Lit { return Lit{Name: name} }

// Neg returns the negative literal for name.
func Neg(name string) Lit { return Lit{Name: name, Negated: true} }

// Constr is one clause- or PB-shaped constraint, hard if Weight is 0.
type Constr struct {
	Lits    []Lit
	Coeffs  []int // nil means every literal has weight 1 (a plain clause/cardinality constraint)
	AtLeast int
	Weight  int
}

// HardClause asserts that at least one of lits must be true.
func HardClause(lits ...Lit) Constr {
	return Constr{Lits: lits, AtLeast: 1}
}

// SoftClause asserts the same disjunction, but violating it only costs
// weight instead of being forbidden outright.
func SoftClause(weight int, lits ...Lit) Constr {
	return Constr{Lits: lits, AtLeast: 1, Weight: weight}
}

// WeightedClause is an alias for SoftClause kept for parity with the
// PB constructors below.
func WeightedClause(weight int, lits ...Lit) Constr {
	return SoftClause(weight, lits...)
}

// HardPBConstr asserts Σ coeffs[i]*lits[i] >= atLeast.
func HardPBConstr(lits []Lit, coeffs []int, atLeast int) Constr {
	return Constr{Lits: lits, Coeffs: coeffs, AtLeast: atLeast}
}

// SoftPBConstr is the soft counterpart of HardPBConstr.
func SoftPBConstr(weight int, lits []Lit, coeffs []int, atLeast int) Constr {
	return Constr{Lits: lits, Coeffs: coeffs, AtLeast: atLeast, Weight: weight}
}

// WeightedPBConstr is an alias for SoftPBConstr.
func WeightedPBConstr(weight int, lits []Lit, coeffs []int, atLeast int) Constr {
	return SoftPBConstr(weight, lits, coeffs, atLeast)
}
