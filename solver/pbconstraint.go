package solver

import (
	"fmt"
	"strings"
)

// A PBTerm is one (coefficient, literal) pair of a pseudo-Boolean
// constraint. Coefficients are always stored positive; a negative
// coefficient supplied by a caller is normalized away by negating the
// literal and adjusting the threshold (see newPBConstraint).
type PBTerm struct {
	Coeff int
	Lit   Lit
}

// PBConstraint asserts that the weighted sum of its terms (each term
// contributing Coeff when its literal is true, 0 otherwise) is at least
// K. Equalities and at-most constraints are represented as one or two
// PBConstraint values by the package-level helpers below; the solver core
// only ever sees the "at least" form.
type PBConstraint struct {
	terms    []PBTerm
	k        int
	selector Lit // Indet (litNone) unless this is a soft constraint
	hasSel   bool
	learnt   bool
	locked   bool
	activity float32

	// watch state (a *pbRuntime), set up by registerPB when the constraint
	// is registered; opaque to everything outside pbpropagate.go.
	watchData interface{}
}

// litNone is a sentinel for "no selector literal".
const litNone Lit = -1

// newPBConstraint builds a PBConstraint, normalizing negative
// coefficients: a term -c*l is rewritten c*(¬l), folding -c into k.
func newPBConstraint(lits []Lit, coeffs []int, k int) *PBConstraint {
	terms := make([]PBTerm, len(lits))
	for i, l := range lits {
		c := 1
		if coeffs != nil {
			c = coeffs[i]
		}
		if c < 0 {
			terms[i] = PBTerm{Coeff: -c, Lit: l.Negation()}
			k += -c
		} else {
			terms[i] = PBTerm{Coeff: c, Lit: l}
		}
	}
	return &PBConstraint{terms: terms, k: k, selector: litNone}
}

// Len returns the number of terms in the constraint.
func (c *PBConstraint) Len() int { return len(c.terms) }

// Term returns the ith term.
func (c *PBConstraint) Term(i int) PBTerm { return c.terms[i] }

// K returns the constraint's threshold.
func (c *PBConstraint) K() int { return c.k }

// Slack returns Σ(coeff of true-or-unassigned terms) - k, given a
// function reporting whether a literal is currently falsified.
func (c *PBConstraint) Slack(falsified func(Lit) bool) int {
	sum := 0
	for _, t := range c.terms {
		if !falsified(t.Lit) {
			sum += t.Coeff
		}
	}
	return sum - c.k
}

// WeightSum returns the sum of all term coefficients.
func (c *PBConstraint) WeightSum() int {
	sum := 0
	for _, t := range c.terms {
		sum += t.Coeff
	}
	return sum
}

// MaxCoeff returns the largest coefficient among the terms, or 0 if the
// constraint has no terms.
func (c *PBConstraint) MaxCoeff() int {
	max := 0
	for _, t := range c.terms {
		if t.Coeff > max {
			max = t.Coeff
		}
	}
	return max
}

// PBString renders the constraint in OPB-like notation, e.g.
// "3 x1 +2 ~x2 +1 x3 >= 4 ;".
func (c *PBConstraint) PBString() string {
	parts := make([]string, len(c.terms))
	for i, t := range c.terms {
		sign := ""
		v := t.Lit.Var()
		name := fmt.Sprintf("x%d", v+1)
		if !t.Lit.IsPositive() {
			sign = "~"
		}
		parts[i] = fmt.Sprintf("%d %s%s", t.Coeff, sign, name)
	}
	return fmt.Sprintf("%s >= %d ;", strings.Join(parts, " +"), c.k)
}

// Eval reports whether c holds under m: vacuously true if c has a
// selector that is false under m, otherwise true iff the weighted sum of
// m-true terms is at least K().
func (c *PBConstraint) Eval(m Model) bool {
	if c.hasSel && !m.Value(c.selector) {
		return true
	}
	sum := 0
	for _, t := range c.terms {
		if m.Value(t.Lit) {
			sum += t.Coeff
		}
	}
	return sum >= c.k
}

// WithSelector turns c into a soft constraint: c is only enforced while
// sel is true, and is vacuously satisfied otherwise. Returns c for
// chaining.
func (c *PBConstraint) WithSelector(sel Lit) *PBConstraint {
	c.selector = sel
	c.hasSel = true
	return c
}

// Selector returns the constraint's selector literal and whether it has
// one.
func (c *PBConstraint) Selector() (Lit, bool) { return c.selector, c.hasSel }

func (c *PBConstraint) lock()         { c.locked = true }
func (c *PBConstraint) unlock()       { c.locked = false }
func (c *PBConstraint) isLocked() bool { return c.locked }

// AtLeast returns a PB constraint stating that at least n of lits must be
// true.
func AtLeast(lits []Lit, n int) *PBConstraint {
	return newPBConstraint(lits, nil, n)
}

// negateLits returns the negation of every literal in lits, the
// transform AtMost and LtEq both use to flip an upper-bound constraint
// into the solver's native "at least" form.
func negateLits(lits []Lit) []Lit {
	neg := make([]Lit, len(lits))
	for i, l := range lits {
		neg[i] = l.Negation()
	}
	return neg
}

// AtMost returns a PB constraint stating that at most n of lits may be
// true, expressed as an "at least" constraint over negated literals.
func AtMost(lits []Lit, n int) *PBConstraint {
	return newPBConstraint(negateLits(lits), nil, len(lits)-n)
}

// Exactly returns the two PB constraints whose conjunction states that
// exactly n of lits must be true.
func Exactly(lits []Lit, n int) []*PBConstraint {
	return []*PBConstraint{AtLeast(lits, n), AtMost(lits, n)}
}

// GtEq returns a PB constraint stating Σ coeffs[i]*lits[i] >= n.
func GtEq(lits []Lit, coeffs []int, n int) *PBConstraint {
	return newPBConstraint(lits, coeffs, n)
}

// LtEq returns a PB constraint stating Σ coeffs[i]*lits[i] <= n, expressed
// as an "at least" constraint by negating every literal.
func LtEq(lits []Lit, coeffs []int, n int) *PBConstraint {
	sum := 0
	for _, c := range coeffs {
		sum += c
	}
	return newPBConstraint(negateLits(lits), coeffs, sum-n)
}

// EqConstraints returns the two PB constraints whose conjunction states
// Σ coeffs[i]*lits[i] == n, dropping whichever of the two is trivially
// satisfied (threshold <= 0) rather than asserting a no-op.
func EqConstraints(lits []Lit, coeffs []int, n int) []*PBConstraint {
	halves := [2]*PBConstraint{
		GtEq(append([]Lit(nil), lits...), append([]int(nil), coeffs...), n),
		LtEq(lits, coeffs, n),
	}
	res := make([]*PBConstraint, 0, 2)
	for _, half := range halves {
		if half.k > 0 {
			res = append(res, half)
		}
	}
	return res
}
