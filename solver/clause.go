package solver

import (
	"fmt"
	"strings"
)

// A Clause is a disjunction of at least two literals. Clauses added by the
// caller are never deleted; clauses learned during search may be removed
// by reduceDB unless they are currently locked as a reason.
type Clause struct {
	lits     []Lit
	learnt   bool
	locked   bool
	lbdVal   int32
	activity float32
}

// newClause builds a non-learnt clause from lits. lits must have length
// >= 2; callers are expected to have already collapsed unit/empty clauses.
func newClause(lits []Lit) *Clause {
	return &Clause{lits: lits}
}

// newLearntClause builds a clause flagged as learnt, with its activity
// initialized to zero; computeLBD must be called once lits are final.
func newLearntClause(lits []Lit) *Clause {
	return &Clause{lits: lits, learnt: true}
}

// Len returns the number of literals in the clause.
func (c *Clause) Len() int { return len(c.lits) }

// Get returns the ith literal of the clause.
func (c *Clause) Get(i int) Lit { return c.lits[i] }

// set sets the ith literal of the clause.
func (c *Clause) set(i int, l Lit) { c.lits[i] = l }

// swap exchanges the ith and jth literals.
func (c *Clause) swap(i, j int) { c.lits[i], c.lits[j] = c.lits[j], c.lits[i] }

// Learnt reports whether c was derived by conflict analysis rather than
// added directly by the caller.
func (c *Clause) Learnt() bool { return c.learnt }

func (c *Clause) lock()         { c.locked = true }
func (c *Clause) unlock()       { c.locked = false }
func (c *Clause) isLocked() bool { return c.locked }

// lbd returns the clause's Literal Block Distance, valid only for learnt
// clauses.
func (c *Clause) lbd() int { return int(c.lbdVal) }

// computeLBD sets c's LBD, i.e. the number of distinct decision levels
// represented among its literals.
func (c *Clause) computeLBD(level func(Var) int) {
	seen := make(map[int]struct{}, c.Len())
	for _, l := range c.lits {
		seen[level(l.Var())] = struct{}{}
	}
	c.lbdVal = int32(len(seen))
}

// Eval reports whether c is satisfied under m.
func (c *Clause) Eval(m Model) bool {
	for _, l := range c.lits {
		if m.Value(l) {
			return true
		}
	}
	return false
}

// CNF renders the clause as a DIMACS clause line (without the trailing
// newline).
func (c *Clause) CNF() string {
	parts := make([]string, len(c.lits)+1)
	for i, l := range c.lits {
		parts[i] = fmt.Sprintf("%d", l.Int())
	}
	parts[len(c.lits)] = "0"
	return strings.Join(parts, " ")
}
