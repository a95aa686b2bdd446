// Package tseitin turns conjunctions and pseudo-boolean constraints into
// single literals that can stand in for them inside a larger formula,
// following the teacher's bf package's style of Tseitin-encoding
// compound formulas but narrowed to exactly the two shapes spec.md §4.6
// calls for: a conjunction of literals, and a PB constraint.
//
// The Encoder never owns its solver: it allocates fresh variables and
// clauses on a caller-supplied *solver.Solver and leaves the caller
// responsible for eventually calling Solve.
package tseitin

import (
	"sort"
	"strconv"
	"strings"

	"github.com/satkit/satkit/solver"
)

// Encoder reifies conjunctions and PB constraints into fresh Boolean
// variables, caching conjunctions by their canonical (sorted,
// deduplicated) literal set and PB constraints by their PBString (terms
// in order plus threshold), so that encoding the same conjunction or
// constraint twice returns the same literal instead of allocating new
// clauses.
type Encoder struct {
	s       *solver.Solver
	conjCache map[string]solver.Lit
	pbCache   map[string]solver.Lit
	trueLit   solver.Lit
	haveTrue  bool
}

// NewEncoder returns an Encoder that allocates variables and clauses on
// s.
func NewEncoder(s *solver.Solver) *Encoder {
	return &Encoder{s: s, conjCache: make(map[string]solver.Lit), pbCache: make(map[string]solver.Lit)}
}

func canonicalKey(lits []solver.Lit) string {
	sorted := make([]solver.Lit, len(lits))
	copy(sorted, lits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	seen := make(map[solver.Lit]bool, len(sorted))
	parts := make([]string, 0, len(sorted))
	for _, l := range sorted {
		if seen[l] {
			continue
		}
		seen[l] = true
		parts = append(parts, strconv.Itoa(int(l)))
	}
	return strings.Join(parts, ",")
}

// trueLiteral returns a literal that is always true, allocating it (with
// a unit clause) the first time it is needed. EncodeConj of the empty
// conjunction and EncodePB of an always-satisfied constraint both return
// it instead of wasting a variable on a constant.
func (e *Encoder) trueLiteral() solver.Lit {
	if !e.haveTrue {
		v := e.s.NewVar()
		e.trueLit = v.Pos()
		e.s.AddClause(e.trueLit)
		e.haveTrue = true
	}
	return e.trueLit
}

// EncodeConj returns a literal equivalent to the conjunction of lits: it
// forces the literal true iff every element of lits is true. The empty
// conjunction is vacuously true.
func (e *Encoder) EncodeConj(lits []solver.Lit) solver.Lit {
	if len(lits) == 0 {
		return e.trueLiteral()
	}
	if len(lits) == 1 {
		return lits[0]
	}
	key := canonicalKey(lits)
	if l, ok := e.conjCache[key]; ok {
		return l
	}
	v := e.s.NewVar()
	y := v.Pos()
	// y -> each lits[i]
	for _, l := range lits {
		e.s.AddClause(y.Negation(), l)
	}
	// (AND lits) -> y, i.e. (OR of negations) OR y
	clause := make([]solver.Lit, 0, len(lits)+1)
	for _, l := range lits {
		clause = append(clause, l.Negation())
	}
	clause = append(clause, y)
	e.s.AddClause(clause...)
	e.conjCache[key] = y
	return y
}

// EncodePB returns a literal y equivalent to c: true iff c's weighted sum
// reaches its threshold. It adds two soft constraints: c itself guarded
// by y (so y true forces c to hold), and c's negation guarded by ¬y (so y
// false forces c to fail) — together a full biconditional between y and
// c, the PB counterpart of EncodeConj's pair of implication clauses.
func (e *Encoder) EncodePB(c *solver.PBConstraint) solver.Lit {
	if c.K() <= 0 {
		return e.trueLiteral()
	}
	lits := make([]solver.Lit, c.Len())
	coeffs := make([]int, c.Len())
	for i := 0; i < c.Len(); i++ {
		t := c.Term(i)
		lits[i] = t.Lit
		coeffs[i] = t.Coeff
	}
	key := c.PBString()
	if l, ok := e.pbCache[key]; ok {
		return l
	}
	v := e.s.NewVar()
	y := v.Pos()
	fwd := solver.GtEq(lits, coeffs, c.K())
	e.s.AddSoftPB(fwd, y)

	negLits := make([]solver.Lit, len(lits))
	for i, l := range lits {
		negLits[i] = l.Negation()
	}
	bwd := solver.GtEq(negLits, coeffs, sum(coeffs)-c.K()+1)
	e.s.AddSoftPB(bwd, y.Negation())

	e.pbCache[key] = y
	return y
}

func sum(xs []int) int {
	s := 0
	for _, x := range xs {
		s += x
	}
	return s
}
