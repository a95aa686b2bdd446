// Package intexpr layers bounded integer variables and linear
// expressions over them on top of the solver and tseitin packages (C9):
// each integer is a fixed-width bit expansion clamped by a PB
// constraint, and expressions are built by combining those bits without
// ever touching the solver directly until the expression is asserted or
// a product needs linearizing.
package intexpr

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/satkit/satkit/solver"
	"github.com/satkit/satkit/tseitin"
)

// ErrInvalidRange is returned by IntVar when hi < lo.
var ErrInvalidRange = errors.New("intexpr: hi must be >= lo")

// IntExpr is an affine expression offset + Σ terms[i].Coeff*terms[i].Lit
// over boolean literals, plus any pending bit-products introduced by Mul.
// It carries no solver state of its own; building one never allocates
// variables or clauses until a Builder method resolves a pending product
// or the expression is asserted.
type IntExpr struct {
	offset   int
	terms    []solver.PBTerm
	products []bitProduct
}

// bitProduct is a not-yet-reified product coeff*(a ∧ b) of two single
// boolean literals (spec.md §4.8: "products of 0/1 literals become their
// encoded conjunction"). Resolve/Linearize turn it into an ordinary
// solver.PBTerm via tseitin.EncodeConj.
type bitProduct struct {
	coeff int
	a, b  solver.Lit
}

// Builder allocates the bits behind IntVar and the fresh variables
// behind Guard, all on one underlying solver.
type Builder struct {
	s   *solver.Solver
	enc *tseitin.Encoder
}

// NewBuilder returns a Builder that allocates on s.
func NewBuilder(s *solver.Solver) *Builder {
	return &Builder{s: s, enc: tseitin.NewEncoder(s)}
}

// IntVar allocates a fresh bounded integer in [lo, hi] as a little-endian
// bit expansion, clamped by a PB constraint so the bits can never encode
// a value above hi-lo.
func (b *Builder) IntVar(lo, hi int) (*IntExpr, error) {
	if hi < lo {
		return nil, ErrInvalidRange
	}
	span := hi - lo
	nbits := bits.Len(uint(span))
	if nbits == 0 {
		nbits = 1
	}
	vs := b.s.NewVars(nbits)
	terms := make([]solver.PBTerm, nbits)
	lits := make([]solver.Lit, nbits)
	coeffs := make([]int, nbits)
	for i, v := range vs {
		w := 1 << i
		terms[i] = solver.PBTerm{Coeff: w, Lit: v.Pos()}
		lits[i] = v.Pos()
		coeffs[i] = w
	}
	if err := b.s.AddPBLtEq(lits, coeffs, span); err != nil {
		return nil, err
	}
	return &IntExpr{offset: lo, terms: terms}, nil
}

// Const returns the constant expression n.
func Const(n int) *IntExpr { return &IntExpr{offset: n} }

// Add returns e + o.
func (e *IntExpr) Add(o *IntExpr) *IntExpr {
	terms := make([]solver.PBTerm, 0, len(e.terms)+len(o.terms))
	terms = append(terms, e.terms...)
	terms = append(terms, o.terms...)
	products := make([]bitProduct, 0, len(e.products)+len(o.products))
	products = append(products, e.products...)
	products = append(products, o.products...)
	return (&IntExpr{offset: e.offset + o.offset, terms: terms, products: products}).Simplify()
}

// Sub returns e - o.
func (e *IntExpr) Sub(o *IntExpr) *IntExpr { return e.Add(o.ScaleConst(-1)) }

// ScaleConst returns e * k.
func (e *IntExpr) ScaleConst(k int) *IntExpr {
	terms := make([]solver.PBTerm, len(e.terms))
	for i, t := range e.terms {
		terms[i] = solver.PBTerm{Coeff: t.Coeff * k, Lit: t.Lit}
	}
	products := make([]bitProduct, len(e.products))
	for i, p := range e.products {
		products[i] = bitProduct{coeff: p.coeff * k, a: p.a, b: p.b}
	}
	return &IntExpr{offset: e.offset * k, terms: terms, products: products}
}

// Mul returns e plus the pending bit-product coeff*(a ∧ b). a and b must
// each be a literal over a single boolean variable (not an arbitrary
// IntExpr) — this layer has no adder/multiplier circuit for general
// integer products, only the bit-product case spec.md §4.8 names. The
// product is not reified into a real variable or clause until Resolve or
// Linearize runs, so building one costs nothing more than Add.
func (e *IntExpr) Mul(coeff int, a, b solver.Lit) *IntExpr {
	terms := append([]solver.PBTerm{}, e.terms...)
	products := append([]bitProduct{}, e.products...)
	products = append(products, bitProduct{coeff: coeff, a: a, b: b})
	return &IntExpr{offset: e.offset, terms: terms, products: products}
}

// Simplify merges terms that share the same literal and drops zero-
// coefficient terms, without changing e's value. Pending products are
// carried through unchanged; they only collapse into terms once resolved.
func (e *IntExpr) Simplify() *IntExpr {
	byLit := make(map[solver.Lit]int, len(e.terms))
	order := make([]solver.Lit, 0, len(e.terms))
	for _, t := range e.terms {
		if _, ok := byLit[t.Lit]; !ok {
			order = append(order, t.Lit)
		}
		byLit[t.Lit] += t.Coeff
	}
	terms := make([]solver.PBTerm, 0, len(order))
	for _, l := range order {
		if c := byLit[l]; c != 0 {
			terms = append(terms, solver.PBTerm{Coeff: c, Lit: l})
		}
	}
	return &IntExpr{offset: e.offset, terms: terms, products: append([]bitProduct{}, e.products...)}
}

// Bounds returns the minimum and maximum value e can take, treating
// every term and every pending product as independently free (ignoring
// any correlation between literals introduced by Guard or by the clamp
// constraint from IntVar). It is therefore always a safe
// over-approximation, never an exact bound once terms have been combined
// across more than one IntVar.
func (e *IntExpr) Bounds() (lo, hi int) {
	lo, hi = e.offset, e.offset
	for _, t := range e.terms {
		if t.Coeff >= 0 {
			hi += t.Coeff
		} else {
			lo += t.Coeff
		}
	}
	for _, p := range e.products {
		if p.coeff >= 0 {
			hi += p.coeff
		} else {
			lo += p.coeff
		}
	}
	return lo, hi
}

// Resolve reifies every pending bit-product in e into an ordinary
// solver.PBTerm via tseitin.EncodeConj and returns the fully linear
// result. When e has no pending products it returns e itself, without
// copying — Guard, the Assert* helpers and Linearize all call it
// before touching e.terms directly.
func (b *Builder) Resolve(e *IntExpr) *IntExpr {
	if len(e.products) == 0 {
		return e
	}
	terms := append([]solver.PBTerm{}, e.terms...)
	for _, p := range e.products {
		lit := b.enc.EncodeConj([]solver.Lit{p.a, p.b})
		terms = append(terms, solver.PBTerm{Coeff: p.coeff, Lit: lit})
	}
	return (&IntExpr{offset: e.offset, terms: terms}).Simplify()
}

// Guard returns an expression equal to e when sel is true and 0
// otherwise, by linearizing each term's product with sel through a
// Tseitin conjunction: the product of two boolean values is itself
// boolean, so reifying "sel AND term.Lit" is exactly the term's
// contribution under the guard.
func (b *Builder) Guard(e *IntExpr, sel solver.Lit) *IntExpr {
	e = b.Resolve(e)
	terms := make([]solver.PBTerm, 0, len(e.terms)+1)
	if e.offset != 0 {
		terms = append(terms, solver.PBTerm{Coeff: e.offset, Lit: sel})
	}
	for _, t := range e.terms {
		lit := b.enc.EncodeConj([]solver.Lit{sel, t.Lit})
		terms = append(terms, solver.PBTerm{Coeff: t.Coeff, Lit: lit})
	}
	return (&IntExpr{terms: terms}).Simplify()
}

func (e *IntExpr) asPB() ([]solver.Lit, []int) {
	simplified := e.Simplify()
	lits := make([]solver.Lit, len(simplified.terms))
	coeffs := make([]int, len(simplified.terms))
	for i, t := range simplified.terms {
		lits[i] = t.Lit
		coeffs[i] = t.Coeff
	}
	return lits, coeffs
}

// AssertGtEq asserts e >= value.
func (b *Builder) AssertGtEq(e *IntExpr, value int) error {
	e = b.Resolve(e)
	lits, coeffs := e.asPB()
	return b.s.AddPBGtEq(lits, coeffs, value-e.offset)
}

// AssertLtEq asserts e <= value.
func (b *Builder) AssertLtEq(e *IntExpr, value int) error {
	e = b.Resolve(e)
	lits, coeffs := e.asPB()
	return b.s.AddPBLtEq(lits, coeffs, value-e.offset)
}

// AssertEq asserts e == value.
func (b *Builder) AssertEq(e *IntExpr, value int) error {
	e = b.Resolve(e)
	lits, coeffs := e.asPB()
	return b.s.AddPBEq(lits, coeffs, value-e.offset)
}

// ErrNotBoolean is returned by Linearize when expr, once every pending
// product has been resolved, still carries more than one surviving term
// or a term with a coefficient other than 1 — i.e. it can take more than
// two distinct values and so has no single-literal representation.
var ErrNotBoolean = errors.New("intexpr: expression is not boolean-valued")

// Linearize resolves expr's pending bit-products (spec.md §4.8: "products
// of 0/1 literals become their encoded conjunction") and reports the
// result as a single literal plus a constant: expr's value is constant
// when lit is false and constant+1 when lit is true. A bare product
// (Mul's result), a single boolean variable, or a plain constant all have
// this shape; a sum combining more than one of them does not, and is
// reported as ErrNotBoolean rather than silently collapsed and wrong.
func (b *Builder) Linearize(expr *IntExpr) (lit solver.Lit, constant int, err error) {
	resolved := b.Resolve(expr)
	switch len(resolved.terms) {
	case 0:
		return b.enc.EncodeConj(nil).Negation(), resolved.offset, nil
	case 1:
		t := resolved.terms[0]
		if t.Coeff != 1 {
			return 0, 0, ErrNotBoolean
		}
		return t.Lit, resolved.offset, nil
	default:
		return 0, 0, ErrNotBoolean
	}
}

// Value evaluates e under m, once m has been produced by a successful
// Solve. e must already be fully linear — Resolve it first if it carries
// any pending products, since Value has no solver to reify them with.
func (e *IntExpr) Value(m solver.Model) int {
	v := e.offset
	for _, t := range e.terms {
		if m.Value(t.Lit) {
			v += t.Coeff
		}
	}
	return v
}
