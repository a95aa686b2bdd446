package optim

import (
	"github.com/pkg/errors"

	"github.com/satkit/satkit/solver"
	"github.com/satkit/satkit/tseitin"
)

// errEmptyConstr is returned when a Constr has no literals.
var errEmptyConstr = errors.New("optim: constraint has no literals")

// Problem wires a set of hard and soft constraints, named by caller-
// chosen strings, onto a fresh *solver.Solver: soft constraints each get
// a blocking literal that costs their weight when true.
type Problem struct {
	s   *solver.Solver
	enc *tseitin.Encoder
	vars map[string]solver.Var

	blockingLits []solver.Lit
	weights      []int
}

// New builds a Problem from constrs, returning an error if a PB
// constraint's literal and coefficient slices disagree in length or a
// constraint is empty.
func New(constrs ...Constr) (*Problem, error) {
	p := &Problem{s: solver.New(), vars: make(map[string]solver.Var)}
	p.enc = tseitin.NewEncoder(p.s)
	for _, c := range constrs {
		if err := p.add(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Problem) varFor(name string) solver.Var {
	if v, ok := p.vars[name]; ok {
		return v
	}
	v := p.s.NewVar()
	p.vars[name] = v
	return v
}

func (p *Problem) lit(l Lit) solver.Lit {
	v := p.varFor(l.Name)
	if l.Negated {
		return v.Neg()
	}
	return v.Pos()
}

func (p *Problem) lits(ls []Lit) []solver.Lit {
	out := make([]solver.Lit, len(ls))
	for i, l := range ls {
		out[i] = p.lit(l)
	}
	return out
}

func (p *Problem) add(c Constr) error {
	if len(c.Lits) == 0 {
		return errEmptyConstr
	}
	lits := p.lits(c.Lits)
	isCard := c.Coeffs == nil

	if c.Weight == 0 {
		if isCard {
			if c.AtLeast == 1 {
				return p.s.AddClause(lits...)
			}
			return p.s.AddPBAtLeast(lits, c.AtLeast)
		}
		return p.s.AddPBGtEq(lits, c.Coeffs, c.AtLeast)
	}

	if !isCard && len(c.Coeffs) != len(lits) {
		return solver.ErrMalformedPB
	}
	blocking := p.s.NewVar()
	p.blockingLits = append(p.blockingLits, blocking.Pos())
	p.weights = append(p.weights, c.Weight)

	if isCard && c.AtLeast == 1 {
		return p.s.AddClause(append(lits, blocking.Pos())...)
	}
	coeffs := c.Coeffs
	if isCard {
		coeffs = make([]int, len(lits))
		for i := range coeffs {
			coeffs[i] = 1
		}
	}
	con := solver.GtEq(lits, coeffs, c.AtLeast)
	return p.s.AddSoftPB(con, blocking.Neg())
}

// Solver exposes the underlying solver for callers that need direct
// access (e.g. to add more variables before optimizing).
func (p *Problem) Solver() *solver.Solver { return p.s }

// cost sums the weights of every blocking literal that is true in m,
// i.e. every soft constraint currently violated.
func (p *Problem) cost(m solver.Model) int {
	total := 0
	for i, l := range p.blockingLits {
		if m.Value(l) {
			total += p.weights[i]
		}
	}
	return total
}

// Optimizer returns a fresh Optimizer over p, defaulting to the Linear
// strategy.
func (p *Problem) Optimizer() *Optimizer {
	return &Optimizer{p: p, strategy: Linear}
}
