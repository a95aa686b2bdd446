package solver

import "github.com/pkg/errors"

// Sentinel errors returned by the package's precondition checks (spec.md
// §7). Wrap them with errors.Wrap/Wrapf at call sites that need to add
// context; callers can still match with errors.Is.
var (
	// ErrOutOfRange is returned when a Var or Lit refers to a variable
	// never allocated by NewVar/NewVars.
	ErrOutOfRange = errors.New("solver: variable out of range")
	// ErrEmptyClause is returned by AddClause for a clause with no
	// literals; an empty clause is unsatisfiable by construction and
	// almost always indicates a caller bug rather than an intended
	// contradiction.
	ErrEmptyClause = errors.New("solver: empty clause")
	// ErrMalformedPB is returned when a PB constraint's literal and
	// coefficient slices disagree in length. Zero coefficients are not
	// rejected.
	ErrMalformedPB = errors.New("solver: malformed pseudo-boolean constraint")
	// ErrSolverClosed is what Solve, SolveWith and SolveContext panic with
	// (wrapped) when called while another solve on the same Solver has not
	// returned. Other methods do not check for concurrent use.
	ErrSolverClosed = errors.New("solver: concurrent use of Solver")
)

// checkVar validates that v was allocated by NewVar/NewVars.
func (s *Solver) checkVar(v Var) error {
	if v < 0 || int(v) >= s.vars.numVars() {
		return errors.Wrapf(ErrOutOfRange, "var %d (have %d vars)", v.Int(), s.vars.numVars())
	}
	return nil
}

func (v Var) Int() int32 { return int32(v) }

// checkLits validates every literal in lits against checkVar.
func (s *Solver) checkLits(lits []Lit) error {
	for _, l := range lits {
		if err := s.checkVar(l.Var()); err != nil {
			return err
		}
	}
	return nil
}
