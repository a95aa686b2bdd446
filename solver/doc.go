/*
Package solver implements a conflict-driven clause-learning (CDCL) SAT
solver that natively handles pseudo-Boolean (PB) linear constraints.

A Solver owns a set of variables, a set of propositional clauses and a set
of PB constraints. Constraints are added through AddClause, AddPBAtLeast
and their siblings; Solve (or SolveContext, for a cancellable search) then
reports Sat, Unsat or Unknown, and GetModel returns the satisfying
assignment once the status is Sat.

	s := solver.New()
	a := s.NewVar()
	b := s.NewVar()
	s.AddClause(a.Pos(), b.Pos())
	s.AddClause(a.Pos(), b.Neg())
	if s.Solve() == solver.Sat {
		model := s.GetModel()
		_ = model
	}

Two representations are available for PB constraint propagation, selected
with SetPBHandler: a counter-based handler that tracks a running slack per
constraint, and a Pueblo-style handler that maintains an explicit watched
literal subset. Both are observationally equivalent; the choice only
affects propagation overhead.

The package does not parse any input file format and does not print
competition-formatted output; those concerns belong to higher layers that
call into a Solver.
*/
package solver
