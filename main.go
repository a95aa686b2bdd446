// Command satkit is a small front end over the solver and optim
// packages: it builds problems directly from repeated flags
// rather than parsing any competition file format, which stays out of
// scope for this tree.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satkit/satkit/optim"
	"github.com/satkit/satkit/solver"
)

var (
	verbose       bool
	pbHandler     string
	ccMinLevel    string
	restartStr    string
	restartFirst  int
	restartInc    float64
	learntFirst   int
	learntInc     int
	phaseSaving   bool
	subsumeFwd    bool
	subsumeBwd    bool
	varDecay      float64
	clauseDecay   float64
	randomFreq    float64
	randomSeed    int64
	modelCheck    bool
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	root := &cobra.Command{
		Use:   "satkit",
		Short: "A CDCL SAT/PB solver and MaxSAT-style optimizer",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log search events")
	root.PersistentFlags().StringVar(&pbHandler, "pb-handler", "counter", "pseudo-boolean propagation handler: counter or pueblo")
	root.PersistentFlags().StringVar(&ccMinLevel, "ccmin", "local", "learnt-clause minimization: none, local or recursive")
	root.PersistentFlags().StringVar(&restartStr, "restart", "armin", "restart strategy: armin, minisat or luby")
	root.PersistentFlags().IntVar(&restartFirst, "restart-first", 100, "conflict budget before the first restart (minisat/luby)")
	root.PersistentFlags().Float64Var(&restartInc, "restart-inc", 2.0, "geometric growth factor applied to the restart budget (minisat)")
	root.PersistentFlags().IntVar(&learntFirst, "learnt-first", 0, "learnt clause count before reduceDB first runs (0 keeps the solver default)")
	root.PersistentFlags().IntVar(&learntInc, "learnt-inc", 0, "growth of the reduceDB threshold after each pass (0 keeps the solver default)")
	root.PersistentFlags().BoolVar(&phaseSaving, "phase-saving", true, "restore each variable's last assigned polarity as its next decision")
	root.PersistentFlags().BoolVar(&subsumeFwd, "subsume-fwd", false, "drop a newly added clause already subsumed by an existing one")
	root.PersistentFlags().BoolVar(&subsumeBwd, "subsume-bwd", false, "remove existing clauses subsumed by a newly added one")
	root.PersistentFlags().Float64Var(&varDecay, "var-decay", 0, "VSIDS variable activity decay factor in (0,1) (0 keeps the solver default)")
	root.PersistentFlags().Float64Var(&clauseDecay, "clause-decay", 0, "learnt-clause activity decay factor in (0,1) (0 keeps the solver default)")
	root.PersistentFlags().Float64Var(&randomFreq, "random-freq", 0, "fraction of decisions made uniformly at random instead of via VSIDS")
	root.PersistentFlags().Int64Var(&randomSeed, "random-seed", 1, "seed for --random-freq's random decisions")
	root.PersistentFlags().BoolVar(&modelCheck, "model-check", false, "re-verify every clause and PB constraint against the model before returning it")

	root.AddCommand(newSolveCmd(log))
	root.AddCommand(newOptimizeCmd(log))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSolveCmd(log *logrus.Logger) *cobra.Command {
	var clauses []string
	var nbVars int
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a CNF built from repeated --clause flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := solver.New()
			configureSolver(s, log)
			if nbVars > 0 {
				s.ResizeVarCapacity(nbVars)
			}
			for _, spec := range clauses {
				lits, err := parseClause(s, spec)
				if err != nil {
					return errors.Wrapf(err, "--clause %q", spec)
				}
				if err := s.AddClause(lits...); err != nil {
					return err
				}
			}
			status := s.Solve()
			fmt.Println(status)
			if status == solver.Sat {
				printModel(s.GetModel())
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&clauses, "clause", nil, `DIMACS-style clause, e.g. "1,-2,3" (repeatable)`)
	cmd.Flags().IntVar(&nbVars, "vars", 0, "number of variables to pre-allocate (1-based ids up to this)")
	return cmd
}

func newOptimizeCmd(log *logrus.Logger) *cobra.Command {
	var hard, soft []string
	var strategy string
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Minimize the weight of violated --soft clauses subject to --hard clauses",
		RunE: func(cmd *cobra.Command, args []string) error {
			var constrs []optim.Constr
			for _, spec := range hard {
				lits, err := parseNamedClause(spec)
				if err != nil {
					return errors.Wrapf(err, "--hard %q", spec)
				}
				constrs = append(constrs, optim.HardClause(lits...))
			}
			for _, spec := range soft {
				weight, lits, err := parseWeightedClause(spec)
				if err != nil {
					return errors.Wrapf(err, "--soft %q", spec)
				}
				constrs = append(constrs, optim.SoftClause(weight, lits...))
			}
			p, err := optim.New(constrs...)
			if err != nil {
				return err
			}
			configureSolver(p.Solver(), log)
			st := parseStrategy(strategy)
			status, cost, model := p.Optimizer().
				SetStrategy(st).
				OnImproved(func(cost int, _ solver.Model) {
					log.WithField("cost", cost).Info("improved")
				}).
				Optimize(context.Background())
			fmt.Println(status)
			if status == solver.Sat || status == solver.Optimum {
				fmt.Println("cost:", cost)
				printModel(model)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&hard, "hard", nil, `hard clause over named literals, e.g. "a,-b" (repeatable)`)
	cmd.Flags().StringArrayVar(&soft, "soft", nil, `weighted clause, e.g. "3:a,-b" (repeatable)`)
	cmd.Flags().StringVar(&strategy, "strategy", "linear", "optimization strategy: linear, binary, unsatcore or hybrid")
	return cmd
}

func configureSolver(s *solver.Solver, log *logrus.Logger) {
	switch pbHandler {
	case "pueblo":
		s.SetPBHandler(solver.PuebloHandler)
	default:
		s.SetPBHandler(solver.CounterHandler)
	}
	switch ccMinLevel {
	case "none":
		s.SetCCMin(solver.CCMinNone)
	case "recursive":
		s.SetCCMin(solver.CCMinRecursive)
	default:
		s.SetCCMin(solver.CCMinLocal)
	}
	switch restartStr {
	case "minisat":
		s.SetRestartStrategy(solver.MiniSATRestart)
	case "luby":
		s.SetRestartStrategy(solver.LubyRestart)
	default:
		s.SetRestartStrategy(solver.ArminRestart)
	}
	s.SetRestartParams(restartFirst, restartInc)
	if learntFirst > 0 || learntInc > 0 {
		s.SetLearntSizeParams(learntFirst, learntInc)
	}
	s.SetPhaseSaving(phaseSaving)
	s.SetSubsumption(subsumeFwd, subsumeBwd)
	if varDecay > 0 {
		s.SetVarDecay(varDecay)
	}
	if clauseDecay > 0 {
		s.SetClauseDecay(float32(clauseDecay))
	}
	if randomFreq > 0 {
		s.SetRandomFreq(randomFreq, randomSeed)
	}
	s.SetModelCheck(modelCheck)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
		s.SetLogger(solver.NewLogrusLogger(log))
	}
}

func parseStrategy(s string) optim.Strategy {
	switch s {
	case "binary":
		return optim.Binary
	case "unsatcore":
		return optim.UnsatCore
	case "hybrid":
		return optim.Hybrid
	default:
		return optim.Linear
	}
}

// parseClause resizes s as needed and returns the literals named by a
// comma-separated list of signed, 1-based DIMACS integers.
func parseClause(s *solver.Solver, spec string) ([]solver.Lit, error) {
	var lits []solver.Lit
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n == 0 {
			return nil, errors.Errorf("invalid literal %q", tok)
		}
		v := solver.IntToVar(int32(n))
		if int(v) >= s.NbVars() {
			s.ResizeVarCapacity(int(v) + 1)
		}
		lits = append(lits, solver.IntToLit(int32(n)))
	}
	return lits, nil
}

func parseNamedClause(spec string) ([]optim.Lit, error) {
	var lits []optim.Lit
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if strings.HasPrefix(tok, "-") {
			lits = append(lits, optim.Neg(tok[1:]))
		} else {
			lits = append(lits, optim.Pos(tok))
		}
	}
	return lits, nil
}

// parseWeightedClause parses "weight:lit,lit,...".
func parseWeightedClause(spec string) (int, []optim.Lit, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return 0, nil, errors.New(`expected "weight:lit,lit,..."`)
	}
	weight, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, nil, errors.Wrap(err, "weight")
	}
	lits, err := parseNamedClause(parts[1])
	return weight, lits, err
}

func printModel(m solver.Model) {
	parts := make([]string, len(m))
	for v := 0; v < len(m); v++ {
		lit := solver.Var(v).Pos()
		if !m.Value(lit) {
			lit = lit.Negation()
		}
		parts[v] = lit.String()
	}
	fmt.Println(strings.Join(parts, " "))
}
