package solver

// clauseWatch records, for a binary clause, the other literal: binary
// clauses never need the general simplify-and-swap dance since there is
// nothing to swap to.
type clauseWatch struct {
	clause *Clause
	other  Lit
}

// watchLists holds, for each literal, every constraint that wants to be
// notified when that literal becomes true (i.e. when its negation's watch
// list must be walked). Binary clauses get a fast path; longer clauses
// use the general two-watched-literal scheme; PB constraints are watched
// separately, in pbWatchLists.
type watchLists struct {
	bin     [][]clauseWatch // indexed by negated literal
	general [][]*Clause     // indexed by negated literal
	clauses []*Clause       // every clause known to the solver, in add order
}

func newWatchLists(nbVars int) *watchLists {
	return &watchLists{
		bin:     make([][]clauseWatch, nbVars*2),
		general: make([][]*Clause, nbVars*2),
	}
}

func (wl *watchLists) growVars(nbVars int) {
	for len(wl.bin) < nbVars*2 {
		wl.bin = append(wl.bin, nil)
		wl.general = append(wl.general, nil)
	}
}

// watch registers c on the watch lists for its first two literals (or,
// for a binary clause, on the fast-path list).
func (wl *watchLists) watch(c *Clause) {
	if c.Len() == 2 {
		a, b := c.Get(0), c.Get(1)
		wl.bin[a.Negation()] = append(wl.bin[a.Negation()], clauseWatch{clause: c, other: b})
		wl.bin[b.Negation()] = append(wl.bin[b.Negation()], clauseWatch{clause: c, other: a})
		return
	}
	a, b := c.Get(0), c.Get(1)
	wl.general[a.Negation()] = append(wl.general[a.Negation()], c)
	wl.general[b.Negation()] = append(wl.general[b.Negation()], c)
}

// unwatch removes c from the watch lists for its (current) first two
// literals. Must not be called on binary clauses.
func (wl *watchLists) unwatch(c *Clause) {
	for i := 0; i < 2; i++ {
		neg := c.Get(i).Negation()
		wl.general[neg] = removeClause(wl.general[neg], c)
	}
}

func removeClause(lst []*Clause, c *Clause) []*Clause {
	for i, c2 := range lst {
		if c2 == c {
			last := len(lst) - 1
			lst[i] = lst[last]
			return lst[:last]
		}
	}
	return lst
}

func (wl *watchLists) add(c *Clause) {
	wl.clauses = append(wl.clauses, c)
	wl.watch(c)
}

// remove unregisters a learnt clause from every watch list and from
// wl.clauses, for use by reduceDB.
func (wl *watchLists) remove(c *Clause) {
	if c.Len() == 2 {
		a, b := c.Get(0), c.Get(1)
		wl.bin[a.Negation()] = removeBinWatch(wl.bin[a.Negation()], c)
		wl.bin[b.Negation()] = removeBinWatch(wl.bin[b.Negation()], c)
	} else {
		wl.unwatch(c)
	}
	for i, c2 := range wl.clauses {
		if c2 == c {
			last := len(wl.clauses) - 1
			wl.clauses[i] = wl.clauses[last]
			wl.clauses = wl.clauses[:last]
			break
		}
	}
}

func removeBinWatch(lst []clauseWatch, c *Clause) []clauseWatch {
	for i, w := range lst {
		if w.clause == c {
			last := len(lst) - 1
			lst[i] = lst[last]
			return lst[:last]
		}
	}
	return lst
}
