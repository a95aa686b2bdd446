package solver

import "sort"

const (
	defaultLearntSizeFirst = 2000
	defaultLearntSizeInc   = 300
)

// reduceDB discards the least useful half of the learnt clauses (C4.5):
// locked clauses (currently a reason) and clauses with two literals or an
// LBD of 2 or less are never touched, since both are cheap to keep and
// disproportionately useful.
func (s *Solver) reduceDB() {
	keepable := make([]*Clause, 0)
	for _, c := range s.wl.clauses {
		if !c.Learnt() || c.isLocked() || c.Len() <= 2 || c.lbd() <= 2 {
			continue
		}
		keepable = append(keepable, c)
	}
	sort.Slice(keepable, func(i, j int) bool {
		if keepable[i].lbd() != keepable[j].lbd() {
			return keepable[i].lbd() > keepable[j].lbd()
		}
		return keepable[i].activity < keepable[j].activity
	})
	drop := len(keepable) / 2
	for i := 0; i < drop; i++ {
		s.wl.remove(keepable[i])
		s.Stats.NbRemovedClauses++
	}
	s.nbMaxLearnts += s.learntSizeInc
}

// applySubsumption checks a clause about to be added (newLits, already
// deduplicated and non-tautological) against every original clause
// currently registered (C4.6). Under forward subsumption, an existing
// clause whose literals are a subset of newLits makes newLits itself
// redundant and it is reported as dropped without ever being watched.
// Under backward subsumption, newLits being a subset of an existing
// clause's literals makes that existing clause redundant and it is
// removed. If both are enabled and the two literal sets are identical,
// forward wins: the new clause is dropped rather than replacing the old
// one with an identical copy. Quadratic in the number of original clauses
// added so far, which is fine for the modest problem sizes this package
// targets.
func (s *Solver) applySubsumption(newLits []Lit) (dropped bool) {
	newSet := make(map[Lit]bool, len(newLits))
	for _, l := range newLits {
		newSet[l] = true
	}
	var toRemove []*Clause
	for _, c := range s.wl.clauses {
		if c.Learnt() {
			continue
		}
		existing := make(map[Lit]bool, c.Len())
		for i := 0; i < c.Len(); i++ {
			existing[c.Get(i)] = true
		}
		if s.subsumeFwd && len(existing) <= len(newSet) && subsumes(existing, newSet) {
			s.Stats.NbSubsumed++
			return true
		}
		if s.subsumeBwd && len(newSet) < len(existing) && subsumes(newSet, existing) {
			toRemove = append(toRemove, c)
		}
	}
	for _, c := range toRemove {
		s.wl.unwatchIfPresent(c)
		s.wl.clauses = removeClause(s.wl.clauses, c)
		s.Stats.NbSubsumed++
	}
	return false
}

func subsumes(a, b map[Lit]bool) bool {
	for l := range a {
		if !b[l] {
			return false
		}
	}
	return true
}

// unwatchIfPresent removes c from whichever watch list it is registered
// on, tolerating binary clauses.
func (wl *watchLists) unwatchIfPresent(c *Clause) {
	if c.Len() == 2 {
		a, b := c.Get(0), c.Get(1)
		wl.bin[a.Negation()] = removeBinWatch(wl.bin[a.Negation()], c)
		wl.bin[b.Negation()] = removeBinWatch(wl.bin[b.Negation()], c)
		return
	}
	wl.unwatch(c)
}
