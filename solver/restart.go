package solver

// RestartStrategy selects how the conflict limit before the next restart
// grows, per spec.md §4.5.
type RestartStrategy int

const (
	// MiniSATRestart grows the conflict limit geometrically: first *
	// inc^n.
	MiniSATRestart RestartStrategy = iota
	// ArminRestart is the Glucose-style block restart: a restart is
	// triggered whenever the moving average of recent learnt-clause LBDs
	// climbs far enough above the all-time average (a run of low-quality
	// conflicts), independent of a fixed conflict count.
	ArminRestart
	// LubyRestart grows the conflict limit as first * luby(n).
	LubyRestart
)

const (
	defaultRestartFirst = 100
	defaultRestartInc   = 2.0
)

// luby returns the ith term (1-based) of the Luby sequence
// 1,1,2,1,1,2,4,1,1,2,1,1,2,4,8,...
func luby(i uint64) uint64 {
	for k := uint(1); k < 63; k++ {
		if i == (uint64(1)<<k)-1 {
			return uint64(1) << (k - 1)
		}
	}
	k := uint(1)
	for {
		lo := uint64(1) << (k - 1)
		hi := (uint64(1) << k) - 1
		if lo <= i && i < hi {
			return luby(i - lo + 1)
		}
		k++
	}
}

// restartScheduler decides, restart strategy by restart strategy, when
// the next restart is due.
type restartScheduler struct {
	strategy RestartStrategy
	first    int
	inc      float64
	n        uint64 // restarts performed so far, used by MiniSAT/Luby
	lbd      lbdStats
}

func newRestartScheduler() *restartScheduler {
	return &restartScheduler{strategy: ArminRestart, first: defaultRestartFirst, inc: defaultRestartInc}
}

// nextLimit returns the number of conflicts to allow before the next
// restart, for strategies driven by a conflict count (MiniSAT, Luby).
// ArminRestart ignores this and is driven by mustRestart instead.
func (r *restartScheduler) nextLimit() int {
	switch r.strategy {
	case LubyRestart:
		return int(float64(r.first) * float64(luby(r.n+1)))
	default: // MiniSATRestart
		limit := float64(r.first)
		for i := uint64(0); i < r.n; i++ {
			limit *= r.inc
		}
		return int(limit)
	}
}

// mustRestart reports whether an Armin-strategy restart is due right now,
// based on the recent-vs-total LBD averages. Only meaningful when
// strategy == ArminRestart.
func (r *restartScheduler) mustRestart() bool {
	return r.strategy == ArminRestart && r.lbd.mustRestart()
}

func (r *restartScheduler) onRestart() {
	r.n++
	r.lbd.clear()
}

func (r *restartScheduler) onLearnt(lbd int) {
	r.lbd.add(lbd)
}

const (
	lbdWindow       = 50
	lbdRestartRatio = 0.8
)

// lbdStats tracks the moving average of learnt-clause LBDs over the last
// lbdWindow clauses, against the all-time average, to drive ArminRestart.
type lbdStats struct {
	totalN, totalSum int
	window           [lbdWindow]int
	windowN          int
	ptr              int
	windowAvg        float64
}

func (l *lbdStats) add(lbd int) {
	l.totalN++
	l.totalSum += lbd
	if l.windowN < lbdWindow {
		l.window[l.windowN] = lbd
		old, new := float64(l.windowN), float64(l.windowN+1)
		l.windowAvg = l.windowAvg*old/new + float64(lbd)/new
		l.windowN++
		return
	}
	evicted := l.window[l.ptr]
	l.window[l.ptr] = lbd
	l.ptr = (l.ptr + 1) % lbdWindow
	l.windowAvg += (float64(lbd) - float64(evicted)) / lbdWindow
}

func (l *lbdStats) mustRestart() bool {
	if l.windowN < lbdWindow {
		return false
	}
	return l.windowAvg*lbdRestartRatio > float64(l.totalSum)/float64(l.totalN)
}

func (l *lbdStats) clear() {
	l.windowN = 0
	l.ptr = 0
	l.windowAvg = 0
}
