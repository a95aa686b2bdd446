package solver

import "testing"

func TestLuby(t *testing.T) {
	want := []uint64{1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8, 1}
	for i, w := range want {
		if got := luby(uint64(i + 1)); got != w {
			t.Errorf("luby(%d) = %d, want %d", i+1, got, w)
		}
	}
}

func TestLbdStatsRestart(t *testing.T) {
	var l lbdStats
	for i := 0; i < lbdWindow; i++ {
		l.add(10)
	}
	if l.mustRestart() {
		t.Fatal("uniform LBDs should not trigger a restart")
	}
	for i := 0; i < lbdWindow; i++ {
		l.add(50)
	}
	if !l.mustRestart() {
		t.Fatal("a sharp rise in recent LBD should trigger a restart")
	}
	l.clear()
	if l.windowN != 0 || l.mustRestart() {
		t.Fatal("clear should reset the window")
	}
}
