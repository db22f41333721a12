package sched

import (
	"testing"
	"time"
)

func TestAfterFiresAtDeadline(t *testing.T) {
	s := New()
	fired := 0
	s.After(20*time.Millisecond, func() { fired++ })

	if n := s.Advance(19 * time.Millisecond); n != 0 {
		t.Errorf("ran = %d before deadline, want 0", n)
	}
	if n := s.Advance(20 * time.Millisecond); n != 1 {
		t.Errorf("ran = %d at deadline, want 1", n)
	}
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}
}

func TestEqualDeadlinesRunInScheduleOrder(t *testing.T) {
	s := New()
	var order []int
	for i := 0; i < 5; i++ {
		s.After(10*time.Millisecond, func() { order = append(order, i) })
	}
	s.Advance(10 * time.Millisecond)

	if len(order) != 5 {
		t.Fatalf("ran %d callbacks, want 5", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Errorf("order[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestCancel(t *testing.T) {
	s := New()
	fired := false
	id := s.After(300*time.Millisecond, func() { fired = true })

	if !s.Cancel(id) {
		t.Error("Cancel of pending timer returned false")
	}
	if s.Cancel(id) {
		t.Error("second Cancel returned true")
	}
	s.Advance(time.Second)
	if fired {
		t.Error("cancelled timer fired")
	}
	if s.Cancel(TimerID(999)) {
		t.Error("Cancel of unknown id returned true")
	}
}

func TestChainedTimersWithinOneAdvance(t *testing.T) {
	s := New()
	steps := 0
	var step func()
	step = func() {
		steps++
		if steps < 4 {
			s.After(20*time.Millisecond, step)
		}
	}
	s.After(20*time.Millisecond, step)

	// 4 links at 20ms apart all fall inside one 100ms jump.
	s.Advance(100 * time.Millisecond)
	if steps != 4 {
		t.Errorf("steps = %d, want 4", steps)
	}
}

func TestCallbacksSeeTheirOwnDeadline(t *testing.T) {
	s := New()
	var seen []time.Duration
	var step func()
	step = func() {
		seen = append(seen, s.Now())
		s.After(20*time.Millisecond, step)
	}
	s.After(20*time.Millisecond, step)

	if n := s.Advance(time.Second); n != 50 {
		t.Errorf("ran = %d, want 50", n)
	}
	for i, got := range seen {
		if want := time.Duration(i+1) * 20 * time.Millisecond; got != want {
			t.Fatalf("link %d ran at %v, want %v", i, got, want)
		}
	}
	if s.Now() != time.Second {
		t.Errorf("Now = %v after Advance, want 1s", s.Now())
	}
	if s.Pending() != 1 {
		t.Errorf("pending = %d, want the next link", s.Pending())
	}
}

func TestChainedTimerBeyondNowWaits(t *testing.T) {
	s := New()
	s.Advance(15 * time.Millisecond)
	second := false
	s.After(10*time.Millisecond, func() {
		s.After(10*time.Millisecond, func() { second = true })
	})

	s.Advance(25 * time.Millisecond)
	if second {
		t.Error("follow-up timer fired before its deadline")
	}
	s.Advance(35 * time.Millisecond)
	if !second {
		t.Error("follow-up timer did not fire at its deadline")
	}
}

func TestClockNeverMovesBackwards(t *testing.T) {
	s := New()
	s.Advance(50 * time.Millisecond)
	s.Advance(10 * time.Millisecond)
	if s.Now() != 50*time.Millisecond {
		t.Errorf("Now = %v, want 50ms", s.Now())
	}

	fired := false
	s.After(-time.Second, func() { fired = true })
	s.Advance(0)
	if !fired {
		t.Error("negative-delay timer did not fire on next Advance")
	}
}
