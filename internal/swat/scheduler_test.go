package swat

import (
	"strings"
	"testing"
	"time"
)

func TestSchedulerFiresInDeadlineOrder(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.After(300*time.Millisecond, func() { got = append(got, "c") })
	s.After(100*time.Millisecond, func() { got = append(got, "a") })
	s.After(100*time.Millisecond, func() { got = append(got, "b") })

	s.Advance(99 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("fired early: %v", got)
	}
	s.Advance(time.Second)
	if want := "abc"; strings.Join(got, "") != want {
		t.Fatalf("order = %q, want %q", strings.Join(got, ""), want)
	}
	if s.Pending() != 0 {
		t.Fatalf("Pending = %d, want 0", s.Pending())
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	id := s.After(time.Second, func() { fired = true })

	if !s.Cancel(id) {
		t.Fatal("Cancel of pending timer = false")
	}
	if s.Cancel(id) {
		t.Fatal("second Cancel = true")
	}
	if s.Cancel(0) {
		t.Fatal("Cancel(0) = true")
	}
	s.Advance(2 * time.Second)
	if fired {
		t.Fatal("cancelled timer fired")
	}
}

func TestSchedulerChainsWithinOneAdvance(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration
	var step func()
	step = func() {
		at = append(at, s.Now())
		if len(at) < 3 {
			s.After(time.Second, step)
		}
	}
	s.After(time.Second, step)

	s.Advance(5 * time.Second)
	want := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}
	if len(at) != len(want) {
		t.Fatalf("fired %d times, want %d", len(at), len(want))
	}
	for i := range want {
		if at[i] != want[i] {
			t.Fatalf("fire %d at %v, want %v", i, at[i], want[i])
		}
	}
	if s.Now() != 5*time.Second {
		t.Fatalf("Now = %v, want 5s", s.Now())
	}
}

func TestSchedulerCancelFromCallback(t *testing.T) {
	s := NewScheduler()
	fired := false
	var later TimerID
	s.After(time.Second, func() { s.Cancel(later) })
	later = s.After(2*time.Second, func() { fired = true })

	s.Advance(3 * time.Second)
	if fired {
		t.Fatal("timer cancelled by an earlier callback still fired")
	}
}

func TestSchedulerNegativeDelayRunsNextAdvance(t *testing.T) {
	s := NewScheduler()
	s.Advance(time.Second)
	var at time.Duration = -1
	s.After(-5*time.Second, func() { at = s.Now() })

	if at != -1 {
		t.Fatal("fired before Advance")
	}
	s.Advance(0)
	if at != time.Second {
		t.Fatalf("fired at %v, want 1s", at)
	}
}

func TestSchedulerReset(t *testing.T) {
	s := NewScheduler()
	s.After(time.Second, func() { t.Fatal("fired after Reset") })
	s.Advance(500 * time.Millisecond)
	s.Reset()
	if s.Now() != 0 || s.Pending() != 0 || s.queue != nil {
		t.Fatalf("after Reset Now=%v Pending=%d queue=%v", s.Now(), s.Pending(), s.queue)
	}
	s.Advance(2 * time.Second)

	fired := false
	s.After(time.Second, func() { fired = true })
	s.Advance(time.Second)
	if !fired {
		t.Fatal("timer scheduled after Reset did not fire")
	}
}
