package scheduling

import (
	"testing"
	"time"
)

var scheduledAt = time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

func TestJoinWindowBoundaries(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want JoinState
	}{
		{"sixteen minutes before start", scheduledAt.Add(-16 * time.Minute), JoinNotStarted},
		{"window opens exactly", scheduledAt.Add(-15 * time.Minute), JoinOpen},
		{"at scheduled start", scheduledAt, JoinOpen},
		{"at session end", scheduledAt.Add(50 * time.Minute), JoinOpen},
		{"window closes exactly", scheduledAt.Add(65 * time.Minute), JoinOpen},
		{"one minute past close", scheduledAt.Add(66 * time.Minute), JoinEnded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := EvaluateJoinWindow(tc.now, scheduledAt, 50)
			if w.State != tc.want {
				t.Errorf("state = %q, want %q", w.State, tc.want)
			}
			if w.CanJoin() != (tc.want == JoinOpen) {
				t.Errorf("CanJoin() = %v for state %q", w.CanJoin(), w.State)
			}
		})
	}
}

func TestJoinWindowCountdown(t *testing.T) {
	now := scheduledAt.Add(-90 * time.Minute)
	w := EvaluateJoinWindow(now, scheduledAt, 50)
	if w.State != JoinNotStarted {
		t.Fatalf("state = %q, want %q", w.State, JoinNotStarted)
	}
	if w.MinutesUntil != 90 {
		t.Errorf("MinutesUntil = %d, want 90", w.MinutesUntil)
	}
	if w.HoursUntil != 1 {
		t.Errorf("HoursUntil = %d, want 1", w.HoursUntil)
	}
}

func TestJoinWindowDefaultDuration(t *testing.T) {
	w := EvaluateJoinWindow(scheduledAt, scheduledAt, 0)
	wantClose := scheduledAt.Add(time.Duration(DefaultSessionDuration)*time.Minute + JoinWindowMargin)
	if !w.ClosesAt.Equal(wantClose) {
		t.Errorf("ClosesAt = %v, want %v", w.ClosesAt, wantClose)
	}
}

func TestJoinWindowIndependentOfLinkExpiry(t *testing.T) {
	// A session booked weeks in advance has a long-expired creation link,
	// yet the join window still opens on schedule.
	now := scheduledAt.Add(-14 * time.Minute)
	w := EvaluateJoinWindow(now, scheduledAt, 50)
	if w.State != JoinOpen {
		t.Errorf("state = %q, want %q", w.State, JoinOpen)
	}
}
