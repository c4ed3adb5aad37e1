package scheduling

import "time"

// JoinState labels where "now" falls relative to a session's join window.
type JoinState string

const (
	JoinNotStarted JoinState = "not-started"
	JoinOpen       JoinState = "joinable"
	JoinEnded      JoinState = "ended"
)

// JoinWindowMargin is how far the join window extends on each side of the
// scheduled session: participants may enter 15 minutes before the start and
// up to 15 minutes after the scheduled end.
const JoinWindowMargin = 15 * time.Minute

// DefaultSessionDuration is applied when a session has no duration set.
const DefaultSessionDuration = 50 // minutes

// JoinWindow is the evaluator's verdict for one session at one instant.
// MinutesUntil/HoursUntil are only meaningful in the not-started state and
// count down to the scheduled start, for display.
type JoinWindow struct {
	State        JoinState `json:"state"`
	OpensAt      time.Time `json:"opensAt"`
	ClosesAt     time.Time `json:"closesAt"`
	MinutesUntil int       `json:"minutesUntil,omitempty"`
	HoursUntil   int       `json:"hoursUntil,omitempty"`
}

// CanJoin reports whether a participant may enter the room right now.
func (w JoinWindow) CanJoin() bool {
	return w.State == JoinOpen
}

// EvaluateJoinWindow computes the join window for a session scheduled at
// scheduledAt with the given duration in minutes. Both window bounds are
// inclusive. The window is a pure function of its arguments; in particular
// it is independent of the session's LinkExpiresAt, which is a separate
// creation-relative gate enforced only by the video token endpoint.
func EvaluateJoinWindow(now, scheduledAt time.Time, durationMinutes int) JoinWindow {
	if durationMinutes <= 0 {
		durationMinutes = DefaultSessionDuration
	}

	sessionEnd := scheduledAt.Add(time.Duration(durationMinutes) * time.Minute)
	opensAt := scheduledAt.Add(-JoinWindowMargin)
	closesAt := sessionEnd.Add(JoinWindowMargin)

	w := JoinWindow{OpensAt: opensAt, ClosesAt: closesAt}

	switch {
	case now.After(closesAt):
		w.State = JoinEnded
	case now.Before(opensAt):
		w.State = JoinNotStarted
		minutes := int(scheduledAt.Sub(now).Minutes())
		w.MinutesUntil = minutes
		w.HoursUntil = minutes / 60
	default:
		w.State = JoinOpen
	}
	return w
}
