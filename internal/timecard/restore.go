package timecard

import "time"

// LiveSession is the in-memory session state derived from the event
// log. It is never persisted; replaying the log reproduces it.
type LiveSession struct {
	State            WorkState
	ClockInAt        time.Time     // zero while idle
	AccumulatedBreak time.Duration // completed breaks within the session
	BreakStartedAt   time.Time     // zero unless on break
	Elapsed          time.Duration // frozen while on break, live while working
}

// Restore replays the full event history into the current live session.
// The session is idle when the log is empty, when the last action lands
// in Idle, or when the history is inconsistent (no ClockIn despite a
// non-idle last action, or an unparsable timestamp at a required step).
func Restore(events []Event, now time.Time) LiveSession {
	if len(events) == 0 {
		return LiveSession{}
	}

	state := events[len(events)-1].Action.NextState()
	if state == Idle {
		return LiveSession{}
	}

	// The current session starts at the last ClockIn.
	start := -1
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Action == ClockIn {
			start = i
			break
		}
	}
	if start < 0 {
		return LiveSession{}
	}
	session := events[start:]

	clockInAt, ok := session[0].Timestamp()
	if !ok {
		return LiveSession{}
	}

	// Only completed breaks within the current session count; breaks
	// before this clock-in never carry over.
	accumulated := BreakTotal(session)

	if state == OnBreak {
		s := LiveSession{
			State:            OnBreak,
			ClockInAt:        clockInAt,
			AccumulatedBreak: accumulated,
		}
		for i := len(session) - 1; i >= 0; i-- {
			if session[i].Action == BreakStart {
				s.BreakStartedAt, _ = session[i].Timestamp()
				break
			}
		}
		// Elapsed freezes at the moment the ongoing break began. An
		// unparsable break timestamp leaves it at zero.
		if !s.BreakStartedAt.IsZero() {
			s.Elapsed = s.BreakStartedAt.Sub(clockInAt) - accumulated
		}
		return s
	}

	return LiveSession{
		State:            Working,
		ClockInAt:        clockInAt,
		AccumulatedBreak: accumulated,
		Elapsed:          now.Sub(clockInAt) - accumulated,
	}
}
