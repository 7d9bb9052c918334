// Package tracker holds the live punch-clock session and orchestrates
// the log store, the aggregation engine, and state restoration.
package tracker

import (
	"time"

	"timecard/internal/timecard"
)

// Tracker owns the in-memory session. All mutations happen on the
// caller's goroutine; the tracker itself spawns nothing. A display
// layer drives Refresh once per second while Ticking reports true.
type Tracker struct {
	store *timecard.Store

	// Now is the clock used to stamp events and run transitions.
	// Overridable for deterministic tests.
	Now func() time.Time

	state            timecard.WorkState
	clockInAt        time.Time
	accumulatedBreak time.Duration
	breakStartedAt   time.Time
	elapsed          time.Duration
	lastReportPath   string
}

// New returns a Tracker over the given store with an idle session.
// Callers normally follow with Restore.
func New(store *timecard.Store) *Tracker {
	return &Tracker{store: store, Now: time.Now}
}

// Store returns the underlying event log store.
func (t *Tracker) Store() *timecard.Store {
	return t.store
}

// State returns the current work state.
func (t *Tracker) State() timecard.WorkState {
	return t.state
}

// Elapsed returns the displayed elapsed work time: live while working,
// frozen while on break, zero while idle.
func (t *Tracker) Elapsed() time.Duration {
	return t.elapsed
}

// ClockInAt returns the current session's clock-in instant, zero while
// idle.
func (t *Tracker) ClockInAt() time.Time {
	return t.clockInAt
}

// BreakTotal returns the completed break time accumulated in the
// current session.
func (t *Tracker) BreakTotal() time.Duration {
	return t.accumulatedBreak
}

// LastReportPath returns the path of the most recently exported report,
// empty if none was exported.
func (t *Tracker) LastReportPath() string {
	return t.lastReportPath
}

// Ticking reports whether the display should refresh elapsed time once
// per second. Only the Working state ticks.
func (t *Tracker) Ticking() bool {
	return t.state == timecard.Working
}

// Apply stamps the action with the current time, persists it, and on
// success runs the state transition. When the append fails the
// in-memory session is left exactly as it was, so memory never runs
// ahead of the durable log; the caller may retry the same action.
// The transition table is applied regardless of the current state.
func (t *Tracker) Apply(action timecard.Action) error {
	now := t.Now()
	if err := t.store.Append(timecard.NewEvent(action, now)); err != nil {
		return err
	}

	switch action {
	case timecard.ClockIn:
		t.clockInAt = now
		t.accumulatedBreak = 0
		t.breakStartedAt = time.Time{}
		t.state = timecard.Working

	case timecard.BreakStart:
		if !t.clockInAt.IsZero() {
			t.elapsed = now.Sub(t.clockInAt) - t.accumulatedBreak
		}
		t.breakStartedAt = now
		t.state = timecard.OnBreak

	case timecard.BreakEnd:
		if !t.breakStartedAt.IsZero() {
			t.accumulatedBreak += now.Sub(t.breakStartedAt)
			t.breakStartedAt = time.Time{}
		}
		t.state = timecard.Working

	case timecard.ClockOut:
		// The ClockOut record closes any open break on replay; in
		// memory the whole session resets to idle defaults.
		t.reset()
	}
	return nil
}

// Refresh recomputes the displayed elapsed time. A display refresh
// only; no persistence, no transition, and a no-op outside Working.
func (t *Tracker) Refresh(now time.Time) {
	if t.state != timecard.Working || t.clockInAt.IsZero() {
		return
	}
	t.elapsed = now.Sub(t.clockInAt) - t.accumulatedBreak
}

// Restore reads the full log and seeds the session from it. A read
// failure degrades to an idle session and returns the error for
// display.
func (t *Tracker) Restore() error {
	events, err := t.store.ReadAll()
	if err != nil {
		t.reset()
		return err
	}
	s := timecard.Restore(events, t.Now())
	t.state = s.State
	t.clockInAt = s.ClockInAt
	t.accumulatedBreak = s.AccumulatedBreak
	t.breakStartedAt = s.BreakStartedAt
	t.elapsed = s.Elapsed
	return nil
}

// ExportMonthlyReport aggregates the log for the given month and writes
// the report CSV next to the log, returning its path. Returns
// timecard.ErrNoData, with no file written, when the month has no
// qualifying days.
func (t *Tracker) ExportMonthlyReport(year, month int) (string, error) {
	events, err := t.store.ReadAll()
	if err != nil {
		return "", err
	}
	summaries := timecard.MonthlyReport(events, year, month)
	if len(summaries) == 0 {
		return "", timecard.ErrNoData
	}
	path, err := t.store.WriteReport(
		timecard.ReportFileName(year, month),
		timecard.FormatReport(summaries),
	)
	if err != nil {
		return "", err
	}
	t.lastReportPath = path
	return path, nil
}

// DeleteLog destroys the log file and resets the session to idle. Any
// in-progress session is irrecoverably lost; confirmation is the
// caller's responsibility.
func (t *Tracker) DeleteLog() error {
	if err := t.store.Destroy(); err != nil {
		return err
	}
	t.reset()
	return nil
}

func (t *Tracker) reset() {
	t.state = timecard.Idle
	t.clockInAt = time.Time{}
	t.accumulatedBreak = 0
	t.breakStartedAt = time.Time{}
	t.elapsed = 0
}
