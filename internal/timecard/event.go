// Package timecard implements the punch-clock core: the event model and
// its CSV line codec, the append-only log store, the aggregation engine
// for monthly reports, and session restoration from the log.
package timecard

import (
	"strings"
	"time"
)

// Action is one of the four punch kinds a user can record.
type Action int

const (
	ClockIn Action = iota
	BreakStart
	BreakEnd
	ClockOut
)

// actionLabels are the canonical labels written to the log file. The
// log format is fixed; existing log files must keep parsing.
var actionLabels = [...]string{
	ClockIn:    "出勤",
	BreakStart: "休憩",
	BreakEnd:   "再開",
	ClockOut:   "退勤",
}

// Label returns the canonical log-file label for the action.
func (a Action) Label() string {
	return actionLabels[a]
}

// NextState returns the work state that recording this action produces.
// The table is applied unconditionally; there is no validation against
// the current state.
func (a Action) NextState() WorkState {
	switch a {
	case ClockIn, BreakEnd:
		return Working
	case BreakStart:
		return OnBreak
	default:
		return Idle
	}
}

// actionFromLabel maps a trimmed label back to its Action. ok is false
// for anything outside the four canonical labels; there is no lenient
// or partial matching.
func actionFromLabel(label string) (Action, bool) {
	for a, l := range actionLabels {
		if l == label {
			return Action(a), true
		}
	}
	return 0, false
}

// WorkState is the live state of the tracked user.
type WorkState int

const (
	Idle WorkState = iota
	Working
	OnBreak
)

func (s WorkState) String() string {
	switch s {
	case Working:
		return "working"
	case OnBreak:
		return "on break"
	default:
		return "idle"
	}
}

const (
	dateLayout      = "2006/01/02"
	timeLayout      = "15:04:05"
	timestampLayout = dateLayout + " " + timeLayout
)

// Event is one recorded punch. Date and Time are kept as the rendered
// strings from the log so a parse→serialize round trip is lossless.
type Event struct {
	Date   string // 2006/01/02
	Time   string // 15:04:05
	Action Action
}

// NewEvent stamps an event with the wall-clock date and time of now.
func NewEvent(action Action, now time.Time) Event {
	return Event{
		Date:   now.Format(dateLayout),
		Time:   now.Format(timeLayout),
		Action: action,
	}
}

// Line renders the event as one log record, without the trailing newline.
func (e Event) Line() string {
	return e.Date + "," + e.Time + "," + e.Action.Label()
}

// ParseLine parses one log record. ok is false when the record does not
// have exactly three comma fields or the trimmed label is unknown;
// malformed records are dropped by callers, never treated as errors.
func ParseLine(line string) (Event, bool) {
	fields := strings.SplitN(line, ",", 3)
	if len(fields) != 3 {
		return Event{}, false
	}
	action, ok := actionFromLabel(strings.TrimSpace(fields[2]))
	if !ok {
		return Event{}, false
	}
	return Event{Date: fields[0], Time: fields[1], Action: action}, true
}

// Timestamp composes Date and Time and parses them in the local zone.
// ok is false on any parse failure; callers must omit the event from
// duration arithmetic rather than fail.
func (e Event) Timestamp() (time.Time, bool) {
	ts, err := time.ParseInLocation(timestampLayout, e.Date+" "+e.Time, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
