package timecard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrNoData is returned by report generation when the requested month
// has no days with a clock-in.
var ErrNoData = errors.New("no work data for the requested month")

const reportHeader = "日付,出勤,退勤,休憩時間,実働時間"

// DailySummary is one aggregated day of the monthly report. ClockOut is
// empty when the day never clocked out; WorkTotal is nil in that case.
type DailySummary struct {
	Date       string // 2006/01/02
	ClockIn    string // 15:04
	ClockOut   string // 15:04, empty when absent
	BreakTotal time.Duration
	WorkTotal  *time.Duration
}

// BreakTotal sums the completed break intervals in events. A BreakStart
// opens a break (overwriting any previously open one); BreakEnd or
// ClockOut closes it. Events with unparsable timestamps are skipped,
// and a break still open at the end of the scan contributes nothing.
func BreakTotal(events []Event) time.Duration {
	var total time.Duration
	var openBreak time.Time
	var open bool

	for _, e := range events {
		ts, ok := e.Timestamp()
		if !ok {
			continue
		}
		switch e.Action {
		case BreakStart:
			openBreak = ts
			open = true
		case BreakEnd, ClockOut:
			if open {
				total += ts.Sub(openBreak)
				open = false
			}
		}
	}
	return total
}

// SummarizeDay aggregates one day's events. ok is false when the day
// has no ClockIn. WorkTotal is computed only when both the first
// clock-in and the last clock-out have parsable timestamps; it may be
// negative for inconsistent logs (clamping happens in FormatDuration).
func SummarizeDay(date string, events []Event) (DailySummary, bool) {
	var clockInEvent, clockOutEvent *Event
	for i := range events {
		e := &events[i]
		if e.Action == ClockIn && clockInEvent == nil {
			clockInEvent = e
		}
		if e.Action == ClockOut {
			clockOutEvent = e
		}
	}
	if clockInEvent == nil {
		return DailySummary{}, false
	}

	summary := DailySummary{
		Date:       date,
		ClockIn:    shortTime(clockInEvent.Time),
		BreakTotal: BreakTotal(events),
	}
	if clockOutEvent != nil {
		summary.ClockOut = shortTime(clockOutEvent.Time)
	}

	if clockOutEvent != nil {
		inTS, inOK := clockInEvent.Timestamp()
		outTS, outOK := clockOutEvent.Timestamp()
		if inOK && outOK {
			work := outTS.Sub(inTS) - summary.BreakTotal
			summary.WorkTotal = &work
		}
	}
	return summary, true
}

// shortTime trims a 15:04:05 time-of-day down to 15:04.
func shortTime(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

// MonthlyReport aggregates events into one summary per day of the
// given month, sorted by date ascending. Days without a ClockIn are
// omitted. Lexicographic order of the fixed-width date strings is
// chronological order.
func MonthlyReport(events []Event, year, month int) []DailySummary {
	monthPrefix := fmt.Sprintf("%04d/%02d", year, month)

	byDate := make(map[string][]Event)
	for _, e := range events {
		if strings.HasPrefix(e.Date, monthPrefix) {
			byDate[e.Date] = append(byDate[e.Date], e)
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var summaries []DailySummary
	for _, d := range dates {
		if s, ok := SummarizeDay(d, byDate[d]); ok {
			summaries = append(summaries, s)
		}
	}
	return summaries
}

// FormatDuration renders a duration as HH:MM:SS with unbounded hours.
// Negative durations clamp to zero.
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// FormatReport renders summaries as the report CSV: a header record and
// one record per day, newline-terminated including after the last.
func FormatReport(summaries []DailySummary) string {
	lines := []string{reportHeader}
	for _, s := range summaries {
		workStr := ""
		if s.WorkTotal != nil {
			workStr = FormatDuration(*s.WorkTotal)
		}
		lines = append(lines, fmt.Sprintf("%s,%s,%s,%s,%s",
			s.Date, s.ClockIn, s.ClockOut, FormatDuration(s.BreakTotal), workStr))
	}
	return strings.Join(lines, "\n") + "\n"
}

// ReportFileName returns the file name for a month's report.
func ReportFileName(year, month int) string {
	return fmt.Sprintf("%04d-%02d_report.csv", year, month)
}
