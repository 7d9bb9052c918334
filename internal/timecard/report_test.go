package timecard_test

import (
	"testing"
	"time"

	"timecard/internal/timecard"
)

// ev builds an event without going through the clock.
func ev(date, tod string, action timecard.Action) timecard.Event {
	return timecard.Event{Date: date, Time: tod, Action: action}
}

func TestBreakTotal(t *testing.T) {
	events := []timecard.Event{
		ev("2026/02/18", "10:00:00", timecard.ClockIn),
		ev("2026/02/18", "12:00:00", timecard.BreakStart),
		ev("2026/02/18", "13:00:00", timecard.BreakEnd),
		ev("2026/02/18", "15:00:00", timecard.BreakStart),
		ev("2026/02/18", "15:30:00", timecard.BreakEnd),
		ev("2026/02/18", "19:00:00", timecard.ClockOut),
	}
	if got := timecard.BreakTotal(events); got != 90*time.Minute {
		t.Errorf("BreakTotal = %v, want 1h30m", got)
	}
}

func TestBreakTotalOpenBreakExcluded(t *testing.T) {
	events := []timecard.Event{
		ev("2026/02/18", "10:00:00", timecard.ClockIn),
		ev("2026/02/18", "12:00:00", timecard.BreakStart),
		ev("2026/02/18", "12:30:00", timecard.BreakEnd),
		ev("2026/02/18", "15:00:00", timecard.BreakStart), // never closed
	}
	if got := timecard.BreakTotal(events); got != 30*time.Minute {
		t.Errorf("BreakTotal = %v, want 30m (open break excluded)", got)
	}
}

func TestBreakTotalSecondStartOverwrites(t *testing.T) {
	// Two BreakStarts without an intervening end: only the most recent
	// open start counts.
	events := []timecard.Event{
		ev("2026/02/18", "12:00:00", timecard.BreakStart),
		ev("2026/02/18", "12:40:00", timecard.BreakStart),
		ev("2026/02/18", "13:00:00", timecard.BreakEnd),
	}
	if got := timecard.BreakTotal(events); got != 20*time.Minute {
		t.Errorf("BreakTotal = %v, want 20m", got)
	}
}

func TestBreakTotalClockOutClosesBreak(t *testing.T) {
	events := []timecard.Event{
		ev("2026/02/18", "12:00:00", timecard.BreakStart),
		ev("2026/02/18", "12:45:00", timecard.ClockOut),
	}
	if got := timecard.BreakTotal(events); got != 45*time.Minute {
		t.Errorf("BreakTotal = %v, want 45m", got)
	}
}

func TestBreakTotalSkipsUnparsableTimestamps(t *testing.T) {
	events := []timecard.Event{
		ev("garbage", "12:00:00", timecard.BreakStart),
		ev("2026/02/18", "13:00:00", timecard.BreakEnd), // no open break: contributes nothing
	}
	if got := timecard.BreakTotal(events); got != 0 {
		t.Errorf("BreakTotal = %v, want 0", got)
	}
}

func TestSummarizeDayRequiresClockIn(t *testing.T) {
	events := []timecard.Event{
		ev("2026/02/18", "12:00:00", timecard.BreakStart),
		ev("2026/02/18", "13:00:00", timecard.BreakEnd),
	}
	if _, ok := timecard.SummarizeDay("2026/02/18", events); ok {
		t.Error("SummarizeDay produced a summary for a day without a ClockIn")
	}
	if _, ok := timecard.SummarizeDay("2026/02/18", nil); ok {
		t.Error("SummarizeDay produced a summary for an empty day")
	}
}

func TestSummarizeDayNoClockOut(t *testing.T) {
	events := []timecard.Event{
		ev("2026/02/18", "10:00:00", timecard.ClockIn),
		ev("2026/02/18", "12:00:00", timecard.BreakStart),
	}
	s, ok := timecard.SummarizeDay("2026/02/18", events)
	if !ok {
		t.Fatal("SummarizeDay rejected a day with a ClockIn")
	}
	if s.ClockIn != "10:00" {
		t.Errorf("ClockIn = %q, want 10:00", s.ClockIn)
	}
	if s.ClockOut != "" {
		t.Errorf("ClockOut = %q, want empty", s.ClockOut)
	}
	if s.WorkTotal != nil {
		t.Errorf("WorkTotal = %v, want nil without a clock-out", *s.WorkTotal)
	}
}

func TestMonthlyReport(t *testing.T) {
	events := []timecard.Event{
		ev("2026/02/18", "10:00:00", timecard.ClockIn),
		ev("2026/02/18", "12:00:00", timecard.BreakStart),
		ev("2026/02/18", "13:00:00", timecard.BreakEnd),
		ev("2026/02/18", "19:00:00", timecard.ClockOut),
		ev("2026/02/19", "09:00:00", timecard.ClockIn),
		ev("2026/02/19", "18:00:00", timecard.ClockOut),
		ev("2026/03/01", "09:00:00", timecard.ClockIn), // other month
	}

	summaries := timecard.MonthlyReport(events, 2026, 2)
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}

	day1 := summaries[0]
	if day1.Date != "2026/02/18" || day1.ClockIn != "10:00" || day1.ClockOut != "19:00" {
		t.Errorf("day1 header = %q %q %q", day1.Date, day1.ClockIn, day1.ClockOut)
	}
	if day1.BreakTotal != time.Hour {
		t.Errorf("day1 BreakTotal = %v, want 1h", day1.BreakTotal)
	}
	if day1.WorkTotal == nil || *day1.WorkTotal != 8*time.Hour {
		t.Errorf("day1 WorkTotal = %v, want 8h", day1.WorkTotal)
	}

	day2 := summaries[1]
	if day2.Date != "2026/02/19" || day2.ClockIn != "09:00" || day2.ClockOut != "18:00" {
		t.Errorf("day2 header = %q %q %q", day2.Date, day2.ClockIn, day2.ClockOut)
	}
	if day2.BreakTotal != 0 {
		t.Errorf("day2 BreakTotal = %v, want 0", day2.BreakTotal)
	}
	if day2.WorkTotal == nil || *day2.WorkTotal != 9*time.Hour {
		t.Errorf("day2 WorkTotal = %v, want 9h", day2.WorkTotal)
	}
}

func TestMonthlyReportOmitsDaysWithoutClockIn(t *testing.T) {
	events := []timecard.Event{
		ev("2026/02/18", "12:00:00", timecard.BreakStart),
		ev("2026/02/18", "13:00:00", timecard.BreakEnd),
		ev("2026/02/19", "09:00:00", timecard.ClockIn),
	}
	summaries := timecard.MonthlyReport(events, 2026, 2)
	if len(summaries) != 1 || summaries[0].Date != "2026/02/19" {
		t.Errorf("summaries = %+v, want only 2026/02/19", summaries)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{3661 * time.Second, "01:01:01"},
		{28800 * time.Second, "08:00:00"},
		{-5 * time.Minute, "00:00:00"},
		{25 * time.Hour, "25:00:00"},
	}
	for _, tc := range cases {
		if got := timecard.FormatDuration(tc.d); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestFormatReport(t *testing.T) {
	events := []timecard.Event{
		ev("2026/02/18", "10:00:00", timecard.ClockIn),
		ev("2026/02/18", "12:00:00", timecard.BreakStart),
		ev("2026/02/18", "13:00:00", timecard.BreakEnd),
		ev("2026/02/18", "19:00:00", timecard.ClockOut),
		ev("2026/02/19", "09:00:00", timecard.ClockIn),
	}
	summaries := timecard.MonthlyReport(events, 2026, 2)

	want := "日付,出勤,退勤,休憩時間,実働時間\n" +
		"2026/02/18,10:00,19:00,01:00:00,08:00:00\n" +
		"2026/02/19,09:00,,00:00:00,\n"
	got := timecard.FormatReport(summaries)
	if got != want {
		t.Errorf("FormatReport =\n%q\nwant\n%q", got, want)
	}

	// Formatting is pure: repeating it yields byte-identical text.
	if again := timecard.FormatReport(summaries); again != got {
		t.Error("FormatReport is not idempotent")
	}
}
