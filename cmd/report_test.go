package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestReportNoData(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCommand(rootCmd, "report", "--data-dir", dir, "--year", "1999", "--month", "1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, "no work data for 1999-01") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "1999-01_report.csv")); !os.IsNotExist(err) {
		t.Error("report file written despite no data")
	}
}

func TestReportWritesFile(t *testing.T) {
	dir := t.TempDir()

	for _, args := range [][]string{
		{"in", "--data-dir", dir},
		{"out", "--data-dir", dir},
	} {
		if _, err := executeCommand(rootCmd, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	now := time.Now()
	out, err := executeCommand(rootCmd, "report", "--data-dir", dir,
		"--year", now.Format("2006"), "--month", now.Format("1"))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, "Report written: ") {
		t.Fatalf("output = %q", out)
	}

	name := now.Format("2006-01") + "_report.csv"
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !strings.HasPrefix(string(data), "日付,出勤,退勤,休憩時間,実働時間\n") {
		t.Errorf("report content = %q", data)
	}
	if !strings.Contains(string(data), now.Format("2006/01/02")+",") {
		t.Errorf("report missing today's row: %q", data)
	}
}
