package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResetRequiresConfirmation(t *testing.T) {
	dir := t.TempDir()

	if _, err := executeCommand(rootCmd, "in", "--data-dir", dir); err != nil {
		t.Fatalf("in: %v", err)
	}

	out, err := executeCommand(rootCmd, "reset", "--data-dir", dir)
	if err == nil {
		t.Fatal("expected an error without --yes, got nil")
	}
	if !strings.Contains(out+err.Error(), "--yes") {
		t.Errorf("error = %q, want mention of --yes", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "log.csv")); statErr != nil {
		t.Error("log deleted without confirmation")
	}
}

func TestResetDeletesLog(t *testing.T) {
	dir := t.TempDir()

	if _, err := executeCommand(rootCmd, "in", "--data-dir", dir); err != nil {
		t.Fatalf("in: %v", err)
	}

	out, err := executeCommand(rootCmd, "reset", "--data-dir", dir, "--yes")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !strings.Contains(out, "Punch log deleted.") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "log.csv")); !os.IsNotExist(err) {
		t.Error("log file still exists after reset --yes")
	}

	// Resetting again is an error-free no-op on the store side.
	if _, err := executeCommand(rootCmd, "reset", "--data-dir", dir, "--yes"); err != nil {
		t.Errorf("second reset: %v", err)
	}
}
