package timecard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	logFileName = "log.csv"
	logHeader   = "Date,Time,Action"
)

// Store persists punch events as an append-only CSV log inside a single
// data directory. The log either does not exist or starts with exactly
// the header record followed by data records.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. The directory and log file
// are created lazily on first append or read.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the default data directory, a fixed subdirectory
// of the user's documents area.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, "Documents", "Timecard"), nil
}

// Dir returns the data directory the store is rooted at.
func (s *Store) Dir() string {
	return s.dir
}

// LogPath returns the full path of the log file.
func (s *Store) LogPath() string {
	return filepath.Join(s.dir, logFileName)
}

// ensureLogFile creates the data directory and, when the log file is
// absent, a fresh log containing only the header record. Idempotent;
// never touches an existing file.
func (s *Store) ensureLogFile() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	_, err := os.Stat(s.LogPath())
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking log file: %w", err)
	}
	if err := os.WriteFile(s.LogPath(), []byte(logHeader+"\n"), 0o644); err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	return nil
}

// Append serializes the event and appends it to the end of the log.
// Prior content is never rewritten or truncated.
func (s *Store) Append(e Event) error {
	if err := s.ensureLogFile(); err != nil {
		return err
	}
	f, err := os.OpenFile(s.LogPath(), os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log for append: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(e.Line() + "\n"); err != nil {
		return fmt.Errorf("appending punch record: %w", err)
	}
	return nil
}

// ReadAll returns every well-formed event in file order. The header,
// blank lines, and unparsable records are skipped silently: one corrupt
// trailing line must never block recovery of the valid history. Only
// I/O failures reading the file itself return an error.
func (s *Store) ReadAll() ([]Event, error) {
	if err := s.ensureLogFile(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.LogPath())
	if err != nil {
		return nil, fmt.Errorf("reading log file: %w", err)
	}

	var events []Event
	for i, line := range strings.Split(string(data), "\n") {
		if i == 0 {
			continue // header
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if e, ok := ParseLine(line); ok {
			events = append(events, e)
		}
	}
	return events, nil
}

// Destroy deletes the log file. Deleting an absent log is a no-op. No
// backup is taken; the caller owns any confirmation flow.
func (s *Store) Destroy() error {
	if err := os.Remove(s.LogPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting log file: %w", err)
	}
	return nil
}

// WriteReport writes a report file next to the log and returns its
// full path.
func (s *Store) WriteReport(name, content string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing report file: %w", err)
	}
	return path, nil
}
