// Package tui provides the Bubble Tea punch-clock dashboard.
package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"timecard/internal/timecard"
	"timecard/internal/tracker"
)

// ── Styles ────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Padding(1, 4)

	timerBreakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("178")).
			Padding(1, 4)

	timerIdleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 4)

	stateWorkingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	stateBreakStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	stateIdleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	timeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))

	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))

	confirmStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("196")).
			Padding(0, 1)
)

// ── Key bindings ──────

type keyMap struct {
	ClockIn key.Binding
	Break   key.Binding
	Resume  key.Binding
	Out     key.Binding
	Export  key.Binding
	Delete  key.Binding
	Month   key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ClockIn, k.Break, k.Resume, k.Out, k.Export, k.Delete, k.Month, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ClockIn, k.Break, k.Resume, k.Out},
		{k.Export, k.Delete, k.Month, k.Quit},
	}
}

var keys = keyMap{
	ClockIn: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "clock in")),
	Break:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "break")),
	Resume:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
	Out:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "clock out")),
	Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export report")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete log")),
	Month:   key.NewBinding(key.WithKeys("tab", "m"), key.WithHelp("tab", "month view")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ── Messages ──────────

type tickMsg time.Time

// logChangedMsg arrives when another process wrote to the log file
// while the dashboard is open (a CLI punch, for example).
type logChangedMsg struct{}

type watchErrMsg struct{ err error }

// ── Model ─────────────

type view int

const (
	viewTimer view = iota
	viewMonth
)

// Model is the root Bubble Tea model for the dashboard.
type Model struct {
	tracker *tracker.Tracker
	watcher *fsnotify.Watcher

	view          view
	confirmDelete bool
	ticking       bool
	status        string
	statusIsErr   bool

	today    []timecard.Event
	monthVP  viewport.Model
	help     help.Model
	width    int
	height   int
	ready    bool
}

// New creates a dashboard model over an already-restored tracker. The
// watcher may be nil when log watching is unavailable.
func New(tr *tracker.Tracker, watcher *fsnotify.Watcher) Model {
	m := Model{
		tracker: tr,
		watcher: watcher,
		help:    help.New(),
		ticking: tr.Ticking(),
	}
	m.reloadToday()
	return m
}

// ── Bubble Tea interface ──

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.ticking {
		cmds = append(cmds, tickCmd())
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForLogChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// waitForLogChange blocks on the watcher until the log file changes on
// disk. The watcher only triggers reads, never writes, so the
// single-writer model holds.
func waitForLogChange(w *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Base(ev.Name) != "log.csv" {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) != 0 {
					return logChangedMsg{}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.ticking = false
		if m.tracker.Ticking() {
			m.tracker.Refresh(time.Time(msg))
			m.ticking = true
			return m, tickCmd()
		}
		return m, nil

	case logChangedMsg:
		// Converge with whatever another process appended.
		if err := m.tracker.Restore(); err != nil {
			m.setErr(err)
		}
		m.reloadToday()
		cmds := []tea.Cmd{waitForLogChange(m.watcher)}
		if c := m.armTick(); c != nil {
			cmds = append(cmds, c)
		}
		return m, tea.Batch(cmds...)

	case watchErrMsg:
		m.setErr(msg.err)
		return m, waitForLogChange(m.watcher)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.monthVP = viewport.New(msg.Width, max(1, msg.Height-4))
		m.monthVP.SetContent(m.renderMonth())
		return m, nil
	}

	if m.view == viewMonth {
		var cmd tea.Cmd
		m.monthVP, cmd = m.monthVP.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Delete confirmation swallows every key until answered.
	if m.confirmDelete {
		switch msg.String() {
		case "y":
			m.confirmDelete = false
			if err := m.tracker.DeleteLog(); err != nil {
				m.setErr(err)
			} else {
				m.setOK("Punch log deleted.")
				m.reloadToday()
			}
		case "n", "esc":
			m.confirmDelete = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Month):
		if m.view == viewTimer {
			m.view = viewMonth
			m.monthVP.SetContent(m.renderMonth())
			m.monthVP.GotoTop()
		} else {
			m.view = viewTimer
		}
		return m, nil

	case key.Matches(msg, keys.ClockIn):
		return m.punch(timecard.ClockIn)
	case key.Matches(msg, keys.Break):
		return m.punch(timecard.BreakStart)
	case key.Matches(msg, keys.Resume):
		return m.punch(timecard.BreakEnd)
	case key.Matches(msg, keys.Out):
		return m.punch(timecard.ClockOut)

	case key.Matches(msg, keys.Export):
		now := time.Now()
		path, err := m.tracker.ExportMonthlyReport(now.Year(), int(now.Month()))
		switch {
		case errors.Is(err, timecard.ErrNoData):
			m.status, m.statusIsErr = "No work data this month.", false
		case err != nil:
			m.setErr(err)
		default:
			m.setOK("Report written: " + path)
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		m.confirmDelete = true
		return m, nil
	}

	if m.view == viewMonth {
		var cmd tea.Cmd
		m.monthVP, cmd = m.monthVP.Update(msg)
		return m, cmd
	}
	return m, nil
}

// punch records one action and re-arms the tick when the new state
// works. A failed append leaves the session untouched; the error is
// shown and the key can simply be pressed again.
func (m Model) punch(action timecard.Action) (tea.Model, tea.Cmd) {
	if err := m.tracker.Apply(action); err != nil {
		m.setErr(err)
		return m, nil
	}
	m.status, m.statusIsErr = "", false
	m.reloadToday()
	return m, m.armTick()
}

// armTick starts the 1 Hz refresh if the tracker is working and no tick
// is already outstanding. At most one tick source is ever active.
func (m *Model) armTick() tea.Cmd {
	if m.tracker.Ticking() && !m.ticking {
		m.ticking = true
		return tickCmd()
	}
	return nil
}

func (m *Model) reloadToday() {
	events, err := m.tracker.Store().ReadAll()
	if err != nil {
		m.setErr(err)
		return
	}
	today := time.Now().Format("2006/01/02")
	m.today = m.today[:0]
	for _, e := range events {
		if e.Date == today {
			m.today = append(m.today, e)
		}
	}
}

func (m *Model) setErr(err error) {
	m.status = err.Error()
	m.statusIsErr = true
}

func (m *Model) setOK(s string) {
	m.status = s
	m.statusIsErr = false
}

// ── View ──────────────

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  timecard  " + m.tracker.Store().Dir())

	var body string
	if m.view == viewMonth {
		body = m.monthVP.View()
	} else {
		body = m.renderTimer()
	}

	var statusLine string
	switch {
	case m.confirmDelete:
		statusLine = confirmStyle.Render("Delete the punch log? All history is lost. y/n")
	case m.status != "" && m.statusIsErr:
		statusLine = errStyle.Render(m.status)
	case m.status != "":
		statusLine = okStyle.Render(m.status)
	}

	helpLine := m.help.View(keys)
	return lipgloss.JoinVertical(lipgloss.Left, title, body, statusLine, helpLine)
}

func (m Model) renderTimer() string {
	var sb strings.Builder

	var badge string
	switch m.tracker.State() {
	case timecard.Working:
		badge = stateWorkingStyle.Render("● working")
	case timecard.OnBreak:
		badge = stateBreakStyle.Render("◌ on break")
	default:
		badge = stateIdleStyle.Render("○ idle")
	}
	sb.WriteString("\n  " + badge + "\n")

	elapsed := timecard.FormatDuration(m.tracker.Elapsed())
	switch m.tracker.State() {
	case timecard.Working:
		sb.WriteString(timerStyle.Render(elapsed))
	case timecard.OnBreak:
		sb.WriteString(timerBreakStyle.Render(elapsed))
	default:
		sb.WriteString(timerIdleStyle.Render(elapsed))
	}
	sb.WriteString("\n")

	if m.tracker.State() != timecard.Idle {
		sb.WriteString(labelStyle.Render("  Clocked in:") + "  " +
			m.tracker.ClockInAt().Format("15:04:05") + "\n")
		sb.WriteString(labelStyle.Render("  Breaks:") + "      " +
			timecard.FormatDuration(m.tracker.BreakTotal()) + "\n")
	}

	sb.WriteString("\n" + sectionHeader.Render("  Today") + "\n")
	if len(m.today) == 0 {
		sb.WriteString(dimStyle.Render("  (no punches yet)") + "\n")
	} else {
		for _, e := range m.today {
			sb.WriteString("  " + timeStyle.Render(e.Time) + "  " + e.Action.Label() + "\n")
		}
	}
	return sb.String()
}

func (m Model) renderMonth() string {
	now := time.Now()
	events, err := m.tracker.Store().ReadAll()
	if err != nil {
		return errStyle.Render("  " + err.Error())
	}
	summaries := timecard.MonthlyReport(events, now.Year(), int(now.Month()))

	var sb strings.Builder
	sb.WriteString("\n" + sectionHeader.Render(fmt.Sprintf("  %s", now.Format("January 2006"))) + "\n\n")
	if len(summaries) == 0 {
		sb.WriteString(dimStyle.Render("  (no work data this month)") + "\n")
		return sb.String()
	}

	sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-12s %-7s %-7s %-10s %-10s",
		"Date", "In", "Out", "Breaks", "Worked")) + "\n")
	for _, s := range summaries {
		out := s.ClockOut
		if out == "" {
			out = dimStyle.Render("--:--")
		}
		worked := dimStyle.Render("--:--:--")
		if s.WorkTotal != nil {
			worked = timecard.FormatDuration(*s.WorkTotal)
		}
		sb.WriteString(fmt.Sprintf("  %-12s %-7s %-7s %-10s %-10s\n",
			s.Date, s.ClockIn, out, timecard.FormatDuration(s.BreakTotal), worked))
	}
	return sb.String()
}

// Run restores the session from the log and starts the dashboard.
func Run(tr *tracker.Tracker) error {
	restoreErr := tr.Restore()

	// Log watching is best-effort: a missing watcher only means
	// external punches show up after the next local action.
	var watcher *fsnotify.Watcher
	if w, err := fsnotify.NewWatcher(); err == nil {
		if err := w.Add(tr.Store().Dir()); err == nil {
			watcher = w
		} else {
			w.Close()
		}
	}
	if watcher != nil {
		defer watcher.Close()
	}

	m := New(tr, watcher)
	if restoreErr != nil {
		m.setErr(restoreErr)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
