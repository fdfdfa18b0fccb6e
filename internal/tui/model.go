// Package tui is the terminal month browser. It shares the month layout of
// the desktop calendar and differs only in how cells are drawn.
package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/go-bongabdo/internal/bangla"
	"github.com/tartampluch/go-bongabdo/internal/config"
	"github.com/tartampluch/go-bongabdo/internal/engine"
	"github.com/tartampluch/go-bongabdo/internal/locale"
)

// tickMsg asks the model to recompute today.
type tickMsg time.Time

// Model is the Bubble Tea model of the terminal calendar.
type Model struct {
	clock     engine.Clock
	mode      engine.OffsetMode
	tr        *locale.Translator
	today     bangla.Date
	gregorian bangla.GregorianDate
	cursor    bangla.Cursor

	keys   keyMap
	help   help.Model
	styles styles
}

// New returns a model positioned on the current month. Help and status
// text follow the language of tr; month and day names stay in Bangla.
func New(clock engine.Clock, mode engine.OffsetMode, tr *locale.Translator) Model {
	today := engine.Today(clock, mode)
	return Model{
		clock:     clock,
		mode:      mode,
		tr:        tr,
		today:     today,
		gregorian: engine.TodayGregorian(clock, mode),
		cursor:    bangla.CursorFor(today),
		keys:      newKeyMap(tr),
		help:      help.New(),
		styles:    newStyles(),
	}
}

// Cursor returns the month being shown.
func (m Model) Cursor() bangla.Cursor { return m.cursor }

// Today returns the date the model considers current.
func (m Model) Today() bangla.Date { return m.today }

func tick() tea.Cmd {
	return tea.Tick(config.WidgetRefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the day-change ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles key presses, resizes and ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			m.move(m.cursor.Retreat())
		case key.Matches(msg, m.keys.Next):
			m.move(m.cursor.Advance())
		case key.Matches(msg, m.keys.Today):
			m.move(bangla.CursorFor(m.today))
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tickMsg:
		m.refreshToday()
		return m, tick()
	}
	return m, nil
}

func (m *Model) move(c bangla.Cursor) {
	m.cursor = c
	slog.Debug(config.MsgNavigate,
		config.LogKeyComponent, config.CompTUI,
		config.LogKeyMonth, c.Month,
		config.LogKeyYear, c.Year)
}

// refreshToday recomputes the date. A view showing the old month follows
// today into the new one.
func (m *Model) refreshToday() {
	now := engine.Today(m.clock, m.mode)
	if now.SameDay(m.today) {
		return
	}
	slog.Info(config.MsgDayChanged,
		config.LogKeyComponent, config.CompTUI,
		config.LogKeyBanglaDate, now.String())
	if m.cursor.Contains(m.today) {
		m.cursor = bangla.CursorFor(now)
	}
	m.today = now
	m.gregorian = engine.TodayGregorian(m.clock, m.mode)
}

// View renders the month grid, today's date and the key help.
func (m Model) View() string {
	month := bangla.BuildMonth(m.cursor, m.today)

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(month.Title))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(month.Subtitle))
	b.WriteString("\n\n")

	header := make([]string, len(month.Weekdays))
	for i, name := range month.Weekdays {
		header[i] = m.styles.Header.Render(name)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for _, week := range month.Weeks {
		row := make([]string, len(week))
		for col, cell := range week {
			row[col] = m.renderCell(cell, col)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}

	lines := m.today.Lines()
	status := append(lines[:],
		m.tr.MsgWith(config.TKeyHoverGregorian, map[string]any{"Date": m.gregorian.String()}))
	b.WriteString(m.styles.Status.Render(strings.Join(status, "\n")))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderCell(cell bangla.Cell, col int) string {
	switch {
	case cell.Today:
		return m.styles.Today.Render(cell.Label)
	case col == config.TUIWeekendColumn:
		return m.styles.Weekend.Render(cell.Label)
	default:
		return m.styles.Day.Render(cell.Label)
	}
}
