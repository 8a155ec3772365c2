package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nbrandt/habitual/internal/constants"
	"github.com/nbrandt/habitual/internal/habit"
)

// MonthChangedMsg asks the host to reload log entries for the new month.
type MonthChangedMsg struct {
	Year  int
	Month time.Month
}

type KeyMap struct {
	PrevMonth key.Binding
	NextMonth key.Binding
	PrevDay   key.Binding
	NextDay   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevMonth: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "next month"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "select day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("", ""),
		),
	}
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	allDoneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	partialStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	loggedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	todayStyle    = lipgloss.NewStyle().Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

type Model struct {
	keys      KeyMap
	year      int
	month     time.Month
	selected  int // day of month
	refDay    time.Time
	summaries map[string]habit.DaySummary
}

func New(refDay time.Time) Model {
	return Model{
		keys:     DefaultKeyMap(),
		year:     refDay.Year(),
		month:    refDay.Month(),
		selected: refDay.Day(),
		refDay:   refDay,
	}
}

func (m Model) Year() int         { return m.year }
func (m Model) Month() time.Month { return m.month }

// SetSummaries replaces the month's per-day counts.
func (m *Model) SetSummaries(summaries map[string]habit.DaySummary) {
	m.summaries = summaries
}

// SetReferenceDay moves the highlighted today marker, e.g. after a
// midnight rollover.
func (m *Model) SetReferenceDay(refDay time.Time) {
	m.refDay = refDay
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.PrevMonth):
			m.year, m.month = prevMonth(m.year, m.month)
			m.clampSelected()
			return m, m.monthChanged()
		case key.Matches(msg, m.keys.NextMonth):
			m.year, m.month = nextMonth(m.year, m.month)
			m.clampSelected()
			return m, m.monthChanged()
		case key.Matches(msg, m.keys.PrevDay):
			if m.selected > 1 {
				m.selected--
			}
		case key.Matches(msg, m.keys.NextDay):
			if m.selected < daysIn(m.year, m.month) {
				m.selected++
			}
		}
	}
	return m, nil
}

func prevMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}

func (m *Model) clampSelected() {
	if max := daysIn(m.year, m.month); m.selected > max {
		m.selected = max
	}
}

func (m Model) monthChanged() tea.Cmd {
	year, month := m.year, m.month
	return func() tea.Msg { return MonthChangedMsg{Year: year, Month: month} }
}

func (m Model) View() string {
	first := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC)
	days := daysIn(m.year, m.month)
	todayKey := m.refDay.Format(constants.DateFormat)

	var b strings.Builder
	b.WriteString(headerStyle.Render(first.Format("January 2006")))
	b.WriteString("\n Su  Mo  Tu  We  Th  Fr  Sa\n")

	b.WriteString(strings.Repeat("    ", int(first.Weekday())))
	for d := 1; d <= days; d++ {
		dayKey := fmt.Sprintf("%04d-%02d-%02d", m.year, int(m.month), d)
		cell := fmt.Sprintf("%3d", d)

		if s, ok := m.summaries[dayKey]; ok && s.TotalLogged > 0 {
			switch {
			case s.CompletedCount == s.TotalLogged:
				cell = allDoneStyle.Render(cell)
			case s.CompletedCount > 0:
				cell = partialStyle.Render(cell)
			default:
				cell = loggedStyle.Render(cell)
			}
		}
		if dayKey == todayKey {
			cell = todayStyle.Render(cell)
		}
		if d == m.selected {
			cell = selectedStyle.Render(cell)
		}

		b.WriteString(cell)
		b.WriteString(" ")
		if (int(first.Weekday())+d)%7 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")
	b.WriteString(detailStyle.Render(m.dayDetail()))
	return b.String()
}

// dayDetail summarizes the selected day's counts for the footer.
func (m Model) dayDetail() string {
	dayKey := fmt.Sprintf("%04d-%02d-%02d", m.year, int(m.month), m.selected)
	s, ok := m.summaries[dayKey]
	if !ok || s.TotalLogged == 0 {
		return fmt.Sprintf("%s: no activity", dayKey)
	}
	return fmt.Sprintf("%s: %d/%d habits completed", dayKey, s.CompletedCount, s.TotalLogged)
}
