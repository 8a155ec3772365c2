package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nbrandt/habitual/internal/constants"
	"github.com/nbrandt/habitual/internal/habit"
)

var (
	calAllDoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	calPartialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	calLoggedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	calTodayStyle   = lipgloss.NewStyle().Reverse(true)
)

type CalendarCmd struct {
	Month string `help:"Month to show in YYYY-MM format (default: current month)." default:""`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	refDay := ctx.ReferenceDay()

	year, month := refDay.Year(), refDay.Month()
	if c.Month != "" {
		parsed, err := time.Parse(constants.MonthFormat, c.Month)
		if err != nil {
			return fmt.Errorf("invalid month: %s (expected YYYY-MM)", c.Month)
		}
		year, month = parsed.Year(), parsed.Month()
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, ctx.Location())
	last := first.AddDate(0, 1, -1)

	entries, err := ctx.Store.GetLogEntriesForRange(constants.DefaultUserID,
		first.Format(constants.DateFormat), last.Format(constants.DateFormat))
	if err != nil {
		return err
	}
	summaries := habit.AggregateMonth(entries, year, month)

	fmt.Println(RenderMonth(year, month, summaries, refDay))
	return nil
}

// RenderMonth draws a Sunday-first month grid. Days with activity are
// colored by completion level: all logged habits completed, some
// completed, or logged with none completed. The reference day is
// highlighted.
func RenderMonth(year int, month time.Month, summaries map[string]habit.DaySummary, refDay time.Time) string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	todayKey := refDay.Format(constants.DateFormat)

	var b strings.Builder
	b.WriteString(first.Format("January 2006"))
	b.WriteString("\n Su  Mo  Tu  We  Th  Fr  Sa\n")

	b.WriteString(strings.Repeat("    ", int(first.Weekday())))
	for d := 1; d <= daysInMonth; d++ {
		key := fmt.Sprintf("%04d-%02d-%02d", year, int(month), d)
		cell := fmt.Sprintf("%3d", d)

		if s, ok := summaries[key]; ok && s.TotalLogged > 0 {
			switch {
			case s.CompletedCount == s.TotalLogged:
				cell = calAllDoneStyle.Render(cell)
			case s.CompletedCount > 0:
				cell = calPartialStyle.Render(cell)
			default:
				cell = calLoggedStyle.Render(cell)
			}
		}
		if key == todayKey {
			cell = calTodayStyle.Render(cell)
		}

		b.WriteString(cell)
		b.WriteString(" ")
		if (int(first.Weekday())+d)%7 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}
