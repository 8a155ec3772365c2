package habit

import (
	"time"

	"github.com/nbrandt/habitual/internal/constants"
	"github.com/nbrandt/habitual/internal/models"
)

// DaySummary counts log entries for one calendar day across all habits.
type DaySummary struct {
	CompletedCount int
	TotalLogged    int
}

// AggregateMonth folds log entries into per-day summaries for the given
// month. Keys are YYYY-MM-DD day strings; days with no entries are absent
// from the map. Entries outside the month are ignored. Each entry counts
// once; a day with three habits logged yields TotalLogged=3.
func AggregateMonth(entries []models.HabitLogEntry, year int, month time.Month) map[string]DaySummary {
	out := make(map[string]DaySummary)
	for _, e := range entries {
		day := StartOfLocalDay(e.Date)
		if day.Year() != year || day.Month() != month {
			continue
		}
		key := day.Format(constants.DateFormat)
		s := out[key]
		s.TotalLogged++
		if e.Status == models.StatusCompleted {
			s.CompletedCount++
		}
		out[key] = s
	}
	return out
}
