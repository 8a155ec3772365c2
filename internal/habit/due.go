package habit

import (
	"fmt"
	"time"

	"github.com/nbrandt/habitual/internal/models"
)

// IsDueOn decides whether a habit is due on the given reference day. The
// reference day must be a start-of-local-day instant (see StartOfLocalDay).
//
// Due-ness is independent of whether today's instance is already completed;
// the caller tracks completion separately via the day's log entry.
func IsDueOn(h models.Habit, refDay time.Time) (bool, error) {
	switch h.Frequency.Type {
	case models.FrequencyDaily:
		return true, nil

	case models.FrequencyEveryNDays:
		if h.Frequency.IntervalDays < 1 {
			return false, fmt.Errorf("invalid interval %d for every-x-days habit %q", h.Frequency.IntervalDays, h.Name)
		}
		if h.LastCompletedDate == nil {
			return true, nil
		}
		nextDue := AddDays(StartOfLocalDay(*h.LastCompletedDate), h.Frequency.IntervalDays)
		return !refDay.Before(nextDue), nil

	case models.FrequencyWeekly:
		if h.LastCompletedDate == nil {
			return true, nil
		}
		// Weekly means at least once per Sunday-to-Saturday window, not a
		// fixed day of week: due iff the last completion fell in a strictly
		// earlier week than the reference day's.
		weekStart := StartOfUTCWeek(refDay)
		return StartOfLocalDay(*h.LastCompletedDate).Before(weekStart), nil

	default:
		return false, fmt.Errorf("unknown frequency type %q", h.Frequency.Type)
	}
}
