package validation

import (
	"fmt"
	"strings"

	"github.com/nbrandt/habitual/internal/models"
)

// ValidateFrequency checks that a frequency config is fully formed. The
// due-date engine only ever receives frequencies that passed this check;
// interval staging state lives in the creating form or flag, never in a
// shared variable.
func ValidateFrequency(f models.Frequency) error {
	switch f.Type {
	case models.FrequencyDaily, models.FrequencyWeekly:
		if f.IntervalDays != 0 {
			return fmt.Errorf("interval is only valid for %s habits", models.FrequencyEveryNDays)
		}
		return nil
	case models.FrequencyEveryNDays:
		if f.IntervalDays < 1 {
			return fmt.Errorf("interval must be at least 1 day, got %d", f.IntervalDays)
		}
		return nil
	default:
		return fmt.Errorf("unknown frequency type %q (expected daily, every_x_days, or weekly)", f.Type)
	}
}

// ValidateNewHabit checks a habit about to be created.
func ValidateNewHabit(h models.Habit) error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if err := ValidateFrequency(h.Frequency); err != nil {
		return err
	}
	// New habits start with no history: streak zero and no completion
	// marker. A streak without a marker (or vice versa) is malformed here.
	if h.Streak != 0 {
		return fmt.Errorf("new habit must start with streak 0, got %d", h.Streak)
	}
	if h.LastCompletedDate != nil {
		return fmt.Errorf("new habit must not have a last completed date")
	}
	return nil
}

// ValidateStatus checks a log entry status value.
func ValidateStatus(s models.LogStatus) error {
	switch s {
	case models.StatusCompleted, models.StatusPending, models.StatusSkipped, models.StatusMissed:
		return nil
	default:
		return fmt.Errorf("unknown log status %q", s)
	}
}
