package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/nbrandt/habitual/internal/constants"
	"github.com/nbrandt/habitual/internal/habit"
	"github.com/nbrandt/habitual/internal/logger"
	"github.com/nbrandt/habitual/internal/models"
	"github.com/nbrandt/habitual/internal/storage"
)

type Context struct {
	Store storage.Provider
	Clock habit.Clock
}

// Location resolves the configured timezone to a time.Location. The
// special value "Local" (the default) means the system zone.
func (c *Context) Location() *time.Location {
	settings, err := c.Store.GetSettings()
	if err != nil || settings.Timezone == "" || settings.Timezone == constants.DefaultTimezone {
		return time.Local
	}
	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone in settings, falling back to system zone", "timezone", settings.Timezone, "error", err)
		return time.Local
	}
	return loc
}

// ReferenceDay returns the current reference day in the configured zone.
func (c *Context) ReferenceDay() time.Time {
	return habit.ReferenceDay(c.Clock, c.Location())
}

// ParseFrequency builds a frequency from the CLI's freq/every flag pair.
// Accepted freq values are "daily", "weekly", and "every" (which requires
// every >= 1).
func ParseFrequency(freq string, every int) (models.Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(freq)) {
	case "daily", "":
		return models.Frequency{Type: models.FrequencyDaily}, nil
	case "weekly":
		return models.Frequency{Type: models.FrequencyWeekly}, nil
	case "every":
		if every < 1 {
			return models.Frequency{}, fmt.Errorf("--every must be at least 1 for 'every' frequency")
		}
		return models.Frequency{Type: models.FrequencyEveryNDays, IntervalDays: every}, nil
	default:
		return models.Frequency{}, fmt.Errorf("invalid frequency: %s (expected daily, weekly, or every)", freq)
	}
}

// FormatFrequency formats a frequency into a human-readable string
func FormatFrequency(f models.Frequency) string {
	switch f.Type {
	case models.FrequencyDaily:
		return "daily"
	case models.FrequencyWeekly:
		return "weekly"
	case models.FrequencyEveryNDays:
		return fmt.Sprintf("every %d days", f.IntervalDays)
	default:
		return "unknown"
	}
}
