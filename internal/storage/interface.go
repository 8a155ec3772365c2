package storage

import (
	"net/url"
	"strings"

	"github.com/nbrandt/habitual/internal/models"
)

// Provider is the persistence contract the application runs against. Both
// backends keep habits keyed by opaque id and log entries keyed by the
// (habit_id, day) composite; day strings are YYYY-MM-DD.
//
// Lookup methods return database/sql.ErrNoRows when nothing matches.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(userID, name string) (models.Habit, error)
	GetAllHabits(userID string, includeArchived bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	SetHabitArchived(id string, archived bool) error
	// DeleteHabit removes the habit and all of its log entries in one
	// transaction. Deletion is permanent; there is no soft-delete state.
	DeleteHabit(id string) error

	// Habit log
	GetLogEntry(habitID, day string) (models.HabitLogEntry, error)
	GetLogEntriesForDay(userID, day string) ([]models.HabitLogEntry, error)
	GetLogEntriesForRange(userID, startDay, endDay string) ([]models.HabitLogEntry, error)
	GetLogEntriesForHabit(habitID, startDay, endDay string) ([]models.HabitLogEntry, error)
	UpsertLogEntry(models.HabitLogEntry) error

	// ApplyToggle commits a toggle's habit fields (streak, last completed)
	// and its log entry upsert as one atomic unit. A partially applied
	// toggle is an inconsistent state; either both writes land or neither.
	ApplyToggle(habit models.Habit, entry models.HabitLogEntry) error

	// Utils
	GetConfigPath() string
}

// HasEmbeddedCredentials reports whether a Postgres connection string
// carries an inline password. Credentials belong in the environment,
// .pgpass, or the OS keyring, never in argv.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, has := u.User.Password(); has {
				return true
			}
		}
		return false
	}
	// DSN format
	for _, field := range strings.Fields(connStr) {
		if strings.HasPrefix(field, "password=") {
			return true
		}
	}
	return false
}
