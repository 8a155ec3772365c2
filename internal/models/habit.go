package models

import "time"

type FrequencyType string

const (
	FrequencyDaily      FrequencyType = "daily"
	FrequencyEveryNDays FrequencyType = "every_x_days"
	FrequencyWeekly     FrequencyType = "weekly"
)

type LogStatus string

const (
	StatusCompleted LogStatus = "completed"
	StatusPending   LogStatus = "pending"
	StatusSkipped   LogStatus = "skipped"
	StatusMissed    LogStatus = "missed"
)

// Frequency describes how often a habit is due. IntervalDays is only
// meaningful when Type is FrequencyEveryNDays and must be at least 1 there.
type Frequency struct {
	Type         FrequencyType `json:"type"`
	IntervalDays int           `json:"interval_days,omitempty"`
}

type Habit struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Frequency Frequency `json:"frequency"`
	// Streak counts consecutive due periods completed in a row.
	Streak int `json:"streak"`
	// LastCompletedDate is normalized to the start of the local calendar
	// day it was set on. Nil means the habit has never been completed.
	LastCompletedDate *time.Time `json:"last_completed_date,omitempty"`
	IsActive          bool       `json:"is_active"`
	Archived          bool       `json:"archived"`
	CreatedAt         time.Time  `json:"created_at"`
}

// HabitLogEntry records one habit's status for one calendar day.
// At most one entry exists per (HabitID, Date) pair.
type HabitLogEntry struct {
	ID      string `json:"id"`
	HabitID string `json:"habit_id"`
	UserID  string `json:"user_id"`
	// Date is the calendar day the entry logs, normalized to the start of
	// the local day. It is not the instant of the logging action.
	Date time.Time `json:"date"`
	// LoggedAt is when the logging action actually happened (audit only).
	LoggedAt time.Time `json:"logged_at"`
	Status   LogStatus `json:"status"`
	Note     string    `json:"note,omitempty"`
}

// Day returns the entry's storage key day string (YYYY-MM-DD).
func (e HabitLogEntry) Day() string {
	return e.Date.Format("2006-01-02")
}
