package habit

import (
	"errors"
	"time"

	"github.com/nbrandt/habitual/internal/models"
)

// ErrNotDue is returned when a toggle is requested on a habit that is
// neither due on the reference day nor already completed for it.
var ErrNotDue = errors.New("habit is not scheduled for completion today")

// ErrNotActive is returned when a toggle targets an archived or inactive
// habit. Such habits keep their history but no longer take part in
// due-date or streak logic.
var ErrNotActive = errors.New("habit is archived or inactive")

// LogWriteOp says whether the proposed log entry is new or replaces the
// existing row for (habitID, day).
type LogWriteOp int

const (
	LogWriteCreate LogWriteOp = iota
	LogWriteUpdate
)

// ToggleResult is the complete write set a completion toggle produces. The
// engine only proposes it; the host must commit the habit fields and the
// log entry atomically (storage.Provider.ApplyToggle) or not at all.
type ToggleResult struct {
	// Streak and LastCompletedDate are the habit's next values.
	Streak            int
	LastCompletedDate *time.Time
	// HabitChanged is false when only the log entry's status moves (e.g.
	// uncompleting an entry whose completion was not the reference day's).
	HabitChanged bool

	Entry models.HabitLogEntry
	Op    LogWriteOp
}

// Completed reports whether the result marks the day as completed.
func (r ToggleResult) Completed() bool { return r.Entry.Status == models.StatusCompleted }

// ToggleCompletion computes the state transition for toggling a habit's
// completion on refDay. existing is the day's log entry if one is present
// (looked up by the (habitID, refDay) composite key); nil otherwise. now is
// the actual instant of the action, recorded for audit only.
//
// Completing increments the streak and advances LastCompletedDate to
// refDay. Uncompleting decrements the streak (floored at zero) and clears
// LastCompletedDate, but only when the completion being undone is refDay's
// own; the previous completion day is not recoverable, which is a known
// limitation of the data model.
func ToggleCompletion(h models.Habit, existing *models.HabitLogEntry, refDay, now time.Time) (ToggleResult, error) {
	if h.Archived || !h.IsActive {
		return ToggleResult{}, ErrNotActive
	}

	completedToday := existing != nil && existing.Status == models.StatusCompleted

	due, err := IsDueOn(h, refDay)
	if err != nil {
		return ToggleResult{}, err
	}
	if !due && !completedToday {
		return ToggleResult{}, ErrNotDue
	}

	res := ToggleResult{
		Streak:            h.Streak,
		LastCompletedDate: h.LastCompletedDate,
	}

	if existing != nil {
		res.Op = LogWriteUpdate
		res.Entry = *existing
	} else {
		res.Op = LogWriteCreate
		res.Entry = models.HabitLogEntry{
			HabitID: h.ID,
			UserID:  h.UserID,
			Date:    refDay,
		}
	}
	res.Entry.LoggedAt = now

	if !completedToday {
		res.Entry.Status = models.StatusCompleted
		res.Streak = h.Streak + 1
		last := refDay
		res.LastCompletedDate = &last
		res.HabitChanged = true
		return res, nil
	}

	res.Entry.Status = models.StatusPending
	if h.LastCompletedDate != nil && SameUTCDay(*h.LastCompletedDate, refDay) {
		res.Streak = h.Streak - 1
		if res.Streak < 0 {
			res.Streak = 0
		}
		res.LastCompletedDate = nil
		res.HabitChanged = true
	}
	return res, nil
}
