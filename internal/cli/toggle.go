package cli

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nbrandt/habitual/internal/constants"
	"github.com/nbrandt/habitual/internal/habit"
	"github.com/nbrandt/habitual/internal/models"
)

type DoneCmd struct {
	Name string `arg:"" help:"Habit name to complete for today."`
	Note string `help:"Optional note for this entry." default:""`
}

func (c *DoneCmd) Run(ctx *Context) error {
	res, h, err := toggle(ctx, c.Name, c.Note)
	if err != nil {
		return err
	}
	if !res.Completed() {
		fmt.Printf("Unmarked %q for %s (it was already done; use 'done' again to redo)\n",
			h.Name, res.Entry.Day())
		return nil
	}
	fmt.Printf("Completed %q for %s. Streak: %d\n", h.Name, res.Entry.Day(), res.Streak)
	return nil
}

type UndoCmd struct {
	Name string `arg:"" help:"Habit name to uncomplete for today."`
}

func (c *UndoCmd) Run(ctx *Context) error {
	res, h, err := toggle(ctx, c.Name, "")
	if err != nil {
		return err
	}
	if res.Completed() {
		fmt.Printf("%q was not completed today; it is now marked done for %s. Streak: %d\n",
			h.Name, res.Entry.Day(), res.Streak)
		return nil
	}
	fmt.Printf("Undid %q for %s. Streak: %d\n", h.Name, res.Entry.Day(), res.Streak)
	return nil
}

// toggle runs the full completion toggle flow for a habit by name: look up
// the day's entry, compute the transition, and commit the write set in one
// transaction.
func toggle(ctx *Context, name, note string) (habit.ToggleResult, models.Habit, error) {
	h, err := ctx.Store.GetHabitByName(constants.DefaultUserID, name)
	if err != nil {
		return habit.ToggleResult{}, models.Habit{}, fmt.Errorf("habit %q not found", name)
	}

	refDay := ctx.ReferenceDay()
	dayKey := refDay.Format(constants.DateFormat)

	var existing *models.HabitLogEntry
	entry, err := ctx.Store.GetLogEntry(h.ID, dayKey)
	if err == nil {
		existing = &entry
	} else if !errors.Is(err, sql.ErrNoRows) {
		return habit.ToggleResult{}, models.Habit{}, err
	}

	res, err := habit.ToggleCompletion(h, existing, refDay, ctx.Clock.Now())
	if err != nil {
		if errors.Is(err, habit.ErrNotDue) {
			return habit.ToggleResult{}, models.Habit{}, fmt.Errorf("habit %q is not due today", name)
		}
		if errors.Is(err, habit.ErrNotActive) {
			return habit.ToggleResult{}, models.Habit{}, fmt.Errorf("habit %q is archived; unarchive it first", name)
		}
		return habit.ToggleResult{}, models.Habit{}, err
	}
	if res.Op == habit.LogWriteCreate {
		res.Entry.ID = uuid.New().String()
	}
	if note != "" {
		res.Entry.Note = note
	}

	h.Streak = res.Streak
	h.LastCompletedDate = res.LastCompletedDate
	if err := ctx.Store.ApplyToggle(h, res.Entry); err != nil {
		return habit.ToggleResult{}, models.Habit{}, err
	}
	return res, h, nil
}
