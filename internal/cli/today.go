package cli

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/nbrandt/habitual/internal/constants"
	"github.com/nbrandt/habitual/internal/habit"
	"github.com/nbrandt/habitual/internal/models"
)

type TodayCmd struct {
	All bool `help:"Show habits not due today as well."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	refDay := ctx.ReferenceDay()
	dayKey := refDay.Format(constants.DateFormat)

	habits, err := ctx.Store.GetAllHabits(constants.DefaultUserID, false)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found. Add one with 'habitual habit add'.")
		return nil
	}

	entries, err := ctx.Store.GetLogEntriesForDay(constants.DefaultUserID, dayKey)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	completed := make(map[string]bool)
	for _, e := range entries {
		if e.Status == models.StatusCompleted {
			completed[e.HabitID] = true
		}
	}

	fmt.Printf("Habits for %s:\n\n", dayKey)
	done, due := 0, 0
	for _, h := range habits {
		isDue, err := habit.IsDueOn(h, refDay)
		if err != nil {
			return fmt.Errorf("habit %q: %w", h.Name, err)
		}
		// A completed habit stays visible even after due-ness flips, so an
		// accidental completion can still be undone.
		if !isDue && !completed[h.ID] && !c.All {
			continue
		}

		marker := "[ ]"
		if completed[h.ID] {
			marker = "[x]"
			done++
		}
		due++
		extra := ""
		if !isDue && !completed[h.ID] {
			extra = " (not due today)"
		}
		fmt.Printf("%s %-25s %-15s streak %d%s\n", marker, h.Name, FormatFrequency(h.Frequency), h.Streak, extra)
	}

	if due == 0 {
		fmt.Println("Nothing due today.")
		return nil
	}
	fmt.Printf("\nCompleted: %d/%d\n", done, due)
	return nil
}
