package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nbrandt/habitual/internal/constants"
	"github.com/nbrandt/habitual/internal/models"
	"github.com/nbrandt/habitual/internal/validation"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Archive HabitArchiveCmd `cmd:"" help:"Archive a habit."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit and its entire log history."`
}

type HabitAddCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Freq  string `help:"Frequency: daily, weekly, or every." default:"daily"`
	Every int    `help:"Interval in days (only with --freq every)." default:"0"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	freq, err := ParseFrequency(c.Freq, c.Every)
	if err != nil {
		return err
	}

	_, err = ctx.Store.GetHabitByName(constants.DefaultUserID, c.Name)
	if err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		UserID:    constants.DefaultUserID,
		Name:      c.Name,
		Frequency: freq,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := validation.ValidateNewHabit(habit); err != nil {
		return err
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", c.Name, FormatFrequency(freq))
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits(constants.DefaultUserID, c.Archived)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		status := ""
		if h.Archived {
			status = " [ARCHIVED]"
		}
		fmt.Printf("%-25s %-15s streak %d%s\n", h.Name, FormatFrequency(h.Frequency), h.Streak, status)
	}

	return nil
}

type HabitArchiveCmd struct {
	Name      string `arg:"" help:"Habit name to archive."`
	Unarchive bool   `help:"Unarchive the habit instead."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(constants.DefaultUserID, c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	if err := ctx.Store.SetHabitArchived(habit.ID, !c.Unarchive); err != nil {
		return err
	}

	if c.Unarchive {
		fmt.Printf("Unarchived habit: %s\n", c.Name)
	} else {
		fmt.Printf("Archived habit: %s\n", c.Name)
	}
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(constants.DefaultUserID, c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", c.Name)
	fmt.Println("(This permanently removed the habit and all of its log entries)")
	return nil
}
