package tui

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/nbrandt/habitual/internal/constants"
	"github.com/nbrandt/habitual/internal/habit"
	"github.com/nbrandt/habitual/internal/models"
	"github.com/nbrandt/habitual/internal/tui/components/calendar"
	"github.com/nbrandt/habitual/internal/tui/components/habits"
	"github.com/nbrandt/habitual/internal/validation"
)

func newHabitForm(f *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.FrequencyType]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", models.FrequencyDaily),
					huh.NewOption("Every N days", models.FrequencyEveryNDays),
					huh.NewOption("Weekly", models.FrequencyWeekly),
				).
				Value(&f.Freq),
			huh.NewInput().
				Title("Interval (days)").
				Placeholder("only for every-N-days").
				Value(&f.Interval).
				Validate(func(s string) error {
					if f.Freq != models.FrequencyEveryNDays {
						return nil
					}
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("interval must be a whole number of at least 1")
					}
					return nil
				}),
		),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := docStyle.GetFrameSize()
		m.habitsModel.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil

	case tickMsg:
		newRefDay := habit.ReferenceDay(m.clock, m.loc)
		if !newRefDay.Equal(m.refDay) {
			m.refDay = newRefDay
			m.calendarModel.SetReferenceDay(newRefDay)
			m.refreshHabits()
			m.refreshCalendar(m.calendarModel.Year(), m.calendarModel.Month())
		}
		return m, tick()
	}

	if m.state == StateAddHabit {
		return m.updateAddHabit(msg)
	}
	if m.state == StateConfirmArchive || m.state == StateConfirmDelete {
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case "tab", "shift+tab":
			if m.state == StateHabits {
				m.state = StateCalendar
				m.refreshCalendar(m.calendarModel.Year(), m.calendarModel.Month())
			} else {
				m.state = StateHabits
				m.refreshHabits()
			}
			m.statusError = ""
			return m, nil
		}

	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{Freq: models.FrequencyDaily}
		m.form = newHabitForm(m.habitForm)
		m.previousState = m.state
		m.state = StateAddHabit
		m.statusError = ""
		return m, m.form.Init()

	case habits.ToggleHabitMsg:
		m.toggleHabit(msg.ID)
		return m, nil

	case habits.ArchiveHabitMsg:
		m.pendingID = msg.ID
		m.previousState = m.state
		m.state = StateConfirmArchive
		return m, nil

	case habits.DeleteHabitMsg:
		m.pendingID = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case calendar.MonthChangedMsg:
		m.refreshCalendar(msg.Year, msg.Month)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case StateCalendar:
		m.calendarModel, cmd = m.calendarModel.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		freq := models.Frequency{Type: m.habitForm.Freq}
		if freq.Type == models.FrequencyEveryNDays {
			// Already validated by the form field.
			freq.IntervalDays, _ = strconv.Atoi(strings.TrimSpace(m.habitForm.Interval))
		}

		newHabit := models.Habit{
			ID:        uuid.New().String(),
			UserID:    constants.DefaultUserID,
			Name:      strings.TrimSpace(m.habitForm.Name),
			Frequency: freq,
			IsActive:  true,
			CreatedAt: m.clock.Now(),
		}

		if err := validation.ValidateNewHabit(newHabit); err != nil {
			m.statusError = err.Error()
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		if err := m.store.AddHabit(newHabit); err != nil {
			m.statusError = fmt.Sprintf("Failed to add habit: %v", err)
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}

		m.statusError = ""
		m.refreshHabits()
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		var err error
		if m.state == StateConfirmArchive {
			err = m.store.SetHabitArchived(m.pendingID, true)
		} else {
			err = m.store.DeleteHabit(m.pendingID)
		}
		if err != nil {
			m.statusError = err.Error()
		} else {
			m.statusError = ""
			m.refreshHabits()
			m.refreshCalendar(m.calendarModel.Year(), m.calendarModel.Month())
		}
		m.pendingID = ""
		m.state = m.previousState
	case "n", "esc":
		m.pendingID = ""
		m.state = m.previousState
	}
	return m, nil
}

// toggleHabit runs the completion toggle for the current reference day and
// commits it atomically.
func (m *Model) toggleHabit(id string) {
	h, err := m.store.GetHabit(id)
	if err != nil {
		m.statusError = fmt.Sprintf("Failed to load habit: %v", err)
		return
	}

	dayKey := m.refDay.Format(constants.DateFormat)
	var existing *models.HabitLogEntry
	entry, err := m.store.GetLogEntry(h.ID, dayKey)
	if err == nil {
		existing = &entry
	} else if !errors.Is(err, sql.ErrNoRows) {
		m.statusError = fmt.Sprintf("Failed to load log entry: %v", err)
		return
	}

	res, err := habit.ToggleCompletion(h, existing, m.refDay, m.clock.Now())
	if err != nil {
		if errors.Is(err, habit.ErrNotDue) {
			m.statusError = fmt.Sprintf("%q is not due today", h.Name)
		} else {
			m.statusError = err.Error()
		}
		return
	}
	if res.Op == habit.LogWriteCreate {
		res.Entry.ID = uuid.New().String()
	}

	h.Streak = res.Streak
	h.LastCompletedDate = res.LastCompletedDate
	if err := m.store.ApplyToggle(h, res.Entry); err != nil {
		m.statusError = fmt.Sprintf("Failed to save toggle: %v", err)
		return
	}

	m.statusError = ""
	m.refreshHabits()
	if m.refDay.Year() == m.calendarModel.Year() && m.refDay.Month() == m.calendarModel.Month() {
		m.refreshCalendar(m.calendarModel.Year(), m.calendarModel.Month())
	}
}
