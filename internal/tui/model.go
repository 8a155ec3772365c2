package tui

import (
	"database/sql"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nbrandt/habitual/internal/constants"
	"github.com/nbrandt/habitual/internal/habit"
	"github.com/nbrandt/habitual/internal/logger"
	"github.com/nbrandt/habitual/internal/models"
	"github.com/nbrandt/habitual/internal/storage"
	"github.com/nbrandt/habitual/internal/tui/components/calendar"
	"github.com/nbrandt/habitual/internal/tui/components/habits"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateCalendar
	StateAddHabit
	StateConfirmArchive
	StateConfirmDelete
)

// HabitFormModel stages the add-habit form's inputs. Each form instance
// owns its own staging state so a cancelled form never leaks a half-typed
// interval into the next one.
type HabitFormModel struct {
	Name     string
	Freq     models.FrequencyType
	Interval string
}

// tickMsg fires on an interval so the reference day tracks midnight
// rollovers while the TUI stays open.
type tickMsg time.Time

const refDayTickInterval = 30 * time.Second

func tick() tea.Cmd {
	return tea.Tick(refDayTickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type Model struct {
	store         storage.Provider
	clock         habit.Clock
	loc           *time.Location
	refDay        time.Time
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	habitsModel   habits.Model
	calendarModel calendar.Model
	form          *huh.Form
	habitForm     *HabitFormModel
	pendingID     string // habit awaiting archive/delete confirmation
	statusError   string
	quitting      bool
	width         int
	height        int
}

func NewModel(store storage.Provider, clock habit.Clock) Model {
	loc := time.Local
	if settings, err := store.GetSettings(); err == nil && settings.Timezone != "" && settings.Timezone != constants.DefaultTimezone {
		if l, err := time.LoadLocation(settings.Timezone); err == nil {
			loc = l
		}
	}
	refDay := habit.ReferenceDay(clock, loc)

	m := Model{
		store:         store,
		clock:         clock,
		loc:           loc,
		refDay:        refDay,
		state:         StateHabits,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		habitsModel:   habits.New(nil, 0, 0),
		calendarModel: calendar.New(refDay),
	}
	m.refreshHabits()
	m.refreshCalendar(refDay.Year(), refDay.Month())
	return m
}

// refreshHabits reloads the habit list with due/completed status for the
// current reference day.
func (m *Model) refreshHabits() {
	habitList, err := m.store.GetAllHabits(constants.DefaultUserID, false)
	if err != nil {
		logger.Warn("Failed to load habits", "error", err)
		return
	}

	dayKey := m.refDay.Format(constants.DateFormat)
	entries, err := m.store.GetLogEntriesForDay(constants.DefaultUserID, dayKey)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.Warn("Failed to load log entries", "day", dayKey, "error", err)
	}
	completed := make(map[string]bool)
	for _, e := range entries {
		if e.Status == models.StatusCompleted {
			completed[e.HabitID] = true
		}
	}

	items := make([]habits.Item, 0, len(habitList))
	for _, h := range habitList {
		due, err := habit.IsDueOn(h, m.refDay)
		if err != nil {
			logger.Warn("Skipping habit with invalid frequency", "habit", h.Name, "error", err)
			continue
		}
		items = append(items, habits.Item{
			Habit:     h,
			Due:       due,
			Completed: completed[h.ID],
		})
	}
	m.habitsModel.SetItems(items)
}

// refreshCalendar reloads per-day summaries for the given month.
func (m *Model) refreshCalendar(year int, month time.Month) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, m.loc)
	last := first.AddDate(0, 1, -1)

	entries, err := m.store.GetLogEntriesForRange(constants.DefaultUserID,
		first.Format(constants.DateFormat), last.Format(constants.DateFormat))
	if err != nil {
		logger.Warn("Failed to load calendar entries", "error", err)
		return
	}
	m.calendarModel.SetSummaries(habit.AggregateMonth(entries, year, month))
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateHabits {
		hk := habits.DefaultKeyMap()
		keys = append(keys, hk.Add, hk.Toggle)
	}
	if m.state == StateCalendar {
		ck := calendar.DefaultKeyMap()
		keys = append(keys, ck.PrevMonth, ck.NextMonth, ck.PrevDay)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateHabits:
		hk := habits.DefaultKeyMap()
		actions = []key.Binding{hk.Add, hk.Toggle, hk.Archive, hk.Delete}
	case StateCalendar:
		ck := calendar.DefaultKeyMap()
		actions = []key.Binding{ck.PrevMonth, ck.NextMonth, ck.PrevDay}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tick()
}
