package habit

import (
	"reflect"
	"testing"
	"time"

	"github.com/nbrandt/habitual/internal/models"
)

func logEntry(id string, date time.Time, status models.LogStatus) models.HabitLogEntry {
	return models.HabitLogEntry{
		ID:      id,
		HabitID: "h-" + id,
		UserID:  "u1",
		Date:    date,
		Status:  status,
	}
}

func TestAggregateMonth(t *testing.T) {
	entries := []models.HabitLogEntry{
		logEntry("a", day(2024, 3, 5), models.StatusCompleted),
		logEntry("b", day(2024, 3, 5), models.StatusPending),
		logEntry("c", day(2024, 3, 6), models.StatusCompleted),
	}

	got := AggregateMonth(entries, 2024, time.March)
	want := map[string]DaySummary{
		"2024-03-05": {CompletedCount: 1, TotalLogged: 2},
		"2024-03-06": {CompletedCount: 1, TotalLogged: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateMonth() = %v, want %v", got, want)
	}
}

func TestAggregateMonthFiltersOtherMonths(t *testing.T) {
	entries := []models.HabitLogEntry{
		logEntry("a", day(2024, 2, 29), models.StatusCompleted),
		logEntry("b", day(2024, 3, 1), models.StatusCompleted),
		logEntry("c", day(2024, 4, 1), models.StatusSkipped),
		logEntry("d", day(2023, 3, 10), models.StatusCompleted),
	}

	got := AggregateMonth(entries, 2024, time.March)
	want := map[string]DaySummary{
		"2024-03-01": {CompletedCount: 1, TotalLogged: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateMonth() = %v, want %v", got, want)
	}
}

func TestAggregateMonthCountsNonCompletedStatuses(t *testing.T) {
	entries := []models.HabitLogEntry{
		logEntry("a", day(2024, 3, 10), models.StatusSkipped),
		logEntry("b", day(2024, 3, 10), models.StatusMissed),
		logEntry("c", day(2024, 3, 10), models.StatusPending),
	}

	got := AggregateMonth(entries, 2024, time.March)
	want := map[string]DaySummary{
		"2024-03-10": {CompletedCount: 0, TotalLogged: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateMonth() = %v, want %v", got, want)
	}
}

func TestAggregateMonthIsPure(t *testing.T) {
	entries := []models.HabitLogEntry{
		logEntry("a", day(2024, 3, 5), models.StatusCompleted),
		logEntry("b", day(2024, 3, 6), models.StatusPending),
	}

	first := AggregateMonth(entries, 2024, time.March)
	second := AggregateMonth(entries, 2024, time.March)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("AggregateMonth() is not idempotent: %v vs %v", first, second)
	}
}

func TestAggregateMonthEmpty(t *testing.T) {
	got := AggregateMonth(nil, 2024, time.March)
	if len(got) != 0 {
		t.Errorf("AggregateMonth(nil) = %v, want empty map", got)
	}
}
