package validation

import (
	"testing"
	"time"

	"github.com/nbrandt/habitual/internal/models"
)

func TestValidateFrequency(t *testing.T) {
	tests := []struct {
		name    string
		freq    models.Frequency
		wantErr bool
	}{
		{
			name:    "daily",
			freq:    models.Frequency{Type: models.FrequencyDaily},
			wantErr: false,
		},
		{
			name:    "weekly",
			freq:    models.Frequency{Type: models.FrequencyWeekly},
			wantErr: false,
		},
		{
			name:    "every 3 days",
			freq:    models.Frequency{Type: models.FrequencyEveryNDays, IntervalDays: 3},
			wantErr: false,
		},
		{
			name:    "every 1 day is allowed",
			freq:    models.Frequency{Type: models.FrequencyEveryNDays, IntervalDays: 1},
			wantErr: false,
		},
		{
			name:    "zero interval rejected",
			freq:    models.Frequency{Type: models.FrequencyEveryNDays, IntervalDays: 0},
			wantErr: true,
		},
		{
			name:    "negative interval rejected",
			freq:    models.Frequency{Type: models.FrequencyEveryNDays, IntervalDays: -1},
			wantErr: true,
		},
		{
			name:    "interval on daily rejected",
			freq:    models.Frequency{Type: models.FrequencyDaily, IntervalDays: 2},
			wantErr: true,
		},
		{
			name:    "unknown type rejected",
			freq:    models.Frequency{Type: "monthly"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFrequency(tt.freq)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFrequency() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNewHabit(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		habit   models.Habit
		wantErr bool
	}{
		{
			name: "valid new habit",
			habit: models.Habit{
				Name:      "read",
				Frequency: models.Frequency{Type: models.FrequencyDaily},
			},
			wantErr: false,
		},
		{
			name: "empty name rejected",
			habit: models.Habit{
				Name:      "   ",
				Frequency: models.Frequency{Type: models.FrequencyDaily},
			},
			wantErr: true,
		},
		{
			name: "nonzero streak rejected",
			habit: models.Habit{
				Name:      "read",
				Frequency: models.Frequency{Type: models.FrequencyDaily},
				Streak:    3,
			},
			wantErr: true,
		},
		{
			name: "preset completion marker rejected",
			habit: models.Habit{
				Name:              "read",
				Frequency:         models.Frequency{Type: models.FrequencyDaily},
				LastCompletedDate: &now,
			},
			wantErr: true,
		},
		{
			name: "invalid frequency rejected",
			habit: models.Habit{
				Name:      "read",
				Frequency: models.Frequency{Type: models.FrequencyEveryNDays},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewHabit(tt.habit)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNewHabit() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateStatus(t *testing.T) {
	for _, s := range []models.LogStatus{models.StatusCompleted, models.StatusPending, models.StatusSkipped, models.StatusMissed} {
		if err := ValidateStatus(s); err != nil {
			t.Errorf("ValidateStatus(%q) error = %v", s, err)
		}
	}
	if err := ValidateStatus("done"); err == nil {
		t.Errorf("ValidateStatus(\"done\") expected error")
	}
}
