package habit

import (
	"testing"
	"time"
)

func TestStartOfLocalDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "afternoon UTC",
			in:   time.Date(2024, 3, 5, 15, 30, 45, 123, time.UTC),
			want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "already midnight",
			in:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "truncates in the instant's own zone",
			in:   time.Date(2024, 3, 5, 23, 59, 0, 0, ny),
			want: time.Date(2024, 3, 5, 0, 0, 0, 0, ny),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfLocalDay(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("StartOfLocalDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartOfUTCWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday resolves to preceding sunday",
			in:   time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC), // Wed
			want: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday is its own week start",
			in:   time.Date(2024, 1, 7, 23, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "saturday stays in the current window",
			in:   time.Date(2024, 1, 13, 1, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "crosses month boundary",
			in:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), // Sat
			want: time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfUTCWeek(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("StartOfUTCWeek() = %v, want %v", got, tt.want)
			}
			if got.Weekday() != time.Sunday {
				t.Errorf("StartOfUTCWeek() weekday = %v, want Sunday", got.Weekday())
			}
		})
	}
}

func TestAddDaysAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	// 2024-03-10 is the US spring-forward date; the day is 23 hours long.
	start := time.Date(2024, 3, 9, 0, 0, 0, 0, ny)
	got := AddDays(start, 2)
	want := time.Date(2024, 3, 11, 0, 0, 0, 0, ny)
	if !got.Equal(want) {
		t.Errorf("AddDays() across DST = %v, want %v", got, want)
	}
}

func TestAddDaysPreservesNormalization(t *testing.T) {
	// Adding days to an already-normalized instant must stay normalized:
	// startOfLocalDay(addDays(startOfLocalDay(d), n)) == addDays(startOfLocalDay(d), n).
	base := time.Date(2024, 6, 15, 18, 45, 12, 0, time.UTC)
	for _, n := range []int{-400, -31, -1, 0, 1, 3, 30, 365} {
		added := AddDays(StartOfLocalDay(base), n)
		if !StartOfLocalDay(added).Equal(added) {
			t.Errorf("AddDays(%d) lost day alignment: %v", n, added)
		}
	}
}

func TestSameUTCDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{
			name: "same UTC date",
			a:    time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "adjacent UTC dates",
			a:    time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC),
			b:    time.Date(2024, 3, 6, 0, 1, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "local evening crosses the UTC boundary",
			// 22:00 in New York is already the next day in UTC, so two
			// instants on the same local day can disagree here. The UTC
			// comparison is intentional; see SameUTCDay.
			a:    time.Date(2024, 3, 5, 22, 0, 0, 0, ny),
			b:    time.Date(2024, 3, 5, 10, 0, 0, 0, ny),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameUTCDay(tt.a, tt.b); got != tt.want {
				t.Errorf("SameUTCDay() = %v, want %v", got, tt.want)
			}
		})
	}
}
