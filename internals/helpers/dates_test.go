package helper

import (
	"testing"
	"time"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestFirstOfMonth(t *testing.T) {
	got := FirstOfMonth(time.Date(2025, 6, 17, 13, 45, 0, 0, time.UTC))
	want := d(2025, time.June, 1)
	if !got.Equal(want) {
		t.Errorf("FirstOfMonth = %v, want %v", got, want)
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		start, end time.Time
		want       int
	}{
		{d(2025, time.January, 1), d(2025, time.July, 1), 6},
		{d(2025, time.January, 1), d(2025, time.January, 1), 0},
		{d(2024, time.November, 1), d(2025, time.February, 1), 3},
		{d(2025, time.July, 1), d(2025, time.January, 1), -6},
	}
	for _, tt := range tests {
		if got := MonthsBetween(tt.start, tt.end); got != tt.want {
			t.Errorf("MonthsBetween(%v, %v) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestMonthsOverlap(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd time.Time
		want                           int
	}{
		{"berbatasan", d(2025, time.January, 1), d(2025, time.July, 1), d(2025, time.July, 1), d(2025, time.September, 1), 0},
		{"satu bulan", d(2025, time.January, 1), d(2025, time.July, 1), d(2025, time.June, 1), d(2025, time.September, 1), 1},
		{"dua bulan", d(2025, time.January, 1), d(2025, time.July, 1), d(2025, time.May, 1), d(2025, time.September, 1), 2},
		{"terpisah", d(2025, time.January, 1), d(2025, time.March, 1), d(2025, time.June, 1), d(2025, time.September, 1), 0},
		{"b di dalam a", d(2025, time.January, 1), d(2026, time.January, 1), d(2025, time.April, 1), d(2025, time.July, 1), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("MonthsOverlap = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEndOfMonth(t *testing.T) {
	if got := EndOfMonth(d(2025, time.February, 10)); got.Day() != 28 {
		t.Errorf("EndOfMonth(Feb 2025).Day() = %d, want 28", got.Day())
	}
	if got := EndOfMonth(d(2024, time.February, 10)); got.Day() != 29 {
		t.Errorf("EndOfMonth(Feb 2024).Day() = %d, want 29", got.Day())
	}
}
