package entity

import (
	"testing"
	"time"
)

func TestEffectiveClosingDay(t *testing.T) {
	tests := []struct {
		name       string
		year       int
		month      time.Month
		closingDay uint32
		expected   int
	}{
		{name: "day within month", year: 2024, month: time.January, closingDay: 15, expected: 15},
		{name: "30 in leap february", year: 2024, month: time.February, closingDay: 30, expected: 29},
		{name: "30 in february", year: 2023, month: time.February, closingDay: 30, expected: 28},
		{name: "31 in february", year: 2023, month: time.February, closingDay: 31, expected: 28},
		{name: "31 in april", year: 2024, month: time.April, closingDay: 31, expected: 30},
		{name: "zero is treated as first day", year: 2024, month: time.March, closingDay: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveClosingDay(tt.year, tt.month, tt.closingDay)
			if got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestEffectiveClosingDay_NeverExceedsMonthLength(t *testing.T) {
	for year := 2023; year <= 2024; year++ {
		for month := time.January; month <= time.December; month++ {
			for closingDay := uint32(1); closingDay <= 31; closingDay++ {
				got := EffectiveClosingDay(year, month, closingDay)
				if days := DaysIn(year, month); got > days {
					t.Errorf("%d-%02d closing day %d: expected at most %d, got %d", year, month, closingDay, days, got)
				}
			}
		}
	}
}

func TestShiftClosingDate_ReclampsEveryMonth(t *testing.T) {
	january := Day(2024, time.January, 30)

	february := ShiftClosingDate(january, 1, 30)
	if !february.Equal(Day(2024, time.February, 29)) {
		t.Errorf("expected 29/02/2024, got %s", FormatDate(february))
	}

	march := ShiftClosingDate(february, 1, 30)
	if !march.Equal(Day(2024, time.March, 30)) {
		t.Errorf("expected 30/03/2024, got %s", FormatDate(march))
	}

	nextYear := ShiftClosingDate(Day(2023, time.December, 20), 1, 20)
	if !nextYear.Equal(Day(2024, time.January, 20)) {
		t.Errorf("expected 20/01/2024, got %s", FormatDate(nextYear))
	}
}

func TestCoveringClosingDate(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected time.Time
	}{
		{name: "before closing day", date: Day(2024, time.January, 15), expected: Day(2024, time.January, 20)},
		{name: "on closing day", date: Day(2024, time.January, 20), expected: Day(2024, time.January, 20)},
		{name: "after closing day", date: Day(2024, time.January, 25), expected: Day(2024, time.February, 20)},
		{name: "after closing day in december", date: Day(2024, time.December, 21), expected: Day(2025, time.January, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoveringClosingDate(tt.date, 20)
			if !got.Equal(tt.expected) {
				t.Errorf("expected %s, got %s", FormatDate(tt.expected), FormatDate(got))
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		months   int
		expected time.Time
	}{
		{name: "end of january in leap year", date: Day(2024, time.January, 31), months: 1, expected: Day(2024, time.February, 29)},
		{name: "end of january", date: Day(2023, time.January, 31), months: 1, expected: Day(2023, time.February, 28)},
		{name: "across year", date: Day(2024, time.November, 15), months: 3, expected: Day(2025, time.February, 15)},
		{name: "backwards", date: Day(2024, time.March, 31), months: -1, expected: Day(2024, time.February, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(tt.date, tt.months)
			if !got.Equal(tt.expected) {
				t.Errorf("expected %s, got %s", FormatDate(tt.expected), FormatDate(got))
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("05/03/2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !date.Equal(Day(2024, time.March, 5)) {
		t.Errorf("expected 05/03/2024, got %s", FormatDate(date))
	}
	if got := FormatDate(date); got != "05/03/2024" {
		t.Errorf("expected 05/03/2024, got %s", got)
	}

	if _, err := ParseDate("2024-03-05"); err == nil {
		t.Error("expected error for ISO date")
	}
}

func TestClamps(t *testing.T) {
	tests := []struct {
		name     string
		got      uint32
		expected uint32
	}{
		{name: "closing day below range", got: ClampClosingDay(0), expected: 1},
		{name: "closing day above range", got: ClampClosingDay(31), expected: 30},
		{name: "closing day in range", got: ClampClosingDay(15), expected: 15},
		{name: "installments below range", got: ClampInstallments(0), expected: 1},
		{name: "installments above range", got: ClampInstallments(121), expected: 120},
		{name: "installments in range", got: ClampInstallments(12), expected: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, tt.got)
			}
		})
	}
}
