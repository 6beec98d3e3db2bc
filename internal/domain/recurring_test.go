package domain

import (
	"testing"
	"time"
)

func TestFrequency_IsValid(t *testing.T) {
	for _, f := range []Frequency{FrequencyWeekly, FrequencyMonthly, FrequencyYearly} {
		if !f.IsValid() {
			t.Errorf("Expected %s to be valid", f)
		}
	}
	for _, f := range []Frequency{"", "daily", "Monthly", "biweekly"} {
		if f.IsValid() {
			t.Errorf("Expected %q to be invalid", f)
		}
	}
}

func TestFrequency_Advance(t *testing.T) {
	from := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)

	weekly := FrequencyWeekly.Advance(from)
	if weekly.Day() != 17 || weekly.Month() != time.March {
		t.Errorf("Expected March 17, got %v", weekly)
	}

	monthly := FrequencyMonthly.Advance(from)
	if monthly.Day() != 10 || monthly.Month() != time.April {
		t.Errorf("Expected April 10, got %v", monthly)
	}

	yearly := FrequencyYearly.Advance(from)
	if yearly.Year() != 2026 || yearly.Month() != time.March || yearly.Day() != 10 {
		t.Errorf("Expected 2026-03-10, got %v", yearly)
	}
}

func TestFrequency_Advance_MonthEndNormalization(t *testing.T) {
	// Jan 31 + 1 month normalizes per time.AddDate
	from := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.Local)
	got := FrequencyMonthly.Advance(from)
	if got.Month() != time.March || got.Day() != 3 {
		t.Errorf("Expected March 3 via AddDate normalization, got %v", got)
	}
}

func TestFrequency_Advance_UnknownStaysPut(t *testing.T) {
	from := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)
	if got := Frequency("daily").Advance(from); !got.Equal(from) {
		t.Errorf("Expected unknown frequency to return from unchanged, got %v", got)
	}
}
