package utils

import (
	"testing"
	"time"
)

func TestMonthRange(t *testing.T) {
	from, to, err := MonthRange("2026-02")
	if err != nil {
		t.Fatalf("MonthRange: %v", err)
	}
	if from.Format(DateLayout) != "2026-02-01" {
		t.Errorf("from = %s, want 2026-02-01", from.Format(DateLayout))
	}
	if to.Format(DateLayout) != "2026-03-01" {
		t.Errorf("to = %s, want 2026-03-01", to.Format(DateLayout))
	}

	// Year rollover.
	from, to, err = MonthRange("2025-12")
	if err != nil {
		t.Fatalf("MonthRange: %v", err)
	}
	if from.Format(DateLayout) != "2025-12-01" || to.Format(DateLayout) != "2026-01-01" {
		t.Errorf("december range = [%s, %s)", from.Format(DateLayout), to.Format(DateLayout))
	}

	if _, _, err := MonthRange("2026-2"); err == nil {
		t.Errorf("short month key should not parse")
	}
	if _, _, err := MonthRange("garbage"); err == nil {
		t.Errorf("garbage month key should not parse")
	}
}

func TestMonthKey(t *testing.T) {
	ts := time.Date(2026, time.August, 31, 23, 59, 0, 0, time.UTC)
	if got := MonthKey(ts); got != "2026-08" {
		t.Errorf("MonthKey = %s, want 2026-08", got)
	}
}

func TestGetReportDateRange(t *testing.T) {
	now := time.Date(2026, time.March, 18, 15, 4, 5, 0, time.UTC)

	from, to, err := GetReportDateRange("daily", now)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if from.Format(DateLayout) != "2026-03-18" || to.Format(DateLayout) != "2026-03-19" {
		t.Errorf("daily range = [%s, %s)", from.Format(DateLayout), to.Format(DateLayout))
	}

	from, to, err = GetReportDateRange("weekly", now)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	// Seven calendar days ending today.
	if from.Format(DateLayout) != "2026-03-12" || to.Format(DateLayout) != "2026-03-19" {
		t.Errorf("weekly range = [%s, %s)", from.Format(DateLayout), to.Format(DateLayout))
	}

	from, to, err = GetReportDateRange("monthly", now)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if from.Format(DateLayout) != "2026-03-01" || to.Format(DateLayout) != "2026-04-01" {
		t.Errorf("monthly range = [%s, %s)", from.Format(DateLayout), to.Format(DateLayout))
	}

	if _, _, err := GetReportDateRange("yearly", now); err == nil {
		t.Errorf("unsupported range selector should error")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2026-01-05 ")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Format(DateLayout) != "2026-01-05" {
		t.Errorf("parsed = %s", d.Format(DateLayout))
	}
	if _, err := ParseDate(""); err == nil {
		t.Errorf("empty date should error")
	}
	if _, err := ParseDate("05/01/2026"); err == nil {
		t.Errorf("wrong layout should error")
	}
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("12.345")
	if err != nil {
		t.Fatalf("ParseDecimal: %v", err)
	}
	if d.String() != "12.345" {
		t.Errorf("parsed = %s", d)
	}
	if _, err := ParseDecimal(""); err == nil {
		t.Errorf("empty string should error")
	}
	if _, err := ParseDecimal("12.3.4"); err == nil {
		t.Errorf("malformed number should error")
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last+tag@example.org"}
	invalid := []string{"", "plain", "a@b", "@example.com"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("%q should be valid", e)
		}
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("%q should be invalid", e)
		}
	}
}
