package utils

import (
	"testing"
	"time"
)

func TestParseDeadline_DayFirst(t *testing.T) {
	cases := []struct {
		raw       string
		wantDay   int
		wantMonth time.Month
	}{
		{"25/03/2026", 25, time.March},
		// Ambiguous either way: day-first wins.
		{"03/04/2026", 3, time.April},
		{"01/02/2026 14:30", 1, time.February},
	}
	for _, tc := range cases {
		got, err := ParseDeadline(tc.raw)
		if err != nil {
			t.Errorf("ParseDeadline(%q): %v", tc.raw, err)
			continue
		}
		if got.Day() != tc.wantDay || got.Month() != tc.wantMonth {
			t.Errorf("ParseDeadline(%q) = %v, want day %d month %v", tc.raw, got, tc.wantDay, tc.wantMonth)
		}
	}
}

func TestParseDeadline_ISO(t *testing.T) {
	got, err := ParseDeadline("2026-09-15T10:30:00Z")
	if err != nil {
		t.Fatalf("ParseDeadline: %v", err)
	}
	want := time.Date(2026, time.September, 15, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseDeadline_Invalid(t *testing.T) {
	for _, raw := range []string{"", "not a date", "32/01/2026"} {
		if _, err := ParseDeadline(raw); err == nil {
			t.Errorf("ParseDeadline(%q): expected error", raw)
		}
	}
}

func TestParseWorkDays(t *testing.T) {
	days, err := ParseWorkDays("1,2,3,4,5")
	if err != nil {
		t.Fatalf("ParseWorkDays: %v", err)
	}
	if !days[time.Monday] || !days[time.Friday] {
		t.Error("expected Monday and Friday enabled")
	}
	if days[time.Sunday] || days[time.Saturday] {
		t.Error("weekend should not be enabled")
	}

	if _, err := ParseWorkDays("7"); err == nil {
		t.Error("expected error for out-of-range day")
	}
	if _, err := ParseWorkDays(""); err == nil {
		t.Error("expected error for empty list")
	}
}
