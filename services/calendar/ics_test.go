package calendar

import (
	"testing"
	"time"
)

const sampleICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:one@test
DTSTART:20260310T090000Z
DTEND:20260310T100000Z
SUMMARY:Standup
END:VEVENT
BEGIN:VEVENT
UID:two@test
DTSTART:20260320T090000Z
DTEND:20260320T100000Z
SUMMARY:Out of range
END:VEVENT
END:VCALENDAR
`

func TestParseICSBusy(t *testing.T) {
	from := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	busy, err := ParseICSBusy([]byte(sampleICS), from, to)
	if err != nil {
		t.Fatalf("ParseICSBusy: %v", err)
	}
	if len(busy) != 1 {
		t.Fatalf("got %d intervals, want 1 (second event is outside range)", len(busy))
	}
	wantStart := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	if !busy[0].Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", busy[0].Start, wantStart)
	}
	if got := busy[0].End.Sub(busy[0].Start); got != time.Hour {
		t.Errorf("interval length = %v, want 1h", got)
	}
}

func TestParseICSBusy_Invalid(t *testing.T) {
	if _, err := ParseICSBusy([]byte("not an ics file"), time.Now(), time.Now().Add(time.Hour)); err == nil {
		t.Error("expected parse error, got nil")
	}
}
