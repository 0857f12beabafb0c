package prayer

import (
	"testing"
	"time"

	"github.com/miqat-labs/miqat/internal/model"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"simple HH:MM", "15:02", 15*60 + 2, false},
		{"midnight", "00:00", 0, false},
		{"with timezone suffix", "05:23 (GMT+0)", 5*60 + 23, false},
		{"with spaces and suffix", "  05:17  (EET) ", 5*60 + 17, false},
		{"invalid format", "bad", 0, true},
		{"empty string", "", 0, true},
		{"missing minute", "15:", 0, true},
		{"non-numeric", "ab:cd", 0, true},
		{"hour out of range", "25:00", 0, true},
		{"minute out of range", "12:61", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseClock(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseClock(%q) expected error, got nil", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseClock(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("parseClock(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRenderTwelveHour(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{5*60 + 23, "5:23 AM"},
		{0, "12:00 AM"},
		{12 * 60, "12:00 PM"},
		{12*60 + 30, "12:30 PM"},
		{20*60 + 15, "8:15 PM"},
		{23*60 + 59, "11:59 PM"},
	}

	for _, tt := range tests {
		if got := renderTwelveHour(tt.minutes); got != tt.want {
			t.Errorf("renderTwelveHour(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

// The annotated 24-hour form from the computation service must normalize to
// the 12-hour display while retaining the minute value for comparisons.
func TestNormalizeEvent_RoundTrip(t *testing.T) {
	ev := normalizeEvent(model.Fajr, "05:23 (GMT+0)")

	if !ev.Known() {
		t.Fatal("expected event to be known")
	}
	if ev.Display != "5:23 AM" {
		t.Errorf("Display = %q, want %q", ev.Display, "5:23 AM")
	}
	if ev.Minutes != 323 {
		t.Errorf("Minutes = %d, want 323", ev.Minutes)
	}
}

func TestNormalizeEvent_Unparsable(t *testing.T) {
	ev := normalizeEvent(model.Isha, "soon")

	if ev.Known() {
		t.Fatal("expected unknown event")
	}
	if ev.Display != "" || ev.Minutes != model.UnknownMinutes {
		t.Errorf("unknown event not in empty state: %+v", ev)
	}
}

func TestMinuteOfDay(t *testing.T) {
	now := time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)
	if got := MinuteOfDay(now); got != 23*60 {
		t.Errorf("MinuteOfDay = %d, want %d", got, 23*60)
	}
}
