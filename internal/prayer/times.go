package prayer

import (
	"fmt"
	"strings"
	"time"

	"github.com/miqat-labs/miqat/internal/model"
)

// parseClock parses a 24-hour "HH:MM" string, tolerating a trailing timezone
// annotation like "05:23 (GMT+0)" which the computation service sometimes
// appends. Returns the minute-of-day value.
func parseClock(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %q", raw)
	}

	var hour, min int
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", raw, err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &min); err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", raw, err)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, fmt.Errorf("time out of range: %q", raw)
	}

	return hour*60 + min, nil
}

// renderTwelveHour formats a minute-of-day value in clock-with-period form,
// e.g. 323 -> "5:23 AM".
func renderTwelveHour(minutes int) string {
	t := time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return t.Format("3:04 PM")
}

// normalizeEvent converts one raw time string into a PrayerEvent. An absent
// or unparsable string yields the unknown state for that event alone.
func normalizeEvent(name model.EventName, raw string) model.PrayerEvent {
	minutes, err := parseClock(raw)
	if err != nil {
		return model.PrayerEvent{Name: name, Minutes: model.UnknownMinutes}
	}
	return model.PrayerEvent{
		Name:    name,
		Display: renderTwelveHour(minutes),
		Minutes: minutes,
	}
}

// MinuteOfDay projects an instant onto the day's minute scale used for
// next-event comparisons.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
