package model

import "testing"

func TestFallback_Invariants(t *testing.T) {
	s := Fallback()

	if len(s.Events) != len(EventOrder) {
		t.Fatalf("got %d events, want %d", len(s.Events), len(EventOrder))
	}
	for i, name := range EventOrder {
		ev := s.Events[i]
		if ev.Name != name {
			t.Errorf("event %d = %s, want %s", i, ev.Name, name)
		}
		if !ev.Known() {
			t.Errorf("fallback event %s must carry a time", name)
		}
		wantFlag := name != Sunrise
		if ev.NotificationEnabled != wantFlag {
			t.Errorf("%s notification default = %v, want %v", name, ev.NotificationEnabled, wantFlag)
		}
	}
}

func TestNewSchedule_MissingNamesBecomeUnknown(t *testing.T) {
	s := NewSchedule(map[EventName]PrayerEvent{
		Fajr: {Display: "5:00 AM", Minutes: 300},
	})

	if len(s.Events) != len(EventOrder) {
		t.Fatalf("got %d events, want %d", len(s.Events), len(EventOrder))
	}
	if !s.Event(Fajr).Known() {
		t.Error("Fajr should be known")
	}
	for _, name := range []EventName{Sunrise, Dhuhr, Asr, Maghrib, Isha} {
		if s.Event(name).Known() {
			t.Errorf("%s should be unknown", name)
		}
	}
}

func TestAdoptFlags(t *testing.T) {
	prev := Fallback()
	prev.Event(Fajr).NotificationEnabled = false
	prev.Event(Sunrise).NotificationEnabled = true

	next := Fallback()
	next.AdoptFlags(prev)

	if next.Event(Fajr).NotificationEnabled {
		t.Error("Fajr flag should be carried forward as false")
	}
	if !next.Event(Sunrise).NotificationEnabled {
		t.Error("Sunrise flag should be carried forward as true")
	}
	if !next.Event(Isha).NotificationEnabled {
		t.Error("Isha should keep its flag")
	}
}

func TestParseConvention(t *testing.T) {
	if _, err := ParseConvention("ISNA"); err != nil {
		t.Errorf("ISNA should parse: %v", err)
	}
	if _, err := ParseConvention("Umm al-Qura"); err != nil {
		t.Errorf("Umm al-Qura should parse: %v", err)
	}
	if _, err := ParseConvention("Lunar"); err == nil {
		t.Error("unknown convention should fail")
	}
}

func TestConventionForCode(t *testing.T) {
	if got := ConventionForCode(13); got != Turkey {
		t.Errorf("code 13 = %s, want Turkey", got)
	}
	if got := ConventionForCode(999); got != DefaultConvention {
		t.Errorf("unknown code = %s, want default", got)
	}
}

func TestCoordinateValid(t *testing.T) {
	tests := []struct {
		coord Coordinate
		want  bool
	}{
		{Coordinate{0, 0}, true},
		{Coordinate{90, 180}, true},
		{Coordinate{-90, -180}, true},
		{Coordinate{91, 0}, false},
		{Coordinate{0, -181}, false},
	}
	for _, tt := range tests {
		if got := tt.coord.Valid(); got != tt.want {
			t.Errorf("Valid(%v) = %v, want %v", tt.coord, got, tt.want)
		}
	}
}
