package model

// EventName identifies one of the six daily prayer events.
type EventName string

const (
	Fajr    EventName = "Fajr"
	Sunrise EventName = "Sunrise"
	Dhuhr   EventName = "Dhuhr"
	Asr     EventName = "Asr"
	Maghrib EventName = "Maghrib"
	Isha    EventName = "Isha"
)

// EventOrder is the canonical daily sequence used for next-event lookup.
var EventOrder = []EventName{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// UnknownMinutes marks an event whose time could not be parsed.
const UnknownMinutes = -1

// PrayerEvent is a single entry of a DailySchedule.
// Display carries the 12-hour rendering ("5:23 AM"); Minutes is the
// minute-of-day used for comparisons. An unknown event has Display == ""
// and Minutes == UnknownMinutes.
type PrayerEvent struct {
	Name                EventName `json:"name"`
	Display             string    `json:"display"`
	Minutes             int       `json:"minutes"`
	NotificationEnabled bool      `json:"notification_enabled"`
}

// Known reports whether the event carries a usable time.
func (e PrayerEvent) Known() bool {
	return e.Minutes != UnknownMinutes
}

// DailySchedule holds exactly six events in canonical order.
// It is replaced wholesale on every fetch, never patched in place.
type DailySchedule struct {
	Events []PrayerEvent `json:"events"`
}

// defaultNotification reports the out-of-the-box notification flag for an
// event. Sunrise is informational only.
func defaultNotification(name EventName) bool {
	return name != Sunrise
}

// NewSchedule builds a schedule from a name -> event lookup. Missing names
// become unknown events so the result is always six entries long.
func NewSchedule(byName map[EventName]PrayerEvent) DailySchedule {
	events := make([]PrayerEvent, 0, len(EventOrder))
	for _, name := range EventOrder {
		ev, ok := byName[name]
		if !ok {
			ev = PrayerEvent{Name: name, Minutes: UnknownMinutes}
		}
		ev.Name = name
		ev.NotificationEnabled = defaultNotification(name)
		events = append(events, ev)
	}
	return DailySchedule{Events: events}
}

// Fallback returns the fixed default schedule used when the remote
// computation service is unavailable. The times are the representative set
// shipped with the app; they are displayable but not location-accurate.
func Fallback() DailySchedule {
	return NewSchedule(map[EventName]PrayerEvent{
		Fajr:    {Display: "5:23 AM", Minutes: 5*60 + 23},
		Sunrise: {Display: "6:45 AM", Minutes: 6*60 + 45},
		Dhuhr:   {Display: "12:30 PM", Minutes: 12*60 + 30},
		Asr:     {Display: "3:45 PM", Minutes: 15*60 + 45},
		Maghrib: {Display: "6:55 PM", Minutes: 18*60 + 55},
		Isha:    {Display: "8:15 PM", Minutes: 20*60 + 15},
	})
}

// AdoptFlags copies notification flags forward from a previous schedule by
// event name, preserving user intent across refreshes. Events with no match
// keep their defaults.
func (s *DailySchedule) AdoptFlags(prev DailySchedule) {
	flags := make(map[EventName]bool, len(prev.Events))
	for _, ev := range prev.Events {
		flags[ev.Name] = ev.NotificationEnabled
	}
	for i := range s.Events {
		if enabled, ok := flags[s.Events[i].Name]; ok {
			s.Events[i].NotificationEnabled = enabled
		}
	}
}

// Event returns a pointer to the named event, or nil if the name is not part
// of the canonical set.
func (s *DailySchedule) Event(name EventName) *PrayerEvent {
	for i := range s.Events {
		if s.Events[i].Name == name {
			return &s.Events[i]
		}
	}
	return nil
}

// Clone returns a deep copy safe to hand out as a snapshot.
func (s DailySchedule) Clone() DailySchedule {
	events := make([]PrayerEvent, len(s.Events))
	copy(events, s.Events)
	return DailySchedule{Events: events}
}
