// Package notify forwards engine events to an external notification
// scheduler. The engine owns the flags; this package only publishes them.
package notify

import "github.com/miqat-labs/miqat/internal/model"

// Notifier is the external notification scheduler contract.
type Notifier interface {
	// EventDue announces that an enabled prayer event's time has arrived.
	EventDue(ev model.PrayerEvent)
	// FlagsChanged forwards the current flag set after a toggle or refresh.
	FlagsChanged(schedule model.DailySchedule)
}

// Noop satisfies Notifier when no broker is configured.
type Noop struct{}

func (Noop) EventDue(model.PrayerEvent) {}
func (Noop) FlagsChanged(model.DailySchedule) {}
