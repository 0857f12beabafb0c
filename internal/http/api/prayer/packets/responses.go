package packets

import "github.com/miqat-labs/miqat/internal/engine"

type ScheduleResponse struct {
	engine.Snapshot
	NextEvent string `json:"next_event"`
	Warning   string `json:"warning,omitempty"`
}

type NextEventResponse struct {
	Name         string `json:"name"`
	Display      string `json:"display"`
	MinutesUntil int    `json:"minutes_until"`
}

type ToggleResponse struct {
	Event               string `json:"event"`
	NotificationEnabled bool   `json:"notification_enabled"`
}

type LocationResponse struct {
	Label     string  `json:"label"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Warning   string  `json:"warning,omitempty"`
}
