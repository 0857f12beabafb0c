// Package engine owns the resolved prayer schedule and derives the next
// upcoming event from wall-clock time. The presentation layer only reads
// snapshots and issues intents; all state is owned here.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/miqat/internal/model"
	"github.com/miqat-labs/miqat/internal/notify"
	"github.com/miqat-labs/miqat/internal/prefs"
)

// ErrNoLocation is returned when a refresh is requested before any
// coordinate has been resolved.
var ErrNoLocation = errors.New("no location resolved yet")

// ScheduleProvider computes a day's schedule for a coordinate and convention.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, coord model.Coordinate, date time.Time, convention model.Convention) (model.DailySchedule, error)
}

// LocationSource resolves a coordinate from the device sensor or free text.
type LocationSource interface {
	ResolveFromSensor(ctx context.Context) (model.Place, error)
	ResolveFromQuery(ctx context.Context, text string) (model.Place, error)
}

// State is the location/refresh lifecycle phase.
type State string

const (
	StateIdle           State = "idle"
	StateResolving      State = "resolving"
	StateReady          State = "ready"
	StateLocationFailed State = "location_failed"
	StateRefreshing     State = "refreshing"
)

// Engine composes location resolution, schedule fetching, and next-event
// derivation. A failed refresh always lands back in Ready carrying the
// fallback schedule; the engine is never left without a displayable one.
type Engine struct {
	provider ScheduleProvider
	resolver LocationSource
	store    prefs.Store
	notifier notify.Notifier

	mu         sync.Mutex
	place      *model.Place
	convention model.Convention
	autoDetect bool
	schedule   model.DailySchedule
	state      State
	refreshing bool
	lastErr    error
	inflight   chan struct{}
}

// Snapshot is an immutable view of engine state for the presentation layer.
type Snapshot struct {
	Place      *model.Place        `json:"place,omitempty"`
	Convention model.Convention    `json:"convention"`
	AutoDetect bool                `json:"auto_detect"`
	Schedule   model.DailySchedule `json:"schedule"`
	State      State               `json:"state"`
	Refreshing bool                `json:"is_refreshing"`
	LastError  string              `json:"last_error,omitempty"`
}

// New builds an engine seeded with the fallback schedule and any stored
// preferences. It performs no network calls.
func New(ctx context.Context, provider ScheduleProvider, resolver LocationSource, store prefs.Store, notifier notify.Notifier) *Engine {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	e := &Engine{
		provider:   provider,
		resolver:   resolver,
		store:      store,
		notifier:   notifier,
		convention: model.DefaultConvention,
		autoDetect: true,
		schedule:   model.Fallback(),
		state:      StateIdle,
	}
	e.applyStoredPreferences(ctx)
	return e
}

// applyStoredPreferences restores convention, auto-detect, and notification
// flags persisted by previous sessions.
func (e *Engine) applyStoredPreferences(ctx context.Context) {
	if raw, err := e.store.Get(ctx, prefs.KeyMethod); err == nil {
		if code, err := strconv.Atoi(raw); err == nil {
			e.convention = model.ConventionForCode(code)
		}
	}
	e.autoDetect = prefs.GetBool(ctx, e.store, prefs.KeyAutoDetect, true)
	for i := range e.schedule.Events {
		ev := &e.schedule.Events[i]
		ev.NotificationEnabled = prefs.GetBool(ctx, e.store, prefs.NotifyKey(ev.Name), ev.NotificationEnabled)
	}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Convention: e.convention,
		AutoDetect: e.autoDetect,
		Schedule:   e.schedule.Clone(),
		State:      e.state,
		Refreshing: e.refreshing,
	}
	if e.place != nil {
		p := *e.place
		snap.Place = &p
	}
	if e.lastErr != nil {
		snap.LastError = e.lastErr.Error()
	}
	return snap
}

// SetConvention replaces the convention and refreshes if a coordinate is
// known. With no coordinate it only stores the value for the next refresh.
func (e *Engine) SetConvention(ctx context.Context, c model.Convention) error {
	if !c.Valid() {
		return fmt.Errorf("unknown calculation convention %q", c)
	}

	e.mu.Lock()
	e.convention = c
	hasCoord := e.place != nil
	e.mu.Unlock()

	if err := e.store.Set(ctx, prefs.KeyMethod, strconv.Itoa(c.MethodCode())); err != nil {
		log.Error().Err(err).Str("convention", string(c)).Msg("failed to persist convention")
	}

	if !hasCoord {
		return nil
	}
	return e.Refresh(ctx)
}

// Refresh fetches the schedule for the current coordinate, date, and
// convention. Concurrent calls coalesce into the in-flight request instead
// of issuing a second one; the values used are the ones current at execution
// time. Results commit last-wins with no fencing.
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	if e.place == nil {
		e.mu.Unlock()
		return ErrNoLocation
	}

	if e.inflight != nil {
		ch := e.inflight
		e.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
		e.mu.Lock()
		err := e.lastErr
		e.mu.Unlock()
		return err
	}

	ch := make(chan struct{})
	e.inflight = ch
	e.refreshing = true
	e.state = StateRefreshing
	coord := e.place.Coordinate
	convention := e.convention
	e.mu.Unlock()

	schedule, err := e.provider.FetchSchedule(ctx, coord, time.Now(), convention)

	e.mu.Lock()
	schedule.AdoptFlags(e.schedule)
	e.schedule = schedule
	e.lastErr = err
	e.refreshing = false
	e.state = StateReady
	e.inflight = nil
	close(ch)
	e.mu.Unlock()

	return err
}

// NextEvent scans the six events in canonical order and returns the name of
// the first whose time strictly exceeds now's time-of-day. After Isha it
// wraps to Fajr as tomorrow's upcoming event. Events with unknown times are
// skipped.
func (e *Engine) NextEvent(now time.Time) model.EventName {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := now.Hour()*60 + now.Minute()
	for _, ev := range e.schedule.Events {
		if ev.Known() && ev.Minutes > current {
			return ev.Name
		}
	}
	return e.schedule.Events[0].Name
}

// ToggleNotification flips the flag for one event. Pure local mutation plus
// persistence and a publish to the external scheduler; no network fetch.
func (e *Engine) ToggleNotification(ctx context.Context, name model.EventName) (bool, error) {
	e.mu.Lock()
	ev := e.schedule.Event(name)
	if ev == nil {
		e.mu.Unlock()
		return false, fmt.Errorf("unknown prayer event %q", name)
	}
	ev.NotificationEnabled = !ev.NotificationEnabled
	enabled := ev.NotificationEnabled
	snapshot := e.schedule.Clone()
	e.mu.Unlock()

	if err := prefs.SetBool(ctx, e.store, prefs.NotifyKey(name), enabled); err != nil {
		log.Error().Err(err).Str("event", string(name)).Msg("failed to persist notification flag")
	}
	e.notifier.FlagsChanged(snapshot)

	return enabled, nil
}

// ResolveAuto resolves the coordinate from the device sensor and refreshes.
// Sensor failure force-disables auto-detect, since retrying would fail
// identically; the caller must switch to manual entry mode.
func (e *Engine) ResolveAuto(ctx context.Context) (model.Place, error) {
	e.mu.Lock()
	e.state = StateResolving
	e.mu.Unlock()

	place, err := e.resolver.ResolveFromSensor(ctx)
	if err != nil {
		e.mu.Lock()
		e.state = StateLocationFailed
		e.autoDetect = false
		e.lastErr = err
		e.mu.Unlock()
		if perr := prefs.SetBool(ctx, e.store, prefs.KeyAutoDetect, false); perr != nil {
			log.Error().Err(perr).Msg("failed to persist auto-detect flag")
		}
		return model.Place{}, err
	}

	e.commitPlace(place)
	return place, e.Refresh(ctx)
}

// ResolveManual forward-geocodes user text and refreshes. A failed lookup
// leaves the previous coordinate and schedule untouched.
func (e *Engine) ResolveManual(ctx context.Context, query string) (model.Place, error) {
	e.mu.Lock()
	previous := e.state
	e.state = StateResolving
	e.mu.Unlock()

	place, err := e.resolver.ResolveFromQuery(ctx, query)
	if err != nil {
		e.mu.Lock()
		e.state = previous
		e.lastErr = err
		e.mu.Unlock()
		return model.Place{}, err
	}

	e.commitPlace(place)
	return place, e.Refresh(ctx)
}

// commitPlace replaces coordinate and label wholesale, never partially.
func (e *Engine) commitPlace(place model.Place) {
	e.mu.Lock()
	p := place
	e.place = &p
	e.state = StateReady
	e.mu.Unlock()
}

// SetAutoDetect records the user's auto-detect preference.
func (e *Engine) SetAutoDetect(ctx context.Context, enabled bool) error {
	e.mu.Lock()
	e.autoDetect = enabled
	e.mu.Unlock()
	return prefs.SetBool(ctx, e.store, prefs.KeyAutoDetect, enabled)
}

// DueEvent returns the event whose time matches now's minute exactly and has
// notifications enabled, if any. Used by the azan ticker.
func (e *Engine) DueEvent(now time.Time) (model.PrayerEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := now.Hour()*60 + now.Minute()
	for _, ev := range e.schedule.Events {
		if ev.Known() && ev.Minutes == current && ev.NotificationEnabled {
			return ev, true
		}
	}
	return model.PrayerEvent{}, false
}

// Notifier exposes the configured notifier for the azan ticker.
func (e *Engine) Notifier() notify.Notifier {
	return e.notifier
}
