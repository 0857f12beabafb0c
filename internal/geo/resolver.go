package geo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/miqat/internal/model"
)

// ErrLocationUnavailable is returned when the location sensor is denied,
// missing, or times out. Retrying would fail identically, so callers must
// fall back to manual entry mode.
var ErrLocationUnavailable = errors.New("location sensor unavailable")

// ErrLocationNotFound is returned when forward geocoding yields no match for
// the user's query. Recoverable; the user retries with a different query.
var ErrLocationNotFound = errors.New("location not found")

// Resolver obtains a coordinate from the device sensor or from free-text
// geocoding, and attaches a human-readable place label. Every call is a
// single attempt; retries are user-initiated re-triggers.
type Resolver struct {
	sensor   Sensor
	geocoder Geocoder
}

// NewResolver wires a Resolver from its collaborators.
func NewResolver(sensor Sensor, geocoder Geocoder) *Resolver {
	return &Resolver{sensor: sensor, geocoder: geocoder}
}

// ResolveFromSensor requests a one-shot coordinate from the platform
// capability and reverse-geocodes it best-effort. A reverse-geocode failure
// is non-fatal: the label degrades to a numeric rendering of the coordinate.
func (r *Resolver) ResolveFromSensor(ctx context.Context) (model.Place, error) {
	if r.sensor == nil {
		return model.Place{}, ErrLocationUnavailable
	}

	coord, err := r.sensor.Locate(ctx)
	if err != nil {
		log.Error().Err(err).Msg("location sensor failed")
		return model.Place{}, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}

	label, err := r.geocoder.Reverse(ctx, coord)
	if err != nil {
		log.Warn().Err(err).
			Float64("lat", coord.Latitude).Float64("lon", coord.Longitude).
			Msg("reverse geocode failed, using numeric label")
		label = coord.NumericLabel()
	}

	return model.Place{Coordinate: coord, Label: label}, nil
}

// ResolveFromQuery forward-geocodes free text to the best-ranked match. The
// returned label is the service's canonical display name, not the raw query;
// reverse geocoding is deliberately skipped on this path.
func (r *Resolver) ResolveFromQuery(ctx context.Context, text string) (model.Place, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return model.Place{}, fmt.Errorf("%w: empty query", ErrLocationNotFound)
	}

	matches, err := r.geocoder.Forward(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("forward geocode failed")
		return model.Place{}, fmt.Errorf("%w: %v", ErrLocationNotFound, err)
	}
	if len(matches) == 0 {
		return model.Place{}, fmt.Errorf("%w: no match for %q", ErrLocationNotFound, query)
	}

	best := matches[0]
	return model.Place{Coordinate: best.Coordinate, Label: best.DisplayName}, nil
}
