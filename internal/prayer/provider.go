package prayer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/miqat/internal/aladhan"
	"github.com/miqat-labs/miqat/internal/model"
	"github.com/miqat-labs/miqat/internal/redis"
)

// ErrScheduleFetchFailed signals that the remote computation service was
// unreachable or returned an error. Recoverable: the caller still receives
// the fallback schedule and may retry via a user-initiated refresh.
var ErrScheduleFetchFailed = errors.New("prayer schedule fetch failed")

const timingsCacheTTL = 24 * time.Hour

// Provider fetches a day's prayer schedule from the remote computation
// service and normalizes its output into a DailySchedule.
type Provider struct {
	client *aladhan.Client
}

// NewProvider wires a Provider around an Al Adhan client.
func NewProvider(client *aladhan.Client) *Provider {
	return &Provider{client: client}
}

// cacheKey builds a deterministic key from the parameters that affect the
// day's times, so different locations and methods get separate entries.
func cacheKey(date time.Time, coord model.Coordinate, method int) string {
	return fmt.Sprintf("timings:%s:%.4f:%.4f:%d",
		date.Format("2006-01-02"), coord.Latitude, coord.Longitude, method)
}

// FetchSchedule issues one request for the given coordinate, date, and
// convention. On any transport or payload failure it substitutes the fixed
// fallback schedule and returns ErrScheduleFetchFailed alongside it, so the
// caller can warn the user while still presenting usable times. No retries.
func (p *Provider) FetchSchedule(ctx context.Context, coord model.Coordinate, date time.Time, convention model.Convention) (model.DailySchedule, error) {
	method := convention.MethodCode()
	key := cacheKey(date, coord, method)

	var timings aladhan.Timings
	if redis.Enabled() && redis.GetUnmarshalledJSON(ctx, key, &timings) {
		log.Debug().Str("key", key).Msg("serving timings from cache")
		return normalizeTimings(timings), nil
	}

	resp, err := p.client.Timings(ctx, date, coord.Latitude, coord.Longitude, method)
	if err != nil {
		log.Error().Err(err).
			Float64("lat", coord.Latitude).Float64("lon", coord.Longitude).
			Str("convention", string(convention)).
			Msg("falling back to default schedule")
		return model.Fallback(), fmt.Errorf("%w: %v", ErrScheduleFetchFailed, err)
	}

	if redis.Enabled() {
		redis.SetMarshalledJSON(ctx, key, resp.Data.Timings, timingsCacheTTL)
	}

	return normalizeTimings(resp.Data.Timings), nil
}

// normalizeTimings converts the raw six time strings into a schedule.
// Normalization is per event: one bad string leaves the other five intact,
// and the response is never reprocessed a second time.
func normalizeTimings(timings aladhan.Timings) model.DailySchedule {
	raw := map[model.EventName]string{
		model.Fajr:    timings.Fajr,
		model.Sunrise: timings.Sunrise,
		model.Dhuhr:   timings.Dhuhr,
		model.Asr:     timings.Asr,
		model.Maghrib: timings.Maghrib,
		model.Isha:    timings.Isha,
	}

	byName := make(map[model.EventName]model.PrayerEvent, len(raw))
	for name, value := range raw {
		ev := normalizeEvent(name, value)
		if !ev.Known() {
			log.Warn().Str("event", string(name)).Str("raw", value).
				Msg("unparsable event time, marking unknown")
		}
		byName[name] = ev
	}

	return model.NewSchedule(byName)
}
