package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/miqat/internal/engine"
	"github.com/miqat-labs/miqat/internal/http/api"
	"github.com/miqat-labs/miqat/internal/http/api/prayer/packets"
	"github.com/miqat-labs/miqat/internal/model"
	"github.com/miqat-labs/miqat/internal/prayer"
)

type ScheduleController struct {
	engine *engine.Engine
}

func NewScheduleController(eng *engine.Engine) *ScheduleController {
	return &ScheduleController{engine: eng}
}

// ScheduleModule mounts the read-only schedule endpoints.
func ScheduleModule(eng *engine.Engine) api.Module {
	ctl := NewScheduleController(eng)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedule", ctl.getSchedule)
		c.GET("/next", ctl.getNextEvent)
	})
}

// GET /api/prayer/schedule
func (s *ScheduleController) getSchedule(ctx *gin.Context) (any, *api.APIError) {
	snap := s.engine.Snapshot()
	return packets.ScheduleResponse{
		Snapshot:  snap,
		NextEvent: string(s.engine.NextEvent(time.Now())),
		Warning:   snap.LastError,
	}, nil
}

// GET /api/prayer/next
func (s *ScheduleController) getNextEvent(ctx *gin.Context) (any, *api.APIError) {
	now := time.Now()
	name := s.engine.NextEvent(now)

	snap := s.engine.Snapshot()
	ev := snap.Schedule.Event(name)
	if ev == nil || !ev.Known() {
		return nil, &api.APIError{Code: http.StatusServiceUnavailable, Message: "no upcoming event available"}
	}

	// Wrap-around distance on the day's minute scale.
	current := now.Hour()*60 + now.Minute()
	until := (ev.Minutes - current + 24*60) % (24 * 60)

	return packets.NextEventResponse{
		Name:         string(ev.Name),
		Display:      ev.Display,
		MinutesUntil: until,
	}, nil
}

// scheduleResult maps a refresh outcome to a response: a fetch failure is
// degraded but still returns the (fallback) schedule with a warning.
func scheduleResult(eng *engine.Engine, err error) (any, *api.APIError) {
	if err != nil && !errors.Is(err, prayer.ErrScheduleFetchFailed) {
		if errors.Is(err, engine.ErrNoLocation) {
			return nil, &api.APIError{Code: http.StatusConflict, Message: err.Error()}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	snap := eng.Snapshot()
	response := packets.ScheduleResponse{
		Snapshot:  snap,
		NextEvent: string(eng.NextEvent(time.Now())),
	}
	if err != nil {
		log.Warn().Err(err).Msg("serving fallback schedule after failed fetch")
		response.Warning = "prayer times service unavailable, showing default times"
	}
	return response, nil
}

// eventNameParam validates the :event path parameter.
func eventNameParam(ctx *gin.Context) (model.EventName, *api.APIError) {
	name := model.EventName(ctx.Param("event"))
	for _, known := range model.EventOrder {
		if name == known {
			return name, nil
		}
	}
	return "", &api.APIError{Code: http.StatusBadRequest, Message: "unknown prayer event"}
}
