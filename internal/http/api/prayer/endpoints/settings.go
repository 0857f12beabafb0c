package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/miqat/internal/engine"
	"github.com/miqat-labs/miqat/internal/geo"
	"github.com/miqat-labs/miqat/internal/http/api"
	"github.com/miqat-labs/miqat/internal/http/api/prayer/packets"
	"github.com/miqat-labs/miqat/internal/model"
	"github.com/miqat-labs/miqat/internal/prayer"
)

type SettingsController struct {
	engine *engine.Engine
}

func NewSettingsController(eng *engine.Engine) *SettingsController {
	return &SettingsController{engine: eng}
}

// SettingsModule mounts the mutating endpoints: refresh, convention,
// location resolution, notification toggles.
func SettingsModule(eng *engine.Engine) api.Module {
	ctl := NewSettingsController(eng)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/refresh", ctl.refresh)
		c.PUT("/convention", ctl.updateConvention)
		c.PUT("/autodetect", ctl.updateAutoDetect)
		c.POST("/location/auto", ctl.resolveAuto)
		c.POST("/location/query", ctl.resolveManual)
		c.POST("/notifications/:event/toggle", ctl.toggleNotification)
	})
}

// POST /api/prayer/refresh
func (s *SettingsController) refresh(ctx *gin.Context) (any, *api.APIError) {
	err := s.engine.Refresh(ctx)
	return scheduleResult(s.engine, err)
}

// PUT /api/prayer/convention
func (s *SettingsController) updateConvention(ctx *gin.Context) (any, *api.APIError) {
	var request packets.UpdateConventionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	convention, err := model.ParseConvention(request.Convention)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	err = s.engine.SetConvention(ctx, convention)
	if errors.Is(err, engine.ErrNoLocation) {
		// Stored for the next refresh; nothing fetched yet.
		err = nil
	}
	return scheduleResult(s.engine, err)
}

// PUT /api/prayer/autodetect
func (s *SettingsController) updateAutoDetect(ctx *gin.Context) (any, *api.APIError) {
	var request packets.AutoDetectRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := s.engine.SetAutoDetect(ctx, *request.Enabled); err != nil {
		log.Error().Err(err).Msg("failed to persist auto-detect flag")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save preference"}
	}
	return gin.H{"auto_detect": *request.Enabled}, nil
}

// POST /api/prayer/location/auto
func (s *SettingsController) resolveAuto(ctx *gin.Context) (any, *api.APIError) {
	place, err := s.engine.ResolveAuto(ctx)
	if errors.Is(err, geo.ErrLocationUnavailable) {
		// Terminal for auto-detect; the engine already force-disabled it.
		return nil, &api.APIError{Code: http.StatusConflict, Message: "location sensor unavailable, switch to manual entry"}
	}
	return locationResult(place, err)
}

// POST /api/prayer/location/query
func (s *SettingsController) resolveManual(ctx *gin.Context) (any, *api.APIError) {
	var request packets.ManualLocationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	place, err := s.engine.ResolveManual(ctx, request.Query)
	if errors.Is(err, geo.ErrLocationNotFound) {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "no location found for query"}
	}
	return locationResult(place, err)
}

// POST /api/prayer/notifications/:event/toggle
func (s *SettingsController) toggleNotification(ctx *gin.Context) (any, *api.APIError) {
	name, apiErr := eventNameParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	enabled, err := s.engine.ToggleNotification(ctx, name)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	return packets.ToggleResponse{Event: string(name), NotificationEnabled: enabled}, nil
}

// locationResult maps a resolution outcome: the coordinate may have been
// committed even when the follow-up schedule fetch degraded to the fallback.
func locationResult(place model.Place, err error) (any, *api.APIError) {
	response := packets.LocationResponse{
		Label:     place.Label,
		Latitude:  place.Coordinate.Latitude,
		Longitude: place.Coordinate.Longitude,
	}
	if err != nil {
		if !errors.Is(err, prayer.ErrScheduleFetchFailed) {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
		}
		response.Warning = "prayer times service unavailable, showing default times"
	}
	return response, nil
}
