package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/miqat-labs/miqat/internal/engine"
	"github.com/miqat-labs/miqat/internal/http/api"
	prayerapi "github.com/miqat-labs/miqat/internal/http/api/prayer/endpoints"
	sessionapi "github.com/miqat-labs/miqat/internal/http/api/session/endpoints"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, eng *engine.Engine) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/session",
		Auth:   false,
	},
		sessionapi.SessionModule(env.SecretKey, env.AccessKeyHash),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/prayer",
		Auth:   false,
	},
		prayerapi.ScheduleModule(eng),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/prayer",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		prayerapi.SettingsModule(eng),
	)
}
