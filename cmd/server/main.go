package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/miqat/internal/aladhan"
	"github.com/miqat-labs/miqat/internal/engine"
	"github.com/miqat-labs/miqat/internal/geo"
	"github.com/miqat-labs/miqat/internal/model"
	"github.com/miqat-labs/miqat/internal/prayer"
	"github.com/miqat-labs/miqat/internal/redis"
)

func main() {
	// load .env if present; real deployments use actual env vars
	_ = godotenv.Load()

	env := LoadEnvironment()

	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	store := InitPreferences(env)

	sensor := geo.NewIPSensor()
	if env.SensorAPIURL != "" {
		sensor.URL = env.SensorAPIURL
	}

	geocoder := geo.NewNominatimClient()
	if env.GeocodeAPIURL != "" {
		geocoder.BaseURL = env.GeocodeAPIURL
	}

	client := aladhan.NewClient()
	if env.PrayerAPIURL != "" {
		client.BaseURL = env.PrayerAPIURL
	}

	notifier := InitNotifier(env)

	resolver := geo.NewResolver(sensor, geocoder)
	provider := prayer.NewProvider(client)
	eng := engine.New(context.Background(), provider, resolver, store, notifier)

	// Resolve location on startup when auto-detect is on. Failure is not
	// fatal: the engine keeps the fallback schedule and manual entry works.
	if eng.Snapshot().AutoDetect {
		go func() {
			if _, err := eng.ResolveAuto(context.Background()); err != nil {
				log.Warn().Err(err).Msg("startup location detection failed")
			}
		}()
	}

	go runAzanTicker(eng)

	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	RegisterRoutes(r, env, eng)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// runAzanTicker publishes an announcement when an enabled event's minute
// arrives. Each event fires at most once per day.
func runAzanTicker(eng *engine.Engine) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	var lastFired model.EventName
	var lastFiredDay int

	for now := range ticker.C {
		ev, due := eng.DueEvent(now)
		if !due {
			continue
		}
		if ev.Name == lastFired && now.YearDay() == lastFiredDay {
			continue
		}
		eng.Notifier().EventDue(ev)
		lastFired = ev.Name
		lastFiredDay = now.YearDay()
	}
}
