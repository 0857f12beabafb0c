package main

import (
	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/miqat/internal/db"
	"github.com/miqat-labs/miqat/internal/notify"
	"github.com/miqat-labs/miqat/internal/prefs"
	"github.com/miqat-labs/miqat/internal/redis"
)

// InitNotifier connects the MQTT notifier when a broker is configured.
// Without one, notifications are a no-op.
func InitNotifier(env Environment) notify.Notifier {
	if env.MQTTBrokerURL == "" {
		log.Info().Msg("no MQTT broker configured, azan notifications disabled")
		return notify.Noop{}
	}

	notifier, err := notify.NewMQTTNotifier(env.MQTTBrokerURL, "miqat-server")
	if err != nil {
		log.Error().Err(err).Str("broker", env.MQTTBrokerURL).
			Msg("failed to connect MQTT notifier, continuing without notifications")
		return notify.Noop{}
	}
	return notifier
}

// InitPreferences selects and returns the configured preference backend
func InitPreferences(env Environment) prefs.Store {
	if env.DatabaseURL != "" {
		if err := db.Init(env.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Postgres preference store")
		}
		if err := db.RunMigrations(env.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		log.Info().Msg("using Postgres preference store")
		return prefs.NewPgStore(db.DB)
	}

	if env.RedisAddress != "" && redis.Enabled() {
		log.Info().Msg("using Redis preference store")
		return prefs.NewRedisStore(redis.Rdb)
	}

	log.Warn().Msg("no preference backend configured, settings will not survive restarts")
	return prefs.NewMemory()
}
