package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

type Environment struct {
	Environment   string
	ServerAddress string
	SecretKey     string
	AccessKeyHash string

	DatabaseURL    string
	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string

	PrayerAPIURL  string
	GeocodeAPIURL string
	SensorAPIURL  string
}

// LoadEnvironment reads and validates env vars
func LoadEnvironment() Environment {
	env := Environment{
		Environment:   os.Getenv("APP_ENV"),
		ServerAddress: os.Getenv("SERVER_ADDRESS"),
		SecretKey:     os.Getenv("JWT_SECRET"),
		AccessKeyHash: os.Getenv("ACCESS_KEY_HASH"),

		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),

		PrayerAPIURL:  os.Getenv("PRAYER_API_URL"),
		GeocodeAPIURL: os.Getenv("GEOCODE_API_URL"),
		SensorAPIURL:  os.Getenv("SENSOR_API_URL"),
	}

	if env.ServerAddress == "" {
		env.ServerAddress = ":8080"
	}
	if env.MigrationsPath == "" {
		env.MigrationsPath = "./migrations"
	}

	// Basic validation
	if env.SecretKey == "" || env.AccessKeyHash == "" {
		log.Fatal().Msg("Missing required environment variables")
	}

	return env
}
