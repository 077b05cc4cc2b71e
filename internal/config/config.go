// Package config centralises configuration parsing for the exercise tracker.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures runtime configuration values for the service.
type Config struct {
	HTTPAddress   string
	MongoURI      string
	MongoDatabase string
	WebDir        string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
}

// Load reads environment variables into Config, applying sensible defaults
// for local dev. PORT is honoured as a bare port number when HTTP_ADDRESS is
// unset.
func Load() Config {
	return Config{
		HTTPAddress:   listenAddress(),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "exercise_tracker"),
		WebDir:        getEnv("WEB_DIR", "web"),
		ReadTimeout:   getDurationEnv("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout:  getDurationEnv("HTTP_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:   getDurationEnv("HTTP_IDLE_TIMEOUT", 60*time.Second),
	}
}

func listenAddress() string {
	if addr, ok := os.LookupEnv("HTTP_ADDRESS"); ok && addr != "" {
		return addr
	}
	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		if _, err := strconv.Atoi(port); err == nil {
			return ":" + port
		}
	}
	return ":8080"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
