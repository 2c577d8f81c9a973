package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Source    SourceConfig
	Locations []Location
	DB        DatabaseConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type SourceConfig struct {
	URL          string
	PollInterval time.Duration
	MockFallback bool
}

// Location is one monitored place: a display label plus the coordinate used
// for the nearest-station lookup.
type Location struct {
	Label     string
	Latitude  float64
	Longitude float64
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	locations, err := parseLocations(getEnv("LOCATIONS", "Delhi=28.6139,77.2090"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Source: SourceConfig{
			URL:          getEnv("AQI_SOURCE_URL", "https://api.data.gov.in/resource/aqi-stations.json"),
			PollInterval: getEnvDuration("AQI_POLL_INTERVAL", 10*time.Minute),
			MockFallback: getEnvBool("AQI_MOCK_FALLBACK", true),
		},
		Locations: locations,
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/aqi-alerts.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Source.PollInterval < time.Minute {
		return fmt.Errorf("AQI poll interval must be at least 1 minute")
	}
	if len(c.Locations) == 0 {
		return fmt.Errorf("at least one monitored location is required")
	}

	return nil
}

// parseLocations decodes "Label=lat,lon;Label=lat,lon".
func parseLocations(raw string) ([]Location, error) {
	var out []Location
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		label, coords, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid location entry %q", entry)
		}
		latStr, lonStr, ok := strings.Cut(coords, ",")
		if !ok {
			return nil, fmt.Errorf("invalid coordinates in location entry %q", entry)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in location entry %q: %w", entry, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in location entry %q: %w", entry, err)
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("coordinates out of range in location entry %q", entry)
		}
		out = append(out, Location{
			Label:     strings.TrimSpace(label),
			Latitude:  lat,
			Longitude: lon,
		})
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
