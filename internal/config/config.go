package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Assets   AssetsConfig
	Map      MapConfig
	DB       DatabaseConfig
	Logging  LoggingConfig
	TimeZone string
}

type ServerConfig struct {
	Host            string
	Port            int
	RateLimitRPS    int
	ShutdownTimeout time.Duration
}

// AssetsConfig locates the three input documents. Each is an http(s) URL, a
// file:// URL, or a plain path.
type AssetsConfig struct {
	EarthquakesURL string
	RegionURL      string
	TsunamiURL     string
	FetchTimeout   time.Duration
}

type MapConfig struct {
	Token     string
	Style     string
	CenterLon float64
	CenterLat float64
	Zoom      float64
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "localhost"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			RateLimitRPS:    getEnvInt("RATE_LIMIT_RPS", 100),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Assets: AssetsConfig{
			EarthquakesURL: getEnv("EARTHQUAKES_URL", "assets/earthquakes.geojson"),
			RegionURL:      getEnv("REGION_URL", "assets/japan.json"),
			TsunamiURL:     getEnv("TSUNAMI_URL", "assets/japan_tsunami_2017_episode.geojson"),
			FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		},
		Map: MapConfig{
			Token:     getEnv("MAPBOX_TOKEN", ""),
			Style:     getEnv("MAPBOX_STYLE", "mapbox://styles/mapbox/navigation-day-v1"),
			CenterLon: getEnvFloat("MAP_CENTER_LON", 138),
			CenterLat: getEnvFloat("MAP_CENTER_LAT", 38),
			Zoom:      getEnvFloat("MAP_ZOOM", 5.5),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/quake-viewer.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		TimeZone: getEnv("TIME_ZONE", "Local"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Location resolves TimeZone. validate has already checked it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 request per second")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Assets.FetchTimeout < time.Second {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}
	if c.Assets.EarthquakesURL == "" || c.Assets.RegionURL == "" || c.Assets.TsunamiURL == "" {
		return fmt.Errorf("all three asset locations must be set")
	}

	if c.Map.Zoom < 0 || c.Map.Zoom > 24 {
		return fmt.Errorf("invalid map zoom: %g", c.Map.Zoom)
	}
	if c.Map.CenterLon < -180 || c.Map.CenterLon > 180 || c.Map.CenterLat < -90 || c.Map.CenterLat > 90 {
		return fmt.Errorf("invalid map center: [%g, %g]", c.Map.CenterLon, c.Map.CenterLat)
	}

	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
	}

	return nil
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

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
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
