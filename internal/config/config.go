package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"moodplayer/internal/factors"
	"moodplayer/internal/recent"
	"moodplayer/internal/selector"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultTimezone is the zone wall-clock factors and schedules are computed in
const DefaultTimezone = "America/Los_Angeles"

// DefaultPlayerScript is the wrapper cron invokes
const DefaultPlayerScript = "~/moodplayer.sh"

// Sentinel errors for required settings
var (
	ErrMissingCatalogPath = errors.New("CATALOG_PATH must be set")
	ErrMissingAlbumPath   = errors.New("ALBUM_PATH must be set")
)

// Config is the process configuration read from the environment
type Config struct {
	CatalogPath          string
	CatalogExpectedCount int
	AlbumPath            string
	Mpg123Path           string
	SilencePath          string
	PlayerScript         string
	RecentPlaysPath      string
	SelectionLogPath     string
	SettingsPath         string
	LogLevel             string
	LogFile              string
	LogDevelopment       bool
	LogMaxSizeMB         int
	LogMaxBackups        int
	LogMaxAgeDays        int
	UserAgent            string

	Latitude    float64
	Longitude   float64
	HasLocation bool

	Location *time.Location
	Settings Settings
}

// Load reads .env (if present) and then the environment
func Load(logger *zap.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using environment variables")
	}
	return FromEnv(logger)
}

// FromEnv builds a Config from environment variables only
func FromEnv(logger *zap.Logger) (*Config, error) {
	cfg := &Config{
		CatalogPath:      os.Getenv("CATALOG_PATH"),
		AlbumPath:        os.Getenv("ALBUM_PATH"),
		Mpg123Path:       getEnv("MPG123_PATH", "mpg123"),
		SilencePath:      os.Getenv("SILENCE_PATH"),
		PlayerScript:     getEnv("PLAYER_SCRIPT", DefaultPlayerScript),
		RecentPlaysPath:  getEnv("RECENT_PLAYS_PATH", recent.DefaultPath),
		SelectionLogPath: getEnv("SELECTION_LOG_PATH", selector.DefaultLogPath),
		SettingsPath:     os.Getenv("SETTINGS_PATH"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFile:          os.Getenv("LOG_FILE"),
		UserAgent:        getEnv("USER_AGENT", factors.DefaultUserAgent),
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"CATALOG_EXPECTED_COUNT", &cfg.CatalogExpectedCount},
		{"LOG_MAX_SIZE_MB", &cfg.LogMaxSizeMB},
		{"LOG_MAX_BACKUPS", &cfg.LogMaxBackups},
		{"LOG_MAX_AGE_DAYS", &cfg.LogMaxAgeDays},
	}
	for _, i := range ints {
		n, err := parseCount(i.key)
		if err != nil {
			return nil, err
		}
		*i.dst = n
	}

	if v := strings.TrimSpace(os.Getenv("LOG_DEVELOPMENT")); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_DEVELOPMENT %q: %w", v, err)
		}
		cfg.LogDevelopment = dev
	}

	lat, long := os.Getenv("LAT"), os.Getenv("LONG")
	if lat != "" || long != "" {
		var err error
		if cfg.Latitude, err = parseCoordinate("LAT", lat, 90); err != nil {
			return nil, err
		}
		if cfg.Longitude, err = parseCoordinate("LONG", long, 180); err != nil {
			return nil, err
		}
		cfg.HasLocation = true
	}

	tz := getEnv("TIMEZONE", DefaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	settings, err := LoadSettings(cfg.SettingsPath, logger)
	if err != nil {
		return nil, err
	}
	cfg.Settings = settings

	return cfg, nil
}

// RequireCatalog fails when no catalog is configured
func (c *Config) RequireCatalog() error {
	if c.CatalogPath == "" {
		return ErrMissingCatalogPath
	}
	return nil
}

// RequirePlayback fails when settings needed to play audio are missing
func (c *Config) RequirePlayback() error {
	if err := c.RequireCatalog(); err != nil {
		return err
	}
	if c.AlbumPath == "" {
		return ErrMissingAlbumPath
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// parseCount reads a non-negative integer; unset means 0
func parseCount(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

func parseCoordinate(key, value string, limit float64) (float64, error) {
	if value == "" {
		return 0, fmt.Errorf("%s must be set when a location is configured", key)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if f < -limit || f > limit {
		return 0, fmt.Errorf("%s %v out of range", key, f)
	}
	return f, nil
}
