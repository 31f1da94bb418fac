package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

// AppConfig is the full runtime configuration, read from environment.
type AppConfig struct {
	// Station API credentials. Deliberately not validated as required:
	// the request handler reports misconfiguration (500) per request
	// instead of the process refusing to start.
	ApplicationKey string
	APIKey         string
	DeviceMAC      string

	BaseURL string `validate:"required,url"`

	// Timezone is the station's fixed local zone; the upstream history
	// endpoint expects window bounds in local civil time.
	Timezone *time.Location `validate:"required"`

	// Trend history retention.
	TrendWindow time.Duration `validate:"required,gte=1h"`
	TrendKey    string        `validate:"required"`

	UpstreamTimeout time.Duration `validate:"required,gt=0"`

	// Redis connection for trend persistence. An empty addr disables
	// persistence; trends then degrade to always-empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Port string `validate:"required"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.ApplicationKey = os.Getenv("ECOWITT_APPLICATION_KEY")
	cfg.APIKey = os.Getenv("ECOWITT_API_KEY")
	cfg.DeviceMAC = os.Getenv("ECOWITT_MAC")

	cfg.BaseURL = getenvDefault("ECOWITT_BASE_URL", "https://api.ecowitt.net")

	tzName := getenvDefault("STATION_TIMEZONE", "Africa/Johannesburg")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid STATION_TIMEZONE: %w", err)
	}
	cfg.Timezone = tz

	window, err := getenvDuration("TREND_WINDOW", "48h")
	if err != nil {
		return nil, fmt.Errorf("invalid TREND_WINDOW: %w", err)
	}
	cfg.TrendWindow = window

	cfg.TrendKey = getenvDefault("TREND_KEY", "weather:trend-history")

	timeout, err := getenvDuration("UPSTREAM_TIMEOUT", "10s")
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}
	cfg.UpstreamTimeout = timeout

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getenvInt("REDIS_DB", 0)

	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	return time.ParseDuration(getenvDefault(key, def))
}
