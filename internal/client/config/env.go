package config

import (
	"strconv"
	"time"
)

// Environment variables read by parseEnv.
const (
	EnvAPIBaseURL     = "TRIPMATE_API_BASE_URL"
	EnvAuthBaseURL    = "TRIPMATE_AUTH_BASE_URL"
	EnvCoinsDefault   = "TRIPMATE_COINS_DEFAULT"
	EnvPlacesAPIKey   = "TRIPMATE_PLACES_API_KEY"
	EnvSecretKey      = "TRIPMATE_SECRET_KEY"
	EnvDebugNetwork   = "TRIPMATE_DEBUG_NETWORK"
	EnvRequestTimeout = "TRIPMATE_REQUEST_TIMEOUT"
	EnvStoragePath    = "TRIPMATE_STORAGE_PATH"
	EnvDevMode        = "TRIPMATE_DEV_MODE"
)

// parseEnv overlays Config with non-empty environment values. Values that
// do not parse are ignored and the previous setting is kept.
func parseEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		return
	}

	if v := getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := getenv(EnvAuthBaseURL); v != "" {
		cfg.AuthBaseURL = v
	}
	if v := getenv(EnvCoinsDefault); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CoinsDefault = n
		}
	}
	if v := getenv(EnvPlacesAPIKey); v != "" {
		cfg.PlacesAPIKey = v
	}
	if v := getenv(EnvSecretKey); v != "" {
		cfg.SecretKey = v
	}
	if v := getenv(EnvDebugNetwork); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DebugNetwork = b
		}
	}
	if v := getenv(EnvRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if v := getenv(EnvStoragePath); v != "" {
		cfg.StoragePath = v
	}
	if v := getenv(EnvDevMode); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DevMode = b
		}
	}
}
