package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the tripmate CLI.
//
// Fields:
//   - APIBaseURL: base URL of the trip-planning REST backend.
//   - AuthBaseURL: base URL of the auth, profile, my-trips and add_trip
//     endpoints; empty means APIBaseURL.
//   - CoinsDefault: coin balance shown when the backend reports none.
//   - PlacesAPIKey: Google Places key; empty serves sample places.
//   - SecretKey: passphrase the stored session is encrypted with.
//   - DebugNetwork: log every request and response at debug level.
//   - RequestTimeout: bound on one logical HTTP call, retries included.
//   - StoragePath: SQLite file the session is persisted in.
//   - DevMode: enables the dev login bypass.
type Config struct {
	APIBaseURL     string
	AuthBaseURL    string
	CoinsDefault   int
	PlacesAPIKey   string
	SecretKey      string
	DebugNetwork   bool
	RequestTimeout time.Duration
	StoragePath    string
	DevMode        bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://10.0.2.2:3000"
	c.AuthBaseURL = ""
	c.CoinsDefault = 1200
	c.PlacesAPIKey = ""
	c.SecretKey = "12345"
	c.DebugNetwork = true
	c.RequestTimeout = 20 * time.Second
	c.StoragePath = "tripmate.db"
	c.DevMode = false
}

// AuthURL returns the base URL for auth endpoints.
func (c *Config) AuthURL() string {
	if c.AuthBaseURL != "" {
		return c.AuthBaseURL
	}
	return c.APIBaseURL
}

// LoadConfig constructs a Config from the process arguments and
// environment. See Load.
func LoadConfig() *Config {
	return Load(os.Args[1:], os.Getenv)
}

// Load applies defaults, then overlays values from JSON (if present), the
// environment and command-line flags. Later sources take precedence over
// earlier ones.
func Load(args []string, getenv func(string) string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, getenv)
	parseFlags(cfg, args)
	return cfg
}
