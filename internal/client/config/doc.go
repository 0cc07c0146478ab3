// Package config loads runtime configuration for the tripmate CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables TRIPMATE_* (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-s string   path of the local SQLite database
//	-d          log network traffic
//	-dev        enable the dev login bypass
//
// # JSON schema
//
// Every key is optional. request_timeout is a duration string like "20s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "http://10.0.2.2:3000",
//	  "auth_base_url": "",
//	  "coins_default": 1200,
//	  "places_api_key": "",
//	  "secret_key": "12345",
//	  "debug_network": true,
//	  "request_timeout": "20s",
//	  "storage_path": "tripmate.db",
//	  "dev_mode": false
//	}
//
// Primary API
//
//   - type Config                   : runtime settings
//   - func LoadConfig() *Config     : Load over os.Args and os.Getenv
//   - func Load(args, getenv)       : defaults, JSON, environment, flags
//   - func (*Config) LoadDefaults() : sets sensible defaults
package config
