package config

import (
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/dmitrijs2005/tripmate/internal/flagx"
	"github.com/dmitrijs2005/tripmate/internal/timex"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values, so a file only overrides
// what it mentions. RequestTimeout uses timex.Duration so it can be given
// as "20s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	AuthBaseURL    *string         `json:"auth_base_url"`
	CoinsDefault   *int            `json:"coins_default"`
	PlacesAPIKey   *string         `json:"places_api_key"`
	SecretKey      *string         `json:"secret_key"`
	DebugNetwork   *bool           `json:"debug_network"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	StoragePath    *string         `json:"storage_path"`
	DevMode        *bool           `json:"dev_mode"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config in args. Without such a flag nothing happens.
//
// Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigFile(args)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIf(&cfg.APIBaseURL, jc.APIBaseURL)
	setIf(&cfg.AuthBaseURL, jc.AuthBaseURL)
	setIf(&cfg.CoinsDefault, jc.CoinsDefault)
	setIf(&cfg.PlacesAPIKey, jc.PlacesAPIKey)
	setIf(&cfg.SecretKey, jc.SecretKey)
	setIf(&cfg.DebugNetwork, jc.DebugNetwork)
	setIf(&cfg.StoragePath, jc.StoragePath)
	setIf(&cfg.DevMode, jc.DevMode)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
