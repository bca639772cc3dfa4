package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dspolyakov/buildpad/internal/flagx"
	"github.com/dspolyakov/buildpad/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify timeouts either as
// strings like "10s" or as integer nanoseconds. After parsing, non-empty
// values are copied into the runtime Config.
type JsonConfig struct {
	CachePath           string         `json:"cache_path"`
	Backend             string         `json:"backend"`
	PostgresDSN         string         `json:"postgres_dsn"`
	DynamoProjectsTable string         `json:"dynamo_projects_table"`
	DynamoIdeasTable    string         `json:"dynamo_ideas_table"`
	DynamoRegion        string         `json:"dynamo_region"`
	DynamoEndpoint      string         `json:"dynamo_endpoint"`
	DynamoAccessKey     string         `json:"dynamo_access_key"`
	DynamoSecretKey     string         `json:"dynamo_secret_key"`
	SessionToken        string         `json:"session_token"`
	CallTimeout         timex.Duration `json:"call_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Only fields present (non-zero) in the JSON override the current values,
// so a partial file keeps the defaults for everything it omits. Panics on
// read or unmarshal errors.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
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

	overlay(&cfg.CachePath, jc.CachePath)
	overlay(&cfg.Backend, jc.Backend)
	overlay(&cfg.PostgresDSN, jc.PostgresDSN)
	overlay(&cfg.DynamoProjectsTable, jc.DynamoProjectsTable)
	overlay(&cfg.DynamoIdeasTable, jc.DynamoIdeasTable)
	overlay(&cfg.DynamoRegion, jc.DynamoRegion)
	overlay(&cfg.DynamoEndpoint, jc.DynamoEndpoint)
	overlay(&cfg.DynamoAccessKey, jc.DynamoAccessKey)
	overlay(&cfg.DynamoSecretKey, jc.DynamoSecretKey)
	overlay(&cfg.SessionToken, jc.SessionToken)
	if jc.CallTimeout.Duration != 0 {
		cfg.CallTimeout = time.Duration(jc.CallTimeout.Duration)
	}
}

func overlay(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
