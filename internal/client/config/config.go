package config

import (
	"time"

	"github.com/dspolyakov/buildpad/internal/filex"
)

// Remote backend selectors.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendDynamo   = "dynamo"
)

// Config holds runtime settings for the buildpad CLI.
type Config struct {
	// CachePath is the local SQLite database file.
	CachePath string

	// Backend selects the remote store implementation: memory, postgres
	// or dynamo.
	Backend string

	// PostgresDSN is the connection string for the postgres backend.
	PostgresDSN string

	// Dynamo* configure the dynamo backend. Endpoint is optional and only
	// set when pointing at a local emulator.
	DynamoProjectsTable string
	DynamoIdeasTable    string
	DynamoRegion        string
	DynamoEndpoint      string
	DynamoAccessKey     string
	DynamoSecretKey     string

	// SessionToken is the signed session JWT the owner id is read from.
	SessionToken string

	// CallTimeout bounds each remote reconciliation pipeline.
	CallTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults. The cache path falls
// back to the name alone when no user config directory exists, which keeps
// the file in the working directory.
func (c *Config) LoadDefaults() {
	path, err := filex.DefaultCachePath()
	if err != nil {
		path = "buildpad.db"
	}
	c.CachePath = path
	c.Backend = BackendMemory
	c.DynamoProjectsTable = "buildpad_projects"
	c.DynamoIdeasTable = "buildpad_ideas"
	c.DynamoRegion = "us-east-1"
	c.CallTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
