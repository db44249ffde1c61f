// Package config assembles the client's runtime settings from layered
// sources: defaults, then environment (including a .env file), then an
// optional JSON file, then command-line flags. Later sources win.
package config

import "time"

// Config holds runtime settings for the health portal CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the portal REST API, including the /api prefix.
//   - DatabasePath: sqlite file holding the persisted session.
//   - RequestTimeout: upper bound on any single API request.
//   - LogLevel: debug | info | warn | error.
type Config struct {
	ServerBaseURL  string        `env:"SERVER_BASE_URL"`
	DatabasePath   string        `env:"DATABASE_PATH"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	LogLevel       string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000/api"
	c.DatabasePath = "healthportal.db"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if given via -c/-config) and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
