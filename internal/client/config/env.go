package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment,
// loading a local .env file first when one exists. Variables carry the HP_
// prefix (HP_SERVER_BASE_URL, HP_DATABASE_PATH, HP_REQUEST_TIMEOUT,
// HP_LOG_LEVEL); absent variables leave the current values untouched.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "HP_"}); err != nil {
		panic(err)
	}
}
