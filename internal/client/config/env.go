package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays cfg with values from KUDI_* environment variables.
// Unset variables leave the corresponding fields untouched.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
