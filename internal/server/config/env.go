package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays variables that are set in the environment. Unset
// variables leave the current value alone. A malformed value panics, like
// the other loaders.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
