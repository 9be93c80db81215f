package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/foodlog/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultDotEnvFile = ".env"

// loadDotEnv copies variables from a .env file into the process environment.
// Variables that are already set are left untouched. A missing default file
// is not an error; a missing file named by -env-file is.
func loadDotEnv() error {
	path := flagx.DotEnvFileFlag()
	explicit := path != ""
	if !explicit {
		path = defaultDotEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays FOODLOG_* variables. Unset variables keep the current value.
func parseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
