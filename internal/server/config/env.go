package config

import (
	"errors"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type portEnv struct {
	Port string `env:"PORT"`
}

// parseEnv loads a .env file from the working directory when present and
// overlays every variable that is set onto config. Unset variables keep the
// values from earlier stages.
func parseEnv(config *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return err
	}

	var p portEnv
	if err := cleanenv.ReadEnv(&p); err != nil {
		return err
	}
	if p.Port != "" {
		config.EndpointAddrHTTP = ":" + p.Port
	}

	return nil
}
