package ecd

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// ConfigFromEnv builds a Config from environment variables. A .env file in the
// working directory is loaded first if present, for local runs; real env vars
// win over the file.
func ConfigFromEnv() (*Config, error) {
	_ = godotenv.Load()

	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, fmt.Errorf("error reading config from environment: %s", err)
	}

	return &config, nil
}
