// Package config loads server settings from the environment and optional
// .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string        `env:"DICE_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"DICE_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"DICE_LOG_FORMAT" envDefault:"console"`
	Seed            int64         `env:"DICE_SEED" envDefault:"0"`
	WSReadTimeout   time.Duration `env:"DICE_WS_READ_TIMEOUT" envDefault:"10m"`
	WSWriteTimeout  time.Duration `env:"DICE_WS_WRITE_TIMEOUT" envDefault:"3s"`
	ShutdownTimeout time.Duration `env:"DICE_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	ClientBuffer    int           `env:"DICE_CLIENT_BUFFER" envDefault:"8"`
}

// Load reads each existing env file (missing ones are skipped, and variables
// already set in the process win) and then parses the environment.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.ClientBuffer < 1 {
		return Config{}, fmt.Errorf("DICE_CLIENT_BUFFER must be positive, got %d", cfg.ClientBuffer)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
