package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/playperu/adjquiz/internal/adjquiz"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/adjquiz.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	// Question bank source: URL, then path, then the embedded default.
	BankURL  string `env:"BANK_URL"`
	BankPath string `env:"BANK_PATH"`

	RoundSize             int                `env:"ROUND_SIZE" envDefault:"10"`
	HintPolicy            adjquiz.HintPolicy `env:"HINT_POLICY" envDefault:"independent"`
	RevealHintsOnComplete bool               `env:"REVEAL_HINTS_ON_COMPLETE" envDefault:"true"`

	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"5m"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if c.RoundSize <= 0 {
		return fmt.Errorf("ROUND_SIZE must be > 0, got %d", c.RoundSize)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be > 0")
	}
	return nil
}

// Quiz returns the session settings. References are wired by the caller.
func (c Config) Quiz() adjquiz.Config {
	return adjquiz.Config{
		RoundSize:             c.RoundSize,
		Hints:                 c.HintPolicy,
		RevealHintsOnComplete: c.RevealHintsOnComplete,
	}
}
