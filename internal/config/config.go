// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
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

// Config holds settings shared by the server and the terminal client.
type Config struct {
	Addr        string        `env:"NOVEL_ADDR" envDefault:":8080"`
	StoryPath   string        `env:"NOVEL_STORY" envDefault:"stories/demo.yaml"`
	Lang        string        `env:"NOVEL_LANG" envDefault:"en"`
	MessageTTL  time.Duration `env:"NOVEL_MESSAGE_TTL" envDefault:"3s"`
	Slots       int           `env:"NOVEL_INVENTORY_SLOTS" envDefault:"4"`
	SessionIdle time.Duration `env:"NOVEL_SESSION_IDLE" envDefault:"2h"`
	Templates   string        `env:"NOVEL_TEMPLATES" envDefault:"templates"`
	Assets      string        `env:"NOVEL_ASSETS" envDefault:"stories/images"`
	Journal     string        `env:"NOVEL_JOURNAL" envDefault:"journal.pdf"`
	LogFile     string        `env:"NOVEL_LOG"` // terminal client only; stdout belongs to the UI
}

// DotenvPath is the .env file Load reads unless NOVEL_DOTENV says
// otherwise.
func DotenvPath() string {
	if p := os.Getenv("NOVEL_DOTENV"); p != "" {
		return p
	}
	return ".env"
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads dotenv (if it exists) without overriding variables that
// are already set, then parses the environment.
func Load(dotenv string) (Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Slots < 1 {
		return Config{}, fmt.Errorf("NOVEL_INVENTORY_SLOTS must be positive, got %d", cfg.Slots)
	}
	return cfg, nil
}
