package mkit

import (
	"time"

	"github.com/dmitrymomot/mkit/pkg/config"
	"github.com/dmitrymomot/mkit/pkg/validator"
)

// Config holds application settings read from the environment.
type Config struct {
	Env          string        `env:"MKIT_ENV" envDefault:"development"`
	Service      string        `env:"MKIT_SERVICE" envDefault:"mkit"`
	LogLevel     string        `env:"MKIT_LOG_LEVEL"`
	CSRFField    string        `env:"MKIT_CSRF_FIELD" envDefault:"csrf_token"`
	MessagesFile string        `env:"MKIT_MESSAGES_FILE"`
	Language     string        `env:"MKIT_LANGUAGE" envDefault:"en"`
	SessionTTL   time.Duration `env:"MKIT_SESSION_TTL" envDefault:"24h"`
}

// DefaultConfig returns the settings used when no variable is set.
func DefaultConfig() Config {
	return Config{
		Env:        "development",
		Service:    "mkit",
		CSRFField:  validator.DefaultCSRFField,
		Language:   "en",
		SessionTTL: 24 * time.Hour,
	}
}

// LoadConfig reads Config from the environment, falling back to values in
// the given .env files.
func LoadConfig(files ...string) (Config, error) {
	var cfg Config
	if err := config.Parse(&cfg, files...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
