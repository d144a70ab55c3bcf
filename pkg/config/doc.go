// Package config loads application configuration from environment variables
// into tagged structs using github.com/caarlos0/env/v11, with .env support
// from github.com/joho/godotenv.
//
// Load caches the parsed struct per type for the lifetime of the process,
// which suits application-wide settings read from many places. Parse does
// the same work without caching and reads extra .env files without touching
// the process environment, which suits tests and CLI flags that point at a
// specific file.
//
//	type Config struct {
//		Env      string `env:"MKIT_ENV" envDefault:"development"`
//		LogLevel string `env:"MKIT_LOG_LEVEL" envDefault:"info"`
//	}
//
//	var cfg Config
//	if err := config.Parse(&cfg, ".env.local"); err != nil {
//		return err
//	}
package config
