// Package config loads formkit settings from built-in defaults, an optional
// YAML file and FORMKIT_ environment variables, in that order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/internal/validation"
)

// EnvPrefix prefixes every environment override, e.g.
// FORMKIT_MOVIES_BASE_URL sets movies.base_url.
const EnvPrefix = "FORMKIT_"

// Config is the complete formkit configuration.
type Config struct {
	Logging     logging.Config `koanf:"logging"`
	Render      RenderConfig   `koanf:"render"`
	Movies      MoviesConfig   `koanf:"movies"`
	Definitions string         `koanf:"definitions"`
}

// RenderConfig selects and tunes the renderer used by the CLI.
type RenderConfig struct {
	Renderer    string `koanf:"renderer" validate:"required,oneof=tui vanilla"`
	Format      string `koanf:"format" validate:"required,oneof=json form pretty"`
	MaxAttempts int    `koanf:"max_attempts" validate:"min=1"`
	Confirm     bool   `koanf:"confirm"`
	Theme       string `koanf:"theme"`
	Variant     string `koanf:"variant"`
}

// MoviesConfig points the movies client at its backends.
type MoviesConfig struct {
	BaseURL         string        `koanf:"base_url" validate:"required,url"`
	TMDBURL         string        `koanf:"tmdb_url" validate:"required,url"`
	TMDBAPIKey      string        `koanf:"tmdb_api_key"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	TMDBRate        float64       `koanf:"tmdb_rate" validate:"gt=0"`
	TMDBBurst       int           `koanf:"tmdb_burst" validate:"min=1"`
	BreakerFailures uint32        `koanf:"breaker_failures" validate:"min=1"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout" validate:"gt=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	log := logging.DefaultConfig()
	log.Output = nil
	return Config{
		Logging: log,
		Render: RenderConfig{
			Renderer:    "tui",
			Format:      "json",
			MaxAttempts: 3,
		},
		Movies: MoviesConfig{
			BaseURL:         "http://127.0.0.1:8000/",
			TMDBURL:         "https://api.themoviedb.org/3/movie/",
			Timeout:         10 * time.Second,
			TMDBRate:        4,
			TMDBBurst:       4,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
	}
}

// Load layers defaults, the YAML file at path (skipped when empty) and the
// environment, then validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// envKey maps FORMKIT_SECTION_SOME_KEY to section.some_key. Only the first
// underscore separates the section.
func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}
