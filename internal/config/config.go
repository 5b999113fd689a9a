// Package config loads application configuration from a YAML file,
// the environment, and an optional .env file. All settings travel in
// an explicit Config value; there is no process-wide mutable state.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every tunable the application reads. File values
// override defaults; environment variables override both.
type Config struct {
	// API credentials, environment-only.
	OpenAIAPIKey     string `env:"OPENAI_API_KEY" yaml:"-" mapstructure:"-"`
	ElevenLabsAPIKey string `env:"ELEVENLABS_API_KEY" yaml:"-" mapstructure:"-"`

	// RedisURL locates the transcript cache backend. Empty disables
	// caching.
	RedisURL string `env:"REDIS_URL" yaml:"redis_url" mapstructure:"redis_url"`

	// MaxChunkLen is the maximum transcript chunk length in
	// characters.
	MaxChunkLen int `env:"MAX_CHUNK_LENGTH" yaml:"max_chunk_length" mapstructure:"max_chunk_length"`

	// ConcurrentTasks bounds simultaneous in-flight chunk
	// processings.
	ConcurrentTasks int `env:"CONCURRENT_TASKS" yaml:"concurrent_tasks" mapstructure:"concurrent_tasks"`

	// CacheTTL is how long fetched transcripts stay cached.
	CacheTTL time.Duration `env:"CACHE_TTL" yaml:"cache_ttl" mapstructure:"cache_ttl"`

	// EnhanceModel is the chat model used for text enhancement.
	EnhanceModel string `env:"ENHANCE_MODEL" yaml:"enhance_model" mapstructure:"enhance_model"`

	// Language is the preferred transcript language code.
	Language string `env:"LANGUAGE" yaml:"language" mapstructure:"language"`

	// Voice is the default TTS voice ID.
	Voice string `env:"VOICE" yaml:"voice" mapstructure:"voice"`

	// Debug enables debug logging.
	Debug bool `env:"DEBUG" yaml:"debug" mapstructure:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RedisURL:        "redis://localhost:6379",
		MaxChunkLen:     500,
		ConcurrentTasks: 5,
		CacheTTL:        24 * time.Hour,
		EnhanceModel:    "gpt-4o-mini",
		Language:        "en",
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "yt2speech", "config.yml"), nil
}

// Load assembles the effective configuration. path may be empty, in
// which case the default location is consulted; a missing file is not
// an error. A .env file in the working directory is loaded first so
// its variables participate in the environment pass.
func Load(path string) (Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := Default()

	file := path
	if file == "" {
		file, _ = DefaultPath()
	}

	if file != "" {
		v := viper.New()
		v.SetConfigType("yaml")
		v.SetConfigFile(file)

		switch err := v.ReadInConfig(); {
		case err == nil:
			if err := v.Unmarshal(&cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file: %w", err)
			}
		case os.IsNotExist(err):
			// Missing config file: run on defaults.
		default:
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration can drive a conversion.
// The OpenAI key is optional: without it, enhancement is skipped.
func (c Config) Validate() error {
	if c.ElevenLabsAPIKey == "" {
		return errors.New("ELEVENLABS_API_KEY is required")
	}
	if c.MaxChunkLen <= 0 {
		return fmt.Errorf("max_chunk_length must be positive, got %d", c.MaxChunkLen)
	}
	if c.ConcurrentTasks <= 0 {
		return fmt.Errorf("concurrent_tasks must be positive, got %d", c.ConcurrentTasks)
	}
	return nil
}
