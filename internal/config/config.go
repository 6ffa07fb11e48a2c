package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Questions QuestionsConfig `yaml:"questions"`
	Redis     RedisConfig     `yaml:"redis"`
	Postgres  PostgresConfig  `yaml:"postgres"`
}

type ServerConfig struct {
	Port           string `yaml:"port" env:"PORT"`
	RateLimitRPS   int    `yaml:"rate_limit_rps" env:"RATE_LIMIT_RPS"`
	RateLimitBurst int    `yaml:"rate_limit_burst" env:"RATE_LIMIT_BURST"`
}

type QuestionsConfig struct {
	// Path of a JSON or YAML question file; used when Postgres is not configured.
	Path string `yaml:"path" env:"QUESTIONS_PATH"`
	// SetID selects the question set row in Postgres and the Redis cache key.
	SetID string `yaml:"set_id" env:"QUESTIONS_SET_ID"`
	TTL   string `yaml:"ttl" env:"QUESTIONS_TTL"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
	TTL      string `yaml:"ttl" env:"REDIS_TTL"`
}

type PostgresConfig struct {
	URL string `yaml:"url" env:"POSTGRES_URL"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Server.RateLimitRPS = 5
	cfg.Server.RateLimitBurst = 10
	cfg.Questions.Path = "data/questions.json"
	cfg.Questions.SetID = "default"
	return cfg
}

// Load reads YAML config from path on top of the defaults, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
