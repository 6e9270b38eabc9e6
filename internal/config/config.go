package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath        string     `env:"DB_PATH" envDefault:"data/oshack.db"`
	RedisURL      string     `env:"REDIS_URL"`
	LogLevel      slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir        string     `env:"SPA_DIR" envDefault:"../web/dist"`
	AdminUsername string     `env:"ADMIN_USERNAME" envDefault:"Blasher"`
	AdminPassword string     `env:"ADMIN_PASSWORD" envDefault:"changeme"`
}

func Load() (*Config, error) {
	// .env is optional; deployments usually set the environment directly.
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
