// Package config holds the assistant's environment-backed settings.
// Secrets live in a .env file (loaded by the caller via godotenv) or the
// real environment; env struct tags do the parsing.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	EmailUser  string `env:"EMAIL_USER"`
	EmailPass  string `env:"EMAIL_PASS"`
	WeatherKey string `env:"OPENWEATHER_APIKEY"`
	SMTPHost   string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort   int    `env:"SMTP_PORT" envDefault:"587"`
	BusURL     string `env:"BUS_URL"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
