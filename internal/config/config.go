package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`
	DBUser     string `env:"DB_USER" envDefault:"fituser"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"fitpassword"`
	DBName     string `env:"DB_NAME" envDefault:"fitness_challenge"`

	JWTSecret        string        `env:"JWT_SECRET_KEY" envDefault:"default-secret-key-change-me"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET_KEY" envDefault:"default-refresh-key-change-me"`
	AccessTokenTTL   time.Duration `env:"JWT_EXPIRES_IN" envDefault:"15m"`
	RefreshTokenTTL  time.Duration `env:"JWT_REFRESH_EXPIRES_IN" envDefault:"30m"`

	// SpellActivationFree toggles the free-activation variant of the spell
	// shop: when true, activating an owned spell costs no skillpoints.
	SpellActivationFree bool `env:"SPELL_ACTIVATION_FREE" envDefault:"false"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
