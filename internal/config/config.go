package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Port         int  `env:"PORT" envDefault:"8080"`
	IsProduction bool `env:"PRODUCTION_MODE" envDefault:"false"`
	IsTestMode   bool `env:"TEST_MODE" envDefault:"false"`

	Secret        string `env:"SECRET,required"`
	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`

	BcryptHasherCost           int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	SessionTokenValidDuration  time.Duration `env:"SESSION_TOKEN_VALID_DURATION" envDefault:"1h"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"1h"`

	AwsRegion      string `env:"AWS_REGION,required"`
	AwsAccessKey   string `env:"AWS_ACCESS_KEY,required"`
	AwsSecretKey   string `env:"AWS_SECRET_KEY,required"`
	AwsEmailSender string `env:"AWS_EMAIL_SENDER,required"`

	ClientBaseURL url.URL `env:"CLIENT_BASE_URL,required"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	return cfg, nil
}
