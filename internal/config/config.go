package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains all service configuration, read from environment
// variables.
type Config struct {
	Port       string   `env:"PORT" envDefault:"8080"`
	GinLogging bool     `env:"GIN_LOGGING" envDefault:"true"`
	LogMode    string   `env:"LOG_MODE" envDefault:"production"`
	Database   Database `envPrefix:"DB"`
	JWT        JWT      `envPrefix:"JWT_"`
}

// Database contains the MySQL connection parameters.
type Database struct {
	User     string `env:"USER"`
	Password string `env:"PWD"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Name     string `env:"NAME" envDefault:"contactbook"`
}

// JWT contains the access token parameters.
type JWT struct {
	Secret string        `env:"SECRET" envDefault:"devsecret"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

// DSN renders the connection string for the MySQL driver. parseTime makes
// the driver return DATE and DATETIME columns as time.Time.
func (d Database) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", d.User, d.Password, d.Host, d.Name)
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
