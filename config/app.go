package config

import "time"

type App struct {
	Port          string        `envconfig:"APP_PORT" default:"8080"`
	DatabaseURL   string        `envconfig:"DATABASE_URL" required:"true"`
	AdminKey      string        `envconfig:"ADMIN_KEY" required:"true"`
	Env           string        `envconfig:"APP_ENV" default:"dev"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"60s"`
}
