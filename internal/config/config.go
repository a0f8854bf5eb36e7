package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port            string        `envconfig:"PORT" default:"5000"`
	MongoURI        string        `envconfig:"MONGODB_URI" required:"true"`
	DatabaseName    string        `envconfig:"DATABASE_NAME" default:"harmonyAcademyDB"`
	JWTSecret       string        `envconfig:"JWT_SECRET" required:"true"`
	StripeSecretKey string        `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	Origin          string        `envconfig:"ORIGIN" default:"*"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
}

// LoadConfig reads the optional .env file and then the process
// environment. Missing secrets fail startup rather than surfacing
// later as opaque auth or store errors.
func LoadConfig() (Config, error) {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
