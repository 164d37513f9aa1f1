package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/vasapolrittideah/property-listing-api/shared/mailer"
)

const (
	// DefaultJWTSecret and DefaultMongoURI only exist so the service starts on a laptop
	// without any setup. Validate refuses them outside local environments.
	DefaultJWTSecret = "your-secret-key-here"
	DefaultMongoURI  = "mongodb://localhost:27017/property-listing"

	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// ListingServiceConfig holds every setting of the listing service.
type ListingServiceConfig struct {
	Environment string `env:"APP_ENV"   envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	HTTP      HTTPConfig
	Mongo     MongoConfig `envPrefix:"MONGODB_"`
	Token     TokenConfig `envPrefix:"JWT_"`
	Mailer    mailer.Config
	Discovery DiscoveryConfig
}

type HTTPConfig struct {
	Port            int           `env:"PORT"                  envDefault:"3000"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"10s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

type MongoConfig struct {
	URI            string        `env:"URI"             envDefault:"mongodb://localhost:27017/property-listing"`
	Database       string        `env:"DATABASE"        envDefault:"property-listing"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
}

type TokenConfig struct {
	Secret    string        `env:"SECRET"     envDefault:"your-secret-key-here"`
	ExpiresIn time.Duration `env:"EXPIRES_IN" envDefault:"168h"`
	Issuer    string        `env:"ISSUER"     envDefault:"property-listing-api"`
}

// DiscoveryConfig enables the optional gRPC health endpoint and Consul registration.
// Both stay off while their address is empty.
type DiscoveryConfig struct {
	GRPCHealthAddr string `env:"GRPC_HEALTH_ADDR"`
	ConsulAddr     string `env:"CONSUL_ADDR"`
	ServiceName    string `env:"SERVICE_NAME" envDefault:"listing-service"`
	ServiceHost    string `env:"SERVICE_HOST" envDefault:"localhost"`
}

// Load reads an optional .env file and then parses the environment.
func Load(envFiles ...string) (*ListingServiceConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	cfg, err := env.ParseAs[ListingServiceConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IsLocal reports whether the service runs on a developer machine or in tests.
func (c *ListingServiceConfig) IsLocal() bool {
	return c.Environment == EnvDevelopment || c.Environment == EnvTest
}

func (c *ListingServiceConfig) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// Validate checks the config for values that would make the service unusable or unsafe.
func (c *ListingServiceConfig) Validate() error {
	var errs []error

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.HTTP.Port))
	}
	if c.Mongo.URI == "" {
		errs = append(errs, errors.New("missing MONGODB_URI environment variable"))
	}
	if c.Mongo.Database == "" {
		errs = append(errs, errors.New("missing MONGODB_DATABASE environment variable"))
	}
	if c.Token.Secret == "" {
		errs = append(errs, errors.New("missing JWT_SECRET environment variable"))
	}
	if c.Token.ExpiresIn <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must be positive"))
	}
	if c.Mailer.Enabled() {
		if err := c.Mailer.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	if !c.IsLocal() {
		if c.Token.Secret == DefaultJWTSecret {
			errs = append(errs, fmt.Errorf("JWT_SECRET must be set when APP_ENV is %q", c.Environment))
		}
		if c.Mongo.URI == DefaultMongoURI {
			errs = append(errs, fmt.Errorf("MONGODB_URI must be set when APP_ENV is %q", c.Environment))
		}
	}

	return errors.Join(errs...)
}
