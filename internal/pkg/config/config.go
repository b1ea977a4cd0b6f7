package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Identity backends selectable with IDENTITY_PROVIDER.
const (
	ProviderCognito = "cognito"
	ProviderLocal   = "local"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	IdentityProvider string `env:"IDENTITY_PROVIDER, default=cognito"`
	// PasswordHash selects the digest used to derive passwords: md5 or sha256.
	PasswordHash string `env:"PASSWORD_HASH, default=md5"`

	Cognito   CognitoConfig
	Local     LocalConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type CognitoConfig struct {
	Region       string `env:"AWS_REGION, default=us-east-1"`
	UserPoolID   string `env:"COGNITO_USER_POOL_ID"`
	ClientID     string `env:"COGNITO_CLIENT_ID"`
	ClientSecret string `env:"COGNITO_CLIENT_SECRET"`
}

type LocalConfig struct {
	JWTSecret string        `env:"LOCAL_JWT_SECRET"`
	TokenTTL  time.Duration `env:"LOCAL_TOKEN_TTL, default=1h"`
}

// RedisConfig is optional; an empty Addr disables rate limiting.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type RateLimitConfig struct {
	Max    int           `env:"RATE_LIMIT_MAX,    default=20"`
	Window time.Duration `env:"RATE_LIMIT_WINDOW, default=1m"`
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks cross-field requirements envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error
	switch c.IdentityProvider {
	case ProviderCognito:
		if c.Cognito.UserPoolID == "" {
			errs = append(errs, errors.New("COGNITO_USER_POOL_ID is required"))
		}
		if c.Cognito.ClientID == "" {
			errs = append(errs, errors.New("COGNITO_CLIENT_ID is required"))
		}
	case ProviderLocal:
		if c.Local.JWTSecret == "" {
			errs = append(errs, errors.New("LOCAL_JWT_SECRET is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("IDENTITY_PROVIDER must be %q or %q, got %q", ProviderCognito, ProviderLocal, c.IdentityProvider))
	}
	if c.PasswordHash != "md5" && c.PasswordHash != "sha256" {
		errs = append(errs, fmt.Errorf("PASSWORD_HASH must be md5 or sha256, got %q", c.PasswordHash))
	}
	if c.Redis.Addr != "" && c.RateLimit.Max <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX must be positive"))
	}
	return errors.Join(errs...)
}

// LoadWith reads and validates configuration from the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}
