// Package app wires configuration into the services shared by every binary.
package app

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-gateway/internal/api/gateway"
	"github.com/99minutos/auth-gateway/internal/core/domain"
	"github.com/99minutos/auth-gateway/internal/core/service"
	"github.com/99minutos/auth-gateway/internal/infrastructure/db/redis"
	"github.com/99minutos/auth-gateway/internal/infrastructure/identity"
	"github.com/99minutos/auth-gateway/internal/infrastructure/identity/cognito"
	"github.com/99minutos/auth-gateway/internal/infrastructure/identity/local"
	"github.com/99minutos/auth-gateway/internal/pkg/config"
)

type App struct {
	Dispatcher *gateway.Dispatcher
	// Redis and Limiter are nil when REDIS_ADDR is empty.
	Redis   *goredis.Client
	Limiter *redis.FixedWindowLimiter
}

// New builds the identity backend, the use cases and the optional Redis limiter.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	backend, err := NewBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	hasher, err := domain.HasherByName(cfg.PasswordHash)
	if err != nil {
		return nil, err
	}

	provider := identity.NewProvider(backend, log.With().Str("component", "identity").Logger())
	auth := service.NewAuthService(provider, hasher, log.With().Str("component", "auth").Logger())
	a := &App{Dispatcher: gateway.NewDispatcher(auth)}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		log.Info().Msg("redis not configured, rate limiting disabled")
	case err != nil:
		return nil, err
	default:
		a.Redis = rdb
		a.Limiter = redis.NewFixedWindowLimiter(rdb, "", cfg.RateLimit.Max, cfg.RateLimit.Window)
	}

	log.Info().
		Str("identity_provider", cfg.IdentityProvider).
		Str("password_hash", cfg.PasswordHash).
		Bool("rate_limit", a.Limiter != nil).
		Msg("auth gateway initialised")
	return a, nil
}

// NewBackend selects the identity backend named by IDENTITY_PROVIDER.
func NewBackend(ctx context.Context, cfg *config.Config) (identity.Backend, error) {
	switch cfg.IdentityProvider {
	case config.ProviderCognito:
		return cognito.New(ctx, cognito.Config{
			Region:       cfg.Cognito.Region,
			UserPoolID:   cfg.Cognito.UserPoolID,
			ClientID:     cfg.Cognito.ClientID,
			ClientSecret: cfg.Cognito.ClientSecret,
		})
	case config.ProviderLocal:
		return local.New(cfg.Local.JWTSecret, cfg.Local.TokenTTL)
	}
	return nil, fmt.Errorf("unknown identity provider %q", cfg.IdentityProvider)
}

func (a *App) Close() error {
	if a.Redis != nil {
		return a.Redis.Close()
	}
	return nil
}
