package app

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-gateway/internal/api/gateway"
	"github.com/99minutos/auth-gateway/internal/infrastructure/identity/local"
	"github.com/99minutos/auth-gateway/internal/pkg/config"
)

func localConfig() *config.Config {
	return &config.Config{
		IdentityProvider: config.ProviderLocal,
		PasswordHash:     "sha256",
		Local:            config.LocalConfig{JWTSecret: "app-test", TokenTTL: time.Minute},
	}
}

func TestNew_LocalWithoutRedis(t *testing.T) {
	a, err := New(context.Background(), localConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer a.Close()

	if a.Redis != nil || a.Limiter != nil {
		t.Fatalf("rate limiting must be disabled without REDIS_ADDR")
	}

	req, err := gateway.ParseRequest([]byte(`{"action":"SignUp","data":{"name":"Ana","role":"ADMIN","email":"ana@example.com"}}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	out, err := a.Dispatcher.Dispatch(context.Background(), req)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if out.(gateway.TokenResponse).Token == "" {
		t.Fatalf("expected a token")
	}
}

func TestNewBackend(t *testing.T) {
	b, err := NewBackend(context.Background(), localConfig())
	if err != nil {
		t.Fatalf("NewBackend returned error: %v", err)
	}
	if _, ok := b.(*local.Backend); !ok {
		t.Fatalf("expected local backend, got %T", b)
	}

	if _, err := NewBackend(context.Background(), &config.Config{IdentityProvider: "ldap"}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestNew_UnknownHash(t *testing.T) {
	cfg := localConfig()
	cfg.PasswordHash = "crc32"
	if _, err := New(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unknown password hash")
	}
}
