package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_CognitoDefaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"COGNITO_USER_POOL_ID": "us-east-1_abc",
		"COGNITO_CLIENT_ID":    "client",
	}))
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.IdentityProvider != ProviderCognito || cfg.PasswordHash != "md5" {
		t.Fatalf("unexpected provider defaults: %+v", cfg)
	}
	if cfg.Cognito.Region != "us-east-1" || cfg.Cognito.UserPoolID != "us-east-1_abc" {
		t.Fatalf("unexpected cognito config: %+v", cfg.Cognito)
	}
	if cfg.RateLimit.Max != 20 || cfg.RateLimit.Window != time.Minute || cfg.Redis.Addr != "" {
		t.Fatalf("unexpected rate limit config: %+v %+v", cfg.RateLimit, cfg.Redis)
	}
}

func TestLoadWith_Local(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"IDENTITY_PROVIDER": "local",
		"LOCAL_JWT_SECRET":  "dev",
		"LOCAL_TOKEN_TTL":   "15m",
		"PASSWORD_HASH":     "sha256",
		"ENV":               "production",
	}))
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}
	if cfg.Local.TokenTTL != 15*time.Minute || cfg.PasswordHash != "sha256" || !cfg.IsProduction() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadWith_MissingCognitoSettings(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "COGNITO_USER_POOL_ID") || !strings.Contains(err.Error(), "COGNITO_CLIENT_ID") {
		t.Fatalf("error should name both missing settings: %v", err)
	}
}

func TestLoadWith_InvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown provider": {"IDENTITY_PROVIDER": "okta"},
		"unknown hash":     {"IDENTITY_PROVIDER": "local", "LOCAL_JWT_SECRET": "x", "PASSWORD_HASH": "sha1"},
		"local no secret":  {"IDENTITY_PROVIDER": "local"},
		"bad duration":     {"IDENTITY_PROVIDER": "local", "LOCAL_JWT_SECRET": "x", "LOCAL_TOKEN_TTL": "soon"},
		"zero rate limit":  {"IDENTITY_PROVIDER": "local", "LOCAL_JWT_SECRET": "x", "REDIS_ADDR": "localhost:6379", "RATE_LIMIT_MAX": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
