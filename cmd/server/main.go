package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/99minutos/auth-gateway/internal/api"
	"github.com/99minutos/auth-gateway/internal/app"
	"github.com/99minutos/auth-gateway/internal/pkg/config"
	"github.com/99minutos/auth-gateway/pkg/logger"
)

//	@title			Auth Gateway API
//	@version		1.0
//	@description	Sign-up and sign-in gateway in front of an identity provider.
//	@BasePath		/
func main() {
	// A missing .env is expected outside local development.
	_ = godotenv.Load()

	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run serves until a signal arrives or the listener fails. Deferred cleanup
// always runs before main exits.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "auth-gateway",
	})

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to build application")
		return err
	}
	defer a.Close()

	deps := api.RouterDeps{Dispatcher: a.Dispatcher, Redis: a.Redis, Log: log}
	if a.Limiter != nil {
		deps.Limiter = a.Limiter
	}
	e := api.NewRouter(deps)

	return serve(ctx, e, ":"+cfg.Port, log)
}
