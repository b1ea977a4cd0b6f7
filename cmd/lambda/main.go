package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	lambdahandler "github.com/99minutos/auth-gateway/internal/api/lambda"
	"github.com/99minutos/auth-gateway/internal/app"
	"github.com/99minutos/auth-gateway/internal/pkg/config"
	"github.com/99minutos/auth-gateway/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Options{Level: cfg.LogLevel, Service: "auth-gateway"})
	log := logger.Get()

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build application")
	}

	lambda.Start(lambdahandler.NewHandler(a.Dispatcher, log).Handle)
}
