package main

//go:generate go run github.com/swaggo/swag/cmd/swag init -g cmd/app/main.go -d ../../ -o ../../docs --parseInternal

import (
	"context"
	"hotelpms/config"
	"hotelpms/di"
	_ "hotelpms/docs"
	"hotelpms/helper"
	"hotelpms/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Hotel PMS API
// @version 1.0
// @description Rooms, customers, bookings, food orders and the cashier desk of a single property.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	app := di.InitializeService()

	if err := app.Users.EnsureAdmin(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to bootstrap admin account")
	}

	app.HTTP.Serve()
}
