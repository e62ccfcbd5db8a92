package main

import (
	"tourdesk/config"
	"tourdesk/di"
	"tourdesk/helper"
	"tourdesk/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	log.Info().Str("app", cfg.App.Name).Str("env", cfg.Server.Env).Msg("Starting tour desk API")

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	server := di.InitializeService()
	server.Serve()
}
