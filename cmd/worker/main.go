package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tourdesk/config"
	"tourdesk/di"
	"tourdesk/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	archiver := di.InitializeWorker()

	defer func() {
		if err := archiver.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close kafka client")
		}
	}()

	if err := archiver.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Document archiver exited")
	}
}
