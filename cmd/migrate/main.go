package main

import (
	"os"

	"tourdesk/config"
	"tourdesk/helper"
	"tourdesk/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up, down, drop or step-up) is required")
	}

	actions := map[string]func(*config.Config) error{
		"up":      helper.Up,
		"down":    helper.Down,
		"drop":    helper.Drop,
		"step-up": helper.StepUp,
	}

	action, ok := actions[os.Args[1]]
	if !ok {
		log.Fatal().Str("direction", os.Args[1]).Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}

	if err := action(cfg); err != nil {
		log.Fatal().Err(err).Str("direction", os.Args[1]).Msg("Migration failed")
	}

	log.Info().Str("direction", os.Args[1]).Msg("Migration completed")
}
