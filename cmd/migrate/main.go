package main

import (
	"hotelpms/config"
	"hotelpms/helper"
	"hotelpms/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("migration action is required: up, down, step-up, drop, version or force <version>")
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	action := os.Args[1]
	if err := helper.Runner(cfg, action, os.Args[argLength:]...); err != nil {
		log.Fatal().Err(err).Str("action", action).Msg("migration failed")
	}
}
