package main

import (
	"folio/config"
	"folio/helper"
	"folio/shared/logger"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	argLength      = 2
	forceArgLength = 3

	usage = "usage: migrate up|down|step-up|drop|version|force <version>"
)

func main() {
	if len(os.Args) < argLength {
		log.Fatal().Msg(usage)
	}

	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	var (
		name = os.Args[1]
		err  error
	)

	switch name {
	case "up":
		err = helper.Up(cfg)
	case "down":
		err = helper.Run(cfg, name, helper.ActionDown)
	case "step-up":
		err = helper.Run(cfg, name, helper.ActionStepUp)
	case "drop":
		err = helper.Run(cfg, name, helper.ActionDrop)
	case "version":
		err = helper.Version(cfg)
	case "force":
		if len(os.Args) < forceArgLength {
			log.Fatal().Msg(usage)
		}

		version, convErr := strconv.Atoi(os.Args[2])
		if convErr != nil {
			log.Fatal().Err(convErr).Msg("force needs a numeric version")
		}

		err = helper.Run(cfg, name, helper.ActionForce(version))
	default:
		log.Fatal().Str("action", name).Msg(usage)
	}

	if err != nil {
		log.Fatal().Err(err).Str("action", name).Msg("migration failed")
	}
}
