package logger

import (
	"folio/config"
	"folio/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies the configured level. Outside development the console writer is swapped
// for JSON lines tagged with the app name, which is what the log shipper expects.
func SetLogLevel(config *config.Config) {
	setup(config, os.Stdout)
}

func setup(config *config.Config, out io.Writer) {
	if config.Server.Env != constant.Empty && config.Server.Env != constant.ServerEnvDevelopment {
		logger := zerolog.New(out).With().Timestamp()
		if config.App.Name != constant.Empty {
			logger = logger.Str("app", config.App.Name)
		}

		log.Logger = logger.Str("env", config.Server.Env).Logger()
	}

	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == constant.Empty {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
