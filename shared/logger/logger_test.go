package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/config"
	"folio/shared/logger"
)

func restore(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("upload pipeline broke"))

	assert.Contains(t, buf.String(), "upload pipeline broke")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestSetup(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		logLevel  string
		wantLevel zerolog.Level
		wantJSON  bool
	}{
		{name: "development keeps the console writer", env: "development", logLevel: "debug", wantLevel: zerolog.DebugLevel},
		{name: "production writes json", env: "production", logLevel: "warn", wantLevel: zerolog.WarnLevel, wantJSON: true},
		{name: "unknown level falls back to trace", env: "staging", logLevel: "loud", wantLevel: zerolog.TraceLevel, wantJSON: true},
		{name: "empty level falls back to trace", logLevel: "", wantLevel: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(t)

			var console bytes.Buffer
			log.Logger = zerolog.New(&console)

			cfg := &config.Config{}
			cfg.Server.Env = tt.env
			cfg.Server.LogLevel = tt.logLevel
			cfg.App.Name = "folio"

			var out bytes.Buffer
			logger.Setup(cfg, &out)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			log.Error().Msg("disk full")

			if !tt.wantJSON {
				assert.Empty(t, out.String())

				return
			}

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			line := map[string]any{}
			require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &line))
			assert.Equal(t, "disk full", line["message"])
			assert.Equal(t, "folio", line["app"])
			assert.Equal(t, tt.env, line["env"])
		})
	}
}
