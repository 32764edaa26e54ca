package timezone

import (
	"folio/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	once        sync.Once
	mu          sync.RWMutex
	appLocation = time.UTC
)

// load applies APP_TIMEZONE on first use. It reads the environment without validating the rest of
// the configuration, so packages that only need the clock do not depend on a complete setup.
func load() {
	once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			log.Error().Err(err).Msg("failed to read timezone configuration, using UTC")

			return
		}

		name := cfg.App.Timezone
		if name == "" {
			log.Debug().Msg("no timezone configured, using UTC")

			return
		}

		if err = setLocation(name); err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("failed to load timezone, using UTC")
		}
	})
}

func setLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}

	mu.Lock()
	appLocation = loc
	mu.Unlock()

	return nil
}

// SetLocation switches the application zone. It also stops the configured zone from being
// loaded later.
func SetLocation(name string) error {
	once.Do(func() {})

	return setLocation(name)
}

func Location() *time.Location {
	load()

	mu.RLock()
	defer mu.RUnlock()

	return appLocation
}

func Now() time.Time {
	return time.Now().In(Location())
}

// Format renders t in the application zone.
func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
