package helper

//nolint:revive
import (
	"folio/config"
	"folio/infras/postgres"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	MigrationSource = "file://migrations/postgres"

	defaultMigrationTable = "schema_migrations"
)

// Action is a single migrate operation run against the write node.
type Action func(mig *migrate.Migrate) error

var (
	ActionUp     Action = func(mig *migrate.Migrate) error { return mig.Up() }
	ActionDown   Action = func(mig *migrate.Migrate) error { return mig.Steps(-1) }
	ActionStepUp Action = func(mig *migrate.Migrate) error { return mig.Steps(1) }
	ActionDrop   Action = func(mig *migrate.Migrate) error { return mig.Down() }
)

// ActionForce marks version as applied and clears the dirty flag left by a failed migration.
func ActionForce(version int) Action {
	return func(mig *migrate.Migrate) error { return mig.Force(version) }
}

// MigrationURL is the write node DSN plus the migrations table option.
func MigrationURL(config *config.Config) string {
	table := config.DB.Postgres.MigrationTable
	if table == "" {
		table = defaultMigrationTable
	}

	return postgres.WriteNode(config).DSN(url.Values{"x-migrations-table": {table}})
}

func Run(config *config.Config, name string, action Action) error {
	mig, err := migrate.New(MigrationSource, MigrationURL(config))
	if err != nil {
		return errors.Wrap(err, "create migrate instance")
	}

	defer mig.Close()

	if err := action(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrapf(err, "migrate %s", name)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return errors.Wrap(err, "read migration version")
	}

	log.Info().Str("action", name).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}

func Up(config *config.Config) error {
	return Run(config, "up", ActionUp)
}

// Version logs the applied version without changing anything.
func Version(config *config.Config) error {
	return Run(config, "version", func(*migrate.Migrate) error { return nil })
}
