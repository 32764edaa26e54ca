package helper_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/config"
	"folio/helper"
)

func TestMigrationURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "dev_"
	cfg.DB.Postgres.Write.Host = "localhost"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "folio"
	cfg.DB.Postgres.Write.Password = "secret"
	cfg.DB.Postgres.Write.Name = "folio"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	parsed, err := url.Parse(helper.MigrationURL(cfg))
	require.NoError(t, err)
	assert.Equal(t, "/dev_folio", parsed.Path)
	assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))

	cfg.DB.Postgres.MigrationTable = "folio_migrations"

	parsed, err = url.Parse(helper.MigrationURL(cfg))
	require.NoError(t, err)
	assert.Equal(t, "folio_migrations", parsed.Query().Get("x-migrations-table"))
}
