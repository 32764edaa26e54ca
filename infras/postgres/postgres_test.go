package postgres_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/config"
	"folio/infras/postgres"
)

func TestNode_DSN(t *testing.T) {
	node := postgres.Node{
		Host:     "db.internal",
		Port:     "5432",
		Username: "folio",
		Password: "p@ss/w:rd",
		Name:     "folio",
		Timezone: "Europe/Lisbon",
		SSLMode:  "disable",
	}

	dsn := node.DSN(url.Values{"x-migrations-table": {"schema_migrations"}})

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)

	password, _ := parsed.User.Password()
	assert.Equal(t, "p@ss/w:rd", password)
	assert.Equal(t, "folio", parsed.User.Username())
	assert.Equal(t, "db.internal:5432", parsed.Host)
	assert.Equal(t, "/folio", parsed.Path)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
	assert.Equal(t, "Europe/Lisbon", parsed.Query().Get("timezone"))
	assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
}

func TestNodes_ApplyPrefix(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.Read.Name = "folio"
	cfg.DB.Postgres.Read.Host = "replica"
	cfg.DB.Postgres.Write.Name = "folio"
	cfg.DB.Postgres.Write.Host = "primary"

	assert.Equal(t, "test_folio", postgres.ReadNode(cfg).Name)
	assert.Equal(t, "replica", postgres.ReadNode(cfg).Host)
	assert.Equal(t, "test_folio", postgres.WriteNode(cfg).Name)
	assert.Equal(t, "primary", postgres.WriteNode(cfg).Host)
}
