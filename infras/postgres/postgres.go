package postgres

//nolint:revive
import (
	"folio/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName = "postgres"

	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute

	applicationName = "folio"
)

// Connection splits reads, which serve the public pages, from writes so that a replica can
// take the public traffic.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Node is the address and credentials of one postgres server.
type Node struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	Timezone string
	SSLMode  string
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  connect("read", ReadNode(config), config),
		Write: connect("write", WriteNode(config), config),
	}
}

func ReadNode(config *config.Config) Node {
	read := config.DB.Postgres.Read

	return Node{
		Host:     read.Host,
		Port:     read.Port,
		Username: read.Username,
		Password: read.Password,
		Name:     config.DB.Postgres.Prefix + read.Name,
		Timezone: read.Timezone,
		SSLMode:  read.SSLMode,
	}
}

func WriteNode(config *config.Config) Node {
	write := config.DB.Postgres.Write

	return Node{
		Host:     write.Host,
		Port:     write.Port,
		Username: write.Username,
		Password: write.Password,
		Name:     config.DB.Postgres.Prefix + write.Name,
		Timezone: write.Timezone,
		SSLMode:  write.SSLMode,
	}
}

// DSN builds a postgres URL with the credentials escaped. extra is merged into the query string.
func (n Node) DSN(extra url.Values) string {
	query := url.Values{}

	if n.SSLMode != "" {
		query.Set("sslmode", n.SSLMode)
	}

	if n.Timezone != "" {
		query.Set("timezone", n.Timezone)
	}

	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(n.Username, n.Password),
		Host:     net.JoinHostPort(n.Host, n.Port),
		Path:     "/" + n.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(name string, node Node, config *config.Config) *sqlx.DB {
	dsn := node.DSN(url.Values{"application_name": {applicationName}})

	attempts := max(config.DB.Postgres.MaxRetry, 1)
	wait := time.Duration(config.DB.Postgres.RetryWaitTime) * time.Second

	var err error

	for attempt := range attempts {
		var db *sqlx.DB

		db, err = sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)
			db.SetConnMaxLifetime(postgresConnMaxLifetime)

			log.Info().
				Str("name", name).
				Str("host", node.Host).
				Str("port", node.Port).
				Str("dbName", node.Name).
				Msg("Connected to database")

			return db
		}

		log.Error().
			Err(err).
			Str("name", name).
			Str("host", node.Host).
			Str("dbName", node.Name).
			Int("attempt", attempt+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(wait)
	}

	log.Fatal().Err(err).Str("name", name).Int("attempts", attempts).Msg("Giving up connecting to database")

	return nil
}
