// Package postgres opens the read and write sqlx pools.
package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"net/url"
	"time"

	"tourdesk/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection splits reads from writes. Repositories send list and get queries to Read.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  connect(cfg, "read", cfg.DB.Postgres.Read),
		Write: connect(cfg, "write", cfg.DB.Postgres.Write),
	}
}

// DSN builds a lib/pq URL for db. Extra query values are appended after the connection
// settings.
func DSN(db config.Database, prefix string, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", db.SSLMode)

	if db.Timezone != "" {
		query.Set("timezone", db.Timezone)
	}

	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(db.Username, db.Password),
		Host:     net.JoinHostPort(db.Host, db.Port),
		Path:     "/" + prefix + db.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(cfg *config.Config, name string, db config.Database) *sqlx.DB {
	settings := cfg.DB.Postgres
	attempts := max(settings.MaxRetry, 1)
	dbName := settings.Prefix + db.Name

	logger := log.With().Str("name", name).Str("host", db.Host).Str("dbName", dbName).Logger()

	for attempt := 1; attempt <= attempts; attempt++ {
		sqlDB, err := sqlx.Connect(driverName, DSN(db, settings.Prefix, nil))
		if err == nil {
			sqlDB.SetMaxOpenConns(settings.MaxOpenConns)
			sqlDB.SetMaxIdleConns(settings.MaxIdleConns)
			sqlDB.SetConnMaxLifetime(time.Duration(settings.ConnMaxLifetime) * time.Second)

			logger.Info().Msg("Connected to database")

			return sqlDB
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database")

		if attempt < attempts {
			time.Sleep(time.Duration(settings.RetryWaitTime) * time.Second)
		}
	}

	logger.Fatal().Int("attempts", attempts).Msg("Could not connect to database")

	return nil
}

// Close releases both pools.
func (c *Connection) Close() error {
	if err := c.Read.Close(); err != nil {
		return fmt.Errorf("close read pool: %w", err)
	}

	if err := c.Write.Close(); err != nil {
		return fmt.Errorf("close write pool: %w", err)
	}

	return nil
}
