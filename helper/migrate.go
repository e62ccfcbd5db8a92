// Package helper runs the postgres schema migrations for the tour desk database.
package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"tourdesk/config"
	"tourdesk/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

type step struct {
	run     func(*migrate.Migrate) error
	message string
}

var steps = map[string]step{
	"up": {
		run:     func(m *migrate.Migrate) error { return m.Up() },
		message: "Applied all pending migrations",
	},
	"step-up": {
		run:     func(m *migrate.Migrate) error { return m.Steps(1) },
		message: "Applied the next migration",
	},
	"down": {
		run:     func(m *migrate.Migrate) error { return m.Steps(-1) },
		message: "Rolled back the latest migration",
	},
	"drop": {
		run:     func(m *migrate.Migrate) error { return m.Down() },
		message: "Rolled back every migration",
	},
}

func databaseName(cfg *config.Config) string {
	return cfg.DB.Postgres.Prefix + cfg.DB.Postgres.Write.Name
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	dsn := postgres.DSN(cfg.DB.Postgres.Write, cfg.DB.Postgres.Prefix, url.Values{
		"x-migrations-table": {cfg.DB.Postgres.MigrationTable},
	})

	mig, err := migrate.New(migrationSource, dsn)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Run applies one named migration action against the write database.
func Run(cfg *config.Config, action string) error {
	s, ok := steps[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer func() {
		if srcErr, dbErr := mig.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("Failed to close migrator")
		}
	}()

	if err = s.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", action, err)
	}

	version, dirty, _ := mig.Version()

	log.Info().Str("database", databaseName(cfg)).Uint("version", version).Bool("dirty", dirty).Msg(s.message)

	return nil
}

func Up(cfg *config.Config) error {
	return Run(cfg, "up")
}

func StepUp(cfg *config.Config) error {
	return Run(cfg, "step-up")
}

func Down(cfg *config.Config) error {
	return Run(cfg, "down")
}

func Drop(cfg *config.Config) error {
	return Run(cfg, "drop")
}
