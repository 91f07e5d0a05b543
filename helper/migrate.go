package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"hotelpms/config"
	"hotelpms/infras/postgres"
	"hotelpms/migrations"
	"net/url"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
	ActionForce   = "force"
)

var ErrUnknownAction = errors.New("unknown migration action")

type migration func(mig *migrate.Migrate, args []string) error

var actions = map[string]migration{
	ActionUp: func(mig *migrate.Migrate, _ []string) error {
		return mig.Up()
	},
	ActionDown: func(mig *migrate.Migrate, _ []string) error {
		return mig.Steps(-1)
	},
	ActionStepUp: func(mig *migrate.Migrate, _ []string) error {
		return mig.Steps(1)
	},
	ActionDrop: func(mig *migrate.Migrate, _ []string) error {
		return mig.Down()
	},
	ActionVersion: func(mig *migrate.Migrate, _ []string) error {
		version, dirty, err := mig.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info().Msg("No migration applied yet")

			return nil
		}

		if err != nil {
			return err
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current schema version")

		return nil
	},
	ActionForce: func(mig *migrate.Migrate, args []string) error {
		if len(args) == 0 {
			return errors.New("force needs a version")
		}

		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}

		return mig.Force(version)
	},
}

func newMigrate(cfg *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("error opening embedded migrations: %w", err)
	}

	var extra url.Values
	if cfg.DB.Postgres.MigrationTable != "" {
		extra = url.Values{"x-migrations-table": {cfg.DB.Postgres.MigrationTable}}
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, postgres.DSN(cfg, cfg.DB.Postgres.Write, extra))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies one migration action against the write database: up, down, step-up, drop,
// version or force <version>.
func Runner(cfg *config.Config, action string, args ...string) error {
	run, ok := actions[action]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownAction, action)
	}

	mig, err := newMigrate(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := run(mig, args); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migration finished")

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}
