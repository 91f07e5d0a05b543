package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"hotelpms/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	defaultMaxOpen = 10
	defaultMaxIdle = 10
	pingTimeout    = 2 * time.Second
)

// Connection holds the read replica and the primary. Reports and listings go to Read,
// everything inside a transaction goes to Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  Connect(cfg, "read", cfg.DB.Postgres.Read),
		Write: Connect(cfg, "write", cfg.DB.Postgres.Write),
	}
}

// Ping checks both pools. Used by the health endpoint.
func (c *Connection) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if c == nil || c.Write == nil || c.Read == nil {
		return errors.New("database not connected")
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("write pool: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("read pool: %w", err)
	}

	return nil
}

func (c *Connection) Close() error {
	var errs []error

	if c.Write != nil {
		errs = append(errs, c.Write.Close())
	}

	// When read and write point at the same server they are still separate pools.
	if c.Read != nil {
		errs = append(errs, c.Read.Close())
	}

	return errors.Join(errs...)
}

// DSN builds a lib/pq connection url for the endpoint. Extra query values are appended as is.
func DSN(cfg *config.Config, endpoint config.PostgresEndpoint, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", endpoint.SSLMode)

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + cfg.DB.Postgres.Prefix + endpoint.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Connect opens a pool, retrying MaxRetry times. It returns nil when every attempt fails.
func Connect(cfg *config.Config, name string, endpoint config.PostgresEndpoint) *sqlx.DB {
	dsn := DSN(cfg, endpoint, nil)
	dbName := cfg.DB.Postgres.Prefix + endpoint.Name

	logger := log.With().
		Str("name", name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", dbName).
		Logger()

	for attempt := 1; attempt <= max(cfg.DB.Postgres.MaxRetry, 1); attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			configurePool(cfg, db)
			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second)
	}

	logger.Error().Msg("Giving up connecting to database")

	return nil
}

func configurePool(cfg *config.Config, db *sqlx.DB) {
	pool := cfg.DB.Postgres.Pool

	maxOpen := pool.MaxOpen
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpen
	}

	maxIdle := pool.MaxIdle
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdle
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(min(maxIdle, maxOpen))

	if pool.MaxLifetimeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(pool.MaxLifetimeMinutes) * time.Minute)
	}

	if pool.MaxIdleTimeMinutes > 0 {
		db.SetConnMaxIdleTime(time.Duration(pool.MaxIdleTimeMinutes) * time.Minute)
	}
}
