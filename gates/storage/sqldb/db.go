package sqldb

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/pressly/goose/v3"
	"playerd/internal/config"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open connects to the configured database and checks it answers.
func Open(ctx context.Context, cfg config.DB) (*sqlx.DB, error) {
	const op = "sqldb.Open"

	db, err := sqlx.ConnectContext(ctx, cfg.Driver, dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if cfg.Driver == DriverSQLite {
		// sqlite serializes writers anyway, and each :memory: connection is its own database
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

func dsn(cfg config.DB) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	if cfg.Driver == DriverSQLite {
		return cfg.Name
	}
	return fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=%s",
		cfg.User, cfg.Pass, cfg.Name, cfg.Host, cfg.Port, cfg.Ssl)
}

// Migrate applies the embedded schema migrations.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	const op = "sqldb.Migrate"

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
