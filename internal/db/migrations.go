package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ApplyMigrations brings the schema up to date. Safe to call on every
// startup, a no-op when nothing changed.
func ApplyMigrations(connString string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not read embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, toPgxURL(connString))
	if err != nil {
		return fmt.Errorf("could not prepare migrations: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	return nil
}

// golang-migrate selects its database driver by URL scheme; the pgx driver
// registers as "pgx".
func toPgxURL(connString string) string {
	if strings.HasPrefix(connString, "postgresql://") {
		return "pgx://" + strings.TrimPrefix(connString, "postgresql://")
	}
	if strings.HasPrefix(connString, "postgres://") {
		return "pgx://" + strings.TrimPrefix(connString, "postgres://")
	}
	return connString
}
