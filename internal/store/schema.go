package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SchemaStatus describes the schema after ApplySchema.
type SchemaStatus struct {
	Version uint
	Dirty   bool
	Changed bool
}

// ApplySchema runs every pending up migration against databaseURL.
func ApplySchema(databaseURL, password string) (*SchemaStatus, error) {
	dsn, err := WithPassword(databaseURL, password)
	if err != nil {
		return nil, fmt.Errorf("ApplySchema: %w", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("ApplySchema: opening database: %w", err)
	}
	defer db.Close()

	m, err := newMigrate(db)
	if err != nil {
		return nil, fmt.Errorf("ApplySchema: %w", err)
	}

	status := &SchemaStatus{Changed: true}
	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return nil, fmt.Errorf("ApplySchema: running migrations: %w", err)
		}
		status.Changed = false
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, fmt.Errorf("ApplySchema: reading version: %w", err)
	}
	status.Version = version
	status.Dirty = dirty

	return status, nil
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("loading embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("creating postgres driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("creating migrator: %w", err)
	}
	return m, nil
}

// WithPassword returns databaseURL with its password replaced. Both URL and
// key=value connection strings are accepted; an empty password leaves the
// input untouched.
func WithPassword(databaseURL, password string) (string, error) {
	if password == "" {
		return databaseURL, nil
	}

	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		u, err := url.Parse(databaseURL)
		if err != nil {
			return "", fmt.Errorf("parsing database URL: %w", err)
		}
		user := ""
		if u.User != nil {
			user = u.User.Username()
		}
		u.User = url.UserPassword(user, password)
		return u.String(), nil
	}

	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(password)
	return strings.TrimSpace(databaseURL) + " password='" + escaped + "'", nil
}
