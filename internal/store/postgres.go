package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbtx is the subset of pgxpool.Pool the queries need.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository implements every ledger repository on top of one pgx pool.
type PostgresRepository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to databaseURL. A non-empty password overrides
// whatever the URL carries, so the service-role key never has to be embedded in it.
func NewPostgresRepository(ctx context.Context, databaseURL, password string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("NewPostgresRepository: parsing database URL: %w", err)
	}
	if password != "" {
		cfg.ConnConfig.Password = password
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("NewPostgresRepository: creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("NewPostgresRepository: pinging database: %w", err)
	}

	return &PostgresRepository{db: pool, pool: pool}, nil
}

// Close releases the pool.
func (r *PostgresRepository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
