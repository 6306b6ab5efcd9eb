package store

import (
	"context"
	"fmt"
)

// CountRows returns count(*) for one of the ledger tables.
func (r *PostgresRepository) CountRows(ctx context.Context, table string) (int64, error) {
	return countRows(ctx, r.db, table)
}

func countRows(ctx context.Context, db dbtx, table string) (int64, error) {
	if err := checkTable(table); err != nil {
		return 0, fmt.Errorf("CountRows: %w", err)
	}

	var n int64
	if err := db.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountRows: counting %s: %w", table, err)
	}
	return n, nil
}
