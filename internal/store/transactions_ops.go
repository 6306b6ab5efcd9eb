package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dvloznov/ledgersync/internal/domain"
)

var transactionColumns = []string{
	"id",
	"date",
	"raw_merchant",
	"merchant",
	"amount",
	"entity",
	"qb_account",
	"status",
	"source_account",
	"card_number",
	"notes",
	"sheets_row_id",
	"sheets_synced_at",
}

const listDirtyTransactionsSQL = `
SELECT id::text, sheets_row_id, status, qb_account
FROM transactions
WHERE sheets_synced_at IS NULL
  AND sheets_row_id IS NOT NULL
ORDER BY sheets_row_id
LIMIT $1`

// The IS NULL guard keeps an overlapping run from overwriting a newer stamp.
const markTransactionsSyncedSQL = `
UPDATE transactions
SET sheets_synced_at = $1
WHERE id = ANY($2::text[]::uuid[])
  AND sheets_synced_at IS NULL`

const listTransactionEntitiesSQL = `SELECT entity FROM transactions`

// InsertTransactions writes txns with one multi-row INSERT.
func (r *PostgresRepository) InsertTransactions(ctx context.Context, txns []*domain.Transaction) error {
	return insertTransactions(ctx, r.db, txns)
}

// ListDirtyTransactions returns at most limit dirty rows ordered by sheet row.
func (r *PostgresRepository) ListDirtyTransactions(ctx context.Context, limit int) ([]*domain.DirtyTransaction, error) {
	return listDirtyTransactions(ctx, r.db, limit)
}

// MarkTransactionsSynced stamps the given rows as synced at at.
func (r *PostgresRepository) MarkTransactionsSynced(ctx context.Context, ids []string, at time.Time) (int64, error) {
	return markTransactionsSynced(ctx, r.db, ids, at)
}

// ListTransactionEntities returns the entity column of every transaction.
func (r *PostgresRepository) ListTransactionEntities(ctx context.Context) ([]string, error) {
	return listTransactionEntities(ctx, r.db)
}

func insertTransactions(ctx context.Context, db dbtx, txns []*domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	query, args := buildInsertTransactions(txns)
	if _, err := db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("InsertTransactions: inserting %d rows: %w", len(txns), err)
	}
	return nil
}

// buildInsertTransactions renders a parameterized multi-row INSERT. Amounts go
// over the wire as decimal text and dates as midnight UTC.
func buildInsertTransactions(txns []*domain.Transaction) (string, []any) {
	width := len(transactionColumns)
	args := make([]any, 0, len(txns)*width)

	var b strings.Builder
	b.WriteString("INSERT INTO transactions (")
	b.WriteString(strings.Join(transactionColumns, ", "))
	b.WriteString(") VALUES ")

	for i, t := range txns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j := 0; j < width; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(i*width + j + 1))
		}
		b.WriteByte(')')

		args = append(args,
			t.ID,
			t.Date.In(time.UTC),
			t.RawMerchant,
			t.Merchant,
			t.Amount.String(),
			t.Entity,
			t.QBAccount,
			t.Status,
			t.SourceAccount,
			t.CardNumber,
			t.Notes,
			t.SheetsRowID,
			t.SheetsSyncedAt,
		)
	}

	return b.String(), args
}

func listDirtyTransactions(ctx context.Context, db dbtx, limit int) ([]*domain.DirtyTransaction, error) {
	rows, err := db.Query(ctx, listDirtyTransactionsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("ListDirtyTransactions: querying: %w", err)
	}
	defer rows.Close()

	var dirty []*domain.DirtyTransaction
	for rows.Next() {
		var d domain.DirtyTransaction
		if err := rows.Scan(&d.ID, &d.SheetsRowID, &d.Status, &d.QBAccount); err != nil {
			return nil, fmt.Errorf("ListDirtyTransactions: scanning row: %w", err)
		}
		dirty = append(dirty, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListDirtyTransactions: iterating rows: %w", err)
	}

	return dirty, nil
}

func markTransactionsSynced(ctx context.Context, db dbtx, ids []string, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := db.Exec(ctx, markTransactionsSyncedSQL, at, ids)
	if err != nil {
		return 0, fmt.Errorf("MarkTransactionsSynced: updating %d rows: %w", len(ids), err)
	}
	return tag.RowsAffected(), nil
}

func listTransactionEntities(ctx context.Context, db dbtx) ([]string, error) {
	rows, err := db.Query(ctx, listTransactionEntitiesSQL)
	if err != nil {
		return nil, fmt.Errorf("ListTransactionEntities: querying: %w", err)
	}
	defer rows.Close()

	var entities []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, fmt.Errorf("ListTransactionEntities: scanning row: %w", err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTransactionEntities: iterating rows: %w", err)
	}

	return entities, nil
}
