package store

import (
	"context"
	"time"

	"github.com/dvloznov/ledgersync/internal/domain"
)

// MerchantRuleRepository persists merchant classification rules.
type MerchantRuleRepository interface {
	// UpsertMerchantRule inserts the rule or overwrites the existing row with the same merchant.
	UpsertMerchantRule(ctx context.Context, rule *domain.MerchantRule) error
}

// MerchantAliasRepository persists raw → standard merchant aliases.
type MerchantAliasRepository interface {
	// InsertMerchantAlias inserts one alias. A conflicting alias yields an error for which IsDuplicate is true.
	InsertMerchantAlias(ctx context.Context, alias *domain.MerchantAlias) error
}

// TransactionRepository persists ledger transactions and tracks their sheet sync state.
type TransactionRepository interface {
	// InsertTransactions writes all rows in a single statement; either every row lands or none does.
	InsertTransactions(ctx context.Context, txns []*domain.Transaction) error

	// ListDirtyTransactions returns up to limit transactions that carry a sheet row but were never synced.
	ListDirtyTransactions(ctx context.Context, limit int) ([]*domain.DirtyTransaction, error)

	// MarkTransactionsSynced stamps sheets_synced_at on still-dirty rows and reports how many changed.
	MarkTransactionsSynced(ctx context.Context, ids []string, at time.Time) (int64, error)

	// ListTransactionEntities returns the entity of every transaction.
	ListTransactionEntities(ctx context.Context) ([]string, error)
}

// StatsRepository answers read-only aggregate questions.
type StatsRepository interface {
	// CountRows returns the exact row count of one of the ledger tables.
	CountRows(ctx context.Context, table string) (int64, error)
}
