package migrator

import (
	"context"

	"github.com/dvloznov/ledgersync/internal/domain"
	"github.com/dvloznov/ledgersync/internal/sheets"
	"github.com/dvloznov/ledgersync/internal/store"
)

// Repository is the write surface the migrator needs from the database.
type Repository interface {
	store.MerchantRuleRepository
	store.MerchantAliasRepository

	InsertTransactions(ctx context.Context, txns []*domain.Transaction) error
}

// Snapshotter archives a worksheet's raw records before they are migrated.
type Snapshotter interface {
	Snapshot(ctx context.Context, worksheet string, records []sheets.Record) error
}
