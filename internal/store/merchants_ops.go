package store

import (
	"context"
	"fmt"

	"github.com/dvloznov/ledgersync/internal/domain"
)

const upsertMerchantRuleSQL = `
INSERT INTO merchant_rules (
	merchant, entity_default, origin_qb_account, openhaul_qb_account,
	notes, txn_count, sheets_row_id, sheets_synced_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (merchant) DO UPDATE SET
	entity_default      = EXCLUDED.entity_default,
	origin_qb_account   = EXCLUDED.origin_qb_account,
	openhaul_qb_account = EXCLUDED.openhaul_qb_account,
	notes               = EXCLUDED.notes,
	txn_count           = EXCLUDED.txn_count,
	sheets_row_id       = EXCLUDED.sheets_row_id,
	sheets_synced_at    = EXCLUDED.sheets_synced_at`

const insertMerchantAliasSQL = `
INSERT INTO merchant_aliases (raw_merchant, std_merchant, source, notes)
VALUES ($1, $2, $3, $4)`

// UpsertMerchantRule writes rule keyed by merchant; the last write wins.
func (r *PostgresRepository) UpsertMerchantRule(ctx context.Context, rule *domain.MerchantRule) error {
	return upsertMerchantRule(ctx, r.db, rule)
}

// InsertMerchantAlias inserts alias without conflict handling so callers can
// tell "already present" apart from real failures with IsDuplicate.
func (r *PostgresRepository) InsertMerchantAlias(ctx context.Context, alias *domain.MerchantAlias) error {
	return insertMerchantAlias(ctx, r.db, alias)
}

func upsertMerchantRule(ctx context.Context, db dbtx, rule *domain.MerchantRule) error {
	_, err := db.Exec(ctx, upsertMerchantRuleSQL,
		rule.Merchant,
		rule.EntityDefault,
		rule.OriginQBAccount,
		rule.OpenHaulQBAccount,
		rule.Notes,
		rule.TxnCount,
		rule.SheetsRowID,
		rule.SheetsSyncedAt,
	)
	if err != nil {
		return fmt.Errorf("UpsertMerchantRule: upserting %q: %w", rule.Merchant, err)
	}
	return nil
}

func insertMerchantAlias(ctx context.Context, db dbtx, alias *domain.MerchantAlias) error {
	_, err := db.Exec(ctx, insertMerchantAliasSQL,
		alias.RawMerchant,
		alias.StdMerchant,
		alias.Source,
		alias.Notes,
	)
	if err != nil {
		return fmt.Errorf("InsertMerchantAlias: inserting %q → %q: %w", alias.RawMerchant, alias.StdMerchant, err)
	}
	return nil
}
