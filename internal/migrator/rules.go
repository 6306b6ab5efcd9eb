package migrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/dvloznov/ledgersync/internal/domain"
	"github.com/dvloznov/ledgersync/internal/logger"
	"github.com/dvloznov/ledgersync/internal/normalize"
	"github.com/dvloznov/ledgersync/internal/sheets"
)

// MigrateMerchantRules upserts every named row of the rules worksheet.
// Running it twice on the same sheet leaves the same rows behind.
func (m *Migrator) MigrateMerchantRules(ctx context.Context) (*Result, error) {
	res := &Result{Sheet: SheetMerchantRules}
	log := logger.WithSheet(logger.FromContext(ctx), res.Sheet)

	m.console.Heading("Migrating Merchant Rules...")

	records, err := m.readSheet(ctx, res.Sheet)
	if err != nil {
		res.Err = readError("MigrateMerchantRules", res.Sheet, err)
		return res, res.Err
	}
	res.Total = len(records)

	for _, rec := range records {
		rule, ok := m.merchantRuleFromRecord(rec)
		if !ok {
			res.Skipped++
			continue
		}

		if err := m.repo.UpsertMerchantRule(ctx, rule); err != nil {
			m.recordError(ctx, res, 1, fmt.Sprintf("Error on row %d: %v", rec.Row, err))
			continue
		}
		res.Migrated++
	}

	log.Info().
		Int("total", res.Total).
		Int("migrated", res.Migrated).
		Int("skipped", res.Skipped).
		Int("errors", res.Errors).
		Msg("Merchant rules migrated")

	m.report(res, "merchant rules")
	return res, nil
}

func (m *Migrator) merchantRuleFromRecord(rec sheets.Record) (*domain.MerchantRule, bool) {
	merchant := strings.TrimSpace(rec.Get("Merchant"))
	if merchant == "" {
		return nil, false
	}

	row := rec.Row
	now := m.now()
	return &domain.MerchantRule{
		Merchant:          merchant,
		EntityDefault:     orDefault(rec.Get("Current Entity"), domain.EntityNeedsReview),
		OriginQBAccount:   domain.StringOrNil(rec.Get("Origin QBO Account")),
		OpenHaulQBAccount: domain.StringOrNil(rec.Get("OpenHaul QBO Account")),
		Notes:             domain.StringOrNil(rec.Get("Notes")),
		TxnCount:          normalize.ParseTxnCount(rec.Get("Txn Count")),
		SheetsRowID:       &row,
		SheetsSyncedAt:    &now,
	}, true
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
