package migrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/dvloznov/ledgersync/internal/domain"
	"github.com/dvloznov/ledgersync/internal/logger"
	"github.com/dvloznov/ledgersync/internal/sheets"
	"github.com/dvloznov/ledgersync/internal/store"
)

// MigrateMerchantAliases inserts every complete raw/std pair. Pairs the
// database already holds are counted as duplicates, not errors, so a second
// run adds nothing.
func (m *Migrator) MigrateMerchantAliases(ctx context.Context) (*Result, error) {
	res := &Result{Sheet: SheetMerchantAliases}
	log := logger.WithSheet(logger.FromContext(ctx), res.Sheet)

	m.console.Heading("Migrating Merchant Aliases...")

	records, err := m.readSheet(ctx, res.Sheet)
	if err != nil {
		res.Err = readError("MigrateMerchantAliases", res.Sheet, err)
		return res, res.Err
	}
	res.Total = len(records)

	for _, rec := range records {
		alias, ok := merchantAliasFromRecord(rec)
		if !ok {
			res.Skipped++
			continue
		}

		if err := m.repo.InsertMerchantAlias(ctx, alias); err != nil {
			if store.IsDuplicate(err) {
				res.Duplicates++
				continue
			}
			m.recordError(ctx, res, 1, fmt.Sprintf("Error on row %d: %v", rec.Row, err))
			continue
		}
		res.Migrated++
	}

	log.Info().
		Int("total", res.Total).
		Int("migrated", res.Migrated).
		Int("duplicates", res.Duplicates).
		Int("skipped", res.Skipped).
		Int("errors", res.Errors).
		Msg("Merchant aliases migrated")

	m.report(res, "merchant aliases")
	return res, nil
}

func merchantAliasFromRecord(rec sheets.Record) (*domain.MerchantAlias, bool) {
	raw := strings.TrimSpace(rec.Get("Raw Merchant"))
	std := strings.TrimSpace(rec.Get("Std Merchant"))
	if raw == "" || std == "" {
		return nil, false
	}

	return &domain.MerchantAlias{
		RawMerchant: raw,
		StdMerchant: std,
		Source:      domain.StringOrNil(rec.Get("Source")),
		Notes:       domain.StringOrNil(rec.Get("Notes")),
	}, true
}
