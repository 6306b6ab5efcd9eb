package migrator

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/ledgersync/internal/domain"
	"github.com/dvloznov/ledgersync/internal/logger"
	"github.com/dvloznov/ledgersync/internal/normalize"
	"github.com/dvloznov/ledgersync/internal/sheets"
)

// MigrateTransactions inserts every dated row in batches. A failed batch
// counts all of its rows as errors; later batches still run.
func (m *Migrator) MigrateTransactions(ctx context.Context) (*Result, error) {
	res := &Result{Sheet: SheetTransactions, Net: decimal.Zero}
	log := logger.WithSheet(logger.FromContext(ctx), res.Sheet)

	m.console.Heading("Migrating Transactions...")

	records, err := m.readSheet(ctx, res.Sheet)
	if err != nil {
		res.Err = readError("MigrateTransactions", res.Sheet, err)
		return res, res.Err
	}
	res.Total = len(records)

	batch := make([]*domain.Transaction, 0, m.batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		first, last := *batch[0].SheetsRowID, *batch[len(batch)-1].SheetsRowID

		if err := m.repo.InsertTransactions(ctx, batch); err != nil {
			log.Warn().
				Err(err).
				Int("first_row", first).
				Int("last_row", last).
				Int("batch_size", len(batch)).
				Msg("Failed to insert transaction batch")
			m.recordBatchError(res, len(batch), fmt.Sprintf("Batch error (rows %d-%d): %v", first, last, err))
		} else {
			res.Migrated += len(batch)
			for _, t := range batch {
				res.Net = res.Net.Add(t.Amount)
			}
			log.Debug().Int("first_row", first).Int("last_row", last).Msg("Inserted transaction batch")
		}
		batch = make([]*domain.Transaction, 0, m.batchSize)
	}

	for _, rec := range records {
		txn, ok := m.transactionFromRecord(rec)
		if !ok {
			res.Skipped++
			continue
		}

		batch = append(batch, txn)
		if len(batch) >= m.batchSize {
			flush()
		}
	}
	flush()

	log.Info().
		Int("total", res.Total).
		Int("migrated", res.Migrated).
		Int("skipped", res.Skipped).
		Int("errors", res.Errors).
		Str("net", res.Net.StringFixed(2)).
		Msg("Transactions migrated")

	m.report(res, "transactions")
	if res.Migrated > 0 {
		m.console.Info("Net amount: %s", normalize.FormatCurrency(res.Net))
	}
	return res, nil
}

func (m *Migrator) transactionFromRecord(rec sheets.Record) (*domain.Transaction, bool) {
	date, ok := normalize.ParseDate(rec.Get("Date"))
	if !ok {
		return nil, false
	}

	raw := rec.Get("Raw Merchant")
	merchant := rec.Get("Std Merchant")
	if merchant == "" {
		merchant = raw
	}

	row := rec.Row
	now := m.now()
	return &domain.Transaction{
		ID:             m.newID(),
		Date:           date,
		RawMerchant:    domain.StringOrNil(raw),
		Merchant:       domain.StringOrNil(merchant),
		Amount:         normalize.ParseAmount(rec.Get("Amount")),
		Entity:         orDefault(rec.Get("Entity"), domain.EntityNeedsReview),
		QBAccount:      domain.StringOrNil(rec.Get("QB Account")),
		Status:         orDefault(rec.Get("Status"), domain.StatusNeedsAttention),
		SourceAccount:  domain.StringOrNil(rec.Get("Account Used")),
		CardNumber:     domain.StringOrNil(rec.Get("Card #")),
		Notes:          domain.StringOrNil(rec.Get("Notes")),
		SheetsRowID:    &row,
		SheetsSyncedAt: &now,
	}, true
}
