// Package migrator loads the spreadsheet ledger into the database: merchant
// rules, merchant aliases and transactions, one worksheet at a time.
package migrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/ledgersync/internal/console"
	"github.com/dvloznov/ledgersync/internal/logger"
	"github.com/dvloznov/ledgersync/internal/normalize"
	"github.com/dvloznov/ledgersync/internal/sheets"
)

// Worksheet names.
const (
	SheetMerchantRules   = "Merchant Rules"
	SheetMerchantAliases = "Merchant Alias"
	SheetTransactions    = "All Transactions"
)

const (
	// BatchSize is the number of transactions written per INSERT.
	BatchSize = 100
)

// Migrator copies worksheets into the repository.
type Migrator struct {
	repo     Repository
	sheets   sheets.Service
	console  *console.Console
	snapshot Snapshotter

	now       func() time.Time
	newID     func() string
	batchSize int
}

// New creates a Migrator. Console output goes to con.
func New(repo Repository, svc sheets.Service, con *console.Console) *Migrator {
	return &Migrator{
		repo:      repo,
		sheets:    svc,
		console:   con,
		now:       normalize.CurrentTimestamp,
		newID:     uuid.NewString,
		batchSize: BatchSize,
	}
}

// WithSnapshotter archives every worksheet through s before it is migrated.
func (m *Migrator) WithSnapshotter(s Snapshotter) *Migrator {
	m.snapshot = s
	return m
}

// Run migrates rules, aliases and transactions in that order. A sheet that
// cannot be read is reported and the next one still runs.
func (m *Migrator) Run(ctx context.Context) []*Result {
	steps := []func(context.Context) (*Result, error){
		m.MigrateMerchantRules,
		m.MigrateMerchantAliases,
		m.MigrateTransactions,
	}

	results := make([]*Result, 0, len(steps))
	for _, step := range steps {
		res, err := step(ctx)
		if err != nil {
			m.console.Error("%v", err)
		}
		results = append(results, res)
	}
	return results
}

// readSheet fetches a worksheet and hands it to the snapshotter, if any.
// Snapshot failures are logged and do not stop the migration.
func (m *Migrator) readSheet(ctx context.Context, worksheet string) ([]sheets.Record, error) {
	log := logger.WithSheet(logger.FromContext(ctx), worksheet)

	records, err := m.sheets.ReadRecords(ctx, worksheet)
	if err != nil {
		return nil, err
	}
	log.Info().Int("rows", len(records)).Msg("Read worksheet")

	if m.snapshot != nil {
		if err := m.snapshot.Snapshot(ctx, worksheet, records); err != nil {
			log.Warn().Err(err).Msg("Failed to snapshot worksheet, continuing")
			m.console.Warn("Snapshot of %s failed: %v", worksheet, err)
		}
	}

	return records, nil
}

// recordError counts n failed rows and prints msg while under the reporting cap.
func (m *Migrator) recordError(ctx context.Context, res *Result, n int, msg string) {
	if res.addError(msg, n) {
		m.console.Error("%s", msg)
		return
	}
	log := logger.FromContext(ctx)
	log.Debug().Str("sheet", res.Sheet).Msg(msg)
}

// recordBatchError counts a failed transaction batch and always prints it.
func (m *Migrator) recordBatchError(res *Result, n int, msg string) {
	res.addError(msg, n)
	m.console.Error("%s", msg)
}

// report prints the per-sheet tallies.
func (m *Migrator) report(res *Result, noun string) {
	m.console.Success("Migrated %d %s", res.Migrated, noun)
	if res.Duplicates > 0 {
		m.console.Dim("Already present: %d", res.Duplicates)
	}
	if res.Skipped > 0 {
		m.console.Dim("Skipped: %d", res.Skipped)
	}
	if res.Errors > 0 {
		m.console.Warn("Errors: %d", res.Errors)
	}
}

func readError(fn, worksheet string, err error) error {
	return fmt.Errorf("%s: reading %q: %w", fn, worksheet, err)
}
