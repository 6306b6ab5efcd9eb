// Package sheetsync pushes computed transaction fields from the database back
// into the "All Transactions" worksheet.
package sheetsync

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/ledgersync/internal/console"
	"github.com/dvloznov/ledgersync/internal/domain"
	"github.com/dvloznov/ledgersync/internal/logger"
	"github.com/dvloznov/ledgersync/internal/normalize"
	"github.com/dvloznov/ledgersync/internal/sheets"
)

const (
	// Worksheet is the sheet the computed fields are written to.
	Worksheet = "All Transactions"

	// BatchSize caps how many dirty rows one run picks up.
	BatchSize = 100

	// StatusColumn and QBAccountColumn are the sheet columns rewritten per row.
	StatusColumn    = "A"
	QBAccountColumn = "F"
)

// Result reports one sync cycle.
type Result struct {
	Selected int
	Synced   int64
}

// Syncer runs reconciliation cycles.
type Syncer struct {
	repo    Repository
	sheets  sheets.Service
	console *console.Console
	now     func() time.Time
}

// New creates a Syncer.
func New(repo Repository, svc sheets.Service, con *console.Console) *Syncer {
	return &Syncer{
		repo:    repo,
		sheets:  svc,
		console: con,
		now:     normalize.CurrentTimestamp,
	}
}

// Run selects up to BatchSize dirty transactions, writes their status and QB
// account cells in one request and, only if that succeeds, marks them synced.
// A failed write leaves every row dirty for the next run.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	log := logger.WithSheet(logger.FromContext(ctx), Worksheet)

	s.console.Info("Syncing database → sheet...")

	dirty, err := s.repo.ListDirtyTransactions(ctx, BatchSize)
	if err != nil {
		return nil, fmt.Errorf("Run: listing dirty transactions: %w", err)
	}

	res := &Result{Selected: len(dirty)}
	if len(dirty) == 0 {
		log.Info().Msg("No dirty rows to sync")
		s.console.Dim("No dirty rows to sync")
		return res, nil
	}

	s.console.Warn("Found %d rows to sync", len(dirty))

	updates, ids := BuildUpdates(dirty)
	for _, d := range dirty {
		s.console.Plain("  Row %d: status=%s, qb_account=%s", d.SheetsRowID, domain.Deref(d.Status), domain.Deref(d.QBAccount))
	}

	if err := s.sheets.BatchUpdate(ctx, Worksheet, updates); err != nil {
		log.Error().Err(err).Int("rows", len(dirty)).Msg("Batch cell write failed, rows stay dirty")
		return res, fmt.Errorf("Run: writing %d rows to sheet: %w", len(dirty), err)
	}

	synced, err := s.repo.MarkTransactionsSynced(ctx, ids, s.now())
	if err != nil {
		return res, fmt.Errorf("Run: marking rows synced: %w", err)
	}
	res.Synced = synced

	if synced != int64(len(ids)) {
		log.Warn().
			Int("selected", len(ids)).
			Int64("stamped", synced).
			Msg("Some rows were stamped by another run")
	}

	log.Info().Int("selected", res.Selected).Int64("synced", res.Synced).Msg("Sync complete")
	s.console.Success("Synced %d rows", len(ids))
	return res, nil
}

// BuildUpdates maps each dirty transaction to its status and QB account cells.
// Missing values are written as "" so the sheet cell is always overwritten.
func BuildUpdates(dirty []*domain.DirtyTransaction) ([]sheets.CellUpdate, []string) {
	updates := make([]sheets.CellUpdate, 0, 2*len(dirty))
	ids := make([]string, 0, len(dirty))

	for _, d := range dirty {
		updates = append(updates,
			sheets.CellUpdate{
				Range:  sheets.CellAddress(StatusColumn, d.SheetsRowID),
				Values: [][]interface{}{{domain.Deref(d.Status)}},
			},
			sheets.CellUpdate{
				Range:  sheets.CellAddress(QBAccountColumn, d.SheetsRowID),
				Values: [][]interface{}{{domain.Deref(d.QBAccount)}},
			},
		)
		ids = append(ids, d.ID)
	}

	return updates, ids
}
