package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dvloznov/ledgersync/internal/console"
	"github.com/dvloznov/ledgersync/internal/logger"
	"github.com/dvloznov/ledgersync/internal/migrator"
	"github.com/dvloznov/ledgersync/internal/snapshot"
	"github.com/dvloznov/ledgersync/internal/verify"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Load merchant rules, aliases and transactions from the sheet into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			con := console.New()
			con.Title("Origin Transport Data Migration")

			a, ok, err := loadApp(con)
			if err != nil || !ok {
				return err
			}
			ctx, cancel := a.runContext(cmd.Context())
			defer cancel()
			log := logger.FromContext(ctx)

			con.Plain("Sheet ID: %s", a.cfg.Google.SheetID)

			repo, err := a.openRepository(ctx)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			defer repo.Close()

			svc, err := a.openSheets(ctx)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			m := migrator.New(repo, svc, con)
			if a.cfg.SnapshotEnabled() {
				writer, err := snapshot.NewGCSWriter(ctx)
				if err != nil {
					log.Warn().Err(err).Msg("Snapshots disabled: storage client unavailable")
					con.Warn("Snapshots disabled: %v", err)
				} else {
					defer writer.Close()
					m.WithSnapshotter(snapshot.NewArchiver(writer, a.cfg.Snapshot.Bucket, a.cfg.Snapshot.Prefix, time.Now()))
				}
			}

			results := m.Run(ctx)
			for _, res := range results {
				log.Info().
					Str("sheet", res.Sheet).
					Int("migrated", res.Migrated).
					Int("skipped", res.Skipped).
					Int("duplicates", res.Duplicates).
					Int("errors", res.Errors).
					Bool("read_failed", res.Err != nil).
					Msg("Sheet result")
			}

			if _, err := verify.Run(ctx, repo, con); err != nil {
				log.Error().Err(err).Msg("Verification failed")
				con.Error("Verification failed: %v", err)
			}

			con.Heading("Migration complete!")
			return nil
		},
	}
}
