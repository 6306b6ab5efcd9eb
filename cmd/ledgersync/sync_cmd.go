package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvloznov/ledgersync/internal/console"
	"github.com/dvloznov/ledgersync/internal/logger"
	"github.com/dvloznov/ledgersync/internal/sheetsync"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Write status and QB account of dirty transactions back to the sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			con := console.New()
			a, ok, err := loadApp(con)
			if err != nil || !ok {
				return err
			}
			ctx, cancel := a.runContext(cmd.Context())
			defer cancel()

			repo, err := a.openRepository(ctx)
			if err != nil {
				return fmt.Errorf("sync: %w", err)
			}
			defer repo.Close()

			svc, err := a.openSheets(ctx)
			if err != nil {
				return fmt.Errorf("sync: %w", err)
			}

			// Rows left dirty by a failed write are picked up by the next scheduled run.
			if _, err := sheetsync.New(repo, svc, con).Run(ctx); err != nil {
				log := logger.FromContext(ctx)
				log.Error().Err(err).Msg("Sync failed")
				con.Error("Sync failed: %v", err)
			}
			return nil
		},
	}
}
