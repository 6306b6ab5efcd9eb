package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvloznov/ledgersync/internal/console"
	"github.com/dvloznov/ledgersync/internal/logger"
	"github.com/dvloznov/ledgersync/internal/store"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Apply the ledger database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			con := console.New()
			a, ok, err := loadApp(con)
			if err != nil || !ok {
				return err
			}
			ctx, cancel := a.runContext(cmd.Context())
			defer cancel()
			log := logger.FromContext(ctx)

			status, err := store.ApplySchema(a.cfg.Supabase.URL, a.cfg.Supabase.ServiceRoleKey)
			if err != nil {
				return fmt.Errorf("schema: %w", err)
			}

			log.Info().
				Uint("version", status.Version).
				Bool("changed", status.Changed).
				Bool("dirty", status.Dirty).
				Msg("Schema applied")

			if status.Changed {
				con.Success("Schema migrated to version %d", status.Version)
			} else {
				con.Dim("Schema already at version %d", status.Version)
			}
			if status.Dirty {
				con.Warn("Schema version %d is marked dirty; fix it before running migrate", status.Version)
			}
			return nil
		},
	}
}
