package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvloznov/ledgersync/internal/console"
	"github.com/dvloznov/ledgersync/internal/verify"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Print table counts and transactions by entity",
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
				return fmt.Errorf("verify: %w", err)
			}
			defer repo.Close()

			if _, err := verify.Run(ctx, repo, con); err != nil {
				return fmt.Errorf("verify: %w", err)
			}
			return nil
		},
	}
}
