package cmd

import (
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, logger, err := openStore()
			if err != nil {
				return err
			}
			logger.Info("database schema ready")
			return nil
		},
	}
}
