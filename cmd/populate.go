package cmd

import (
	"github.com/Deinys/SmartHome-Backend/services"
	"github.com/Deinys/SmartHome-Backend/utils"
	"github.com/spf13/cobra"
)

func newPopulateCommand() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Register the demo controllers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, logger, err := openStore()
			if err != nil {
				return err
			}
			if count <= 0 {
				count = cfg.SeedCount
			}
			svc := services.New(db, utils.NewTokens(cfg.JWTSecret, cfg.TokenTTL))
			controllers, err := svc.Populate(cmd.Context(), count)
			if err != nil {
				return err
			}
			for _, c := range controllers {
				logger.Info("controller available", "controller_sn", c.ControllerSN, "assigned", c.Assigned())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 0, "number of controllers to create (defaults to SEED_CONTROLLERS)")
	return cmd
}
