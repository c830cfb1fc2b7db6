// Package cmd holds the command line entry points of the backend.
package cmd

import (
	"context"
	"log/slog"

	"github.com/Deinys/SmartHome-Backend/config"
	"github.com/Deinys/SmartHome-Backend/controllers"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "smarthome",
		Short:         "SmartHome controller registration and telemetry API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newPopulateCommand())
	return cmd
}

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// openStore loads the configuration, connects to the database and applies
// the migrations.
func openStore() (config.Config, *gorm.DB, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	db, err := config.OpenDB(cfg)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	if err := controllers.MigrateModels(db); err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, db, logger, nil
}
