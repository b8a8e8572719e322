package cmd

import (
	"fmt"
	"os"

	"restaurant-menu/internal/wire"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("driver", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	repo, db, err := openRepository(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	app := wire.Wiring(repo, config, logger)

	// Optional first-start seeding; skipped when the catalog has data
	if config.Seed.CSVPath != "" {
		file, err := os.Open(config.Seed.CSVPath)
		if err != nil {
			return fmt.Errorf("open seed file: %w", err)
		}
		_, err = app.Service.Import.ImportCSV(ctx, file)
		file.Close()
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	return APIServer(ctx, app.Router, config, logger)
}
