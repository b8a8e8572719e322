package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"restaurant-menu/internal/data/repository"
	"restaurant-menu/pkg/database"
	"restaurant-menu/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	config *utils.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "restaurant-menu",
	Short: "Restaurant menu API server",
	Long: `Restaurant menu API serves the starters, main courses and desserts of a menu
and lets authenticated managers add, update and delete dishes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = utils.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logger, err = utils.InitLogger(config.App.LogPath, config.App.Debug)
		if err != nil {
			log.Printf("Failed to init logger: %v. Using production logger.", err)
			logger, _ = zap.NewProduction()
		}

		if config.JWT.Ephemeral {
			logger.Warn("JWT_SECRET is not set, using a random secret; tokens will not survive a restart")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openRepository connects to the configured store and applies migrations.
// The caller closes the returned DB.
func openRepository(ctx context.Context) (*repository.Repository, database.DB, error) {
	db, err := database.Connect(ctx, config.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(ctx, db, logger); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repository.NewRepository(db, logger), db, nil
}
