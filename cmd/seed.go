package cmd

import (
	"errors"
	"fmt"
	"os"

	"restaurant-menu/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import dishes from a CSV file into an empty catalog",
	Long: `Reads a CSV file with a header row (id, name, variant, course, ingredients,
description, price, category, country_origin, availability, calories) and
inserts every row in one transaction. Nothing is imported when the catalog
already contains dishes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := seedFile
		if path == "" {
			path = config.Seed.CSVPath
		}
		if path == "" {
			return errors.New("no CSV file given, use --file or SEED_CSV")
		}

		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open seed file: %w", err)
		}
		defer file.Close()

		repo, db, err := openRepository(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		count, err := usecase.NewImportService(repo, logger).ImportCSV(cmd.Context(), file)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}

		logger.Info("Seed finished", zap.String("file", path), zap.Int("inserted", count))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "CSV file to import (env: SEED_CSV)")
}
