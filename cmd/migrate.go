package cmd

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openRepository(cmd.Context())
		if err != nil {
			return err
		}
		db.Close()
		return nil
	},
}
