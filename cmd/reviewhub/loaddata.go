package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reviewhub/database"
	"reviewhub/internal/fixtures"
)

var loadDataCmd = &cobra.Command{
	Use:   "loaddata <dir>",
	Short: "Bulk-import the CSV fixture set",
	Long: `Imports users.csv, category.csv, genre.csv, titles.csv, genre_title.csv,
review.csv and comments.csv from the given directory into the database.
The whole import runs in one transaction.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}

		db, err := database.ConnectDB(cfg, logger)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}

		if err := fixtures.NewLoader(db, logger).LoadDir(cmd.Context(), args[0]); err != nil {
			return err
		}
		logger.Info("fixture import complete", "dir", args[0])
		return nil
	},
}
