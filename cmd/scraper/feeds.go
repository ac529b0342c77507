package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"espritjobs-engine/internal/store"
)

func init() {
	rootCmd.AddCommand(feedsCmd)
}

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "Regenerates feed.xml, jobs.json and index.html from the stored dataset without scanning.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := dataDir()
		cfg, err := loadConfig(dir)
		if err != nil {
			return err
		}

		db, err := store.Open(filepath.Join(dir, "jobs.db"))
		if err != nil {
			return fmt.Errorf("open job store: %w", err)
		}
		defer db.Close()

		return writeFeeds(cmd.Context(), cfg, db, nil)
	},
}
