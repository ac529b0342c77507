package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"espritjobs-engine/internal/scan"
)

func init() {
	stateCmd.AddCommand(stateShowCmd, stateResetCmd)
	rootCmd.AddCommand(stateCmd)
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or reset the persisted scan position.",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the persisted scan state.",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, ok, err := scan.FileStore{Path: statePath(dataDir())}.Load()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("no state yet: next run starts from the configured seed id")
			return nil
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	},
}

var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Deletes the persisted scan state so the next run starts from the seed id.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := (scan.FileStore{Path: statePath(dataDir())}).Reset(); err != nil {
			return err
		}
		fmt.Println("state cleared")
		return nil
	},
}
