package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"espritjobs-engine/internal/secrets"
)

func init() {
	secretsCmd.AddCommand(secretsSetCmd, secretsDeleteCmd)
	rootCmd.AddCommand(secretsCmd)
}

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Manage the portal password in the OS keychain.",
}

var secretsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Stores the portal password (read from stdin) for the configured auth.email.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(dataDir())
		if err != nil {
			return err
		}

		fmt.Fprint(os.Stderr, "password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return err
		}

		if err := secrets.SetPassword(cfg, strings.TrimSpace(line)); err != nil {
			return err
		}
		fmt.Printf("stored password for %s\n", secrets.Account(cfg))
		return nil
	},
}

var secretsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Removes the stored portal password.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(dataDir())
		if err != nil {
			return err
		}
		if err := secrets.DeletePassword(cfg); err != nil {
			return err
		}
		fmt.Println("password removed")
		return nil
	},
}
