package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
)

var rootCmd = &cobra.Command{
	Use:   "scraper",
	Short: "Scrapes Esprit Connect job postings and republishes them as feeds.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "",
		"data directory (default $ESPRITJOBS_DATA_DIR or ./data)")
}

func dataDir() string {
	if flagDataDir != "" {
		return flagDataDir
	}
	if d := os.Getenv("ESPRITJOBS_DATA_DIR"); d != "" {
		return d
	}
	return "data"
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
