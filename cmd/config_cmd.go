// Package cmd implements the finplan CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finplan/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency symbol: %s\n", cfg.General.CurrencySymbol)
	fmt.Printf("    Database path:   %s\n", cfg.DatabasePath())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Daemon]")
	if cfg.Daemon.Addr != "" {
		fmt.Printf("    Address: %s\n", cfg.Daemon.Addr)
	} else {
		fmt.Println("    Address: default (127.0.0.1:7126)")
	}
	if cfg.Daemon.PollInterval != "" {
		fmt.Printf("    Poll interval: %s\n", cfg.Daemon.PollInterval)
	}
	fmt.Println()

	fmt.Println("  Run `finplan setup` to reconfigure.")
	return nil
}
