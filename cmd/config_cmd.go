package cmd

import (
	"fmt"

	"github.com/alfredpatchclaw/insight-dashboard/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rates := cfg.EffectiveRates()
	fmt.Printf("  Config file: %s", config.ConfigPath())
	if !config.Exists() {
		fmt.Printf(" (not present, using defaults)")
	}
	fmt.Println()
	fmt.Printf("  Sessions dir: %s\n", cfg.Sessions.Dir)
	fmt.Printf("  Database: %s\n", cfg.Sessions.DBPath)
	fmt.Printf("  Listen: %s\n", cfg.Server.Addr)
	fmt.Printf("  Scan interval: %s\n", cfg.ScanInterval())
	fmt.Printf("  Active window: %s\n", cfg.ActiveWindow())
	fmt.Printf("  Settled window: %s\n", cfg.SettledWindow())
	fmt.Printf("  Rates: $%.2f in / $%.2f out per MTok\n", rates.InputPerMTok, rates.OutputPerMTok)
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if config.Exists() {
		return fmt.Errorf("config already exists at %s", config.ConfigPath())
	}
	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  Wrote %s\n", config.ConfigPath())
	return nil
}
