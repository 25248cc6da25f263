// Package cmd implements the insight command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alfredpatchclaw/insight-dashboard/internal/collector"
	"github.com/alfredpatchclaw/insight-dashboard/internal/config"
	"github.com/alfredpatchclaw/insight-dashboard/internal/store"
	"github.com/alfredpatchclaw/insight-dashboard/internal/web"

	"github.com/spf13/cobra"
)

var (
	flagSessionsDir string
	flagDBPath      string
	flagAddr        string
	flagInterval    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "insight",
	Short: "Agent session dashboard",
	Long:  "Monitor agent session logs: live activity, usage, costs, and completed-task history.",
	RunE:  runServe,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagSessionsDir, "sessions-dir", "d", "", "Session logs directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "History database path (overrides config)")
	rootCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address (overrides config)")
	rootCmd.Flags().DurationVar(&flagInterval, "interval", 0, "Scan interval (overrides config)")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagSessionsDir != "" {
		cfg.Sessions.Dir = flagSessionsDir
	}
	if flagDBPath != "" {
		cfg.Sessions.DBPath = flagDBPath
	}
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}
	if flagInterval > 0 {
		cfg.Sessions.ScanIntervalSecs = int(flagInterval.Seconds())
	}
	return cfg, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Sessions.DBPath)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer func() { _ = st.Close() }()

	col := collector.New(cfg, st)
	srv := web.New(col, cfg.Server.Addr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("  insight dashboard on http://%s\n", cfg.Server.Addr)
	fmt.Printf("  Scanning %s every %s\n", cfg.Sessions.Dir, cfg.ScanInterval())

	go func() {
		if err := col.Run(ctx); err != nil {
			log.Printf("insight collector stopped: %v", err)
		}
		cancel()
	}()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
