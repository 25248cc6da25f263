package cmd

import (
	"fmt"
	"time"

	"github.com/alfredpatchclaw/insight-dashboard/internal/cli"
	"github.com/alfredpatchclaw/insight-dashboard/internal/source"
	"github.com/alfredpatchclaw/insight-dashboard/internal/store"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently completed sessions",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Max entries to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Sessions.DBPath)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer func() { _ = st.Close() }()

	entries, err := st.ListRecent(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("  No completed sessions recorded yet.")
		return nil
	}

	table := cli.Table{
		Title:   "Completed sessions",
		Headers: []string{"Name", "Session", "Task", "Duration", "Tokens", "Cost", "When"},
	}
	now := time.Now()
	for _, e := range entries {
		table.Rows = append(table.Rows, []string{
			e.DisplayName,
			source.ShortID(e.SessionID),
			source.Truncate(e.Task, 40),
			cli.FormatDuration(e.DurationMs),
			cli.FormatTokens(e.TokensIn + e.TokensOut),
			cli.FormatCost(e.CostUSD),
			cli.FormatAge(e.Timestamp, now),
		})
	}
	fmt.Print(table.Render())
	return nil
}
