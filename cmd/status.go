package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/alfredpatchclaw/insight-dashboard/internal/cli"
	"github.com/alfredpatchclaw/insight-dashboard/internal/collector"
	"github.com/alfredpatchclaw/insight-dashboard/internal/model"

	"github.com/spf13/cobra"
)

var flagStatusAddr string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe a running dashboard and summarize its state",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&flagStatusAddr, "addr", "", "Dashboard address (defaults to configured server addr)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := flagStatusAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	client := &http.Client{Timeout: 2 * time.Second}

	var st collector.Status
	if err := fetchJSON(client, "http://"+addr+"/api/collector", &st); err != nil {
		fmt.Printf("  Dashboard at %s: unreachable (%v)\n", addr, err)
		return nil
	}

	var snap model.Snapshot
	if err := fetchJSON(client, "http://"+addr+"/api/status", &snap); err != nil {
		return fmt.Errorf("fetching snapshot: %w", err)
	}

	fmt.Printf("  Dashboard: http://%s\n", addr)
	fmt.Printf("  Started: %s\n", st.StartedAt.Local().Format(time.RFC3339))
	fmt.Printf("  Cycles: %d (every %ds)\n", st.CycleCount, st.IntervalSec)
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", cli.ErrStyle.Render(st.LastError))
	}
	fmt.Printf("  Active sessions: %d\n", len(snap.Active))
	fmt.Printf("  Tokens: %s in / %s out\n",
		cli.FormatTokens(snap.Totals.TokensIn), cli.FormatTokens(snap.Totals.TokensOut))
	fmt.Printf("  Cost: %s\n", cli.CostStyle.Render(cli.FormatCost(snap.TotalCost)))

	for _, a := range snap.Active {
		fmt.Printf("    %s %s  %s\n",
			cli.NameStyle.Render(a.DisplayName), a.ShortID, a.LastMessage)
	}
	return nil
}

func fetchJSON(client *http.Client, url string, out any) error {
	resp, err := client.Get(url) //nolint:noctx // short local probe
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
