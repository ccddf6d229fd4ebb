// Package scan implements the single-site rescan command.
package scan

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/seasalt-intel/webintel/cmd/common"
)

// Command builds the scan command.
func Command() *cobra.Command {
	var fast bool

	cmd := &cobra.Command{
		Use:   "scan <code>",
		Short: "Re-crawl a single configured site by code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.Build(common.ConfigFile(cmd))
			if err != nil {
				return err
			}
			defer deps.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			report, err := deps.Orchestrator.ScanOne(ctx, args[0], fast)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendRows([]table.Row{
				{"Site", report.Name},
				{"Code", report.Code},
				{"Reachable", report.Reachable},
				{"Score", report.SiteScore},
				{"Products", report.ProductCount},
				{"Priced products", report.ProductsWithPrices},
				{"Marketplaces", report.MarketplaceCount},
				{"Saved", report.Saved},
			})
			t.Render()

			if report.SaveError != "" {
				fmt.Printf("save error: %s\n", report.SaveError)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fast, "fast", false, "skip performance audit")
	return cmd
}
