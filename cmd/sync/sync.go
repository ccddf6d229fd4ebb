// Package sync implements the one-shot full crawl command.
package sync

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/seasalt-intel/webintel/cmd/common"
	"github.com/seasalt-intel/webintel/internal/domain"
)

// Command builds the sync command.
func Command() *cobra.Command {
	var fast bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Crawl every configured site and persist the results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.Build(common.ConfigFile(cmd))
			if err != nil {
				return err
			}
			defer deps.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, err := deps.Orchestrator.Run(ctx, fast)
			if err != nil {
				return err
			}

			printSummary(summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fast, "fast", false, "skip performance audits")
	return cmd
}

func printSummary(summary *domain.SyncSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Code", "Site", "Score", "Reachable", "Products", "Audit", "Saved"})

	for _, r := range summary.Results {
		name := r.Name
		if r.IsSelf {
			name += " *"
		}
		t.AppendRow(table.Row{r.Code, name, r.SiteScore, yesNo(r.Reachable), r.ProductCount, yesNo(r.HasAudit), yesNo(r.Saved)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Score", Align: text.AlignRight},
		{Name: "Products", Align: text.AlignRight},
	})
	t.Render()

	fmt.Printf("\nrun %s: %s, %d/%d reachable, %d insights, %dms\n",
		summary.RunID, summary.Status,
		summary.ReachableSites, summary.TotalSites,
		summary.InsightsGenerated, summary.DurationMs)

	if cmp := summary.Comparison; cmp != nil {
		fmt.Printf("your site ranks #%d (score %d, best competitor %d, competitor avg %.1f)\n",
			cmp.Rank, cmp.Score, cmp.CompetitorBest, cmp.CompetitorAvg)
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
