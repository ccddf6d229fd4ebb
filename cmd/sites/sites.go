// Package sites implements the roster listing command.
package sites

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/seasalt-intel/webintel/cmd/common"
	"github.com/seasalt-intel/webintel/internal/config"
)

// Command builds the sites command. It only reads configuration, so no
// store is required.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List the configured crawl roster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(common.ConfigFile(cmd))
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Code", "Name", "URL", "Self"})
			for _, site := range cfg.Sites {
				self := ""
				if site.IsSelf {
					self = "yes"
				}
				t.AppendRow(table.Row{site.Code, site.Name, site.URL, self})
			}
			t.Render()
			return nil
		},
	}
}
