// Package cmd assembles the CLI command tree.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/seasalt-intel/webintel/cmd/httpd"
	"github.com/seasalt-intel/webintel/cmd/scan"
	"github.com/seasalt-intel/webintel/cmd/sites"
	synccmd "github.com/seasalt-intel/webintel/cmd/sync"
)

var rootCmd = &cobra.Command{
	Use:     "webintel",
	Short:   "Website and competitive intelligence crawler",
	Long:    "webintel crawls a configured roster of storefronts, extracts catalog and marketing signals, scores each site, and persists the results for comparison.",
	Version: "1.0.0",
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default ./config.yaml)")

	rootCmd.AddCommand(httpd.Command())
	rootCmd.AddCommand(synccmd.Command())
	rootCmd.AddCommand(scan.Command())
	rootCmd.AddCommand(sites.Command())
}

// Execute runs the CLI.
func Execute() error {
	_ = godotenv.Load()
	return rootCmd.Execute()
}
