// Package common wires the shared dependency graph for the CLI commands.
package common

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/seasalt-intel/webintel/internal/config"
	"github.com/seasalt-intel/webintel/internal/crawler"
	"github.com/seasalt-intel/webintel/internal/database"
	"github.com/seasalt-intel/webintel/internal/fetcher"
	"github.com/seasalt-intel/webintel/internal/logger"
	"github.com/seasalt-intel/webintel/internal/pagespeed"
	"github.com/seasalt-intel/webintel/internal/shopify"
	intelsync "github.com/seasalt-intel/webintel/internal/sync"
)

// Deps is the wired dependency graph.
type Deps struct {
	Config       *config.Config
	Log          logger.Interface
	DB           *sqlx.DB
	Repo         *database.IntelRepository
	Orchestrator *intelsync.Orchestrator
}

// ConfigFile reads the inherited --config flag.
func ConfigFile(cmd *cobra.Command) string {
	if flag := cmd.Flag("config"); flag != nil {
		return flag.Value.String()
	}
	return ""
}

// Build loads configuration and wires the full graph. The intelligence
// store must be configured; commands that persist nothing should load
// config directly instead.
func Build(cfgFile string) (*Deps, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if err := cfg.ValidateStore(); err != nil {
		return nil, err
	}
	db, err := database.NewConnection(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	repo := database.NewIntelRepository(db, log)

	fetch := fetcher.New(cfg.Crawler.FetchTimeout, cfg.Crawler.UserAgent)
	catalog := shopify.New(fetch, log)
	audit := pagespeed.New(cfg.PageSpeed, log)
	crawl := crawler.New(fetch, catalog, audit, log)

	orch := intelsync.New(crawl, repo, cfg.Sites, cfg.Crawler.Pace, log)

	return &Deps{
		Config:       cfg,
		Log:          log,
		DB:           db,
		Repo:         repo,
		Orchestrator: orch,
	}, nil
}

// Close releases held resources.
func (d *Deps) Close() {
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			d.Log.Error("failed to close database", "error", err)
		}
	}
}
