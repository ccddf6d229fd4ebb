// Package sync orchestrates full intelligence runs: crawl every configured
// site in sequence, persist results, rank the operator's own site, and
// derive insights.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/seasalt-intel/webintel/internal/crawler"
	"github.com/seasalt-intel/webintel/internal/domain"
	"github.com/seasalt-intel/webintel/internal/insights"
	"github.com/seasalt-intel/webintel/internal/logger"
)

// DefaultPace spaces consecutive site crawls so target sites never see
// burst traffic from a run.
const DefaultPace = 2 * time.Second

// summaryVersion tags the summary payload shape for API consumers.
const summaryVersion = "1.0"

// ResultStore persists run outputs. Persistence failures are recorded on
// the summary but never abort a run.
type ResultStore interface {
	UpsertResult(ctx context.Context, record *domain.IntelRecord) error
	InsertSyncLog(ctx context.Context, log *domain.SyncLog) error
	InsertInsight(ctx context.Context, insight *domain.Insight) error
}

// SiteCrawler analyzes one site.
type SiteCrawler interface {
	Crawl(ctx context.Context, site domain.SiteTarget, fast bool) crawler.Outcome
}

// Orchestrator runs the configured roster through the crawler.
type Orchestrator struct {
	crawl   SiteCrawler
	store   ResultStore
	sites   []domain.SiteTarget
	limiter *rate.Limiter
	log     logger.Interface
}

// New wires an orchestrator. pace <= 0 selects the default spacing.
func New(crawl SiteCrawler, store ResultStore, sites []domain.SiteTarget, pace time.Duration, log logger.Interface) *Orchestrator {
	if pace <= 0 {
		pace = DefaultPace
	}
	return &Orchestrator{
		crawl:   crawl,
		store:   store,
		sites:   sites,
		limiter: rate.NewLimiter(rate.Every(pace), 1),
		log:     log.WithComponent("sync"),
	}
}

// Sites returns the configured roster.
func (o *Orchestrator) Sites() []domain.SiteTarget { return o.sites }

// Run crawls every configured site in order, persisting each result as it
// lands. It only errors when the context is cancelled; individual site and
// persistence failures are carried on the summary instead.
func (o *Orchestrator) Run(ctx context.Context, fast bool) (*domain.SyncSummary, error) {
	runID := uuid.NewString()
	log := o.log.WithRunID(runID)
	started := time.Now()

	log.Info("sync run started", "sites", len(o.sites), "fast", fast)

	summary := &domain.SyncSummary{
		Status:    "complete",
		Version:   summaryVersion,
		RunID:     runID,
		ScannedAt: started.UTC(),
	}
	var runErrors []any

	for _, site := range o.sites {
		if err := o.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("sync run cancelled: %w", err)
		}

		report := o.scanAndStore(ctx, site, fast)
		if report.SaveError != "" {
			runErrors = append(runErrors, site.Code+": "+report.SaveError)
		}
		summary.Results = append(summary.Results, report)
		if report.Reachable {
			summary.ReachableSites++
		}
	}
	summary.TotalSites = len(summary.Results)
	summary.Comparison = compare(summary.Results)

	generated := insights.Generate(summary.Results)
	for i := range generated {
		if err := o.store.InsertInsight(ctx, &generated[i]); err != nil {
			runErrors = append(runErrors, "insight: "+err.Error())
			continue
		}
		summary.InsightsGenerated++
	}

	summary.DurationMs = time.Since(started).Milliseconds()
	if len(runErrors) > 0 {
		summary.Status = "completed_with_errors"
	}

	syncLog := &domain.SyncLog{
		RunID:       runID,
		SyncType:    "full",
		Status:      summary.Status,
		SitesSynced: summary.ReachableSites,
		Errors:      domain.JSONBList(runErrors),
		DurationMs:  summary.DurationMs,
		SyncedAt:    time.Now().UTC(),
	}
	if err := o.store.InsertSyncLog(ctx, syncLog); err != nil {
		log.Error("sync log write failed", "error", err)
	}

	log.Info("sync run finished",
		"status", summary.Status,
		"reachable", summary.ReachableSites,
		"insights", summary.InsightsGenerated,
		"duration_ms", summary.DurationMs)

	return summary, nil
}

// ScanOne re-crawls a single roster site by code and persists the result.
func (o *Orchestrator) ScanOne(ctx context.Context, code string, fast bool) (*domain.SiteReport, error) {
	for _, site := range o.sites {
		if site.Code == code {
			report := o.scanAndStore(ctx, site, fast)
			return &report, nil
		}
	}
	return nil, fmt.Errorf("unknown site code %q", code)
}

// Inspect crawls an arbitrary host without persisting anything. The
// performance audit is always skipped.
func (o *Orchestrator) Inspect(ctx context.Context, host string) *domain.InspectReport {
	target := domain.SiteTarget{Name: host, Code: "ADHOC", URL: host}
	outcome := o.crawl.Crawl(ctx, target, true)
	res := outcome.Result

	return &domain.InspectReport{
		Site:               host,
		SiteScore:          res.SiteScore,
		Reachable:          res.Reachable,
		Title:              res.Title,
		Products:           res.Products,
		ProductsWithPrices: res.ProductsWithPrices,
		Categories:         res.Categories,
		PriceRange:         res.PriceRange,
		TechStack:          res.TechStack,
		SocialLinks:        res.SocialLinks,
		Marketplace:        res.Marketplace,
		HasEcommerce:       res.HasEcommerce,
	}
}

func (o *Orchestrator) scanAndStore(ctx context.Context, site domain.SiteTarget, fast bool) domain.SiteReport {
	outcome := o.crawl.Crawl(ctx, site, fast)
	res := outcome.Result

	report := domain.SiteReport{
		Name:               site.Name,
		Code:               site.Code,
		URL:                site.URL,
		IsSelf:             site.IsSelf,
		Reachable:          res.Reachable,
		SiteScore:          res.SiteScore,
		ProductCount:       res.ProductCount(),
		ProductsWithPrices: len(res.ProductsWithPrices),
		MarketplaceCount:   res.Marketplace.PlatformCount,
		HasEcommerce:       res.HasEcommerce,
		TechStack:          res.TechStack,
		HasAudit:           outcome.Speed != nil,
		Saved:              true,
	}
	if outcome.Speed != nil {
		report.PerformanceScore = outcome.Speed.PerformanceScore
	}

	record := domain.NewIntelRecord(site, res, outcome.Speed)
	if err := o.store.UpsertResult(ctx, record); err != nil {
		o.log.WithSite(site.Code).Error("result upsert failed", "error", err)
		report.Saved = false
		report.SaveError = err.Error()
	}

	return report
}

// compare ranks the operator's own site against the competitors of the
// same run. Nil when the roster has no reachable self site.
func compare(reports []domain.SiteReport) *domain.SelfComparison {
	var self *domain.SiteReport
	for i := range reports {
		if reports[i].IsSelf {
			self = &reports[i]
			break
		}
	}
	if self == nil || !self.Reachable {
		return nil
	}

	cmp := &domain.SelfComparison{Code: self.Code, Score: self.SiteScore, Rank: 1}
	count, sum := 0, 0
	for _, r := range reports {
		if r.IsSelf || !r.Reachable {
			continue
		}
		count++
		sum += r.SiteScore
		if r.SiteScore > cmp.CompetitorBest {
			cmp.CompetitorBest = r.SiteScore
		}
		if r.SiteScore > self.SiteScore {
			cmp.Outranked++
			cmp.Rank++
		}
	}
	if count > 0 {
		cmp.CompetitorAvg = float64(sum) / float64(count)
	}
	return cmp
}
