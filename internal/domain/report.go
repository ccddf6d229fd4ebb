package domain

import "time"

// SiteReport is the per-site line item of a sync run summary.
type SiteReport struct {
	Name               string   `json:"name"`
	Code               string   `json:"code"`
	URL                string   `json:"url"`
	IsSelf             bool     `json:"is_self"`
	Reachable          bool     `json:"reachable"`
	SiteScore          int      `json:"site_score"`
	ProductCount       int      `json:"products"`
	ProductsWithPrices int      `json:"products_with_prices"`
	MarketplaceCount   int      `json:"marketplace_platforms"`
	HasEcommerce       bool     `json:"has_ecommerce"`
	TechStack          []string `json:"tech_stack,omitempty"`
	HasAudit           bool     `json:"has_audit"`
	PerformanceScore   int      `json:"performance_score,omitempty"`
	Saved              bool     `json:"saved"`
	SaveError          string   `json:"save_error,omitempty"`
}

// SelfComparison ranks the operator's own site against the competitors in
// the same run.
type SelfComparison struct {
	Code           string  `json:"code"`
	Score          int     `json:"score"`
	Rank           int     `json:"rank"`
	Outranked      int     `json:"outranked"`
	CompetitorAvg  float64 `json:"competitor_avg"`
	CompetitorBest int     `json:"competitor_best"`
}

// SyncSummary is the aggregate outcome of one orchestrator run.
type SyncSummary struct {
	Status            string          `json:"status"`
	Version           string          `json:"version"`
	RunID             string          `json:"run_id"`
	ScannedAt         time.Time       `json:"scanned_at"`
	DurationMs        int64           `json:"duration_ms"`
	TotalSites        int             `json:"total_sites"`
	ReachableSites    int             `json:"reachable_sites"`
	Results           []SiteReport    `json:"results"`
	Comparison        *SelfComparison `json:"comparison,omitempty"`
	InsightsGenerated int             `json:"insights_generated"`
}

// InspectReport is the unpersisted diagnostic view of a single ad-hoc crawl.
// The performance audit is always skipped to keep latency bounded.
type InspectReport struct {
	Site               string              `json:"site"`
	SiteScore          int                 `json:"site_score"`
	Reachable          bool                `json:"reachable"`
	Title              string              `json:"title"`
	Products           []string            `json:"products"`
	ProductsWithPrices []ProductPrice      `json:"products_with_prices"`
	Categories         []string            `json:"categories"`
	PriceRange         *PriceRange         `json:"price_range"`
	TechStack          []string            `json:"tech_stack"`
	SocialLinks        map[string]string   `json:"social_links"`
	Marketplace        MarketplacePresence `json:"marketplace_presence"`
	HasEcommerce       bool                `json:"has_ecommerce"`
}

// Insight is one auto-generated competitive observation over a run's
// aggregated results.
type Insight struct {
	Type      string    `json:"type" db:"type"`
	Priority  string    `json:"priority" db:"priority"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Source    string    `json:"source" db:"source"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Insight types.
const (
	InsightThreat      = "threat"
	InsightOpportunity = "opportunity"
	InsightTrend       = "trend"
	InsightAction      = "action"
)

// Insight priorities.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)
