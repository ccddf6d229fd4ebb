// Package crawler runs the per-site analysis pipeline: homepage fetch and
// extraction, catalog API probe, deep crawl fallback, merge, audit, score.
package crawler

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/seasalt-intel/webintel/internal/domain"
	"github.com/seasalt-intel/webintel/internal/extract"
	"github.com/seasalt-intel/webintel/internal/fetcher"
	"github.com/seasalt-intel/webintel/internal/logger"
	"github.com/seasalt-intel/webintel/internal/score"
)

const (
	// Bodies shorter than this are parked domains or block pages.
	minHomepageHTML = 100
	// Sub-pages below this size carry no extractable catalog.
	minSubPageHTML = 500

	// Deep crawl stops once this many useful sub-pages were processed.
	subPageLimit = 3
	// Catalog yield below which the deep crawl kicks in.
	minCatalogYield = 5

	// Merge caps.
	maxMergedProducts   = 200
	maxMergedPrices     = 200
	maxMergedCategories = 30
	maxMergedPairs      = 100
)

// Catalog listing pages probed when the homepage yields few products.
var deepCrawlPaths = []string{
	"/collections/all",
	"/shop",
	"/products",
	"/product-category/pickles",
	"/collections/pickles",
}

// PageFetcher retrieves one page.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) fetcher.Result
}

// CatalogFetcher reads a platform product catalog.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context, baseURL string) []domain.ProductPrice
}

// Auditor runs a performance audit. A nil report with a reason means the
// audit was skipped.
type Auditor interface {
	Audit(ctx context.Context, target string) (*domain.PageSpeedReport, string)
}

// Outcome is the full analysis of one site.
type Outcome struct {
	Result    *domain.CrawlResult
	Speed     *domain.PageSpeedReport
	AuditSkip string
}

// Crawler analyzes one site at a time.
type Crawler struct {
	fetch   PageFetcher
	catalog CatalogFetcher
	audit   Auditor
	log     logger.Interface
}

// New wires a crawler. audit may be nil when no audit backend is configured.
func New(fetch PageFetcher, catalog CatalogFetcher, audit Auditor, log logger.Interface) *Crawler {
	return &Crawler{
		fetch:   fetch,
		catalog: catalog,
		audit:   audit,
		log:     log.WithComponent("crawler"),
	}
}

// Crawl analyzes a single site. fast skips the performance audit only; the
// crawl itself always runs in full. Crawl never returns an error: an
// unreachable site produces a zero-score result.
func (c *Crawler) Crawl(ctx context.Context, site domain.SiteTarget, fast bool) Outcome {
	log := c.log.WithSite(site.Code)
	baseURL := normalizeBaseURL(site.URL)

	home := c.fetch.Fetch(ctx, baseURL)
	if !home.OK || len(home.Body) < minHomepageHTML {
		reason := home.Reason
		if reason == "" {
			reason = "homepage unusable"
		}
		log.Warn("site unreachable", "status", home.StatusCode, "reason", reason)
		return Outcome{Result: &domain.CrawlResult{
			Reachable:  false,
			StatusCode: home.StatusCode,
			Error:      reason,
		}}
	}

	ex := extract.Page(home.Body)
	res := resultFromHomepage(ex, home)

	catalog := c.catalog.FetchCatalog(ctx, baseURL)
	mergeCatalog(res, catalog)
	log.Debug("catalog probed", "products", len(catalog))

	// The fallback keys on the catalog API's own yield: scraped names are
	// too noisy to prove the catalog was covered.
	if len(catalog) < minCatalogYield {
		c.deepCrawl(ctx, baseURL, res, log)
	}

	finalizePrices(res)

	var speed *domain.PageSpeedReport
	var skip string
	switch {
	case fast:
		skip = "fast mode"
	case c.audit == nil:
		skip = "no audit backend configured"
	default:
		speed, skip = c.audit.Audit(ctx, home.FinalURL)
	}

	res.SiteScore = score.Score(res, speed)
	log.Info("crawl complete",
		"score", res.SiteScore,
		"products", res.ProductCount(),
		"audit_skipped", skip != "")

	return Outcome{Result: res, Speed: speed, AuditSkip: skip}
}

// deepCrawl probes known catalog listing paths until enough sub-pages with
// real content were processed.
func (c *Crawler) deepCrawl(ctx context.Context, baseURL string, res *domain.CrawlResult, log logger.Interface) {
	processed := 0
	for _, path := range deepCrawlPaths {
		if processed >= subPageLimit {
			return
		}
		page := c.fetch.Fetch(ctx, baseURL+path)
		if !page.OK || len(page.Body) < minSubPageHTML {
			continue
		}
		processed++
		mergePage(res, extract.Page(page.Body))
		log.Debug("sub-page merged", "path", path, "products", res.ProductCount())
	}
}

// normalizeBaseURL defaults bare hosts to https and strips the trailing
// slash so paths can be appended directly.
func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return strings.TrimSuffix(raw, "/")
}

func resultFromHomepage(ex extract.Extraction, home fetcher.Result) *domain.CrawlResult {
	return &domain.CrawlResult{
		Reachable:  true,
		StatusCode: home.StatusCode,
		HTMLLength: len(home.Body),

		Title:           ex.Meta.Title,
		H1:              ex.Meta.H1,
		MetaDescription: ex.Meta.MetaDescription,
		OGImage:         ex.Meta.OGImage,

		Products:           ex.Products,
		Categories:         ex.Categories,
		Prices:             ex.Prices,
		ProductsWithPrices: ex.ProductsWithPrices,
		SocialLinks:        ex.Meta.SocialLinks,
		TechStack:          ex.TechStack,
		Marketplace:        ex.Marketplace,

		HasEcommerce:      ex.Meta.HasEcommerce,
		HasBlog:           ex.Meta.HasBlog,
		HasWhatsApp:       ex.Meta.HasWhatsApp,
		HasSSL:            strings.HasPrefix(home.FinalURL, "https://"),
		HasCanonical:      ex.Meta.HasCanonical,
		HasViewport:       ex.Meta.HasViewport,
		HasRobotsMeta:     ex.Meta.HasRobotsMeta,
		HasStructuredData: ex.HasStructuredData,

		WordCount:     ex.Meta.WordCount,
		ImageCount:    ex.Meta.ImageCount,
		InternalLinks: ex.Meta.InternalLinks,
		ExternalLinks: ex.Meta.ExternalLinks,
	}
}

// mergeCatalog folds catalog API products into the result. API data is the
// most trustworthy source, so its pairs replace nothing but fill gaps.
func mergeCatalog(res *domain.CrawlResult, catalog []domain.ProductPrice) {
	if len(catalog) == 0 {
		return
	}

	names := lowerSet(res.Products)
	pairNames := make(map[string]bool, len(res.ProductsWithPrices))
	for _, pair := range res.ProductsWithPrices {
		pairNames[strings.ToLower(pair.Name)] = true
	}
	prices := make(map[float64]bool, len(res.Prices))
	for _, price := range res.Prices {
		prices[price] = true
	}

	for _, product := range catalog {
		key := strings.ToLower(product.Name)
		if product.Name != "" && !names[key] && len(res.Products) < maxMergedProducts {
			names[key] = true
			res.Products = append(res.Products, product.Name)
		}
		for _, price := range []float64{product.PriceMin, product.PriceMax} {
			if price > 0 && !prices[price] && len(res.Prices) < maxMergedPrices {
				prices[price] = true
				res.Prices = append(res.Prices, price)
			}
		}
		if product.PriceMin > 0 && !pairNames[key] && len(res.ProductsWithPrices) < maxMergedPairs {
			pairNames[key] = true
			res.ProductsWithPrices = append(res.ProductsWithPrices, product)
		}
	}
}

// mergePage folds a sub-page extraction into the result. Names dedupe
// case-insensitively with the earlier page winning; meta and flags stay
// homepage-owned except structured data, which any page may prove.
func mergePage(res *domain.CrawlResult, ex extract.Extraction) {
	names := lowerSet(res.Products)
	for _, name := range ex.Products {
		key := strings.ToLower(name)
		if !names[key] && len(res.Products) < maxMergedProducts {
			names[key] = true
			res.Products = append(res.Products, name)
		}
	}

	categories := lowerSet(res.Categories)
	for _, category := range ex.Categories {
		key := strings.ToLower(category)
		if !categories[key] && len(res.Categories) < maxMergedCategories {
			categories[key] = true
			res.Categories = append(res.Categories, category)
		}
	}

	prices := make(map[float64]bool, len(res.Prices))
	for _, price := range res.Prices {
		prices[price] = true
	}
	for _, price := range ex.Prices {
		if !prices[price] && len(res.Prices) < maxMergedPrices {
			prices[price] = true
			res.Prices = append(res.Prices, price)
		}
	}

	pairNames := make(map[string]bool, len(res.ProductsWithPrices))
	for _, pair := range res.ProductsWithPrices {
		pairNames[strings.ToLower(pair.Name)] = true
	}
	for _, pair := range ex.ProductsWithPrices {
		key := strings.ToLower(pair.Name)
		if !pairNames[key] && len(res.ProductsWithPrices) < maxMergedPairs {
			pairNames[key] = true
			res.ProductsWithPrices = append(res.ProductsWithPrices, pair)
		}
	}

	res.HasStructuredData = res.HasStructuredData || ex.HasStructuredData
}

// finalizePrices sorts the merged price set and derives the range summary.
func finalizePrices(res *domain.CrawlResult) {
	if len(res.Prices) == 0 {
		return
	}
	sort.Float64s(res.Prices)

	sum := 0.0
	for _, price := range res.Prices {
		sum += price
	}
	res.PriceRange = &domain.PriceRange{
		Min: res.Prices[0],
		Max: res.Prices[len(res.Prices)-1],
		Avg: math.Round(sum / float64(len(res.Prices))),
	}
}

func lowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
