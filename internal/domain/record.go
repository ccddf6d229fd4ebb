package domain

import "time"

// Caps applied when flattening a crawl result into a persisted row.
const (
	maxStoredProducts = 100
	maxStoredPairs    = 100
)

// IntelRecord is the flat persistence row for one site's crawl outcome,
// keyed by site code. Composite fields are stored as JSONB columns.
type IntelRecord struct {
	Name   string `db:"name" json:"name"`
	Code   string `db:"code" json:"code"`
	URL    string `db:"url" json:"url"`
	Color  string `db:"color" json:"color"`
	IsSelf bool   `db:"is_self" json:"is_self"`

	Reachable bool `db:"reachable" json:"reachable"`

	PerformanceScore       int    `db:"performance_score" json:"performance_score"`
	SEOScore               int    `db:"seo_score" json:"seo_score"`
	AccessibilityScore     int    `db:"accessibility_score" json:"accessibility_score"`
	BestPracticesScore     int    `db:"best_practices_score" json:"best_practices_score"`
	FirstContentfulPaint   string `db:"first_contentful_paint" json:"first_contentful_paint"`
	LargestContentfulPaint string `db:"largest_contentful_paint" json:"largest_contentful_paint"`
	SpeedIndex             string `db:"speed_index" json:"speed_index"`
	IsMobileFriendly       bool   `db:"is_mobile_friendly" json:"is_mobile_friendly"`

	PageTitle       string `db:"page_title" json:"page_title"`
	MetaDescription string `db:"meta_description" json:"meta_description"`

	ProductCount       int       `db:"product_count" json:"product_count"`
	Products           JSONBList `db:"products" json:"products"`
	CategoryCount      int       `db:"category_count" json:"category_count"`
	Categories         JSONBList `db:"categories" json:"categories"`
	PriceMin           float64   `db:"price_min" json:"price_min"`
	PriceMax           float64   `db:"price_max" json:"price_max"`
	PriceAvg           float64   `db:"price_avg" json:"price_avg"`
	TechStack          JSONBList `db:"tech_stack" json:"tech_stack"`
	SocialLinks        JSONBMap  `db:"social_links" json:"social_links"`
	Marketplace        JSONBMap  `db:"marketplace_presence" json:"marketplace_presence"`
	ProductsWithPrices JSONBList `db:"products_with_prices" json:"products_with_prices"`

	HasEcommerce      bool `db:"has_ecommerce" json:"has_ecommerce"`
	HasBlog           bool `db:"has_blog" json:"has_blog"`
	HasWhatsApp       bool `db:"has_whatsapp" json:"has_whatsapp"`
	HasSSL            bool `db:"has_ssl" json:"has_ssl"`
	HasStructuredData bool `db:"has_structured_data" json:"has_structured_data"`

	ImageCount    int `db:"image_count" json:"image_count"`
	WordCount     int `db:"word_count" json:"word_count"`
	InternalLinks int `db:"internal_links" json:"internal_links"`
	ExternalLinks int `db:"external_links" json:"external_links"`

	SiteScore int       `db:"site_score" json:"site_score"`
	ScannedAt time.Time `db:"scanned_at" json:"scanned_at"`
}

// NewIntelRecord flattens a site's crawl result and optional audit report
// into a persistence row.
func NewIntelRecord(site SiteTarget, result *CrawlResult, speed *PageSpeedReport) *IntelRecord {
	rec := &IntelRecord{
		Name:      site.Name,
		Code:      site.Code,
		URL:       site.URL,
		Color:     site.Color,
		IsSelf:    site.IsSelf,
		ScannedAt: time.Now().UTC(),
	}

	if speed != nil {
		rec.PerformanceScore = speed.PerformanceScore
		rec.SEOScore = speed.SEOScore
		rec.AccessibilityScore = speed.AccessibilityScore
		rec.BestPracticesScore = speed.BestPracticesScore
		rec.FirstContentfulPaint = speed.FirstContentfulPaint
		rec.LargestContentfulPaint = speed.LargestContentfulPaint
		rec.SpeedIndex = speed.SpeedIndex
		rec.IsMobileFriendly = speed.IsMobileFriendly
	}

	if result == nil {
		return rec
	}

	rec.Reachable = result.Reachable
	rec.PageTitle = result.Title
	rec.MetaDescription = result.MetaDescription

	products := result.Products
	if len(products) > maxStoredProducts {
		products = products[:maxStoredProducts]
	}
	pairs := result.ProductsWithPrices
	if len(pairs) > maxStoredPairs {
		pairs = pairs[:maxStoredPairs]
	}

	rec.ProductCount = len(result.Products)
	rec.Products = ToJSONBList(products)
	rec.CategoryCount = len(result.Categories)
	rec.Categories = ToJSONBList(result.Categories)
	rec.TechStack = ToJSONBList(result.TechStack)
	rec.ProductsWithPrices = ToJSONBList(pairs)

	if result.PriceRange != nil {
		rec.PriceMin = result.PriceRange.Min
		rec.PriceMax = result.PriceRange.Max
		rec.PriceAvg = result.PriceRange.Avg
	}

	rec.SocialLinks = JSONBMap{}
	for platform, link := range result.SocialLinks {
		rec.SocialLinks[platform] = link
	}

	rec.Marketplace = JSONBMap{
		"platforms":      result.Marketplace.Platforms,
		"urls":           result.Marketplace.URLs,
		"platform_count": result.Marketplace.PlatformCount,
	}

	rec.HasEcommerce = result.HasEcommerce
	rec.HasBlog = result.HasBlog
	rec.HasWhatsApp = result.HasWhatsApp
	rec.HasSSL = result.HasSSL
	rec.HasStructuredData = result.HasStructuredData

	rec.ImageCount = result.ImageCount
	rec.WordCount = result.WordCount
	rec.InternalLinks = result.InternalLinks
	rec.ExternalLinks = result.ExternalLinks
	rec.SiteScore = result.SiteScore

	return rec
}

// SyncLog is one row of the sync audit trail, written at the end of a run.
type SyncLog struct {
	RunID       string    `db:"run_id"`
	SyncType    string    `db:"sync_type"`
	Status      string    `db:"status"`
	SitesSynced int       `db:"sites_synced"`
	Errors      JSONBList `db:"errors"`
	DurationMs  int64     `db:"duration_ms"`
	SyncedAt    time.Time `db:"synced_at"`
}
