// Package domain defines the core entities of the competitive intelligence
// crawler: crawl targets, crawl results, audit reports, and persistence rows.
package domain

// SiteTarget is one website under analysis. Targets are supplied by
// configuration at process start and never mutated.
type SiteTarget struct {
	Name   string `json:"name" mapstructure:"name"`
	Code   string `json:"code" mapstructure:"code"`
	URL    string `json:"url" mapstructure:"url"`
	Color  string `json:"color" mapstructure:"color"`
	IsSelf bool   `json:"is_self" mapstructure:"is_self"`
}

// Provenance tags for product/price pairs, ordered by trust.
const (
	SourceShopifyAPI  = "shopify_api"
	SourceSchema      = "schema"
	SourceHTMLCard    = "html_card"
	SourceWooCommerce = "woocommerce"
)

// ProductPrice is a product name paired with its price and the extraction
// source that produced the pair.
type ProductPrice struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	PriceMin float64 `json:"price_min,omitempty"`
	PriceMax float64 `json:"price_max,omitempty"`
	Source   string  `json:"source"`
}

// PriceRange summarizes the observed price set. Nil when no prices were found.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// MarketplacePresence records which third-party marketplaces a site sells
// through, plus any marketplace deep-links discovered on the page.
type MarketplacePresence struct {
	Platforms     map[string]bool   `json:"platforms"`
	URLs          map[string]string `json:"urls,omitempty"`
	PlatformCount int               `json:"platform_count"`
}

// CrawlResult is the per-site outcome of one crawler invocation. It is merged
// in place from the homepage, catalog-API and deep-crawl passes, then scored,
// and never mutated afterwards.
type CrawlResult struct {
	Reachable  bool   `json:"reachable"`
	StatusCode int    `json:"status,omitempty"`
	Error      string `json:"error,omitempty"`
	HTMLLength int    `json:"html_length,omitempty"`

	Title           string `json:"title"`
	H1              string `json:"h1"`
	MetaDescription string `json:"meta_description"`
	OGImage         string `json:"og_image"`

	Products           []string            `json:"products"`
	Categories         []string            `json:"categories"`
	Prices             []float64           `json:"prices"`
	PriceRange         *PriceRange         `json:"price_range"`
	ProductsWithPrices []ProductPrice      `json:"products_with_prices"`
	SocialLinks        map[string]string   `json:"social_links"`
	TechStack          []string            `json:"tech_stack"`
	Marketplace        MarketplacePresence `json:"marketplace_presence"`

	HasEcommerce      bool `json:"has_ecommerce"`
	HasBlog           bool `json:"has_blog"`
	HasWhatsApp       bool `json:"has_whatsapp"`
	HasSSL            bool `json:"has_ssl"`
	HasCanonical      bool `json:"has_canonical"`
	HasViewport       bool `json:"has_viewport"`
	HasRobotsMeta     bool `json:"has_robots"`
	HasStructuredData bool `json:"has_structured_data"`

	WordCount     int `json:"word_count"`
	ImageCount    int `json:"image_count"`
	InternalLinks int `json:"internal_links"`
	ExternalLinks int `json:"external_links"`

	SiteScore int `json:"site_score"`
}

// ProductCount returns the number of merged products.
func (r *CrawlResult) ProductCount() int { return len(r.Products) }

// HasTech reports whether the named vendor was detected on the site.
func (r *CrawlResult) HasTech(name string) bool {
	for _, t := range r.TechStack {
		if t == name {
			return true
		}
	}
	return false
}

// PageSpeedReport is the flattened performance-audit result. A nil report
// means "no signal", never zero.
type PageSpeedReport struct {
	PerformanceScore       int    `json:"performance_score"`
	SEOScore               int    `json:"seo_score"`
	AccessibilityScore     int    `json:"accessibility_score"`
	BestPracticesScore     int    `json:"best_practices_score"`
	FirstContentfulPaint   string `json:"first_contentful_paint"`
	LargestContentfulPaint string `json:"largest_contentful_paint"`
	SpeedIndex             string `json:"speed_index"`
	IsMobileFriendly       bool   `json:"is_mobile_friendly"`
	FinalURL               string `json:"final_url"`
}
