// Package pagespeed wraps the Google PageSpeed Insights v5 API. Audit
// results are advisory: any failure degrades to "no report" rather than
// failing the crawl.
package pagespeed

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/seasalt-intel/webintel/internal/domain"
	"github.com/seasalt-intel/webintel/internal/logger"
)

const (
	defaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

	// Lighthouse runs are slow. The API regularly takes 30s+ per site.
	auditTimeout = 60 * time.Second

	// An SEO category score at or above this marks the page mobile friendly.
	mobileFriendlySEOScore = 0.8
)

// Config carries the audit settings.
type Config struct {
	APIKey string `mapstructure:"api_key"`
	// Endpoint overrides the Google API URL. Used by tests.
	Endpoint string `mapstructure:"endpoint"`
}

// Client runs mobile Lighthouse audits.
type Client struct {
	http     *http.Client
	endpoint string
	apiKey   string
	log      logger.Interface
}

// New builds an audit client.
func New(cfg Config, log logger.Interface) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		http:     &http.Client{Timeout: auditTimeout},
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
		log:      log.WithComponent("pagespeed"),
	}
}

// auditResponse maps the slice of the API payload the report needs. The
// API reports some failures as an error object inside a 200 response.
type auditResponse struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	LighthouseResult *struct {
		FinalURL   string `json:"finalUrl"`
		Categories struct {
			Performance   categoryScore `json:"performance"`
			SEO           categoryScore `json:"seo"`
			Accessibility categoryScore `json:"accessibility"`
			BestPractices categoryScore `json:"best-practices"`
		} `json:"categories"`
		Audits map[string]struct {
			DisplayValue string `json:"displayValue"`
		} `json:"audits"`
	} `json:"lighthouseResult"`
}

type categoryScore struct {
	Score float64 `json:"score"`
}

// Audit runs a mobile audit against target. A nil report with a non-empty
// reason means the audit was skipped or failed; the crawl proceeds without
// performance signals.
func (c *Client) Audit(ctx context.Context, target string) (*domain.PageSpeedReport, string) {
	if c.apiKey == "" {
		return nil, "no api key configured"
	}

	query := url.Values{}
	query.Set("url", target)
	query.Set("key", c.apiKey)
	query.Set("strategy", "mobile")
	for _, category := range []string{"performance", "seo", "accessibility", "best-practices"} {
		query.Add("category", category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, "build request: " + err.Error()
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "audit request failed: " + err.Error()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Sprintf("audit returned status %d", resp.StatusCode)
	}

	var payload auditResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, "decode audit payload: " + err.Error()
	}
	if payload.Error != nil {
		return nil, fmt.Sprintf("audit error payload: %s (code %d)", payload.Error.Message, payload.Error.Code)
	}
	if payload.LighthouseResult == nil {
		return nil, "audit payload missing lighthouse result"
	}

	lr := payload.LighthouseResult
	report := &domain.PageSpeedReport{
		PerformanceScore:   percent(lr.Categories.Performance.Score),
		SEOScore:           percent(lr.Categories.SEO.Score),
		AccessibilityScore: percent(lr.Categories.Accessibility.Score),
		BestPracticesScore: percent(lr.Categories.BestPractices.Score),
		IsMobileFriendly:   lr.Categories.SEO.Score >= mobileFriendlySEOScore,
		FinalURL:           lr.FinalURL,
	}
	report.FirstContentfulPaint = lr.Audits["first-contentful-paint"].DisplayValue
	report.LargestContentfulPaint = lr.Audits["largest-contentful-paint"].DisplayValue
	report.SpeedIndex = lr.Audits["speed-index"].DisplayValue

	c.log.Debug("audit complete",
		"url", target,
		"performance", report.PerformanceScore,
		"seo", report.SEOScore)

	return report, ""
}

func percent(score float64) int {
	return int(math.Round(score * 100))
}
