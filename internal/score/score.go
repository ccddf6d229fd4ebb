// Package score turns a crawl result and optional performance audit into a
// single 0-100 site score.
package score

import (
	"math"

	"github.com/seasalt-intel/webintel/internal/domain"
)

// Score computes the composite site score. An unreachable site scores zero.
//
// The score is earned points over attainable points, normalized to 100.
// The performance bucket only counts when an audit ran, and the commerce
// bucket only counts when the site shows at least one commerce signal, so
// brochure sites are not punished for having no catalog.
func Score(res *domain.CrawlResult, speed *domain.PageSpeedReport) int {
	if res == nil || !res.Reachable {
		return 0
	}

	earned, max := 0, 0

	if speed != nil {
		earned += roundQuarter(speed.PerformanceScore)
		earned += roundQuarter(speed.SEOScore)
		max += 50
	}

	if commerceSignals(res) {
		if res.HasEcommerce {
			earned += 8
		}
		catalog := int(math.Round(float64(res.ProductCount()) / 5))
		if catalog > 4 {
			catalog = 4
		}
		earned += catalog
		if res.PriceRange != nil {
			earned += 4
		}
		if res.HasStructuredData {
			earned += 4
		}
		max += 20
	}

	if res.HasBlog {
		earned += 5
	}
	if res.SocialLinks["instagram"] != "" {
		earned += 3
	}
	if res.SocialLinks["facebook"] != "" {
		earned += 2
	}
	if res.SocialLinks["youtube"] != "" {
		earned += 3
	}
	if res.HasWhatsApp {
		earned += 2
	}
	max += 15

	if res.HasSSL {
		earned += 5
	}
	if res.HasViewport {
		earned += 3
	}
	if res.HasCanonical {
		earned += 3
	}
	if res.HasTech("Google Analytics") {
		earned += 2
	}
	if res.HasTech("Facebook Pixel") {
		earned += 2
	}
	max += 15

	if max == 0 {
		return 0
	}
	return int(math.Round(100 * float64(earned) / float64(max)))
}

func commerceSignals(res *domain.CrawlResult) bool {
	return res.HasEcommerce || res.ProductCount() > 0 ||
		res.PriceRange != nil || res.HasStructuredData
}

// roundQuarter weights a 0-100 category score at a quarter of the total.
func roundQuarter(score int) int {
	return int(math.Round(float64(score) * 0.25))
}
