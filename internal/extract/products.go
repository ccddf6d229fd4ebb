// Package extract pulls structured competitive signals out of raw storefront
// HTML: product names, prices, categories, vendor fingerprints, marketplace
// links, and page metadata.
package extract

import (
	"regexp"
	"strings"
)

const maxProducts = 100

// Product name patterns, ordered roughly by platform prevalence. Each
// pattern captures the inner text of a product title element.
var productPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)class=["'][^"']*product[-_]title[^"']*["'][^>]*>([^<]+)<`),
	regexp.MustCompile(`(?i)class=["'][^"']*card[-_]title[^"']*["'][^>]*>([^<]+)<`),
	regexp.MustCompile(`(?i)class=["'][^"']*woocommerce-loop-product__title[^"']*["'][^>]*>([^<]+)<`),
	regexp.MustCompile(`(?i)data-product-name=["']([^"']+)["']`),
	regexp.MustCompile(`(?i)itemprop=["']name["'][^>]*>([^<]+)<`),
	regexp.MustCompile(`(?i)class=["'][^"']*grid-product__title[^"']*["'][^>]*>([^<]+)<`),
	regexp.MustCompile(`(?i)class=["'][^"']*product-item__title[^"']*["'][^>]*>([^<]+)<`),
	regexp.MustCompile(`(?i)<img[^>]+class=["'][^"']*product[^"']*["'][^>]*alt=["']([^"']+)["']`),
}

// Navigation labels that product title selectors routinely misfire on.
var navLabelPattern = regexp.MustCompile(`(?i)^(home|about|contact|blog|faq|login|cart|menu|search|shop|close)`)

var numericOnlyPattern = regexp.MustCompile(`^\d+$`)

// Products extracts product names from raw HTML. Names are cleaned,
// deduplicated case-insensitively in first-seen order, and capped.
func Products(html string) []string {
	var names []string
	seen := make(map[string]bool)

	for _, pattern := range productPatterns {
		for _, m := range pattern.FindAllStringSubmatch(html, -1) {
			name := CleanText(m[1])
			if !validProductName(name) {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			names = append(names, name)
			if len(names) >= maxProducts {
				return names
			}
		}
	}

	return names
}

func validProductName(name string) bool {
	if len(name) <= 3 || len(name) >= 100 {
		return false
	}
	if navLabelPattern.MatchString(name) {
		return false
	}
	return !numericOnlyPattern.MatchString(name)
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// CleanText decodes the common HTML entities storefront themes emit and
// collapses whitespace.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
