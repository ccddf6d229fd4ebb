package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	maxPrices = 200

	// Price sanity window, exclusive on both ends. Values outside it are
	// almost always order totals, pin codes, or years.
	minPlausiblePrice = 10
	maxPlausiblePrice = 50000
)

// Price patterns: currency-prefixed amounts, data attributes, and inline
// JSON price fields.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:₹|Rs\.?\s*|INR\s*)([0-9,]+(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`data-price=["']([0-9.]+)["']`),
	regexp.MustCompile(`"price"\s*:\s*"?([0-9.]+)"?`),
}

// Prices extracts plausible prices from raw HTML, deduplicated and sorted
// ascending.
func Prices(html string) []float64 {
	var prices []float64
	seen := make(map[float64]bool)

	for _, pattern := range pricePatterns {
		for _, m := range pattern.FindAllStringSubmatch(html, -1) {
			price, ok := ParsePrice(m[1])
			if !ok || seen[price] {
				continue
			}
			seen[price] = true
			prices = append(prices, price)
		}
	}

	sort.Float64s(prices)
	if len(prices) > maxPrices {
		prices = prices[:maxPrices]
	}
	return prices
}

// ParsePrice parses a captured amount, tolerating thousands separators,
// and reports whether it falls in the plausible window.
func ParsePrice(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if price <= minPlausiblePrice || price >= maxPlausiblePrice {
		return 0, false
	}
	return price, true
}
