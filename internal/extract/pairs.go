package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/seasalt-intel/webintel/internal/domain"
)

const maxPairs = 100

// ProductPrices walks product card blocks and pairs each card's name with
// the first price found inside the same block. Pairing is positional, so a
// card listing several prices attributes the first one to the product.
func ProductPrices(doc *goquery.Document) []domain.ProductPrice {
	var pairs []domain.ProductPrice
	seen := make(map[string]bool)

	add := func(name string, price float64, source string) {
		name = CleanText(name)
		if len(name) < 3 || len(name) > 80 {
			return
		}
		key := strings.ToLower(name)
		if seen[key] || len(pairs) >= maxPairs {
			return
		}
		seen[key] = true
		pairs = append(pairs, domain.ProductPrice{Name: name, Price: price, Source: source})
	}

	doc.Find("div, article, li").Each(func(_ int, block *goquery.Selection) {
		class, _ := block.Attr("class")
		if !strings.Contains(strings.ToLower(class), "product") {
			return
		}

		name := cardName(block)
		if name == "" {
			return
		}

		html, err := block.Html()
		if err != nil {
			return
		}
		price, ok := firstPrice(html)
		if !ok {
			return
		}
		add(name, price, domain.SourceHTMLCard)
	})

	doc.Find(".woocommerce-loop-product__title").Each(func(_ int, title *goquery.Selection) {
		block := title.Closest("li, div")
		if block.Length() == 0 {
			return
		}
		html, err := block.Html()
		if err != nil {
			return
		}
		price, ok := firstPrice(html)
		if !ok {
			return
		}
		add(title.Text(), price, domain.SourceWooCommerce)
	})

	return pairs
}

// cardName picks the most title-like text inside a product card.
func cardName(block *goquery.Selection) string {
	candidates := []string{
		`h2[class*="title"], h3[class*="title"], h4[class*="title"]`,
		`a[class*="title"], span[class*="title"], div[class*="title"]`,
		`h2[class*="name"], h3[class*="name"], h4[class*="name"]`,
		`a[class*="name"], span[class*="name"], div[class*="name"]`,
		`[itemprop="name"]`,
		"h2, h3, h4",
	}
	for _, selector := range candidates {
		text := CleanText(block.Find(selector).First().Text())
		if len(text) >= 3 && len(text) <= 80 {
			return text
		}
	}
	return ""
}

// firstPrice returns the first plausible price in an HTML fragment.
func firstPrice(html string) (float64, bool) {
	for _, pattern := range pricePatterns {
		if m := pattern.FindStringSubmatch(html); m != nil {
			if price, ok := ParsePrice(m[1]); ok {
				return price, true
			}
		}
	}
	return 0, false
}
