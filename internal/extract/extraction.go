package extract

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/seasalt-intel/webintel/internal/domain"
)

// Extraction is everything one page yields. Slices keep first-seen order;
// prices are sorted ascending.
type Extraction struct {
	Meta PageMeta

	Products           []string
	Categories         []string
	Prices             []float64
	ProductsWithPrices []domain.ProductPrice
	TechStack          []string
	Marketplace        domain.MarketplacePresence

	HasStructuredData bool
}

// Page runs every extractor over one HTML document and folds JSON-LD
// product data into the name, price, and pair sets.
func Page(html string) Extraction {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Unparseable markup still carries regex-extractable signals.
		return Extraction{
			Products:    Products(html),
			Categories:  Categories(html),
			Prices:      Prices(html),
			TechStack:   TechStack(html),
			Marketplace: Marketplace(html),
		}
	}

	ex := Extraction{
		Meta:               Meta(doc, html),
		Products:           Products(html),
		Categories:         Categories(html),
		Prices:             Prices(html),
		ProductsWithPrices: ProductPrices(doc),
		TechStack:          TechStack(html),
		Marketplace:        Marketplace(html),
	}

	schema := SchemaProducts(doc)
	ex.HasStructuredData = len(schema) > 0
	ex.foldSchema(schema)

	return ex
}

// foldSchema merges structured-data products into the extracted sets.
// Names dedupe case-insensitively, prices exactly, pairs by name with the
// earlier source winning.
func (ex *Extraction) foldSchema(schema []domain.ProductPrice) {
	names := make(map[string]bool, len(ex.Products))
	for _, p := range ex.Products {
		names[strings.ToLower(p)] = true
	}
	pairNames := make(map[string]bool, len(ex.ProductsWithPrices))
	for _, p := range ex.ProductsWithPrices {
		pairNames[strings.ToLower(p.Name)] = true
	}
	prices := make(map[float64]bool, len(ex.Prices))
	for _, p := range ex.Prices {
		prices[p] = true
	}

	priceAdded := false
	for _, product := range schema {
		key := strings.ToLower(product.Name)
		if !names[key] && len(ex.Products) < maxProducts {
			names[key] = true
			ex.Products = append(ex.Products, product.Name)
		}
		if product.Price > minPlausiblePrice && product.Price < maxPlausiblePrice && !prices[product.Price] {
			prices[product.Price] = true
			ex.Prices = append(ex.Prices, product.Price)
			priceAdded = true
		}
		if product.Price > 0 && !pairNames[key] && len(ex.ProductsWithPrices) < maxPairs {
			pairNames[key] = true
			ex.ProductsWithPrices = append(ex.ProductsWithPrices, product)
		}
	}

	if priceAdded {
		sort.Float64s(ex.Prices)
		if len(ex.Prices) > maxPrices {
			ex.Prices = ex.Prices[:maxPrices]
		}
	}
}
