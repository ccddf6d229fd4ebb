package extract

import (
	"encoding/json"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/seasalt-intel/webintel/internal/domain"
)

// SchemaProducts parses every JSON-LD block on the page and collects
// Product nodes, walking arrays and @graph containers recursively.
// Malformed blocks are skipped.
func SchemaProducts(doc *goquery.Document) []domain.ProductPrice {
	var products []domain.ProductPrice

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, script *goquery.Selection) {
		var node any
		if err := json.Unmarshal([]byte(script.Text()), &node); err != nil {
			return
		}
		walkSchema(node, &products)
	})

	return products
}

func walkSchema(node any, out *[]domain.ProductPrice) {
	switch v := node.(type) {
	case []any:
		for _, item := range v {
			walkSchema(item, out)
		}
	case map[string]any:
		if graph, ok := v["@graph"]; ok {
			walkSchema(graph, out)
		}
		if isSchemaProduct(v["@type"]) {
			if product, ok := schemaProduct(v); ok {
				*out = append(*out, product)
			}
		}
	}
}

// isSchemaProduct handles both scalar and list @type values.
func isSchemaProduct(typ any) bool {
	switch v := typ.(type) {
	case string:
		return v == "Product"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Product" {
				return true
			}
		}
	}
	return false
}

func schemaProduct(node map[string]any) (domain.ProductPrice, bool) {
	name, _ := node["name"].(string)
	name = CleanText(name)
	if name == "" {
		return domain.ProductPrice{}, false
	}

	product := domain.ProductPrice{Name: name, Source: domain.SourceSchema}
	if price, ok := offerPrice(node["offers"]); ok {
		product.Price = price
	}
	return product, true
}

// offerPrice reads price or lowPrice from an offers node, which schema.org
// allows as either an object or a list.
func offerPrice(offers any) (float64, bool) {
	switch v := offers.(type) {
	case []any:
		for _, item := range v {
			if price, ok := offerPrice(item); ok {
				return price, true
			}
		}
	case map[string]any:
		for _, key := range []string{"price", "lowPrice"} {
			if price, ok := numericValue(v[key]); ok {
				return price, true
			}
		}
	}
	return 0, false
}

func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, v > 0
	case string:
		price, err := strconv.ParseFloat(v, 64)
		return price, err == nil && price > 0
	}
	return 0, false
}
