// Package shopify reads public Shopify product catalogs through the
// unauthenticated products.json endpoint.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/seasalt-intel/webintel/internal/domain"
	"github.com/seasalt-intel/webintel/internal/fetcher"
	"github.com/seasalt-intel/webintel/internal/logger"
)

const (
	pageSize = 250
	maxPages = 3

	// Variant price sanity window, exclusive.
	minVariantPrice = 0
	maxVariantPrice = 50000
)

// catalogPage mirrors the products.json payload.
type catalogPage struct {
	Products []struct {
		Title    string `json:"title"`
		Variants []struct {
			Price string `json:"price"`
		} `json:"variants"`
	} `json:"products"`
}

// Client pages through a store's public catalog.
type Client struct {
	fetch *fetcher.Client
	log   logger.Interface
}

// New builds a catalog client sharing the crawler's fetch identity.
func New(fetch *fetcher.Client, log logger.Interface) *Client {
	return &Client{fetch: fetch, log: log.WithComponent("shopify")}
}

// FetchCatalog pages through baseURL's products.json, up to three pages of
// 250 products. It stops at the first non-OK response, unparseable page, or
// short page. Absence of a catalog is normal and yields an empty slice.
func (c *Client) FetchCatalog(ctx context.Context, baseURL string) []domain.ProductPrice {
	var products []domain.ProductPrice

	for page := 1; page <= maxPages; page++ {
		url := fmt.Sprintf("%s/products.json?limit=%d&page=%d", baseURL, pageSize, page)
		res := c.fetch.Fetch(ctx, url)
		if !res.OK {
			break
		}

		var payload catalogPage
		if err := json.Unmarshal([]byte(res.Body), &payload); err != nil {
			break
		}
		if len(payload.Products) == 0 {
			break
		}

		for _, product := range payload.Products {
			entry := domain.ProductPrice{
				Name:   product.Title,
				Source: domain.SourceShopifyAPI,
			}
			for _, variant := range product.Variants {
				price, ok := parseVariantPrice(variant.Price)
				if !ok {
					continue
				}
				if entry.PriceMin == 0 || price < entry.PriceMin {
					entry.PriceMin = price
				}
				if price > entry.PriceMax {
					entry.PriceMax = price
				}
			}
			entry.Price = entry.PriceMin
			products = append(products, entry)
		}

		c.log.Debug("catalog page fetched", "page", page, "products", len(payload.Products))
		if len(payload.Products) < pageSize {
			break
		}
	}

	return products
}

func parseVariantPrice(raw string) (float64, bool) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price <= minVariantPrice || price >= maxVariantPrice {
		return 0, false
	}
	return price, true
}
