package shopify_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seasalt-intel/webintel/internal/fetcher"
	"github.com/seasalt-intel/webintel/internal/logger"
	"github.com/seasalt-intel/webintel/internal/shopify"
)

func catalogServer(t *testing.T, pages map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products.json", r.URL.Path)
		require.Equal(t, "250", r.URL.Query().Get("limit"))

		page, ok := pages[r.URL.Query().Get("page")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(page))
	}))
}

func TestFetchCatalog(t *testing.T) {
	t.Parallel()

	srv := catalogServer(t, map[string]any{
		"1": map[string]any{
			"products": []map[string]any{
				{
					"title": "Mango Pickle",
					"variants": []map[string]string{
						{"price": "299.00"},
						{"price": "499.00"},
						{"price": "0.00"},
					},
				},
				{
					"title":    "Gift Card",
					"variants": []map[string]string{{"price": "99999.00"}},
				},
			},
		},
	})
	defer srv.Close()

	client := shopify.New(fetcher.New(0, ""), logger.NewNoop())
	products := client.FetchCatalog(context.Background(), srv.URL)

	require.Len(t, products, 2)
	assert.Equal(t, "Mango Pickle", products[0].Name)
	assert.Equal(t, 299.0, products[0].PriceMin)
	assert.Equal(t, 499.0, products[0].PriceMax)
	assert.Equal(t, 299.0, products[0].Price)
	assert.Equal(t, "shopify_api", products[0].Source)

	// Out-of-window variants leave the price range at zero.
	assert.Zero(t, products[1].PriceMin)
}

func TestFetchCatalogStopsAfterShortPage(t *testing.T) {
	t.Parallel()

	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{"products":[{"title":"Only One","variants":[{"price":"150"}]}]}`)
	}))
	defer srv.Close()

	client := shopify.New(fetcher.New(0, ""), logger.NewNoop())
	products := client.FetchCatalog(context.Background(), srv.URL)

	assert.Len(t, products, 1)
	assert.Equal(t, 1, hits)
}

func TestFetchCatalogAbsent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := shopify.New(fetcher.New(0, ""), logger.NewNoop())

	assert.Empty(t, client.FetchCatalog(context.Background(), srv.URL))
}

func TestFetchCatalogBadJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html>challenge page</html>`)
	}))
	defer srv.Close()

	client := shopify.New(fetcher.New(0, ""), logger.NewNoop())

	assert.Empty(t, client.FetchCatalog(context.Background(), srv.URL))
}
