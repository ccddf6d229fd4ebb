package crawler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seasalt-intel/webintel/internal/crawler"
	"github.com/seasalt-intel/webintel/internal/domain"
	"github.com/seasalt-intel/webintel/internal/fetcher"
	"github.com/seasalt-intel/webintel/internal/logger"
	"github.com/seasalt-intel/webintel/internal/shopify"
)

func newCrawler() *crawler.Crawler {
	fetch := fetcher.New(0, "")
	catalog := shopify.New(fetch, logger.NewNoop())
	return crawler.New(fetch, catalog, nil, logger.NewNoop())
}

func pad(html string, size int) string {
	return html + "<!-- " + strings.Repeat("x", size) + " -->"
}

func site(url string) domain.SiteTarget {
	return domain.SiteTarget{Name: "Test Store", Code: "TS", URL: url}
}

func TestCrawlCatalogYieldSkipsDeepCrawl(t *testing.T) {
	t.Parallel()

	deepHits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			deepHits++
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, pad("<html><head><title>Store</title></head><body>Add to cart</body></html>", 200))
	})
	mux.HandleFunc("/products.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"products":[
			{"title":"Pickle One","variants":[{"price":"199.00"}]},
			{"title":"Pickle Two","variants":[{"price":"299.00"}]},
			{"title":"Pickle Three","variants":[{"price":"399.00"}]},
			{"title":"Pickle Four","variants":[{"price":"249.00"}]},
			{"title":"Pickle Five","variants":[{"price":"349.00"}]},
			{"title":"Pickle Six","variants":[{"price":"449.00"}]}
		]}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	outcome := newCrawler().Crawl(context.Background(), site(srv.URL), true)

	res := outcome.Result
	require.True(t, res.Reachable)
	assert.Equal(t, 6, res.ProductCount())
	assert.Zero(t, deepHits, "catalog yield should skip the deep crawl")

	require.NotNil(t, res.PriceRange)
	assert.Equal(t, 199.0, res.PriceRange.Min)
	assert.Equal(t, 449.0, res.PriceRange.Max)
	assert.Equal(t, 324.0, res.PriceRange.Avg, "average rounds to a whole rupee")
	assert.Equal(t, "fast mode", outcome.AuditSkip)
}

func TestCrawlEmptyCatalogTriggersDeepCrawlDespiteScrapedNames(t *testing.T) {
	t.Parallel()

	deepHits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/products.json", http.NotFound)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			deepHits++
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, pad(`<html><body>
			<h3 class="product-title">Mango Pickle</h3>
			<h3 class="product-title">Lemon Pickle</h3>
			<h3 class="product-title">Garlic Pickle</h3>
			<h3 class="product-title">Amla Pickle</h3>
			<h3 class="product-title">Mixed Pickle</h3>
			<h3 class="product-title">Tomato Pickle</h3>
		</body></html>`, 100))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	outcome := newCrawler().Crawl(context.Background(), site(srv.URL), true)

	// Six scraped names do not prove catalog coverage: the catalog API
	// yielded nothing, so the sub-path fallback must still run.
	assert.Equal(t, 6, outcome.Result.ProductCount())
	assert.Positive(t, deepHits)
}

func TestCrawlDeepCrawlDedupesAcrossPages(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, pad(`<html><body><h3 class="product-title">Mango Pickle</h3></body></html>`, 100))
	})
	mux.HandleFunc("/collections/all", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, pad(`<html><body>
			<h3 class="product-title">MANGO PICKLE</h3>
			<h3 class="product-title">Lemon Pickle</h3>
		</body></html>`, 600))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	outcome := newCrawler().Crawl(context.Background(), site(srv.URL), true)

	// The recased duplicate from the sub-page must not create a second entry.
	assert.Equal(t, []string{"Mango Pickle", "Lemon Pickle"}, outcome.Result.Products)
}

func TestCrawlDeepCrawlStopsAfterThreeUsefulPages(t *testing.T) {
	t.Parallel()

	pageHits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/products.json", http.NotFound)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			fmt.Fprint(w, pad("<html><body>plain homepage</body></html>", 200))
			return
		}
		pageHits++
		fmt.Fprint(w, pad("<html><body>catalog listing</body></html>", 600))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	newCrawler().Crawl(context.Background(), site(srv.URL), true)

	assert.Equal(t, 3, pageHits)
}

func TestCrawlUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	outcome := newCrawler().Crawl(context.Background(), site(srv.URL), true)

	res := outcome.Result
	assert.False(t, res.Reachable)
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.Zero(t, res.SiteScore)
	assert.Nil(t, outcome.Speed)
}

func TestCrawlTinyBodyIsUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html></html>")
	}))
	defer srv.Close()

	outcome := newCrawler().Crawl(context.Background(), site(srv.URL), true)

	assert.False(t, outcome.Result.Reachable)
	assert.Equal(t, "homepage unusable", outcome.Result.Error)
}
