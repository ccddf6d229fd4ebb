package pagespeed_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seasalt-intel/webintel/internal/logger"
	"github.com/seasalt-intel/webintel/internal/pagespeed"
)

const auditPayload = `{
  "lighthouseResult": {
    "finalUrl": "https://picklepalace.example/",
    "categories": {
      "performance": {"score": 0.85},
      "seo": {"score": 0.92},
      "accessibility": {"score": 0.78},
      "best-practices": {"score": 0.645}
    },
    "audits": {
      "first-contentful-paint": {"displayValue": "1.2 s"},
      "largest-contentful-paint": {"displayValue": "2.8 s"},
      "speed-index": {"displayValue": "3.1 s"}
    }
  }
}`

func TestAudit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "mobile", r.URL.Query().Get("strategy"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.ElementsMatch(t,
			[]string{"performance", "seo", "accessibility", "best-practices"},
			r.URL.Query()["category"])
		fmt.Fprint(w, auditPayload)
	}))
	defer srv.Close()

	client := pagespeed.New(pagespeed.Config{APIKey: "test-key", Endpoint: srv.URL}, logger.NewNoop())
	report, reason := client.Audit(context.Background(), "https://picklepalace.example")

	require.Empty(t, reason)
	require.NotNil(t, report)
	assert.Equal(t, 85, report.PerformanceScore)
	assert.Equal(t, 92, report.SEOScore)
	assert.Equal(t, 78, report.AccessibilityScore)
	assert.Equal(t, 65, report.BestPracticesScore)
	assert.True(t, report.IsMobileFriendly)
	assert.Equal(t, "1.2 s", report.FirstContentfulPaint)
	assert.Equal(t, "https://picklepalace.example/", report.FinalURL)
}

func TestAuditNoKey(t *testing.T) {
	t.Parallel()

	client := pagespeed.New(pagespeed.Config{}, logger.NewNoop())
	report, reason := client.Audit(context.Background(), "https://example.com")

	assert.Nil(t, report)
	assert.Equal(t, "no api key configured", reason)
}

func TestAuditErrorPayloadIsNoData(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"error":{"code":500,"message":"Lighthouse returned error: ERRORED_DOCUMENT_REQUEST"}}`)
	}))
	defer srv.Close()

	client := pagespeed.New(pagespeed.Config{APIKey: "k", Endpoint: srv.URL}, logger.NewNoop())
	report, reason := client.Audit(context.Background(), "https://example.com")

	assert.Nil(t, report)
	assert.Contains(t, reason, "ERRORED_DOCUMENT_REQUEST")
}

func TestAuditMissingLighthouseResultIsNoData(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	client := pagespeed.New(pagespeed.Config{APIKey: "k", Endpoint: srv.URL}, logger.NewNoop())
	report, reason := client.Audit(context.Background(), "https://example.com")

	assert.Nil(t, report)
	assert.Contains(t, reason, "missing lighthouse result")
}

func TestAuditAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := pagespeed.New(pagespeed.Config{APIKey: "k", Endpoint: srv.URL}, logger.NewNoop())
	report, reason := client.Audit(context.Background(), "https://example.com")

	assert.Nil(t, report)
	assert.Contains(t, reason, "429")
}
