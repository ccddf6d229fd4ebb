// Package fetcher provides the HTTP client used for all page and API
// retrievals. Fetch failures are reported as data, not errors, so callers
// can treat an unreachable site as a normal crawl outcome.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single page retrieval.
	DefaultTimeout = 12 * time.Second

	// DefaultUserAgent mimics a mobile browser so sites serve the same
	// markup the audit tooling sees.
	DefaultUserAgent = "Mozilla/5.0 (Linux; Android 10) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36"

	// maxBodyBytes caps the response body read per page.
	maxBodyBytes = 10 * 1024 * 1024
)

// Result is the outcome of a single fetch. OK is true only for 2xx
// responses; Reason explains transport-level failures.
type Result struct {
	OK         bool
	StatusCode int
	Body       string
	FinalURL   string
	Reason     string
}

// Client fetches pages with a fixed identity and timeout. Redirects are
// followed and the final URL is reported on the result.
type Client struct {
	http      *http.Client
	userAgent string
}

// New builds a fetch client. Zero values select the defaults.
func New(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch retrieves rawURL and never returns an error: transport failures
// come back as a Result with OK=false and a Reason.
func (c *Client) Fetch(ctx context.Context, rawURL string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Result{Reason: "invalid url: " + err.Error()}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/json,*/*")
	req.Header.Set("Accept-Language", "en-IN,en;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{Reason: fetchReason(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{
			StatusCode: resp.StatusCode,
			FinalURL:   resp.Request.URL.String(),
			Reason:     "read body: " + err.Error(),
		}
	}

	return Result{
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 300,
		StatusCode: resp.StatusCode,
		Body:       string(body),
		FinalURL:   resp.Request.URL.String(),
	}
}

// fetchReason strips the verbose url wrapper from transport errors.
func fetchReason(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx >= 0 && strings.HasPrefix(msg, "Get ") {
		return msg[idx+2:]
	}
	return msg
}
