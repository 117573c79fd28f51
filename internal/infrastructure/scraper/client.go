package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultTimeout   = 20 * time.Second
	defaultRetryMax  = 2
	defaultBackoff   = 500 * time.Millisecond
	defaultUserAgent = "MovieScanner/1.0"
)

// StatusError reports a non-2xx HTTP status from the site.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// Client fetches pages with a per-request timeout and bounded retries with
// backoff. Only GET requests pass through here, so every retry is safe.
type Client struct {
	http      *http.Client
	userAgent string
	retryMax  int
	backoff   time.Duration
}

// NewClient wires an HTTP client; nil falls back to a timeout-only default.
// retryMax counts retries, not attempts: 2 means at most 3 requests.
func NewClient(httpClient *http.Client, userAgent string, retryMax int, backoff time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if retryMax < 0 {
		retryMax = defaultRetryMax
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &Client{
		http:      httpClient,
		userAgent: userAgent,
		retryMax:  retryMax,
		backoff:   backoff,
	}
}

// Document fetches pageURL and parses the response body into a goquery
// document. Transport errors and retryable statuses (5xx, 429) are retried up
// to retryMax times; other non-2xx statuses fail immediately as *StatusError.
func (c *Client) Document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	var lastErr error

	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt) * c.backoff
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, fmt.Errorf("fetch %s: %w", pageURL, ctx.Err())
			}
		}

		doc, err := c.fetchOnce(ctx, pageURL)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if !retryable(err) || ctx.Err() != nil {
			break
		}
	}

	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500 || statusErr.StatusCode == http.StatusTooManyRequests
	}
	// Transport-level failures (refused, reset, timeout) are worth retrying.
	return true
}
