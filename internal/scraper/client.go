// Package scraper fetches the course catalog page over HTTP with rate
// limiting, retries, and rotating user agents.
package scraper

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/corpix/uarand"

	apperrors "github.com/brainloxlabs/coursebot-go/internal/errors"
	"github.com/brainloxlabs/coursebot-go/internal/ratelimit"
)

// catalogRequestsPerMinute keeps the scraper polite toward the catalog
// site even when refreshes overlap.
const catalogRequestsPerMinute = 30

// Client is an HTTP client for catalog scraping.
type Client struct {
	httpClient  *http.Client
	rateLimiter *ratelimit.Limiter
	maxRetries  int
}

// NewClient creates a scraper client.
func NewClient(timeout time.Duration, maxRetries int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		rateLimiter: ratelimit.NewPerMinute(catalogRequestsPerMinute),
		maxRetries:  maxRetries,
	}
}

// Get performs a GET request with rate limiting and retries.
// Caller is responsible for closing the response body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	var resp *http.Response

	err := RetryWithBackoff(ctx, c.maxRetries, 4*time.Second, func() error {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return Permanent(fmt.Errorf("failed to create request: %w", err))
		}

		req.Header.Set("User-Agent", uarand.GetRandom())
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept-Encoding", "gzip, deflate")

		resp, err = c.httpClient.Do(req)
		if err != nil {
			return apperrors.NewScrapeError(url, 0, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			_ = resp.Body.Close()

			statusErr := apperrors.NewScrapeError(url, resp.StatusCode, fmt.Errorf("unexpected status"))
			switch resp.StatusCode {
			case http.StatusTooManyRequests, http.StatusBadGateway,
				http.StatusServiceUnavailable, http.StatusGatewayTimeout:
				return statusErr
			case http.StatusNotFound, http.StatusForbidden, http.StatusUnauthorized:
				return Permanent(statusErr)
			default:
				return statusErr
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// GetDocument performs a GET request and parses the response as HTML.
func (c *Client) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress gzip: %w", err)
		}
		defer func() { _ = gzipReader.Close() }()
		reader = gzipReader
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// GetPageText fetches the URL and returns the rendered text content of
// the page body, which is what the course extractor consumes.
func (c *Client) GetPageText(ctx context.Context, url string) (string, error) {
	doc, err := c.GetDocument(ctx, url)
	if err != nil {
		return "", err
	}
	return doc.Find("body").Text(), nil
}
