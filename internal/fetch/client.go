// Package fetch retrieves upstream files over HTTP, one request at a time.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const DefaultUserAgent = "Go-NE-Downloader"

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s for %s", e.Code, http.StatusText(e.Code), e.URL)
}

type Config struct {
	BaseURL   string        //source names are appended verbatim
	UserAgent string        //empty means DefaultUserAgent
	Timeout   time.Duration //zero means no client timeout
	Delay     time.Duration //minimum spacing between two requests, zero disables the pause
}

// Client issues GET requests against a base URL and pauses for a fixed delay after each one.
// The first request is never delayed. A Client is not safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
}

func NewClient(config Config) *Client {
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	limit := rate.Inf
	if config.Delay > 0 {
		limit = rate.Every(config.Delay)
	}
	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		baseURL:    config.BaseURL,
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// URL yields the absolute location of an upstream file.
func (c *Client) URL(source string) string {
	return c.baseURL + source
}

// Get waits for its slot, then downloads the full body of the given upstream file.
// Cancelling the context aborts both the wait and the transfer.
func (c *Client) Get(ctx context.Context, source string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	defer c.cooldown()

	target := c.URL(source)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: target, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body of %s failed: %w", target, err)
	}
	return body, nil
}

// cooldown empties the limiter so the next request waits the full delay measured from now,
// however long the previous transfer took.
func (c *Client) cooldown() {
	c.limiter = rate.NewLimiter(c.limiter.Limit(), 1)
	c.limiter.Allow()
}
