// Package fetch provides the polite HTTP session used to retrieve pages
// from baseball-reference.com.
//
// The fetch package spaces requests out with a token-bucket limiter,
// retries throttled and failed requests with bounded exponential backoff,
// and identifies the tool with a fixed User-Agent. Missing pages (404)
// are returned as ordinary bodies so the scraping layer can apply its own
// missing-table policy.
package fetch

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// UserAgent identifies the tool to the scraped site.
	UserAgent = "bref-batting-cli/1.0 (github.com/pfrederiksen/bref-batting)"
	// Timeout bounds a single request.
	Timeout = 30 * time.Second

	// requestInterval spaces requests out. baseball-reference blocks
	// clients that exceed roughly twenty requests per minute.
	requestInterval = 3 * time.Second

	maxRetries     = 3
	initialBackoff = 500 * time.Millisecond
)

// Client fetches pages sequentially: one request at a time, rate limited,
// with bounded retries on throttling and server errors. It implements
// bref.Fetcher.
type Client struct {
	http           *resty.Client
	limiter        *rate.Limiter
	logger         *zap.Logger
	backoffInitial time.Duration
}

// New creates a polite fetch client. A nil logger disables logging.
func New(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http: resty.New().
			SetTimeout(Timeout).
			SetHeader("User-Agent", UserAgent),
		limiter:        rate.NewLimiter(rate.Every(requestInterval), 1),
		logger:         logger,
		backoffInitial: initialBackoff,
	}
}

// retryableStatus reports whether a response status is worth retrying.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

type httpStatusError struct {
	code int
	url  string
}

func (e *httpStatusError) Error() string {
	return "unexpected status " + http.StatusText(e.code) + " fetching " + e.url
}

// Fetch retrieves the body at url, waiting for the rate limiter before
// each attempt. Statuses other than 429/5xx return the body as-is; the
// scraping layer decides what an error page means.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	attempt := 0

	operation := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		attempt++

		res, err := c.http.R().SetContext(ctx).Get(url)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			c.logger.Warn("request failed, retrying",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}
		if retryableStatus(res.StatusCode()) {
			c.logger.Warn("retryable status, backing off",
				zap.String("url", url),
				zap.Int("status", res.StatusCode()),
				zap.Int("attempt", attempt),
			)
			return &httpStatusError{code: res.StatusCode(), url: url}
		}

		if res.StatusCode() != http.StatusOK {
			c.logger.Debug("non-200 response",
				zap.String("url", url),
				zap.Int("status", res.StatusCode()),
			)
		}
		body = res.Body()
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.backoffInitial

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, maxRetries), ctx))
	if err != nil {
		return nil, err
	}
	return body, nil
}
