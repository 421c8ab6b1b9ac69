// Package feed provides the default HTTP JSON feed adapter.
// Site-specific scraping stays out of the pipeline; anything that can
// serve this JSON shape can act as a feed
package feed

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "flatfinder/internal/platform/errors"
	listdom "flatfinder/internal/services/listings/domain"
)

const (
	defaultTimeout = 15 * time.Second
	defaultUA      = "flatfinder-pipeline"
	maxBodyBytes   = 16 << 20
)

// Options configures the Client
type Options struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
}

// Client fetches a JSON search feed over HTTP
type Client struct {
	url string
	ua  string
	hc  *http.Client
}

// New constructs a feed client
func New(opts Options) *Client {
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUA
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url: opts.URL,
		ua:  ua,
		hc:  &http.Client{Timeout: timeout},
	}
}

// Name implements domain.FeedPort
func (c *Client) Name() string { return "http-json" }

// Poll implements domain.FeedPort. One GET, no internal retry; the ingest
// runner owns the backoff policy
func (c *Client) Poll(ctx context.Context) ([]listdom.RawListing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "build feed request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.ua)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "feed unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, perr.Newf(perr.ErrorCodeTooManyRequests, "feed rate limited")
	case resp.StatusCode >= 500:
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "feed returned %d", resp.StatusCode)
	default:
		return nil, perr.Newf(perr.ErrorCodeUnknown, "feed returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "read feed body")
	}

	var batch []listdom.RawListing
	if err := json.Unmarshal(body, &batch); err != nil {
		// some feeds wrap the array
		var wrapped struct {
			Listings []listdom.RawListing `json:"listings"`
		}
		if err2 := json.Unmarshal(body, &wrapped); err2 != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, "decode feed body")
		}
		batch = wrapped.Listings
	}
	return batch, nil
}
