package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Endpoints used by the workflows.
const (
	MapSearchURL   = "https://map.naver.com/p/api/search/instant-search"
	MapLocationURL = "https://map.naver.com/p/api/location"
	DictionaryURL  = "https://ac-dict.naver.com/%s/ac"
	FinanceURL     = "https://ac.stock.naver.com/ac"
	ShoppingURL    = "https://m.shopping.naver.com/api/modules/gnb/auto-complete"
	SearchURL      = "https://ac.search.naver.com/nx/ac"
)

// DefaultUserAgent is sent with every request. Some endpoints reject
// requests without a browser user agent.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.6 Safari/605.1.15"

// StatusError is returned for any non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Client queries Naver's public JSON endpoints.
type Client struct {
	http      *http.Client
	base      *url.URL // optional; reroutes every endpoint host
	userAgent string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithBaseURL sends every request to the scheme and host of raw while
// keeping each endpoint's path. Used to point the client at a test server.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.base = u
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout bounds every request made by the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

func New(opts ...Option) *Client {
	c := &Client{
		http:      http.DefaultClient,
		userAgent: DefaultUserAgent,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) newReq(ctx context.Context, endpoint string, params url.Values, headers map[string]string) (*http.Request, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	if c.base != nil {
		u.Scheme, u.Host = c.base.Scheme, c.base.Host
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// getJSON issues a GET and decodes the body into out. Non-2xx responses
// and malformed bodies fail; nothing is retried.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, headers map[string]string, out any) error {
	req, err := c.newReq(ctx, endpoint, params, headers)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{URL: req.URL.Redacted(), StatusCode: resp.StatusCode, Body: string(b)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}
