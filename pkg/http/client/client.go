package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

type Response struct {
	StatusCode int
	Body       []byte
}

// IsSuccess reports whether the provider answered with a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

type Interface interface {
	Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error)
}

// RequestOption decorates an outgoing request, e.g. with provider auth headers.
type RequestOption func(*http.Request)

// WithHeader sets a single request header.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// WithQuery encodes params onto the request URL, replacing any existing query.
func WithQuery(params url.Values) RequestOption {
	return func(r *http.Request) {
		r.URL.RawQuery = params.Encode()
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	headers    map[string]string
	GetFunc    func(ctx context.Context, path string, opts ...RequestOption) (*Response, error)
}

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	// Headers are sent with every request made by this client.
	Headers map[string]string
}

func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}

	if opts.RetryDelay == 0 {
		opts.RetryDelay = 200 * time.Millisecond
	}

	return &Client{
		baseURL: opts.BaseURL,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		headers:    opts.Headers,
	}
}

// BaseURL returns the prefix prepended to relative paths.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET request. Connection-level failures are retried up to
// maxRetries times; timeouts, cancellations and HTTP error statuses are not.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, path, opts...)
	}

	var fullURL string
	if c.baseURL == "" {
		fullURL = path // If no base URL, treat path as full URL
	} else {
		fullURL = c.baseURL + path
	}
	if _, err := url.Parse(fullURL); err != nil {
		return nil, fmt.Errorf("parsing url: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			log.Debug().Str("url", fullURL).Int("attempt", attempt).Err(lastErr).Msg("Retrying request")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * c.retryDelay):
			}
		}

		resp, err := c.do(ctx, fullURL, opts)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !retryable(ctx, err) {
			break
		}
	}

	return nil, lastErr
}

func (c *Client) do(ctx context.Context, fullURL string, opts []RequestOption) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			return
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return false
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
