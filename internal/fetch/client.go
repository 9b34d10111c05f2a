// Package fetch issues bounded outbound requests with a uniform error
// taxonomy. Every upstream call in the service goes through one gateway
// here, so instrumentation and request logging see all traffic. There are
// no retries; resilience against flaky publishers comes from the cache's
// freshness window.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"actcal/internal/metrics"
)

const (
	// UserAgent is sent when the request carries no identifying header.
	// Browser-like on purpose; a few publisher CDNs reject unknown clients.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DefaultTimeout bounds one upstream round trip, headers to body.
	DefaultTimeout = 12 * time.Second

	snippetLimit = 200
)

// Client is the outbound HTTP gateway shared by all pipelines. Metrics and
// the request log may be nil; both degrade to no-ops.
type Client struct {
	httpClient *http.Client
	metrics    *metrics.Metrics
	requestLog *RequestLog
}

// NewClient builds a client with the given per-request timeout. A zero or
// negative timeout selects DefaultTimeout.
func NewClient(timeout time.Duration, m *metrics.Metrics, requestLog *RequestLog) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
		requestLog: requestLog,
	}
}

// fetch is the single gateway for every outbound call. label is a short
// human-readable endpoint name used in metrics and log entries (e.g.
// "genshin.list"). Caller is responsible for closing the returned body.
func (c *Client) fetch(ctx context.Context, label, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", UserAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		status := "error"
		if isTimeout(err) {
			status = "timeout"
			err = &TimeoutError{URL: rawURL, Limit: c.httpClient.Timeout, Err: err}
		}
		c.metrics.ObserveUpstream(label, status, duration)
		c.requestLog.Append(label, rawURL, 0, duration, err)
		return nil, err
	}

	c.metrics.ObserveUpstream(label, strconv.Itoa(resp.StatusCode), duration)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet := readSnippet(resp.Body)
		resp.Body.Close()
		statusErr := &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Snippet: snippet}
		c.requestLog.Append(label, rawURL, resp.StatusCode, duration, statusErr)
		return nil, statusErr
	}
	c.requestLog.Append(label, rawURL, resp.StatusCode, duration, nil)
	return resp, nil
}

// JSON fetches rawURL and decodes the response body into out.
func (c *Client) JSON(ctx context.Context, label, rawURL string, out any) error {
	resp, err := c.fetch(ctx, label, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", label, err)
	}
	return nil
}

// Text fetches rawURL and returns the response body as a string.
func (c *Client) Text(ctx context.Context, label, rawURL string) (string, error) {
	resp, err := c.fetch(ctx, label, rawURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s response: %w", label, err)
	}
	return string(body), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func readSnippet(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, snippetLimit))
	if err != nil {
		return ""
	}
	return string(b)
}
