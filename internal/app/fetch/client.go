// Package fetch wraps one shared pooled http.Client with bounded retries on
// transient upstream failures: network errors, 5xx responses, and JSON bodies
// that fail to parse after an otherwise successful request. Permanent 4xx
// responses are returned immediately.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrRetriesExhausted is returned after all attempts have failed. The last
// underlying cause is wrapped and reachable via errors.Is/errors.As.
var ErrRetriesExhausted = errors.New("retries exhausted")

// StatusError reports a non-2xx response from the upstream.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status code: %d for url %s", e.StatusCode, e.URL)
}

// Retryable reports whether the status counts as a transient server error.
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// DecodeError reports a body that is valid JSON but does not fit the target
// type. It is permanent; the body is retained so callers can log a snippet
// of what the upstream actually sent.
type DecodeError struct {
	URL  string
	Body []byte
	err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unmarshal response from %s: %v", e.URL, e.err)
}

func (e *DecodeError) Unwrap() error { return e.err }

// transientError marks a failure as eligible for retry.
type transientError struct {
	err error
}

func (e *transientError) Error() string   { return e.err.Error() }
func (e *transientError) Unwrap() error   { return e.err }
func (e *transientError) Retryable() bool { return true }

func isRetryable(err error) bool {
	var r interface{ Retryable() bool }
	if errors.As(err, &r) {
		return r.Retryable()
	}
	return false
}

// RetryPolicy bounds the retry loop. The delay between attempts starts at
// BaseDelay and is multiplied by Multiplier after every attempt, capped at
// MaxDelay.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		Multiplier:  2,
		MaxDelay:    10 * time.Second,
	}
}

type Client struct {
	httpClient *http.Client
	policy     RetryPolicy
	logger     *zap.Logger
}

// NewClient creates a fetcher on top of httpClient. Pass nil to use the
// default pooled client shared by all adapters for the process lifetime.
func NewClient(httpClient *http.Client, policy RetryPolicy) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return &Client{
		httpClient: httpClient,
		policy:     policy,
		logger:     zap.L(),
	}
}

// Fetch performs a GET and returns the response body, retrying transient
// failures per the client's policy.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	return doWithRetry(ctx, c.policy, c.logger, func() ([]byte, error) {
		return c.fetchOnce(ctx, url)
	})
}

// FetchJSON fetches url and unmarshals the body into v. A body that is not
// valid JSON counts as a transient failure and is retried; a body that is
// valid JSON but does not fit v is returned as a permanent *DecodeError.
func (c *Client) FetchJSON(ctx context.Context, url string, v any) error {
	body, err := doWithRetry(ctx, c.policy, c.logger, func() ([]byte, error) {
		body, err := c.fetchOnce(ctx, url)
		if err != nil {
			return nil, err
		}
		if !json.Valid(body) {
			return nil, &transientError{fmt.Errorf("invalid json from %s", url)}
		}
		return body, nil
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{URL: url, Body: body, err: err}
	}
	return nil
}

func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &transientError{err}
	}
	defer resp.Body.Close()

	// 3xx only surfaces here when the client did not follow the redirect;
	// treat anything below 400 as success.
	if resp.StatusCode >= 400 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transientError{err}
	}
	return body, nil
}

// doWithRetry runs op up to policy.MaxAttempts times, sleeping with
// exponential backoff between attempts. Non-retryable failures are returned
// immediately; exhausting the attempts returns ErrRetriesExhausted wrapping
// the last cause.
func doWithRetry[T any](ctx context.Context, policy RetryPolicy, logger *zap.Logger, op func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	delay := policy.BaseDelay
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * policy.Multiplier)
			if delay > policy.MaxDelay {
				delay = policy.MaxDelay
			}
		}

		result, err := op()
		if err == nil {
			return result, nil
		}
		if !isRetryable(err) {
			return zero, err
		}

		lastErr = err
		if attempt < policy.MaxAttempts {
			logger.Warn("Transient fetch failure. Will retry.",
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", policy.MaxAttempts),
				zap.Error(err))
		}
	}

	return zero, fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr)
}
