// Package discord delivers formatted notifications to a Discord webhook.
// Transient failures are retried a bounded number of times with linearly
// increasing backoff; callers never retry on their own.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gabapcia/solrelay/internal/notify"
	"github.com/gabapcia/solrelay/internal/pkg/logger"
	"github.com/gabapcia/solrelay/internal/pkg/resilience/retry"
	transporthttp "github.com/gabapcia/solrelay/internal/pkg/transport/http"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrUnexpectedStatus indicates the webhook endpoint answered with a
// non-success status code.
var ErrUnexpectedStatus = errors.New("unexpected webhook response status")

// Client posts notification messages to one Discord webhook URL.
type Client struct {
	webhookURL string
	httpClient *retryablehttp.Client
	retrier    retry.Retry
}

var _ notify.DeliverySender = (*Client)(nil)

type config struct {
	timeout  time.Duration
	attempts uint
	delay    time.Duration
}

// Option configures the Discord client.
type Option func(*config)

// WithTimeout bounds each individual webhook request. Default: 15 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithAttempts sets the total delivery attempts per message. Default: 3.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithRetryDelay sets the base delay of the linear backoff between
// attempts. Default: 2 seconds.
func WithRetryDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// New creates a Discord webhook client. Retrying is handled by an outer
// linear-backoff retrier, so the underlying HTTP client performs no retries
// of its own.
func New(webhookURL string, opts ...Option) *Client {
	cfg := config{
		timeout:  15 * time.Second,
		attempts: 3,
		delay:    2 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Client{
		webhookURL: webhookURL,
		httpClient: transporthttp.NewClient(
			transporthttp.WithTimeout(cfg.timeout),
			transporthttp.WithRetryMax(0),
		),
		retrier: retry.New(
			retry.WithAttempts(cfg.attempts),
			retry.WithDelay(cfg.delay),
			retry.WithLinearBackoff(),
		),
	}
}

// Deliver implements notify.DeliverySender. The wallet address is used only
// for logging context.
func (c *Client) Deliver(ctx context.Context, wallet string, msg notify.Message) error {
	body, err := json.Marshal(webhookBody(msg))
	if err != nil {
		return fmt.Errorf("encoding webhook body: %w", err)
	}

	err = c.retrier.Execute(ctx, func() error {
		return c.post(ctx, body)
	})
	if err != nil {
		return fmt.Errorf("posting to discord webhook: %w", err)
	}

	logger.Debug(ctx, "notification delivered", "wallet", wallet, "title", msg.Title)
	return nil
}

// post performs one webhook request, treating any non-2xx answer as an error.
func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode)
	}
	return nil
}

// Ping implements notify.DeliverySender. Discord answers a plain GET on a
// valid webhook URL with the webhook's metadata.
func (c *Client) Ping(ctx context.Context) bool {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.webhookURL, nil)
	if err != nil {
		return false
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	return res.StatusCode == http.StatusOK
}
