package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vecquery/internal/domain"
)

const maxErrorBodyBytes = 1024

// Client executes HTTP calls against the search backend under a retry policy.
// Keep-alives are disabled: the backend may sit behind an ephemeral tunnel
// where a pooled connection goes stale between calls, so every attempt opens
// a fresh connection.
type Client struct {
	baseURL string
	hc      *http.Client
	logger  *zap.Logger
	short   Policy
	long    Policy
	onRetry func(op string)
}

// Config holds the backend transport settings.
type Config struct {
	BaseURL      string
	MaxAttempts  int
	Backoff      time.Duration
	ShortTimeout time.Duration // health, configure, fetch-results
	LongTimeout  time.Duration // submit, retrieve, rerank
	Logger       *zap.Logger
	OnRetry      func(op string) // invoked once per retry, for metrics
}

// NewClient creates a backend transport. Zero config fields get defaults.
func NewClient(cfg *Config) *Client {
	short := cfg.ShortTimeout
	if short <= 0 {
		short = DefaultShortTimeout
	}
	long := cfg.LongTimeout
	if long <= 0 {
		long = DefaultLongTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	base := Policy{MaxAttempts: cfg.MaxAttempts, Backoff: cfg.Backoff}
	shortPolicy := base
	shortPolicy.Timeout = short
	longPolicy := base
	longPolicy.Timeout = long

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		hc: &http.Client{
			Transport: &http.Transport{DisableKeepAlives: true},
		},
		logger:  logger,
		short:   shortPolicy.normalize(),
		long:    longPolicy.normalize(),
		onRetry: cfg.OnRetry,
	}
}

// call describes one logical backend request.
type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
}

// do runs the call under the policy: retry connectivity failures and
// transient statuses with linear backoff, return anything else immediately.
// The body of the last successful response is returned for decoding.
func (c *Client) do(ctx context.Context, cl call, p Policy) ([]byte, error) {
	var payload []byte
	if cl.body != nil {
		var err error
		payload, err = json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", cl.op, err)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		body, err := c.attempt(ctx, cl, p, payload)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !shouldRetry(err, p) {
			return nil, fmt.Errorf("%s: %w", cl.op, err)
		}
		if attempt == p.MaxAttempts {
			break
		}

		delay := p.delay(attempt)
		c.logger.Warn("backend call failed, retrying",
			zap.String("op", cl.op),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", p.MaxAttempts),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)
		if c.onRetry != nil {
			c.onRetry(cl.op)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%s: %w", cl.op, ctx.Err())
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("%s: %d attempts exhausted: %w", cl.op, p.MaxAttempts, lastErr)
}

// shouldRetry gates the retry loop: connectivity failures always retry,
// server statuses retry only when the policy lists them as transient.
func shouldRetry(err error, p Policy) bool {
	var se *domain.StatusError
	if errors.As(err, &se) {
		return p.retryableStatus(se.Code)
	}
	return errors.Is(err, domain.ErrConnectivity)
}

// attempt issues a single request with its own timeout.
func (c *Client) attempt(ctx context.Context, cl call, p Policy, payload []byte) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	var reqBody io.Reader = http.NoBody
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, cl.method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// DisableKeepAlives covers our side; the header makes the tunnel drop its end too.
	req.Header.Set("Connection", "close")
	req.Close = true

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrConnectivity, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, domain.NewStatusError(resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %s", domain.ErrConnectivity, err)
	}
	return body, nil
}
