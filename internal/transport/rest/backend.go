package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kailas-cloud/vecquery/internal/domain/search/config"
	"github.com/kailas-cloud/vecquery/internal/domain/search/result"
)

// Typed backend endpoints. Timeout classes: configure, health and results
// fetch are short; query submission, retrieval and rerank are long.

// Configure pushes a validated configuration to the backend.
// The configure endpoint takes query parameters, not a JSON body.
func (c *Client) Configure(ctx context.Context, cfg config.Config) error {
	q := url.Values{}
	q.Set("docCorrelation", strconv.FormatFloat(cfg.DocCorrelation(), 'f', -1, 64))
	q.Set("recallNumber", strconv.Itoa(cfg.RecallNumber()))
	q.Set("retrievalWeight", string(cfg.RetrievalWeight()))
	q.Set("mixedPercentage", strconv.Itoa(cfg.MixedPercentage()))
	q.Set("rerankEnabled", strconv.FormatBool(cfg.RerankEnabled()))

	_, err := c.do(ctx, call{
		op:     "configure",
		method: http.MethodPost,
		path:   "/search/configure",
		query:  q,
	}, c.short)
	return err
}

// SubmitQuery registers the query on the backend. Must precede Retrieve.
func (c *Client) SubmitQuery(ctx context.Context, query string, keywords []string) error {
	_, err := c.do(ctx, call{
		op:     "submit",
		method: http.MethodPost,
		path:   "/query/submit",
		body:   submitRequest{Query: query, Keywords: keywords},
	}, c.long)
	return err
}

// Retrieve runs the retrieval stage for the previously submitted query.
func (c *Client) Retrieve(ctx context.Context) error {
	_, err := c.do(ctx, call{
		op:     "retrieve",
		method: http.MethodPost,
		path:   "/query/retrieve",
	}, c.long)
	return err
}

// Rerank reorders retrieved results with the backend's rerank model.
func (c *Client) Rerank(ctx context.Context) error {
	_, err := c.do(ctx, call{
		op:     "rerank",
		method: http.MethodPost,
		path:   "/search/rerank",
	}, c.long)
	return err
}

// FetchResults returns the prepared result set in relevance order.
func (c *Client) FetchResults(ctx context.Context) ([]result.Result, error) {
	body, err := c.do(ctx, call{
		op:     "results",
		method: http.MethodGet,
		path:   "/search/results",
	}, c.short)
	if err != nil {
		return nil, err
	}

	var resp resultsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("results: decode response: %w", err)
	}
	return resp.toDomain(), nil
}

// Health issues a single liveness probe: short timeout, no retries.
// Probe failures are expected and advisory only.
func (c *Client) Health(ctx context.Context) error {
	probe := c.short
	probe.MaxAttempts = 1
	_, err := c.do(ctx, call{
		op:     "health",
		method: http.MethodGet,
		path:   "/health",
	}, probe)
	return err
}
