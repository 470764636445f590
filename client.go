package vecquery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/vecquery/internal/domain/search/config"
	"github.com/kailas-cloud/vecquery/internal/domain/search/result"
	"github.com/kailas-cloud/vecquery/internal/domain/search/weight"
	"github.com/kailas-cloud/vecquery/internal/session"
	"github.com/kailas-cloud/vecquery/internal/transport/rest"
	configureuc "github.com/kailas-cloud/vecquery/internal/usecase/configure"
	healthuc "github.com/kailas-cloud/vecquery/internal/usecase/health"
	searchuc "github.com/kailas-cloud/vecquery/internal/usecase/search"
)

// Внутренние интерфейсы для подмены в тестах.
type configUseCase interface {
	Current() config.Config
	Apply(ctx context.Context, p config.Params) error
}

type searchUseCase interface {
	Search(ctx context.Context, query string, keywords ...string) ([]result.Result, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the vecquery SDK entry point. It owns one search session for
// its lifetime; all state lives in memory.
type Client struct {
	session   *session.Session
	configSvc configUseCase
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a vecquery Client for the configured backend.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.baseURL == "" {
		return nil, errors.New("vecquery: backend base URL required (use WithBaseURL)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	backend := rest.NewClient(&rest.Config{
		BaseURL:      cfg.baseURL,
		MaxAttempts:  cfg.maxAttempts,
		Backoff:      cfg.backoff,
		ShortTimeout: cfg.shortTimeout,
		LongTimeout:  cfg.longTimeout,
		Logger:       cfg.logger,
		OnRetry:      obs.retry,
	})

	sess := session.New()
	if cfg.defaultConfig != nil {
		p := cfg.defaultConfig
		seeded, err := config.New(config.Params{
			DocCorrelation:  p.DocCorrelation,
			RecallNumber:    p.RecallNumber,
			Weight:          weight.Weight(p.RetrievalWeight),
			MixedPercentage: p.MixedPercentage,
			RerankEnabled:   p.RerankEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("vecquery: default configuration: %w", err)
		}
		sess.SetConfig(seeded)
	}

	return &Client{
		session:   sess,
		configSvc: configureuc.New(backend, sess, cfg.logger),
		searchSvc: searchuc.New(backend, sess, cfg.logger),
		healthSvc: healthuc.New(backend, sess, cfg.logger),
		obs:       obs,
	}, nil
}

// Config returns the configuration service.
func (c *Client) Config() *ConfigService {
	return &ConfigService{svc: c.configSvc, obs: c.obs}
}

// Search runs the full search workflow for one query and returns results in
// relevance order. Exactly one search or configuration update runs at a
// time; an overlapping call returns ErrOperationInFlight.
func (c *Client) Search(ctx context.Context, query string, keywords ...string) (results []SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	found, err := c.searchSvc.Search(ctx, query, keywords...)
	if err != nil {
		return nil, err
	}
	return fromDomainResults(found), nil
}

// Health probes backend liveness once. The result is advisory: it updates
// the session's connectivity indicator and never gates other operations.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	return HealthStatus{Connected: report.Connected, Reason: report.Reason}
}

// Snapshot returns a read-only view of the session for presentation.
func (c *Client) Snapshot() SessionSnapshot {
	connected, reason := c.session.Connected()
	return SessionSnapshot{
		Config:           fromDomainConfig(c.session.Config()),
		LastQuery:        c.session.LastQuery(),
		Results:          fromDomainResults(c.session.Results()),
		Warning:          c.session.Warning(),
		Err:              c.session.LastError(),
		Connected:        connected,
		DisconnectReason: reason,
	}
}
