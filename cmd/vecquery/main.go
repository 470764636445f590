package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	vecquery "github.com/kailas-cloud/vecquery"
	"github.com/kailas-cloud/vecquery/internal/config"
	logpkg "github.com/kailas-cloud/vecquery/internal/logger"
	"github.com/kailas-cloud/vecquery/internal/version"
)

func main() {
	app := &cli.App{
		Name:    "vecquery",
		Usage:   "Query console for the vector-search backend",
		Version: fmt.Sprintf("%s (%s, %s)", version.Version, version.Commit, version.Date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Backend base URL (overrides config file)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "health",
				Usage:  "Probe backend liveness (advisory, single attempt)",
				Action: healthCommand,
			},
			{
				Name:   "configure",
				Usage:  "Apply a search configuration to the backend",
				Action: configureCommand,
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  "doc-correlation",
						Usage: "Minimum correlation threshold [0.0, 1.0]",
						Value: 0.85,
					},
					&cli.IntFlag{
						Name:  "recall-number",
						Usage: "Number of documents to retrieve [1, 50]",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "retrieval-weight",
						Usage: "Retrieval weight: Mixed, Semantic or Keyword",
						Value: "Mixed",
					},
					&cli.IntFlag{
						Name:  "mixed-percentage",
						Usage: "Semantic/keyword balance [0, 100], Mixed weight only",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "rerank",
						Usage: "Enable the rerank model",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Run the search workflow for a query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "keyword",
						Usage: "Optional keyword hint (repeatable)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "vecquery:", err)
		os.Exit(1)
	}
}

// setup loads config, builds the logger and the SDK client, and starts the
// metrics listener when configured. The returned shutdown func stops it.
func setup(c *cli.Context) (*vecquery.Client, *zap.Logger, func(), error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if u := c.String("base-url"); u != "" {
		cfg.Backend.BaseURL = u
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create logger: %w", err)
	}

	logger.Info("Starting vecquery",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.Int("retry_max_attempts", cfg.Retry.MaxAttempts),
	)

	reg := prometheus.NewRegistry()
	client, err := vecquery.New(
		vecquery.WithBaseURL(cfg.Backend.BaseURL),
		vecquery.WithRetry(cfg.Retry.MaxAttempts, time.Duration(cfg.Retry.BackoffMs)*time.Millisecond),
		vecquery.WithTimeouts(
			time.Duration(cfg.Backend.ShortTimeoutSec)*time.Second,
			time.Duration(cfg.Backend.LongTimeoutSec)*time.Second,
		),
		vecquery.WithDefaultConfig(vecquery.ConfigParams{
			DocCorrelation:  *cfg.Search.DocCorrelation,
			RecallNumber:    cfg.Search.RecallNumber,
			RetrievalWeight: vecquery.RetrievalWeight(cfg.Search.RetrievalWeight),
			MixedPercentage: cfg.Search.MixedPercentage,
			RerankEnabled:   cfg.Search.RerankEnabled,
		}),
		vecquery.WithLogger(logger),
		vecquery.WithPrometheus(reg),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	var srv *http.Server
	if cfg.Metrics.Port > 0 {
		srv = serveMetrics(cfg.Metrics.Port, reg, logger)
	}

	shutdown := func() {
		if srv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}
		_ = logger.Sync()
	}
	return client, logger, shutdown, nil
}

// serveMetrics starts the prometheus scrape endpoint.
func serveMetrics(port int, reg *prometheus.Registry, logger *zap.Logger) *http.Server {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Metrics listener started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics listener error", zap.Error(err))
		}
	}()

	return srv
}

func healthCommand(c *cli.Context) error {
	client, _, shutdown, err := setup(c)
	if err != nil {
		return err
	}
	defer shutdown()

	status := client.Health(c.Context)
	if !status.Connected {
		fmt.Printf("disconnected: %s\n", status.Reason)
		return nil
	}
	fmt.Println("connected")
	return nil
}

func configureCommand(c *cli.Context) error {
	client, logger, shutdown, err := setup(c)
	if err != nil {
		return err
	}
	defer shutdown()

	mixed := c.Int("mixed-percentage")
	if err := client.Config().Apply(c.Context, vecquery.ConfigParams{
		DocCorrelation:  c.Float64("doc-correlation"),
		RecallNumber:    c.Int("recall-number"),
		RetrievalWeight: vecquery.RetrievalWeight(c.String("retrieval-weight")),
		MixedPercentage: &mixed,
		RerankEnabled:   c.Bool("rerank"),
	}); err != nil {
		return err
	}

	logger.Info("Configuration updated successfully")
	fmt.Println("configuration updated")
	return nil
}

func searchCommand(c *cli.Context) error {
	query := c.Args().First()
	if query == "" {
		return cli.Exit("usage: vecquery search <query>", 2)
	}

	client, _, shutdown, err := setup(c)
	if err != nil {
		return err
	}
	defer shutdown()

	results, err := client.Search(c.Context, query, c.StringSlice("keyword")...)
	if err != nil {
		return err
	}

	if warning := client.Snapshot().Warning; warning != "" {
		fmt.Println("warning:", warning)
	}
	fmt.Printf("found %d results\n", len(results))
	for i, r := range results {
		fmt.Printf("\n[%d] correlation=%.2f tokens=%d\n%s\n", i+1, r.Correlation, r.Tokens, r.Content)
		for k, v := range r.Metadata {
			fmt.Printf("  %s: %s\n", k, v)
		}
	}
	return nil
}
