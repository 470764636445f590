package search

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vecquery/internal/domain"
	"github.com/kailas-cloud/vecquery/internal/domain/search/result"
	"github.com/kailas-cloud/vecquery/internal/session"
)

// phase is the orchestrator's position in the search workflow.
type phase string

const (
	phaseSubmitting phase = "submitting"
	phaseRetrieving phase = "retrieving"
	phaseReranking  phase = "reranking"
	phaseFetching   phase = "fetching_results"
	phaseCompleted  phase = "completed"
	phaseFailed     phase = "failed"
)

const rerankWarning = "rerank failed, showing original result order"

// Service drives one search invocation through
// submit → retrieve → rerank (optional) → fetch-results.
// Exactly one invocation runs at a time; an issued step is never preempted.
type Service struct {
	backend Backend
	session *session.Session
	logger  *zap.Logger
}

// New creates a search orchestrator.
func New(backend Backend, sess *session.Session, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, session: sess, logger: logger}
}

// Search runs the full workflow for one query and returns the result set in
// relevance order. On success the session's result set is replaced
// atomically; on failure prior results are left untouched and the terminal
// error is both recorded on the session and returned.
func (s *Service) Search(ctx context.Context, query string, keywords ...string) ([]result.Result, error) {
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	release, err := s.session.Begin("search")
	if err != nil {
		return nil, err
	}
	defer release()

	logger := s.logger.With(
		zap.String("search_id", uuid.NewString()),
		zap.String("query", query),
	)
	rerank := s.session.Config().RerankEnabled()

	logger.Debug("workflow step", zap.String("phase", string(phaseSubmitting)))
	if err := s.backend.SubmitQuery(ctx, query, keywords); err != nil {
		return nil, s.fail(logger, "submit query", err)
	}

	logger.Debug("workflow step", zap.String("phase", string(phaseRetrieving)))
	if err := s.backend.Retrieve(ctx); err != nil {
		return nil, s.fail(logger, "retrieve", err)
	}

	// Rerank is best-effort: a failure is downgraded to a session warning
	// and the workflow continues with the backend's current ordering.
	warning := ""
	if rerank {
		logger.Debug("workflow step", zap.String("phase", string(phaseReranking)))
		if err := s.backend.Rerank(ctx); err != nil {
			warning = rerankWarning
			logger.Warn("rerank failed, continuing without rerank", zap.Error(err))
		}
	}

	logger.Debug("workflow step", zap.String("phase", string(phaseFetching)))
	results, err := s.backend.FetchResults(ctx)
	if err != nil {
		return nil, s.fail(logger, "fetch results", err)
	}

	s.session.CompleteSearch(query, results, warning)
	logger.Info("search completed",
		zap.String("phase", string(phaseCompleted)),
		zap.Int("results", len(results)),
		zap.Bool("reranked", rerank && warning == ""),
	)
	return results, nil
}

// fail records the terminal error on the session and wraps it with the step name.
func (s *Service) fail(logger *zap.Logger, step string, err error) error {
	wrapped := fmt.Errorf("%s: %w", step, err)
	s.session.RecordFailure(wrapped)
	logger.Warn("search failed",
		zap.String("phase", string(phaseFailed)),
		zap.String("step", step),
		zap.Error(err),
	)
	return wrapped
}
