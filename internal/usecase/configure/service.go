package configure

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vecquery/internal/domain/search/config"
	"github.com/kailas-cloud/vecquery/internal/session"
)

// Service holds and updates the session's search configuration.
// A candidate is validated locally before any network call; the backend
// sees only well-formed configurations. On backend acceptance the session
// configuration is replaced atomically, otherwise it is left untouched.
type Service struct {
	backend Backend
	session *session.Session
	logger  *zap.Logger
}

// New creates a configuration service.
func New(backend Backend, sess *session.Session, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, session: sess, logger: logger}
}

// Current returns the session's active configuration.
func (s *Service) Current() config.Config {
	return s.session.Config()
}

// Apply validates the candidate and proposes it to the backend.
// Invalid candidates are rejected without a network call. Updates are
// serialized: a second Apply while one is pending returns
// domain.ErrOperationInFlight.
func (s *Service) Apply(ctx context.Context, p config.Params) error {
	cfg, err := config.New(p)
	if err != nil {
		return err
	}

	release, err := s.session.Begin("configure")
	if err != nil {
		return err
	}
	defer release()

	if err := s.backend.Configure(ctx, cfg); err != nil {
		s.session.RecordFailure(err)
		return fmt.Errorf("apply configuration: %w", err)
	}

	s.session.SetConfig(cfg)
	s.logger.Info("configuration applied",
		zap.Float64("doc_correlation", cfg.DocCorrelation()),
		zap.Int("recall_number", cfg.RecallNumber()),
		zap.String("retrieval_weight", string(cfg.RetrievalWeight())),
		zap.Int("mixed_percentage", cfg.MixedPercentage()),
		zap.Bool("rerank_enabled", cfg.RerankEnabled()),
	)
	return nil
}
