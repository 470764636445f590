package vecquery

import (
	"context"
	"time"

	"github.com/kailas-cloud/vecquery/internal/domain/search/config"
	"github.com/kailas-cloud/vecquery/internal/domain/search/weight"
)

// ConfigService manages the session's search configuration.
type ConfigService struct {
	svc configUseCase
	obs *observer
}

// Current returns the active configuration snapshot.
func (s *ConfigService) Current() SearchConfig {
	return fromDomainConfig(s.svc.Current())
}

// Apply validates the candidate locally and proposes it to the backend.
// An invalid candidate is rejected with ErrInvalidConfig before any network
// call. On backend acceptance the session configuration is replaced
// atomically; on any failure it is unchanged.
func (s *ConfigService) Apply(ctx context.Context, p ConfigParams) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("configure", start, err) }()

	return s.svc.Apply(ctx, config.Params{
		DocCorrelation:  p.DocCorrelation,
		RecallNumber:    p.RecallNumber,
		Weight:          weight.Weight(p.RetrievalWeight),
		MixedPercentage: p.MixedPercentage,
		RerankEnabled:   p.RerankEnabled,
	})
}
