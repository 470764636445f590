package config

import (
	"fmt"

	"github.com/kailas-cloud/vecquery/internal/domain"
	"github.com/kailas-cloud/vecquery/internal/domain/search/weight"
)

// Configuration bounds.
const (
	MinDocCorrelation = 0.0
	MaxDocCorrelation = 1.0
	MinRecallNumber   = 1
	MaxRecallNumber   = 50

	DefaultDocCorrelation  = 0.85
	DefaultRecallNumber    = 10
	DefaultMixedPercentage = 50
)

// Config is a validated, immutable search configuration.
// Updates replace the whole value, never individual fields.
type Config struct {
	docCorrelation  float64
	recallNumber    int
	retrievalWeight weight.Weight
	mixedPercentage int
	rerankEnabled   bool
}

// Params carries unvalidated configuration candidates into New.
// MixedPercentage is only meaningful when Weight is Mixed; nil means
// "use the default" for a Mixed weight and "absent" otherwise.
type Params struct {
	DocCorrelation  float64
	RecallNumber    int
	Weight          weight.Weight
	MixedPercentage *int
	RerankEnabled   bool
}

// New validates the candidate and returns an immutable Config.
// All errors wrap domain.ErrInvalidConfig.
func New(p Params) (Config, error) {
	if p.DocCorrelation < MinDocCorrelation || p.DocCorrelation > MaxDocCorrelation {
		return Config{}, fmt.Errorf("%w: doc correlation %.2f outside [%.1f, %.1f]",
			domain.ErrInvalidConfig, p.DocCorrelation, MinDocCorrelation, MaxDocCorrelation)
	}
	if p.RecallNumber < MinRecallNumber || p.RecallNumber > MaxRecallNumber {
		return Config{}, fmt.Errorf("%w: recall number %d outside [%d, %d]",
			domain.ErrInvalidConfig, p.RecallNumber, MinRecallNumber, MaxRecallNumber)
	}
	if !p.Weight.IsValid() {
		return Config{}, fmt.Errorf("%w: unknown retrieval weight %q",
			domain.ErrInvalidConfig, p.Weight)
	}

	// Mixed percentage is bound to the Mixed weight: required (defaulted when
	// omitted) for Mixed, ignored for Semantic/Keyword.
	mixed := 0
	if p.Weight == weight.Mixed {
		mixed = DefaultMixedPercentage
		if p.MixedPercentage != nil {
			mixed = *p.MixedPercentage
		}
		if mixed < 0 || mixed > 100 {
			return Config{}, fmt.Errorf("%w: mixed percentage %d outside [0, 100]",
				domain.ErrInvalidConfig, mixed)
		}
	}

	return Config{
		docCorrelation:  p.DocCorrelation,
		recallNumber:    p.RecallNumber,
		retrievalWeight: p.Weight,
		mixedPercentage: mixed,
		rerankEnabled:   p.RerankEnabled,
	}, nil
}

// Default returns the configuration a fresh session starts with.
func Default() Config {
	return Config{
		docCorrelation:  DefaultDocCorrelation,
		recallNumber:    DefaultRecallNumber,
		retrievalWeight: weight.Mixed,
		mixedPercentage: DefaultMixedPercentage,
		rerankEnabled:   false,
	}
}

// DocCorrelation returns the minimum correlation threshold for matches.
func (c Config) DocCorrelation() float64 { return c.docCorrelation }

// RecallNumber returns the number of documents to retrieve.
func (c Config) RecallNumber() int { return c.recallNumber }

// RetrievalWeight returns the blending strategy.
func (c Config) RetrievalWeight() weight.Weight { return c.retrievalWeight }

// MixedPercentage returns the semantic/keyword balance.
// Zero and meaningless unless RetrievalWeight is Mixed.
func (c Config) MixedPercentage() int { return c.mixedPercentage }

// RerankEnabled reports whether the rerank step runs after retrieval.
func (c Config) RerankEnabled() bool { return c.rerankEnabled }
