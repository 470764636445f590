package vecquery

import (
	"github.com/kailas-cloud/vecquery/internal/domain/search/config"
	"github.com/kailas-cloud/vecquery/internal/domain/search/result"
)

func fromDomainConfig(cfg config.Config) SearchConfig {
	return SearchConfig{
		DocCorrelation:  cfg.DocCorrelation(),
		RecallNumber:    cfg.RecallNumber(),
		RetrievalWeight: RetrievalWeight(cfg.RetrievalWeight()),
		MixedPercentage: cfg.MixedPercentage(),
		RerankEnabled:   cfg.RerankEnabled(),
	}
}

func fromDomainResults(results []result.Result) []SearchResult {
	if results == nil {
		return nil
	}
	out := make([]SearchResult, len(results))
	for i := range results {
		r := &results[i]
		out[i] = SearchResult{
			Content:     r.Content(),
			Correlation: r.Correlation(),
			Tokens:      r.Tokens(),
			Metadata:    r.Metadata(),
		}
	}
	return out
}
