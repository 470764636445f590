package rest

import "github.com/kailas-cloud/vecquery/internal/domain/search/result"

// submitRequest is the wire body for POST /query/submit.
type submitRequest struct {
	Query    string   `json:"query"`
	Keywords []string `json:"keywords,omitempty"`
}

// resultDTO is one entry of the GET /search/results payload.
type resultDTO struct {
	Content     string            `json:"content"`
	Correlation float64           `json:"correlation"`
	Tokens      int               `json:"tokens"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// resultsResponse is the GET /search/results payload.
// Order of Results is relevance rank and must be preserved.
type resultsResponse struct {
	Results []resultDTO `json:"results"`
}

func (r *resultsResponse) toDomain() []result.Result {
	out := make([]result.Result, len(r.Results))
	for i, d := range r.Results {
		out[i] = result.New(d.Content, d.Correlation, d.Tokens, d.Metadata)
	}
	return out
}
