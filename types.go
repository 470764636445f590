package vecquery

// RetrievalWeight is the blending strategy between semantic and keyword matching.
type RetrievalWeight string

// Retrieval weight constants.
const (
	WeightMixed    RetrievalWeight = "Mixed"
	WeightSemantic RetrievalWeight = "Semantic"
	WeightKeyword  RetrievalWeight = "Keyword"
)

// ConfigParams is a candidate search configuration for ConfigService.Apply.
// MixedPercentage is only meaningful with WeightMixed; nil selects the
// default (50) there and is ignored for other weights.
type ConfigParams struct {
	DocCorrelation  float64 // [0.0, 1.0]
	RecallNumber    int     // [1, 50]
	RetrievalWeight RetrievalWeight
	MixedPercentage *int // [0, 100]
	RerankEnabled   bool
}

// SearchConfig is a snapshot of the session's active configuration.
type SearchConfig struct {
	DocCorrelation  float64
	RecallNumber    int
	RetrievalWeight RetrievalWeight
	MixedPercentage int // zero unless RetrievalWeight is WeightMixed
	RerankEnabled   bool
}

// SearchResult is a single retrieved document.
type SearchResult struct {
	Content     string
	Correlation float64
	Tokens      int
	Metadata    map[string]string
}

// HealthStatus is the advisory outcome of a liveness probe.
type HealthStatus struct {
	Connected bool
	Reason    string // set when Connected is false
}

// SessionSnapshot is a read-only view of the client session for a
// presentation layer: configuration, last query, results in relevance
// order, and any warning or terminal error from the last operation.
type SessionSnapshot struct {
	Config           SearchConfig
	LastQuery        string
	Results          []SearchResult
	Warning          string
	Err              error
	Connected        bool
	DisconnectReason string
}
