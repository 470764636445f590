package result

import "maps"

// Result is a single retrieved document as scored by the backend.
type Result struct {
	content     string
	correlation float64
	tokens      int
	metadata    map[string]string
}

// New creates a Result. metadata may be nil and is copied, not retained.
func New(content string, correlation float64, tokens int, metadata map[string]string) Result {
	return Result{
		content:     content,
		correlation: correlation,
		tokens:      tokens,
		metadata:    maps.Clone(metadata),
	}
}

// Content returns the document text.
func (r *Result) Content() string { return r.content }

// Correlation returns the backend-assigned relevance score.
func (r *Result) Correlation() float64 { return r.correlation }

// Tokens returns the document token count.
func (r *Result) Tokens() int { return r.tokens }

// Metadata returns a copy of the optional document metadata. May be nil.
func (r *Result) Metadata() map[string]string { return maps.Clone(r.metadata) }
