package search

import (
	"context"

	"github.com/kailas-cloud/vecquery/internal/domain/search/result"
)

// Backend exposes the four workflow steps of the remote query engine.
// SubmitQuery must succeed before Retrieve; Rerank reorders server-side
// state; FetchResults reads whatever ordering the backend currently holds.
type Backend interface {
	SubmitQuery(ctx context.Context, query string, keywords []string) error
	Retrieve(ctx context.Context) error
	Rerank(ctx context.Context) error
	FetchResults(ctx context.Context) ([]result.Result, error)
}
