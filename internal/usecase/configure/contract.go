package configure

import (
	"context"

	"github.com/kailas-cloud/vecquery/internal/domain/search/config"
)

// Backend pushes configuration updates to the search backend.
type Backend interface {
	Configure(ctx context.Context, cfg config.Config) error
}
