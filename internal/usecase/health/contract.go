package health

import "context"

// Pinger probes backend liveness with a single request.
type Pinger interface {
	Health(ctx context.Context) error
}
