package vecquery

import "github.com/kailas-cloud/vecquery/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidConfig     = domain.ErrInvalidConfig
	ErrEmptyQuery        = domain.ErrEmptyQuery
	ErrOperationInFlight = domain.ErrOperationInFlight
	ErrConnectivity      = domain.ErrConnectivity
	ErrServerTransient   = domain.ErrServerTransient
	ErrServerApplication = domain.ErrServerApplication
)

// StatusError carries the status code and body excerpt of a non-2xx backend
// response. Retrieve it with errors.As() to render a user-facing message.
type StatusError = domain.StatusError
