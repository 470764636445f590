package health

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vecquery/internal/session"
)

// Report is the advisory outcome of one liveness probe.
type Report struct {
	Connected bool
	Reason    string // set when Connected is false
}

// Probe performs best-effort liveness checks against the backend.
// Probe failures are expected and non-fatal: the result only updates the
// session's advisory connectivity flag and never gates other operations.
type Probe struct {
	backend Pinger
	session *session.Session
	logger  *zap.Logger
}

// New creates a health probe.
func New(backend Pinger, sess *session.Session, logger *zap.Logger) *Probe {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Probe{backend: backend, session: sess, logger: logger}
}

// Check probes the backend once and records the advisory result.
func (p *Probe) Check(ctx context.Context) Report {
	if err := p.backend.Health(ctx); err != nil {
		p.session.SetConnected(false, err.Error())
		p.logger.Debug("health probe failed", zap.Error(err))
		return Report{Connected: false, Reason: err.Error()}
	}
	p.session.SetConnected(true, "")
	return Report{Connected: true}
}
