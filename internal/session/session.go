package session

import (
	"fmt"
	"sync"

	"github.com/kailas-cloud/vecquery/internal/domain"
	"github.com/kailas-cloud/vecquery/internal/domain/search/config"
	"github.com/kailas-cloud/vecquery/internal/domain/search/result"
)

// Session is the client-side state for one backend connection: the current
// configuration, the last query and its result set, and the last error.
// All mutation goes through methods; configure and search operations are
// mutually exclusive via Begin. The advisory connectivity flag is the one
// piece of state the health probe may update without serialization.
type Session struct {
	mu        sync.Mutex
	cfg       config.Config
	lastQuery string
	results   []result.Result
	lastErr   error
	warning   string
	inFlight  string // name of the active operation, "" when idle

	connMu     sync.RWMutex
	connected  bool
	connReason string
}

// New creates a session seeded with the default configuration.
func New() *Session {
	return &Session{cfg: config.Default()}
}

// Begin claims the session for a mutating operation. It returns a release
// function to defer, or ErrOperationInFlight if another operation is active.
// Overlapping workflows are rejected rather than queued.
func (s *Session) Begin(op string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight != "" {
		return nil, fmt.Errorf("%w: %s blocked by active %s",
			domain.ErrOperationInFlight, op, s.inFlight)
	}
	s.inFlight = op
	return func() {
		s.mu.Lock()
		s.inFlight = ""
		s.mu.Unlock()
	}, nil
}

// Config returns the current search configuration.
func (s *Session) Config() config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetConfig atomically replaces the current configuration.
// Called only after the backend has accepted the candidate.
func (s *Session) SetConfig(cfg config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

// CompleteSearch replaces the result set and last query in one step and
// clears the last error. warning carries a non-fatal rerank downgrade
// ("" when the workflow ran clean).
func (s *Session) CompleteSearch(query string, results []result.Result, warning string) {
	s.mu.Lock()
	s.lastQuery = query
	s.results = results
	s.lastErr = nil
	s.warning = warning
	s.mu.Unlock()
}

// RecordFailure stores the terminal error of a failed operation.
// Prior configuration and results are left untouched.
func (s *Session) RecordFailure(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// Results returns a copy of the last completed result set, in relevance order.
func (s *Session) Results() []result.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.results == nil {
		return nil
	}
	out := make([]result.Result, len(s.results))
	copy(out, s.results)
	return out
}

// LastQuery returns the query of the last completed search.
func (s *Session) LastQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}

// LastError returns the terminal error of the last failed operation, if any.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Warning returns the non-fatal warning of the last completed search, if any.
func (s *Session) Warning() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warning
}

// SetConnected updates the advisory connectivity indicator.
// It never blocks on, or gates, in-flight operations.
func (s *Session) SetConnected(connected bool, reason string) {
	s.connMu.Lock()
	s.connected = connected
	s.connReason = reason
	s.connMu.Unlock()
}

// Connected reports the advisory connectivity indicator and the reason
// recorded with the last probe failure.
func (s *Session) Connected() (bool, string) {
	s.connMu.RLock()
	defer s.connMu.RUnlock()
	return s.connected, s.connReason
}
