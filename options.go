package vecquery

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baseURL string

	maxAttempts  int
	backoff      time.Duration
	shortTimeout time.Duration
	longTimeout  time.Duration

	defaultConfig *ConfigParams

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithBaseURL sets the backend base URL. Required.
func WithBaseURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = u
	})
}

// WithRetry sets the transport retry policy: maximum attempts per call and
// the backoff base (attempt n sleeps n × backoff before the next try).
// Defaults: 3 attempts, 500ms.
func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxAttempts = maxAttempts
		c.backoff = backoff
	})
}

// WithTimeouts sets the per-call-class timeouts. short covers health,
// configure, and results fetch; long covers query submission, retrieval,
// and rerank. Defaults: 5s and 30s.
func WithTimeouts(short, long time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.shortTimeout = short
		c.longTimeout = long
	})
}

// WithDefaultConfig seeds the session with a search configuration instead of
// the built-in defaults. The candidate is validated locally during New; no
// network call is made. The backend sees it on the next Config().Apply.
func WithDefaultConfig(p ConfigParams) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultConfig = &p
	})
}

// WithLogger enables structured logging for client operations and retries.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts, durations,
// retries) on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
