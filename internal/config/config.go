package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the vecquery CLI configuration.
type Config struct {
	Backend Backend `yaml:"backend"`
	Retry   Retry   `yaml:"retry"`
	Search  Search  `yaml:"search"`
	Metrics Metrics `yaml:"metrics"`
	Logging Logging `yaml:"logging"`
}

// Backend holds search backend connection settings.
type Backend struct {
	BaseURL string `yaml:"base_url"`
	// Short covers health, configure, and results fetch; Long covers
	// query submission, retrieval, and rerank.
	ShortTimeoutSec int `yaml:"short_timeout_sec"`
	LongTimeoutSec  int `yaml:"long_timeout_sec"`
}

// Retry holds the transport retry policy.
type Retry struct {
	MaxAttempts int `yaml:"max_attempts"`
	BackoffMs   int `yaml:"backoff_ms"`
}

// Search holds the search configuration the client session starts with.
// DocCorrelation is a pointer so an explicit 0.0 survives defaulting.
type Search struct {
	DocCorrelation  *float64 `yaml:"doc_correlation"`
	RecallNumber    int      `yaml:"recall_number"`
	RetrievalWeight string   `yaml:"retrieval_weight"`
	MixedPercentage *int     `yaml:"mixed_percentage"`
	RerankEnabled   bool     `yaml:"rerank_enabled"`
}

// Metrics holds the prometheus scrape endpoint settings.
type Metrics struct {
	Port int `yaml:"port"` // 0 disables the /metrics listener
}

// Logging holds logging settings.
type Logging struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Backend.ShortTimeoutSec <= 0 {
		c.Backend.ShortTimeoutSec = 5
	}
	if c.Backend.LongTimeoutSec <= 0 {
		c.Backend.LongTimeoutSec = 30
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.BackoffMs <= 0 {
		c.Retry.BackoffMs = 500
	}
	if c.Search.DocCorrelation == nil {
		v := 0.85
		c.Search.DocCorrelation = &v
	}
	if c.Search.RecallNumber <= 0 {
		c.Search.RecallNumber = 10
	}
	if c.Search.RetrievalWeight == "" {
		c.Search.RetrievalWeight = "Mixed"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") &&
		!strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("backend.base_url must start with http:// or https://, got %q", c.Backend.BaseURL)
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 0 and 65535, got %d", c.Metrics.Port)
	}
	switch c.Search.RetrievalWeight {
	case "Mixed", "Semantic", "Keyword":
		// ok
	default:
		return fmt.Errorf(
			"search.retrieval_weight must be \"Mixed\", \"Semantic\" or \"Keyword\", got %q",
			c.Search.RetrievalWeight,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
