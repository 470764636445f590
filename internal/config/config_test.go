package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Backend.ShortTimeoutSec != 5 {
		t.Errorf("ShortTimeoutSec = %d, want 5", cfg.Backend.ShortTimeoutSec)
	}
	if cfg.Backend.LongTimeoutSec != 30 {
		t.Errorf("LongTimeoutSec = %d, want 30", cfg.Backend.LongTimeoutSec)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.BackoffMs != 500 {
		t.Errorf("BackoffMs = %d, want 500", cfg.Retry.BackoffMs)
	}
	if cfg.Search.DocCorrelation == nil || *cfg.Search.DocCorrelation != 0.85 {
		t.Errorf("DocCorrelation = %v, want 0.85", cfg.Search.DocCorrelation)
	}
	if cfg.Search.RecallNumber != 10 {
		t.Errorf("RecallNumber = %d, want 10", cfg.Search.RecallNumber)
	}
	if cfg.Search.RetrievalWeight != "Mixed" {
		t.Errorf("RetrievalWeight = %q, want Mixed", cfg.Search.RetrievalWeight)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	zero := 0.0
	cfg := Config{
		Retry:  Retry{MaxAttempts: 7, BackoffMs: 100},
		Search: Search{DocCorrelation: &zero, RecallNumber: 25, RetrievalWeight: "Keyword"},
	}
	cfg.ApplyDefaults()

	if cfg.Retry.MaxAttempts != 7 || cfg.Retry.BackoffMs != 100 {
		t.Errorf("retry = %+v, explicit values must survive", cfg.Retry)
	}
	if cfg.Search.RecallNumber != 25 || cfg.Search.RetrievalWeight != "Keyword" {
		t.Errorf("search = %+v, explicit values must survive", cfg.Search)
	}
	// 0.0 is a valid correlation threshold, not an unset field.
	if cfg.Search.DocCorrelation == nil || *cfg.Search.DocCorrelation != 0.0 {
		t.Errorf("DocCorrelation = %v, explicit 0.0 must survive", cfg.Search.DocCorrelation)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Backend: Backend{BaseURL: "https://busy-kings-deny.loca.lt"},
		Search:  Search{RetrievalWeight: "Mixed"},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing base url", func(c *Config) { c.Backend.BaseURL = "" }, true},
		{"base url without scheme", func(c *Config) { c.Backend.BaseURL = "busy-kings-deny.loca.lt" }, true},
		{"http scheme allowed", func(c *Config) { c.Backend.BaseURL = "http://localhost:8080" }, false},
		{"negative metrics port", func(c *Config) { c.Metrics.Port = -1 }, true},
		{"metrics port too large", func(c *Config) { c.Metrics.Port = 70000 }, true},
		{"unknown retrieval weight", func(c *Config) { c.Search.RetrievalWeight = "Hybrid" }, true},
		{"semantic weight", func(c *Config) { c.Search.RetrievalWeight = "Semantic" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("VECQUERY_TEST_URL", "https://example.test")

	in := []byte("base_url: ${VECQUERY_TEST_URL}\nlevel: ${VECQUERY_TEST_MISSING:-info}\n")
	got := string(expandEnvVars(in))
	want := "base_url: https://example.test\nlevel: info\n"
	if got != want {
		t.Errorf("expandEnvVars = %q, want %q", got, want)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "config")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
backend:
  base_url: ${VECQUERY_LOAD_URL:-https://tunnel.loca.lt}
retry:
  max_attempts: 4
search:
  doc_correlation: 0.0
  retrieval_weight: Semantic
  rerank_enabled: true
`
	if err := os.WriteFile(filepath.Join(cfgDir, "test.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL != "https://tunnel.loca.lt" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Retry.MaxAttempts != 4 {
		t.Errorf("MaxAttempts = %d, want 4", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.BackoffMs != 500 {
		t.Errorf("BackoffMs = %d, defaults must be applied", cfg.Retry.BackoffMs)
	}
	if !cfg.Search.RerankEnabled {
		t.Error("RerankEnabled should be true")
	}
	if cfg.Search.DocCorrelation == nil || *cfg.Search.DocCorrelation != 0.0 {
		t.Errorf("DocCorrelation = %v, explicit 0.0 must not be defaulted away", cfg.Search.DocCorrelation)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for a missing config file")
	}
}
