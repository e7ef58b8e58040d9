package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Budget.MonthlyLimit != 50.0 {
		t.Errorf("monthly limit %v, want 50.0", cfg.Budget.MonthlyLimit)
	}
	if cfg.Budget.LedgerPath != "api_usage.json" {
		t.Errorf("ledger path %q, want api_usage.json", cfg.Budget.LedgerPath)
	}
	if !cfg.Budget.TrackCosts {
		t.Error("track_costs should default to true")
	}
	if cfg.Models.Default != "gpt2" {
		t.Errorf("default model %q, want gpt2", cfg.Models.Default)
	}
	if cfg.Models.Premium != "mistralai/Mistral-7B-Instruct-v0.2" {
		t.Errorf("premium model %q", cfg.Models.Premium)
	}
	if cfg.Contacts.Source != "sample" {
		t.Errorf("contact source %q, want sample", cfg.Contacts.Source)
	}
	if cfg.Drafts.Sink != "stdout" {
		t.Errorf("draft sink %q, want stdout", cfg.Drafts.Sink)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr %q, want 0.0.0.0:8080", cfg.Addr())
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.yaml")
	data := `
budget:
  monthly_limit: 100.0
  ledger_path: "custom.json"
  track_costs: false
models:
  default: "gpt2-large"
contacts:
  source: "csv"
  csv_path: "contacts.csv"
server:
  port: 9090
  read_timeout: 10s
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Budget.MonthlyLimit != 100.0 {
		t.Errorf("monthly limit %v, want 100.0", cfg.Budget.MonthlyLimit)
	}
	if cfg.Budget.LedgerPath != "custom.json" {
		t.Errorf("ledger path %q, want custom.json", cfg.Budget.LedgerPath)
	}
	if cfg.Budget.TrackCosts {
		t.Error("track_costs should be false")
	}
	if cfg.Models.Default != "gpt2-large" {
		t.Errorf("default model %q, want gpt2-large", cfg.Models.Default)
	}
	// Unset fields keep their defaults.
	if cfg.Models.MaxNewTokens != 500 {
		t.Errorf("max_new_tokens %d, want default 500", cfg.Models.MaxNewTokens)
	}
	if cfg.Contacts.Source != "csv" || cfg.Contacts.CSVPath != "contacts.csv" {
		t.Errorf("contacts %+v", cfg.Contacts)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout %v, want 10s", cfg.Server.ReadTimeout)
	}
}

func TestLoadExpandsEnvInFile(t *testing.T) {
	t.Setenv("TEST_QUILL_KEY", "hf_secret")

	path := filepath.Join(t.TempDir(), "quill.yaml")
	data := "huggingface:\n  api_key: \"${TEST_QUILL_KEY}\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HuggingFace.APIKey != "hf_secret" {
		t.Errorf("api key %q, want the expanded env value", cfg.HuggingFace.APIKey)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("QUILL_LEDGER_PATH", "/tmp/ledger.json")
	t.Setenv("QUILL_MONTHLY_BUDGET", "75.5")
	t.Setenv("QUILL_PORT", "9999")
	t.Setenv("HUGGINGFACE_API_KEY", "hf_from_env")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Budget.LedgerPath != "/tmp/ledger.json" {
		t.Errorf("ledger path %q", cfg.Budget.LedgerPath)
	}
	if cfg.Budget.MonthlyLimit != 75.5 {
		t.Errorf("monthly limit %v, want 75.5", cfg.Budget.MonthlyLimit)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port %d, want 9999", cfg.Server.Port)
	}
	if cfg.HuggingFace.APIKey != "hf_from_env" {
		t.Errorf("api key %q", cfg.HuggingFace.APIKey)
	}
}

func TestLoadRejectsNonPositiveBudget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.yaml")
	if err := os.WriteFile(path, []byte("budget:\n  monthly_limit: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for zero monthly_limit")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestDatabaseURLForMigrate(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"postgres://u:p@h:5432/db?sslmode=disable", "postgres://u:p@h:5432/db?sslmode=disable"},
		{"postgres://u:p@h:5432/db", "postgres://u:p@h:5432/db?sslmode=disable"},
		{"postgres://u:p@h:5432/db?search_path=public", "postgres://u:p@h:5432/db?search_path=public&sslmode=disable"},
	}
	for _, tt := range tests {
		cfg := &Config{Database: DatabaseConfig{URL: tt.url}}
		if got := cfg.DatabaseURLForMigrate(); got != tt.want {
			t.Errorf("DatabaseURLForMigrate(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
