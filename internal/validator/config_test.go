package validator

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleJSON = `{
  "domains": [
    {"name": "example.com", "enabled": true},
    {"name": "closed.org", "enabled": false}
  ],
  "record_types": ["A", "AAAA", "CNAME", "TXT", "MX"],
  "max_records_per_subdomain": 3,
  "reserved_subdomains": ["www", "mail"]
}`

const sampleYAML = `domains:
  - name: example.com
    enabled: true
record_types: [A, CNAME]
max_records_per_subdomain: 5
`

func TestLoadConfig_ExplicitJSONPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "domains.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("", path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.Domains) != 2 {
		t.Errorf("len(Domains) = %d, want 2", len(cfg.Domains))
	}
	if cfg.Domains[0].Name != "example.com" || !cfg.Domains[0].Enabled {
		t.Errorf("Domains[0] = %+v, want enabled example.com", cfg.Domains[0])
	}
	if cfg.MaxRecordsPerSubdomain != 3 {
		t.Errorf("MaxRecordsPerSubdomain = %d, want 3", cfg.MaxRecordsPerSubdomain)
	}
}

func TestLoadConfig_DefaultJSONUnderRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "config", "domains.json"), []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(root, "")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.RecordTypes) != 5 {
		t.Errorf("len(RecordTypes) = %d, want 5", len(cfg.RecordTypes))
	}
}

func TestLoadConfig_FallsBackToYAML(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "config", "domains.yml"), []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(root, "")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.MaxRecordsPerSubdomain != 5 {
		t.Errorf("MaxRecordsPerSubdomain = %d, want 5", cfg.MaxRecordsPerSubdomain)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(t.TempDir(), ""); err == nil {
		t.Error("expected error when no config exists")
	}
	if _, err := LoadConfig("", filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for explicit missing path")
	}
}

func TestLoadConfig_MalformedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domains.json")
	if err := os.WriteFile(path, []byte(`{"domains": [`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig("", path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestConfigMaxRecordsDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.maxRecords(); got != 10 {
		t.Errorf("maxRecords() = %d, want default 10", got)
	}
	cfg.MaxRecordsPerSubdomain = 2
	if got := cfg.maxRecords(); got != 2 {
		t.Errorf("maxRecords() = %d, want 2", got)
	}
}
