// Package validator checks subdomain registration files from a pull
// request against the domain registry configuration.
package validator

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the registry configuration consumed by the validator.
// It is loaded once per invocation and read-only afterwards.
type Config struct {
	Domains                []Domain `yaml:"domains"`
	RecordTypes            []string `yaml:"record_types"`
	MaxRecordsPerSubdomain int      `yaml:"max_records_per_subdomain"`
	ReservedSubdomains     []string `yaml:"reserved_subdomains"`
}

// Domain describes one registrable parent domain.
type Domain struct {
	Name        string `yaml:"name"`
	Enabled     bool   `yaml:"enabled"`
	Description string `yaml:"description"`
}

// DefaultConfigPaths lists the registry config locations probed under
// the project root when no explicit path is given. Both the JSON and
// YAML spellings are accepted; YAML is a superset of JSON, so a single
// decoder covers both.
var DefaultConfigPaths = []string{
	filepath.Join("config", "domains.json"),
	filepath.Join("config", "domains.yml"),
}

// LoadConfig reads and decodes the registry configuration. With an
// empty path it probes DefaultConfigPaths under root and returns the
// first that loads.
func LoadConfig(root, path string) (*Config, error) {
	if path != "" {
		return readConfig(path)
	}
	var firstErr error
	for _, rel := range DefaultConfigPaths {
		cfg, err := readConfig(filepath.Join(root, rel))
		if err == nil {
			return cfg, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

func readConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("加载配置文件失败: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("加载配置文件失败: %s: %w", path, err)
	}
	return &cfg, nil
}

// maxRecords returns the per-subdomain record cap, defaulting to 10
// when the config does not set one.
func (c *Config) maxRecords() int {
	if c.MaxRecordsPerSubdomain > 0 {
		return c.MaxRecordsPerSubdomain
	}
	return 10
}

// domain returns the configured parent domain with the given name.
func (c *Config) domain(name string) (Domain, bool) {
	for _, d := range c.Domains {
		if d.Name == name {
			return d, true
		}
	}
	return Domain{}, false
}
