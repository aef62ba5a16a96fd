package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds application configuration.
type Config struct {
	// Bind is the interface the web server listens on.
	Bind string `json:"bind,omitempty"`

	// Port is the web server port.
	Port int `json:"port,omitempty"`

	// PublicBaseURL is the externally visible origin used when minting
	// share links, e.g. "https://studio.example.com".
	PublicBaseURL string `json:"public_base_url,omitempty"`

	// FallbackCatalogPath points to a JSON file replacing the built-in
	// static fallback catalog. Empty means use the bundled one.
	FallbackCatalogPath string `json:"fallback_catalog_path,omitempty"`

	// VerboseResolveDiagnostics enables logging the live source's full slug
	// list when the bulk tier misses. Useful while chasing slug drift, but
	// it enumerates the whole catalog into logs, so it is off by default.
	VerboseResolveDiagnostics bool `json:"verbose_resolve_diagnostics,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized. 0 means use sql.DB
	// default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from
	// registration. Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Bind:          "127.0.0.1",
		Port:          8787,
		PublicBaseURL: "http://127.0.0.1:8787",
	}
}

// Load loads configuration from baseDir/config.json. Returns default config
// if the file doesn't exist. The baseDir parameter allows tests to use
// t.TempDir() instead of ~/.shareline.
func Load(baseDir string) (*Config, error) {
	path := filepath.Join(baseDir, "config.json")

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Addr returns the web server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}
