package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration.
type Config struct {
	ListenAddr    string `toml:"listen_addr"`
	LogLevel      string `toml:"log_level"`
	LogFile       string `toml:"log_file"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb"`
	LogMaxBackups int    `toml:"log_max_backups"`
	Theme         string `toml:"theme"`
	OpenBrowser   bool   `toml:"open_browser"`
	EnableMetrics bool   `toml:"enable_metrics"`
	TLSCertPath   string `toml:"tls_cert_path"`
	TLSKeyPath    string `toml:"tls_key_path"`
	TLSSelfSigned bool   `toml:"tls_self_signed"`
}

// Load reads the configuration from a TOML file. An empty path returns the
// defaults, so the binary runs without any config file at all.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ListenAddr:    ":4280",
		LogLevel:      "info",
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
		Theme:         "auto",
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	// Apply defaults
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":4280"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogMaxSizeMB <= 0 {
		cfg.LogMaxSizeMB = 10
	}
	if cfg.LogMaxBackups < 0 {
		cfg.LogMaxBackups = 3
	}
	if cfg.Theme == "" {
		cfg.Theme = "auto"
	}

	switch cfg.Theme {
	case "auto", "light", "dark":
	default:
		return nil, fmt.Errorf("theme must be auto, light, or dark, got %q", cfg.Theme)
	}

	// Validate TLS settings
	if cfg.TLSSelfSigned && (cfg.TLSCertPath != "" || cfg.TLSKeyPath != "") {
		return nil, fmt.Errorf("tls_self_signed and tls_cert_path/tls_key_path are mutually exclusive")
	}
	if (cfg.TLSCertPath != "") != (cfg.TLSKeyPath != "") {
		return nil, fmt.Errorf("both tls_cert_path and tls_key_path must be specified together")
	}

	return cfg, nil
}

// TLSEnabled returns true if TLS is configured (self-signed or cert files).
func (c *Config) TLSEnabled() bool {
	return c.TLSSelfSigned || (c.TLSCertPath != "" && c.TLSKeyPath != "")
}
