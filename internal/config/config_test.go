package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadNonExistent(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	if err == nil {
		t.Fatal("Load(nonexistent) should return error")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.ListenAddr != ":4280" {
		t.Errorf("ListenAddr = %q, want :4280", cfg.ListenAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Theme != "auto" {
		t.Errorf("Theme = %q, want auto", cfg.Theme)
	}
	if cfg.OpenBrowser {
		t.Error("OpenBrowser should default to false")
	}
	if cfg.TLSEnabled() {
		t.Error("TLSEnabled() should be false by default")
	}
}

func TestLoadTOML(t *testing.T) {
	toml := `
listen_addr = ":8080"
log_level = "debug"
log_file = "/var/log/urllens/urllens.log"
log_max_size_mb = 50
log_max_backups = 7
theme = "dark"
open_browser = true
enable_metrics = true
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.LogFile != "/var/log/urllens/urllens.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if cfg.LogMaxSizeMB != 50 {
		t.Errorf("LogMaxSizeMB = %d, want 50", cfg.LogMaxSizeMB)
	}
	if cfg.LogMaxBackups != 7 {
		t.Errorf("LogMaxBackups = %d, want 7", cfg.LogMaxBackups)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", cfg.Theme)
	}
	if !cfg.OpenBrowser {
		t.Error("OpenBrowser should be true")
	}
	if !cfg.EnableMetrics {
		t.Error("EnableMetrics should be true")
	}
}

func TestLoadDefaults(t *testing.T) {
	toml := `
theme = "light"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ListenAddr != ":4280" {
		t.Errorf("ListenAddr = %q, want :4280 (default)", cfg.ListenAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info (default)", cfg.LogLevel)
	}
	if cfg.LogMaxSizeMB != 10 {
		t.Errorf("LogMaxSizeMB = %d, want 10 (default)", cfg.LogMaxSizeMB)
	}
	if cfg.LogMaxBackups != 3 {
		t.Errorf("LogMaxBackups = %d, want 3 (default)", cfg.LogMaxBackups)
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.Theme)
	}
}

func TestLoadInvalidTheme(t *testing.T) {
	toml := `
theme = "solarized"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load should reject unknown theme")
	}
}

func TestLoadTLSValidation(t *testing.T) {
	tests := []struct {
		name    string
		toml    string
		wantErr bool
		enabled bool
	}{
		{
			name:    "cert without key",
			toml:    `tls_cert_path = "/etc/urllens/cert.pem"`,
			wantErr: true,
		},
		{
			name:    "key without cert",
			toml:    `tls_key_path = "/etc/urllens/key.pem"`,
			wantErr: true,
		},
		{
			name: "self-signed with cert files",
			toml: `
tls_self_signed = true
tls_cert_path = "/etc/urllens/cert.pem"
tls_key_path = "/etc/urllens/key.pem"
`,
			wantErr: true,
		},
		{
			name:    "self-signed alone",
			toml:    `tls_self_signed = true`,
			enabled: true,
		},
		{
			name: "cert and key together",
			toml: `
tls_cert_path = "/etc/urllens/cert.pem"
tls_key_path = "/etc/urllens/key.pem"
`,
			enabled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.toml), 0644); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Load should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.TLSEnabled() != tt.enabled {
				t.Errorf("TLSEnabled() = %v, want %v", cfg.TLSEnabled(), tt.enabled)
			}
		})
	}
}
