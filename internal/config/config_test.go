package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arpv.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ARPV_CONFIG", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Extract.FallbackCharset != "gbk" {
		t.Errorf("FallbackCharset = %q, want gbk", cfg.Extract.FallbackCharset)
	}
	if cfg.WorkerCount() != runtime.NumCPU() {
		t.Errorf("WorkerCount = %d, want %d", cfg.WorkerCount(), runtime.NumCPU())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
paths:
  staging: /srv/preview/staging
extract:
  workers: 3
  fallback_charset: big5
log:
  format: json
`)
	t.Setenv("ARPV_CONFIG", path)
	t.Setenv("ARPV_WORKERS", "5")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Paths.Staging != "/srv/preview/staging" {
		t.Errorf("Staging = %q", cfg.Paths.Staging)
	}
	if cfg.Extract.FallbackCharset != "big5" {
		t.Errorf("FallbackCharset = %q, want big5", cfg.Extract.FallbackCharset)
	}
	if cfg.Extract.Workers != 5 {
		t.Errorf("Workers = %d, env should override the file", cfg.Extract.Workers)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q", cfg.Log.Format)
	}
	if cfg.Server.Listen == "" {
		t.Error("unset keys should keep their defaults")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		env  string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml"), ""},
		{"bad yaml", writeConfig(t, "paths: [unterminated"), ""},
		{"bad worker count", "", "many"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ARPV_CONFIG", "")
			if tt.env != "" {
				t.Setenv("ARPV_WORKERS", tt.env)
			}
			if _, err := Load(tt.path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"empty staging", func(c *Config) { c.Paths.Staging = "" }, true},
		{"negative workers", func(c *Config) { c.Extract.Workers = -1 }, true},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnsurePaths(t *testing.T) {
	root := t.TempDir()
	cfg := Default()
	cfg.Paths.Staging = filepath.Join(root, "a", "staging")
	cfg.Paths.Upload = filepath.Join(root, "b", "upload")
	if err := cfg.EnsurePaths(); err != nil {
		t.Fatalf("EnsurePaths failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.Staging, cfg.Paths.Upload} {
		if st, err := os.Stat(dir); err != nil || !st.IsDir() {
			t.Errorf("%s was not created", dir)
		}
	}
}
