package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8002 {
		t.Errorf("expected default port 8002, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("expected default host localhost, got %s", cfg.Server.Host)
	}
	if cfg.Worker.BasePath != "/worker" {
		t.Errorf("expected default base path /worker, got %s", cfg.Worker.BasePath)
	}
	if cfg.Worker.DisableAuth {
		t.Error("auth must be enabled by default")
	}
	if cfg.MCP.Enabled {
		t.Error("MCP must be disabled by default")
	}
	if cfg.Storage.Enabled {
		t.Error("persistent storage must be disabled by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, "toolgate.toml", `
[server]
port = 9000
host = "0.0.0.0"

[worker]
secret = "file-secret"
open_catalog = true

[storage]
enabled = true

[storage.badger]
path = "/tmp/toolgate-test"
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Server.Port != 9000 || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("file values not applied: %+v", cfg.Server)
	}
	if cfg.Worker.Secret != "file-secret" || !cfg.Worker.OpenCatalog {
		t.Errorf("worker values not applied: %+v", cfg.Worker)
	}
	if !cfg.Storage.Enabled || cfg.Storage.Badger.Path != "/tmp/toolgate-test" {
		t.Errorf("storage values not applied: %+v", cfg.Storage)
	}
	// untouched sections keep defaults
	if cfg.Worker.BasePath != "/worker" {
		t.Errorf("expected default base path, got %s", cfg.Worker.BasePath)
	}
}

func TestLoadFromFilesLaterWins(t *testing.T) {
	base := writeConfig(t, "base.toml", "[server]\nport = 9000\n")
	override := writeConfig(t, "override.toml", "[server]\nport = 9100\n")

	cfg, err := LoadFromFiles(base, override)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected the later file to win, got %d", cfg.Server.Port)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/toolgate.toml"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadFromFileMalformed(t *testing.T) {
	path := writeConfig(t, "bad.toml", "[server\nport=")
	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected an error for malformed TOML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TOOLGATE_SERVER_PORT", "9200")
	t.Setenv("TOOLGATE_SERVER_HOST", "overridden")
	t.Setenv("TOOLGATE_WORKER_SECRET", "env-secret")
	t.Setenv("TOOLGATE_DISABLE_AUTH", "true")
	t.Setenv("TOOLGATE_BADGER_PATH", "/env/badger")
	t.Setenv("TOOLGATE_LOG_LEVEL", "debug")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.Server.Port != 9200 || cfg.Server.Host != "overridden" {
		t.Errorf("env server overrides not applied: %+v", cfg.Server)
	}
	if cfg.Worker.Secret != "env-secret" {
		t.Errorf("expected env secret, got %q", cfg.Worker.Secret)
	}
	if !cfg.Worker.DisableAuth {
		t.Error("TOOLGATE_DISABLE_AUTH not applied")
	}
	if cfg.Storage.Badger.Path != "/env/badger" {
		t.Errorf("badger path override not applied: %s", cfg.Storage.Badger.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level override not applied: %s", cfg.Logging.Level)
	}
}

func TestEnvSecretOverridesFile(t *testing.T) {
	t.Setenv("TOOLGATE_WORKER_SECRET", "env-secret")
	path := writeConfig(t, "toolgate.toml", "[worker]\nsecret = \"file-secret\"\n")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Worker.Secret != "env-secret" {
		t.Errorf("env overrides beat file values, got %q", cfg.Worker.Secret)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()
	ApplyFlagOverrides(cfg, 9300, "flagged")
	if cfg.Server.Port != 9300 || cfg.Server.Host != "flagged" {
		t.Errorf("flag overrides not applied: %+v", cfg.Server)
	}

	ApplyFlagOverrides(cfg, 0, "")
	if cfg.Server.Port != 9300 || cfg.Server.Host != "flagged" {
		t.Error("zero-valued flags must not override")
	}
}

func TestValidate(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("auth enabled with no secret must fail validation")
	}

	cfg.Worker.Secret = "s"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg.Worker.Secret = ""
	cfg.Worker.DisableAuth = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled auth needs no secret, got %v", err)
	}
}
