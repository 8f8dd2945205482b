package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Worker  WorkerConfig  `toml:"worker"`
	MCP     MCPConfig     `toml:"mcp"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// WorkerConfig contains dispatch-layer settings. Secret is the shared
// bearer secret checked on every authenticated route; TOOLGATE_WORKER_SECRET
// overrides the configured value like every other env override.
type WorkerConfig struct {
	BasePath    string `toml:"base_path"`
	Secret      string `toml:"secret"`
	DisableAuth bool   `toml:"disable_auth"`
	OpenCatalog bool   `toml:"open_catalog"`
}

// MCPConfig controls the optional MCP protocol surface.
type MCPConfig struct {
	Enabled bool `toml:"enabled"`
}

// StorageConfig contains invocation history storage settings.
type StorageConfig struct {
	Enabled bool         `toml:"enabled"`
	Badger  BadgerConfig `toml:"badger"`
}

// BadgerConfig contains BadgerDB-specific settings.
type BadgerConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level    string `toml:"level"`
	Format   string `toml:"format"`
	FilePath string `toml:"file_path"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies TOOLGATE_* environment variable overrides.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("TOOLGATE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("TOOLGATE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if secret := os.Getenv("TOOLGATE_WORKER_SECRET"); secret != "" {
		config.Worker.Secret = secret
	}
	if v := os.Getenv("TOOLGATE_DISABLE_AUTH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Worker.DisableAuth = b
		}
	}
	if badgerPath := os.Getenv("TOOLGATE_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if level := os.Getenv("TOOLGATE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("TOOLGATE_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate enforces startup invariants. Running with authentication
// enabled and no shared secret is a fatal configuration error, not
// something discovered on the first request.
func (c *Config) Validate() error {
	if !c.Worker.DisableAuth && c.Worker.Secret == "" {
		return fmt.Errorf("no worker secret configured: set worker.secret or TOOLGATE_WORKER_SECRET, or disable authentication explicitly")
	}
	return nil
}
