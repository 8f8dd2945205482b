package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8002,
			Host: "localhost",
		},
		Worker: WorkerConfig{
			BasePath: "/worker",
		},
		MCP: MCPConfig{
			Enabled: false,
		},
		Storage: StorageConfig{
			Enabled: false,
			Badger: BadgerConfig{
				Path: "./data/toolgate",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
