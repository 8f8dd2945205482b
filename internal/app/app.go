// Package app assembles the application: catalog, worker, storage, and
// HTTP handlers, all built from config at startup.
package app

import (
	"log/slog"
	"net/http"

	"github.com/bobmcallan/toolgate/internal/catalog"
	"github.com/bobmcallan/toolgate/internal/common"
	"github.com/bobmcallan/toolgate/internal/config"
	"github.com/bobmcallan/toolgate/internal/handlers"
	"github.com/bobmcallan/toolgate/internal/interfaces"
	"github.com/bobmcallan/toolgate/internal/mcp"
	"github.com/bobmcallan/toolgate/internal/storage"
	"github.com/bobmcallan/toolgate/internal/tool"
	"github.com/bobmcallan/toolgate/internal/worker"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger
	Slog   *slog.Logger

	Catalog *catalog.Catalog
	Worker  *worker.Worker
	History interfaces.InvocationStore

	// HTTP handlers
	HealthHandler  *handlers.HealthHandler
	VersionHandler *handlers.VersionHandler
	HistoryHandler *handlers.HistoryHandler
	MCPHandler     http.Handler
}

// New initializes the application. Toolkits are registered before the
// worker is built; any definition error aborts startup so the process
// never serves a tool it cannot describe.
func New(cfg *config.Config, logger *common.Logger, slogger *slog.Logger, toolkits []tool.Toolkit) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Slog:    slogger,
		Catalog: catalog.New(),
	}

	for _, tk := range toolkits {
		if err := a.Catalog.AddToolkit(tk); err != nil {
			return nil, err
		}
		logger.Info().
			Str("toolkit", tk.Name).
			Str("version", tk.Version).
			Int("tools", len(tk.Tools)).
			Msg("toolkit registered")
	}

	history, err := storage.NewInvocationStore(logger, cfg)
	if err != nil {
		return nil, err
	}
	a.History = history

	w, err := worker.New(a.Catalog, worker.Options{
		Secret:      cfg.Worker.Secret,
		DisableAuth: cfg.Worker.DisableAuth,
		OpenCatalog: cfg.Worker.OpenCatalog,
		BasePath:    cfg.Worker.BasePath,
		Logger:      logger,
		History:     history,
	})
	if err != nil {
		return nil, err
	}
	a.Worker = w

	a.HealthHandler = handlers.NewHealthHandler(logger)
	a.VersionHandler = handlers.NewVersionHandler(logger)
	a.HistoryHandler = handlers.NewHistoryHandler(logger, history)

	if cfg.MCP.Enabled {
		a.MCPHandler = mcp.NewHTTPHandler(a.Catalog, logger)
		logger.Info().Msg("MCP surface enabled")
	}

	logger.Info().Int("tool_count", a.Catalog.Len()).Msg("application initialization complete")

	return a, nil
}

// Close closes all application resources.
func (a *App) Close() error {
	if a.History != nil {
		return a.History.Close()
	}
	return nil
}
