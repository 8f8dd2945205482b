package worker

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/toolgate/internal/catalog"
	"github.com/bobmcallan/toolgate/internal/common"
	"github.com/bobmcallan/toolgate/internal/executor"
	"github.com/bobmcallan/toolgate/internal/interfaces"
	"github.com/bobmcallan/toolgate/internal/models"
	"github.com/bobmcallan/toolgate/internal/schema"
	"github.com/bobmcallan/toolgate/internal/tool"
	"github.com/bobmcallan/toolgate/internal/wire"
)

// SecretEnvVar supplies the shared worker secret when none is configured
// explicitly.
const SecretEnvVar = "TOOLGATE_WORKER_SECRET"

// DefaultBasePath prefixes all worker routes.
const DefaultBasePath = "/worker"

// Options configures a Worker.
type Options struct {
	// Secret is the shared bearer secret. When empty it is read from
	// SecretEnvVar; with auth enabled and neither set, New fails.
	Secret string

	// DisableAuth turns off the authentication gate entirely. Not
	// recommended outside local development.
	DisableAuth bool

	// OpenCatalog exempts the catalog listing from the auth gate.
	OpenCatalog bool

	BasePath string
	Logger   *common.Logger
	History  interfaces.InvocationStore
}

// Worker owns a catalog reference and dispatches the three base
// operations over whatever transport its router adapter is bound to. The
// catalog is passed in at construction so multiple independent workers
// can coexist in one process.
type Worker struct {
	catalog     *catalog.Catalog
	secret      string
	disableAuth bool
	openCatalog bool
	basePath    string
	logger      *common.Logger
	history     interfaces.InvocationStore
	components  []Component
}

// New creates a Worker over an existing catalog. Secret resolution is
// explicit argument, then environment, then - unless auth is disabled - a
// construction-time error.
func New(cat *catalog.Catalog, opts Options) (*Worker, error) {
	logger := opts.Logger
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	secret := opts.Secret
	if !opts.DisableAuth && secret == "" {
		secret = os.Getenv(SecretEnvVar)
		if secret == "" {
			return nil, fmt.Errorf("no secret provided for worker: set the %s environment variable or disable authentication", SecretEnvVar)
		}
	}
	if opts.DisableAuth {
		secret = ""
		logger.Warn().Msg("worker is running without authentication, not recommended for production")
	}

	basePath := opts.BasePath
	if basePath == "" {
		basePath = DefaultBasePath
	}

	w := &Worker{
		catalog:     cat,
		secret:      secret,
		disableAuth: opts.DisableAuth,
		openCatalog: opts.OpenCatalog,
		basePath:    basePath,
		logger:      logger,
		history:     opts.History,
	}
	w.components = []Component{
		&CatalogComponent{worker: w},
		&CallToolComponent{worker: w},
		&HealthCheckComponent{worker: w},
		&SchemaComponent{worker: w},
	}
	return w, nil
}

// Catalog returns the worker's catalog.
func (w *Worker) Catalog() *catalog.Catalog { return w.catalog }

// BasePath returns the route prefix for this worker.
func (w *Worker) BasePath() string { return w.basePath }

// Register binds every component onto the router.
func (w *Worker) Register(r Router) {
	for _, c := range w.components {
		c.Register(r)
	}
}

// GetCatalog returns the discovery listing.
func (w *Worker) GetCatalog() []wire.CatalogEntry {
	return w.catalog.List()
}

// HealthCheck reports worker liveness and the registered tool count.
func (w *Worker) HealthCheck() wire.HealthResponse {
	return wire.HealthResponse{Status: "ok", ToolCount: w.catalog.Len()}
}

// CallTool resolves the requested tool and delegates to the executor.
// A missing tool is a transport-level error; every tool-level failure
// comes back inside a well-formed envelope.
func (w *Worker) CallTool(ctx context.Context, req wire.InvocationRequest) (wire.InvocationResponse, error) {
	mt, ok := w.catalog.Get(req.Tool.Name, req.Tool.Version)
	if !ok {
		return wire.InvocationResponse{}, &HTTPError{
			Status:  404,
			Message: fmt.Sprintf("tool %q not found in catalog", req.Tool.Name),
		}
	}

	invocationID := req.InvocationID
	if invocationID == "" {
		invocationID = uuid.New().String()
	}

	tctx := &tool.Context{InvocationID: invocationID}
	if req.Context != nil {
		tctx.Authorization = req.Context.Authorization
		tctx.Secrets = req.Context.Secrets
	}

	logger := w.logger.WithCorrelationId(invocationID)
	logger.Info().
		Str("tool", mt.Definition.FullyQualified).
		Str("version", mt.Definition.Version).
		Msg("calling tool")

	resp := executor.Run(ctx, mt, req.Inputs, tctx)

	if resp.Success {
		logger.Info().
			Str("tool", mt.Definition.FullyQualified).
			Str("duration_ms", fmt.Sprintf("%.2f", resp.Duration)).
			Msg("tool call succeeded")
	} else {
		logger.Warn().
			Str("tool", mt.Definition.FullyQualified).
			Str("error", resp.Output.Error.Message).
			Msg("tool call failed")
	}

	w.recordInvocation(ctx, mt.Definition, resp)
	return resp, nil
}

// ToolSchema returns the JSON Schema view of one tool's contract.
func (w *Worker) ToolSchema(name, version string) (map[string]interface{}, error) {
	mt, ok := w.catalog.Get(name, version)
	if !ok {
		return nil, &HTTPError{Status: 404, Message: fmt.Sprintf("tool %q not found", name)}
	}
	def := mt.Definition
	return map[string]interface{}{
		"tool_name":   def.FullyQualified,
		"description": def.Description,
		"input":       schema.InputJSONSchema(def),
		"output":      schema.OutputJSONSchema(def),
	}, nil
}

// recordInvocation writes history on a best-effort basis; storage
// problems never fail an invocation.
func (w *Worker) recordInvocation(ctx context.Context, def wire.ToolDefinition, resp wire.InvocationResponse) {
	if w.history == nil {
		return
	}
	rec := models.InvocationRecord{
		ID:         resp.InvocationID,
		Tool:       def.FullyQualified,
		Version:    def.Version,
		Success:    resp.Success,
		DurationMs: resp.Duration,
		FinishedAt: time.Now().UTC(),
	}
	if resp.Output.Error != nil {
		rec.Error = resp.Output.Error.Message
	}
	if err := w.history.Record(ctx, rec); err != nil {
		w.logger.Warn().Err(err).Msg("failed to record invocation history")
	}
}

// History exposes the invocation store for the server's history endpoint.
func (w *Worker) History() interfaces.InvocationStore { return w.history }
