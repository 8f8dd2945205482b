package worker

import (
	"context"
	"encoding/json"

	"github.com/bobmcallan/toolgate/internal/wire"
)

// CatalogComponent serves the tool discovery listing. Authentication is
// required unless the worker was built with an open catalog.
type CatalogComponent struct {
	worker *Worker
}

func (c *CatalogComponent) Register(r Router) {
	r.AddRoute("GET", "tools", c, !c.worker.openCatalog)
}

func (c *CatalogComponent) Handle(_ context.Context, _ RequestData) (interface{}, error) {
	return c.worker.GetCatalog(), nil
}

// CallToolComponent deserializes an invocation request, resolves the tool
// through the catalog, and delegates to the executor.
type CallToolComponent struct {
	worker *Worker
}

func (c *CallToolComponent) Register(r Router) {
	r.AddRoute("POST", "tools/invoke", c, true)
}

func (c *CallToolComponent) Handle(ctx context.Context, req RequestData) (interface{}, error) {
	var callReq wire.InvocationRequest
	if err := json.Unmarshal(req.BodyJSON, &callReq); err != nil {
		return nil, &HTTPError{Status: 400, Message: "malformed invocation request body"}
	}
	if callReq.Tool.Name == "" {
		return nil, &HTTPError{Status: 400, Message: "invocation request is missing tool.name"}
	}
	return c.worker.CallTool(ctx, callReq)
}

// HealthCheckComponent is the worker heartbeat. It never requires
// authentication: liveness probes don't carry secrets.
type HealthCheckComponent struct {
	worker *Worker
}

func (c *HealthCheckComponent) Register(r Router) {
	r.AddRoute("GET", "health", c, false)
}

func (c *HealthCheckComponent) Handle(_ context.Context, _ RequestData) (interface{}, error) {
	return c.worker.HealthCheck(), nil
}

// SchemaComponent serves the JSON Schema view of a single tool.
type SchemaComponent struct {
	worker *Worker
}

func (c *SchemaComponent) Register(r Router) {
	r.AddRoute("GET", "tools/{name}/schema", c, true)
}

func (c *SchemaComponent) Handle(_ context.Context, req RequestData) (interface{}, error) {
	name := req.PathParams["name"]
	if name == "" {
		return nil, &HTTPError{Status: 400, Message: "missing tool name in path"}
	}
	return c.worker.ToolSchema(name, "")
}
