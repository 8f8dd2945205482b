// Package worker is the dispatch layer: it exposes the catalog, the
// executor, and a health check as independent components bound to a host
// transport through a small Router abstraction, behind a shared-secret
// authentication gate.
package worker

import (
	"context"
	"fmt"
)

// RequestData is the host-framework-neutral view of a request. Components
// only ever see this, which is what lets one set of components serve any
// transport adapter.
type RequestData struct {
	Path       string
	Method     string
	BodyJSON   []byte
	PathParams map[string]string
}

// Router binds components onto a host transport. Adapters implement it
// once per framework; components stay transport-agnostic.
type Router interface {
	// AddRoute binds a component under the worker base path. Path may
	// contain {placeholder} segments exposed via RequestData.PathParams.
	// requireAuth routes pass the shared-secret gate before the
	// component runs.
	AddRoute(method, path string, component Component, requireAuth bool)
}

// Component is one worker operation: it knows how to bind itself to a
// router and how to handle a normalized request.
type Component interface {
	Register(r Router)
	Handle(ctx context.Context, req RequestData) (interface{}, error)
}

// HTTPError is a transport-level failure: malformed body, unknown tool.
// Tool-level failures never surface this way; they ride inside a
// well-formed invocation envelope.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}
