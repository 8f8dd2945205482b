// Package tool holds the descriptor types a toolkit author uses to expose
// a Go function through toolgate. A Descriptor is built alongside the
// function, never attached to it; the schema package turns the pair into a
// wire contract at registration time.
package tool

import (
	"fmt"

	"github.com/bobmcallan/toolgate/internal/wire"
)

// Param declares one parameter of a tool function, in declaration order.
// Name and Description are mandatory; registration fails without them.
type Param struct {
	Name        string
	Description string

	// Default marks the parameter optional and supplies the value used
	// when the caller omits it. A pointer-typed parameter is optional
	// even without a default.
	Default interface{}

	// NotInferrable marks a value the model must not guess (secrets,
	// internal identifiers). The orchestrator must pass it verbatim.
	NotInferrable bool
}

// Descriptor pairs a Go function with the metadata reflection cannot
// recover: parameter names, descriptions, and authorization requirements.
type Descriptor struct {
	// Func is the tool callable. Its leading parameters may be a
	// context.Context and/or a *tool.Context, both injected by the
	// executor; Params describes the remaining ones.
	Func interface{}

	Name        string
	Description string
	Params      []Param

	// OutputDescription documents the return value in the catalog.
	OutputDescription string

	RequiresAuth    *wire.AuthRequirement
	RequiresSecrets []string

	// Deprecated, when non-empty, is surfaced in the catalog listing and
	// attached as a log entry to every invocation response.
	Deprecated string
}

// Toolkit is a named, versioned collection of descriptors registered as a
// unit. Tool names inside a toolkit are qualified as "Toolkit.Tool".
type Toolkit struct {
	Name        string
	Version     string
	Description string
	Tools       []Descriptor
}

// Enum is implemented by named string types with a closed value set.
// Parameters of such a type map to wire string with an enum list, and the
// executor rejects values outside it.
type Enum interface {
	EnumValues() []string
}

// Context is the execution context injected into a tool call: the
// invocation identifier, the end-user authorization token, and any
// per-tool secrets supplied by the orchestrator.
type Context struct {
	InvocationID  string
	Authorization *wire.Authorization
	Secrets       map[string]string
}

// AuthTokenOrEmpty returns the authorization token, or "" when the call
// carried none.
func (c *Context) AuthTokenOrEmpty() string {
	if c == nil || c.Authorization == nil {
		return ""
	}
	return c.Authorization.Token
}

// GetSecret returns the named secret or an error when it was not supplied.
func (c *Context) GetSecret(name string) (string, error) {
	if c != nil {
		if v, ok := c.Secrets[name]; ok {
			return v, nil
		}
	}
	return "", fmt.Errorf("secret %q not provided in tool context", name)
}
