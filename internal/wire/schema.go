// Package wire defines the types exchanged between toolgate and an
// orchestrator: tool definitions, catalog listings, and the invocation
// request/response envelopes.
package wire

// ValueType is the closed set of types a tool parameter or return value
// may take on the wire.
type ValueType string

const (
	TypeString  ValueType = "string"
	TypeInteger ValueType = "integer"
	TypeFloat   ValueType = "float"
	TypeBoolean ValueType = "boolean"
	TypeJSON    ValueType = "json"
)

// Output modes reported in OutputSpec.AvailableModes.
const (
	ModeValue = "value"
	ModeError = "error"
	ModeNull  = "null"
)

// ValueSchema describes the wire shape of a single value.
type ValueSchema struct {
	ValType ValueType `json:"val_type"`
	Enum    []string  `json:"enum,omitempty"`
}

// InputParameter describes one declared parameter of a tool.
type InputParameter struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Required    bool        `json:"required"`
	Inferrable  bool        `json:"inferrable"`
	ValueSchema ValueSchema `json:"value_schema"`
}

// OutputSpec describes what a tool produces.
type OutputSpec struct {
	Description    string       `json:"description,omitempty"`
	AvailableModes []string     `json:"available_modes"`
	ValueSchema    *ValueSchema `json:"value_schema,omitempty"`
}

// AuthRequirement is declarative authorization metadata attached to a tool.
// The catalog carries it for the orchestrator; nothing here enforces it.
type AuthRequirement struct {
	Provider   string   `json:"provider"`
	ProviderID string   `json:"provider_id,omitempty"`
	Scopes     []string `json:"scopes,omitempty"`
}

// ToolDefinition is the immutable wire contract derived for a registered
// tool. It is built once at registration and never mutated.
type ToolDefinition struct {
	Name            string           `json:"name"`
	FullyQualified  string           `json:"fully_qualified_name"`
	Toolkit         string           `json:"toolkit"`
	Version         string           `json:"version"`
	Description     string           `json:"description"`
	Inputs          []InputParameter `json:"inputs"`
	Output          OutputSpec       `json:"output"`
	RequiresAuth    *AuthRequirement `json:"requires_auth,omitempty"`
	RequiresSecrets []string         `json:"requires_secrets,omitempty"`
	Deprecated      string           `json:"deprecated,omitempty"`
}

// CatalogEntry is the flattened per-tool summary returned by the catalog
// listing endpoint.
type CatalogEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Endpoint    string `json:"endpoint"`
	Deprecated  string `json:"deprecated,omitempty"`
}

// HealthResponse is the payload of the worker health check.
type HealthResponse struct {
	Status    string `json:"status"`
	ToolCount int    `json:"tool_count"`
}
