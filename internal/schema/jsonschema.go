package schema

import "github.com/bobmcallan/toolgate/internal/wire"

// jsonSchemaTypes maps wire types onto JSON Schema type names.
var jsonSchemaTypes = map[wire.ValueType]string{
	wire.TypeString:  "string",
	wire.TypeInteger: "integer",
	wire.TypeFloat:   "number",
	wire.TypeBoolean: "boolean",
}

// InputJSONSchema renders a tool's input contract as a JSON Schema object.
// The catalog compiles this once per tool for request validation, and the
// schema endpoint serves it to clients.
func InputJSONSchema(def wire.ToolDefinition) map[string]interface{} {
	properties := map[string]interface{}{}
	required := []string{}
	for _, p := range def.Inputs {
		prop := valueJSONSchema(&p.ValueSchema, p.Description)
		if p.Required {
			required = append(required, p.Name)
		} else {
			allowNull(prop)
		}
		properties[p.Name] = prop
	}
	return map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

// OutputJSONSchema renders a tool's output contract, or {"type":"null"}
// for tools that return nothing.
func OutputJSONSchema(def wire.ToolDefinition) map[string]interface{} {
	return valueJSONSchema(def.Output.ValueSchema, def.Output.Description)
}

// allowNull widens an optional parameter's schema so an explicit JSON
// null validates; the executor then falls back to the default or a nil
// pointer, same as an absent value.
func allowNull(prop map[string]interface{}) {
	if t, ok := prop["type"].(string); ok {
		prop["type"] = []string{t, "null"}
	}
	if enum, ok := prop["enum"].([]string); ok {
		widened := make([]interface{}, 0, len(enum)+1)
		for _, v := range enum {
			widened = append(widened, v)
		}
		prop["enum"] = append(widened, nil)
	}
}

func valueJSONSchema(vs *wire.ValueSchema, description string) map[string]interface{} {
	out := map[string]interface{}{}
	if vs == nil {
		out["type"] = "null"
	} else if t, ok := jsonSchemaTypes[vs.ValType]; ok {
		out["type"] = t
	}
	// wire json values stay unconstrained: any JSON shape is accepted
	if vs != nil && len(vs.Enum) > 0 {
		out["enum"] = vs.Enum
	}
	if description != "" {
		out["description"] = description
	}
	return out
}
