// Package schema derives the wire contract for a tool from its descriptor
// and the reflected signature of its Go function. Inference runs once at
// registration, never executes the function, and fails fast: every problem
// it can detect is a toolerr.DefinitionError at startup, not a runtime
// surprise.
package schema

import (
	"context"
	"reflect"
	"runtime"
	"strings"

	"github.com/bobmcallan/toolgate/internal/tool"
	"github.com/bobmcallan/toolgate/internal/toolerr"
	"github.com/bobmcallan/toolgate/internal/wire"
)

var (
	contextType     = reflect.TypeOf((*context.Context)(nil)).Elem()
	toolContextType = reflect.TypeOf((*tool.Context)(nil))
	errorType       = reflect.TypeOf((*error)(nil)).Elem()
)

// ParamBinding is the executor-side view of one declared parameter.
type ParamBinding struct {
	Name       string
	Type       reflect.Type // declared type, possibly a pointer
	Elem       reflect.Type // unwrapped value type
	Optional   bool
	HasDefault bool
	Default    interface{}
	Enum       []string
	Wire       wire.ValueType
}

// OutputBinding is the executor-side view of the function's returns.
type OutputBinding struct {
	HasValue bool
	Type     reflect.Type // declared value return, possibly a pointer
	Elem     reflect.Type
	Optional bool
	HasError bool
	Wire     wire.ValueType
}

// Binding is the invocation plan built next to a ToolDefinition: the
// reflected function plus everything needed to coerce wire inputs into a
// call and the return value back out.
type Binding struct {
	Func             reflect.Value
	TakesContext     bool
	TakesToolContext bool
	Params           []ParamBinding
	Output           OutputBinding
}

// Infer derives the wire ToolDefinition and the Binding for a descriptor.
// The toolkit name and version qualify the definition; name and version
// semantics belong to the catalog, this only records them.
func Infer(d tool.Descriptor, toolkitName, version string) (wire.ToolDefinition, *Binding, error) {
	name := d.Name
	if name == "" {
		name = deriveName(d.Func)
	}
	if name == "" {
		return wire.ToolDefinition{}, nil, toolerr.Definitionf("", "tool has no name and none could be derived from its function")
	}
	if d.Description == "" {
		return wire.ToolDefinition{}, nil, toolerr.Definitionf(name, "tool has no description")
	}

	fv := reflect.ValueOf(d.Func)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return wire.ToolDefinition{}, nil, toolerr.Definitionf(name, "descriptor Func is not a function")
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return wire.ToolDefinition{}, nil, toolerr.Definitionf(name, "variadic functions cannot be described")
	}

	b := &Binding{Func: fv}

	// Leading context.Context and *tool.Context parameters are injected
	// by the executor and do not appear in the wire schema.
	in := 0
	if in < ft.NumIn() && ft.In(in) == contextType {
		b.TakesContext = true
		in++
	}
	if in < ft.NumIn() && ft.In(in) == toolContextType {
		b.TakesToolContext = true
		in++
	}

	declared := ft.NumIn() - in
	if declared != len(d.Params) {
		return wire.ToolDefinition{}, nil, toolerr.Definitionf(name,
			"function takes %d parameter(s) but %d are described", declared, len(d.Params))
	}

	params := make([]wire.InputParameter, 0, declared)
	for i, p := range d.Params {
		pb, wp, err := inferParam(name, p, ft.In(in+i))
		if err != nil {
			return wire.ToolDefinition{}, nil, err
		}
		b.Params = append(b.Params, pb)
		params = append(params, wp)
	}

	out, outSpec, err := inferOutput(name, ft, d.OutputDescription)
	if err != nil {
		return wire.ToolDefinition{}, nil, err
	}
	b.Output = out

	fq := name
	if toolkitName != "" {
		fq = toolkitName + "." + name
	}
	def := wire.ToolDefinition{
		Name:            name,
		FullyQualified:  fq,
		Toolkit:         toolkitName,
		Version:         version,
		Description:     d.Description,
		Inputs:          params,
		Output:          outSpec,
		RequiresAuth:    d.RequiresAuth,
		RequiresSecrets: d.RequiresSecrets,
		Deprecated:      d.Deprecated,
	}
	return def, b, nil
}

func inferParam(toolName string, p tool.Param, t reflect.Type) (ParamBinding, wire.InputParameter, error) {
	if p.Name == "" {
		return ParamBinding{}, wire.InputParameter{}, toolerr.Definitionf(toolName, "parameter has no name")
	}
	if p.Description == "" {
		return ParamBinding{}, wire.InputParameter{}, toolerr.Definitionf(toolName, "parameter %q has no description", p.Name)
	}

	elem := t
	optional := false
	if t.Kind() == reflect.Ptr {
		elem = t.Elem()
		optional = true
	}

	vs, err := valueSchemaFor(elem)
	if err != nil {
		return ParamBinding{}, wire.InputParameter{}, toolerr.Definitionf(toolName, "parameter %q: %v", p.Name, err)
	}

	hasDefault := p.Default != nil
	if hasDefault {
		dv := reflect.ValueOf(p.Default)
		if !dv.Type().AssignableTo(elem) && !dv.Type().ConvertibleTo(elem) {
			return ParamBinding{}, wire.InputParameter{}, toolerr.Definitionf(toolName,
				"parameter %q: default value of type %s does not match parameter type %s", p.Name, dv.Type(), elem)
		}
		if len(vs.Enum) > 0 {
			if s := dv.Convert(elem).String(); !containsValue(vs.Enum, s) {
				return ParamBinding{}, wire.InputParameter{}, toolerr.Definitionf(toolName,
					"parameter %q: default %q is not one of %v", p.Name, s, vs.Enum)
			}
		}
	}

	pb := ParamBinding{
		Name:       p.Name,
		Type:       t,
		Elem:       elem,
		Optional:   optional || hasDefault,
		HasDefault: hasDefault,
		Default:    p.Default,
		Enum:       vs.Enum,
		Wire:       vs.ValType,
	}
	wp := wire.InputParameter{
		Name:        p.Name,
		Description: p.Description,
		Required:    !pb.Optional,
		Inferrable:  !p.NotInferrable,
		ValueSchema: vs,
	}
	return pb, wp, nil
}

func inferOutput(toolName string, ft reflect.Type, description string) (OutputBinding, wire.OutputSpec, error) {
	var out OutputBinding

	switch ft.NumOut() {
	case 0:
	case 1:
		if ft.Out(0) == errorType {
			out.HasError = true
		} else {
			out.HasValue = true
			out.Type = ft.Out(0)
		}
	case 2:
		if ft.Out(1) != errorType {
			return out, wire.OutputSpec{}, toolerr.Definitionf(toolName, "second return value must be error, got %s", ft.Out(1))
		}
		out.HasValue = true
		out.HasError = true
		out.Type = ft.Out(0)
	default:
		return out, wire.OutputSpec{}, toolerr.Definitionf(toolName, "functions may return at most (value, error), got %d values", ft.NumOut())
	}

	spec := wire.OutputSpec{Description: description}
	if !out.HasValue {
		spec.AvailableModes = []string{wire.ModeNull}
		return out, spec, nil
	}

	out.Elem = out.Type
	if out.Type.Kind() == reflect.Ptr {
		out.Elem = out.Type.Elem()
		out.Optional = true
	}
	vs, err := valueSchemaFor(out.Elem)
	if err != nil {
		return out, wire.OutputSpec{}, toolerr.Definitionf(toolName, "return value: %v", err)
	}
	out.Wire = vs.ValType

	spec.ValueSchema = &vs
	spec.AvailableModes = []string{wire.ModeValue, wire.ModeError}
	if out.Optional {
		spec.AvailableModes = append(spec.AvailableModes, wire.ModeNull)
	}
	return out, spec, nil
}

func containsValue(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

// deriveName recovers a usable tool name from the function symbol, e.g.
// "github.com/x/toolkits/mathkit.AddIntegers" becomes "AddIntegers".
// Closures and method values yield synthetic symbols and derive nothing.
func deriveName(fn interface{}) string {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return ""
	}
	rf := runtime.FuncForPC(fv.Pointer())
	if rf == nil {
		return ""
	}
	sym := rf.Name()
	if i := strings.LastIndex(sym, "."); i >= 0 {
		sym = sym[i+1:]
	}
	sym = strings.TrimSuffix(sym, "-fm")
	if sym == "" || strings.HasPrefix(sym, "func") {
		return ""
	}
	return sym
}
