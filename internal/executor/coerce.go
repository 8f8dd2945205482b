package executor

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/bobmcallan/toolgate/internal/catalog"
	"github.com/bobmcallan/toolgate/internal/schema"
	"github.com/bobmcallan/toolgate/internal/toolerr"
	"github.com/bobmcallan/toolgate/internal/wire"
)

// coerceParam resolves one parameter from the raw input map: present
// values are coerced from their wire representation, absent optional ones
// fall back to the default or a nil pointer.
func coerceParam(pb schema.ParamBinding, inputs map[string]interface{}) (reflect.Value, error) {
	raw, present := inputs[pb.Name]
	if !present || raw == nil {
		if !pb.Optional {
			return reflect.Value{}, inputErrorf(pb.Name, "required parameter is missing")
		}
		if pb.HasDefault {
			v := reflect.ValueOf(pb.Default).Convert(pb.Elem)
			return wrapPointer(pb, v), nil
		}
		if pb.Type.Kind() == reflect.Ptr {
			return reflect.Zero(pb.Type), nil
		}
		return reflect.Zero(pb.Type), nil
	}

	v, err := coerceValue(pb.Name, pb.Elem, pb.Wire, pb.Enum, raw)
	if err != nil {
		return reflect.Value{}, err
	}
	return wrapPointer(pb, v), nil
}

func wrapPointer(pb schema.ParamBinding, v reflect.Value) reflect.Value {
	if pb.Type.Kind() != reflect.Ptr {
		return v
	}
	p := reflect.New(pb.Elem)
	p.Elem().Set(v)
	return p
}

// coerceValue converts a decoded JSON value to the native parameter type.
// JSON numbers arrive as float64; integers reject fractional values
// instead of truncating them.
func coerceValue(name string, elem reflect.Type, wt wire.ValueType, enum []string, raw interface{}) (reflect.Value, error) {
	switch wt {
	case wire.TypeString:
		s, ok := raw.(string)
		if !ok {
			return reflect.Value{}, inputErrorf(name, "expected string, got %T", raw)
		}
		if len(enum) > 0 && !contains(enum, s) {
			return reflect.Value{}, inputErrorf(name, "value %q is not one of %v", s, enum)
		}
		return reflect.ValueOf(s).Convert(elem), nil

	case wire.TypeBoolean:
		b, ok := raw.(bool)
		if !ok {
			return reflect.Value{}, inputErrorf(name, "expected boolean, got %T", raw)
		}
		return reflect.ValueOf(b).Convert(elem), nil

	case wire.TypeInteger:
		f, err := asFloat(raw)
		if err != nil {
			return reflect.Value{}, inputErrorf(name, "expected integer, got %T", raw)
		}
		if f != math.Trunc(f) {
			return reflect.Value{}, inputErrorf(name, "expected integer, got fractional value %v", f)
		}
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return reflect.Value{}, inputErrorf(name, "value %v is outside the integer range", f)
		}
		v := reflect.New(elem).Elem()
		switch elem.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if f < 0 || v.OverflowUint(uint64(f)) {
				return reflect.Value{}, inputErrorf(name, "value %v does not fit in %s", f, elem)
			}
			v.SetUint(uint64(f))
		default:
			if v.OverflowInt(int64(f)) {
				return reflect.Value{}, inputErrorf(name, "value %v does not fit in %s", f, elem)
			}
			v.SetInt(int64(f))
		}
		return v, nil

	case wire.TypeFloat:
		f, err := asFloat(raw)
		if err != nil {
			return reflect.Value{}, inputErrorf(name, "expected number, got %T", raw)
		}
		return reflect.ValueOf(f).Convert(elem), nil

	case wire.TypeJSON:
		// round-trip through encoding/json to fill the declared shape
		data, err := json.Marshal(raw)
		if err != nil {
			return reflect.Value{}, inputErrorf(name, "value is not JSON-serializable: %v", err)
		}
		target := reflect.New(elem)
		if err := json.Unmarshal(data, target.Interface()); err != nil {
			return reflect.Value{}, inputErrorf(name, "value does not match expected shape: %v", err)
		}
		return target.Elem(), nil
	}
	return reflect.Value{}, inputErrorf(name, "unhandled wire type %q", wt)
}

func asFloat(raw interface{}) (float64, error) {
	switch n := raw.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	}
	return 0, fmt.Errorf("not a number")
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func inputErrorf(param, format string, args ...interface{}) *toolerr.InputError {
	return &toolerr.InputError{
		Message:          "Error in tool input deserialization",
		DeveloperMessage: fmt.Sprintf("parameter %q: %s", param, fmt.Sprintf(format, args...)),
	}
}

// serializeOutput converts the callable's return value into its wire
// representation. A value that cannot be serialized to the declared wire
// type is a bug in the tool, reported as an OutputError.
func serializeOutput(mt *catalog.MaterializedTool, results []reflect.Value) (interface{}, error) {
	out := mt.Binding.Output
	if !out.HasValue {
		return nil, nil
	}
	if len(results) == 0 {
		return nil, &toolerr.OutputError{
			Message:          "Failed to serialize tool output",
			DeveloperMessage: "tool declared a return value but produced none",
		}
	}

	v := results[0]
	if out.Type.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}

	switch out.Wire {
	case wire.TypeString:
		return v.Convert(reflect.TypeOf("")).Interface(), nil
	case wire.TypeBoolean:
		return v.Bool(), nil
	case wire.TypeInteger:
		if v.Kind() >= reflect.Uint && v.Kind() <= reflect.Uint64 {
			return int64(v.Uint()), nil
		}
		return v.Int(), nil
	case wire.TypeFloat:
		return v.Float(), nil
	case wire.TypeJSON:
		data, err := json.Marshal(v.Interface())
		if err != nil {
			return nil, &toolerr.OutputError{
				Message:          "Failed to serialize tool output",
				DeveloperMessage: fmt.Sprintf("return value is not JSON-serializable: %v", err),
			}
		}
		var generic interface{}
		if err := json.Unmarshal(data, &generic); err != nil {
			return nil, &toolerr.OutputError{
				Message:          "Failed to serialize tool output",
				DeveloperMessage: err.Error(),
			}
		}
		return generic, nil
	}
	return nil, &toolerr.OutputError{
		Message:          "Failed to serialize tool output",
		DeveloperMessage: fmt.Sprintf("unhandled wire type %q", out.Wire),
	}
}
