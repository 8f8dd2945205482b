package schema

import (
	"fmt"
	"reflect"

	"github.com/bobmcallan/toolgate/internal/tool"
	"github.com/bobmcallan/toolgate/internal/wire"
)

var enumType = reflect.TypeOf((*tool.Enum)(nil)).Elem()

// valueSchemaFor maps a native Go type onto the closed wire type set.
// The table is fixed: strings map to string, booleans to boolean, integral
// kinds to integer, floating kinds to float, and any struct/map/slice to
// json. Anything else is an inference error, never a silent fallback.
func valueSchemaFor(t reflect.Type) (wire.ValueSchema, error) {
	if values, ok := enumValuesOf(t); ok {
		if t.Kind() != reflect.String {
			return wire.ValueSchema{}, fmt.Errorf("enum type %s must have a string underlying type", t)
		}
		return wire.ValueSchema{ValType: wire.TypeString, Enum: values}, nil
	}

	switch t.Kind() {
	case reflect.String:
		return wire.ValueSchema{ValType: wire.TypeString}, nil
	case reflect.Bool:
		return wire.ValueSchema{ValType: wire.TypeBoolean}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return wire.ValueSchema{ValType: wire.TypeInteger}, nil
	case reflect.Float32, reflect.Float64:
		return wire.ValueSchema{ValType: wire.TypeFloat}, nil
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		return wire.ValueSchema{ValType: wire.TypeJSON}, nil
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return wire.ValueSchema{ValType: wire.TypeJSON}, nil
		}
	}
	return wire.ValueSchema{}, fmt.Errorf("unsupported parameter type %s", t)
}

// enumValuesOf reports the closed value set of t when it (or *t)
// implements tool.Enum.
func enumValuesOf(t reflect.Type) ([]string, bool) {
	if t.Implements(enumType) {
		return reflect.Zero(t).Interface().(tool.Enum).EnumValues(), true
	}
	if reflect.PointerTo(t).Implements(enumType) {
		return reflect.New(t).Interface().(tool.Enum).EnumValues(), true
	}
	return nil, false
}
