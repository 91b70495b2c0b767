package spec

import "encoding/json"

// FilterValue is the value of a filter sub-expression: one of
// [NothingType], [NullType], [BoolValue], [IntValue], [FloatValue],
// [StringValue], [ArrayValue], [ObjectValue], or [NodesValue].
//
// [NothingType] represents the absence of a value and is distinct from
// JSON null. A [NodesValue] is the result of an embedded query; singleton
// and empty node lists receive special treatment in comparisons and in
// function argument coercion.
type FilterValue interface {
	filterValue()
}

// NothingType is the absence of a value, as produced by an empty singular
// query result or by length() applied to an unsized value.
type NothingType struct{}

// Nothing is the [NothingType] singleton.
var Nothing = NothingType{}

// NullType is JSON null.
type NullType struct{}

// Null is the [NullType] singleton.
var Null = NullType{}

// BoolValue is a JSON boolean.
type BoolValue bool

// IntValue is an integral JSON number.
type IntValue int64

// FloatValue is a JSON number held as a Go floating-point value, whether
// or not it is integral, or a [json.Number] that does not parse as an
// int64.
type FloatValue float64

// StringValue is a JSON string.
type StringValue string

// ArrayValue references a JSON array in the query argument.
type ArrayValue []any

// ObjectValue references a JSON object in the query argument.
type ObjectValue map[string]any

// NodesValue is the node list produced by an embedded query or a
// nodes-returning function extension.
type NodesValue []any

func (NothingType) filterValue() {}
func (NullType) filterValue()    {}
func (BoolValue) filterValue()   {}
func (IntValue) filterValue()    {}
func (FloatValue) filterValue()  {}
func (StringValue) filterValue() {}
func (ArrayValue) filterValue()  {}
func (ObjectValue) filterValue() {}
func (NodesValue) filterValue()  {}

// ValueOf classifies a JSON value as a [FilterValue]. Integral Go values,
// including [json.Number] values that parse as integers, become
// [IntValue]; other numbers become [FloatValue]. Values that are not
// JSON-shaped classify as [Nothing].
func ValueOf(val any) FilterValue {
	switch v := val.(type) {
	case nil:
		return Null
	case bool:
		return BoolValue(v)
	case string:
		return StringValue(v)
	case int:
		return IntValue(v)
	case int8:
		return IntValue(v)
	case int16:
		return IntValue(v)
	case int32:
		return IntValue(v)
	case int64:
		return IntValue(v)
	case uint:
		return IntValue(v)
	case uint8:
		return IntValue(v)
	case uint16:
		return IntValue(v)
	case uint32:
		return IntValue(v)
	case uint64:
		return IntValue(v)
	case float32:
		return FloatValue(v)
	case float64:
		return FloatValue(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return IntValue(i)
		}
		if f, err := v.Float64(); err == nil {
			return FloatValue(f)
		}
		return Nothing
	case []any:
		return ArrayValue(v)
	case map[string]any:
		return ObjectValue(v)
	default:
		return Nothing
	}
}

// IsTruthy returns the truthiness of v: [Nothing] is false, a
// [NodesValue] is true when non-empty, a [BoolValue] is itself, and
// everything else is true.
func IsTruthy(v FilterValue) bool {
	switch v := v.(type) {
	case NothingType:
		return false
	case NodesValue:
		return len(v) > 0
	case BoolValue:
		return bool(v)
	default:
		return true
	}
}
