package schema

import (
	"reflect"

	"github.com/wippyai/bytestruct/bitfield"
)

// Value is the dynamic form of a struct: member name to member value.
type Value map[string]any

// Clone returns a deep copy of v. Nested Values, arrays and bitfield values
// are copied, primitives are shared.
func (v Value) Clone() Value {
	if v == nil {
		return nil
	}
	out := make(Value, len(v))
	for k, e := range v {
		out[k] = cloneAny(e)
	}
	return out
}

func cloneAny(v any) any {
	switch x := v.(type) {
	case Value:
		return x.Clone()
	case map[string]any:
		return Value(x).Clone()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneAny(e)
		}
		return out
	case bitfield.Value:
		out := make(bitfield.Value, len(x))
		for k, e := range x {
			out[k] = e
		}
		return out
	default:
		return v
	}
}

func child(path []string, name string) []string {
	return append(append(make([]string, 0, len(path)+1), path...), name)
}

// typeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
