package dagvalue

import "math"

// FromJSON coerces a decoded JSON document (as produced by
// encoding/json.Unmarshal into `any`) into a Value, following the IR
// builder's literal-inputs coercion rule: whole-number JSON numbers become
// Integer, other numbers become Float, strings become Text, arrays become
// List recursively, objects become Json, and null becomes Null.
//
// Arrays are coerced element-wise rather than wrapped as Json so that a
// literal `inputs: [1,2,3]` types as List(Integer), matching components
// (like Multiplier) that accept a List of primitives directly.
func FromJSON(doc any) Value {
	switch t := doc.(type) {
	case nil:
		return NewNull()
	case float64:
		if isWholeNumber(t) && withinInt32Range(t) {
			return NewInteger(int32(t))
		}
		return NewFloat(t)
	case string:
		return NewText(t)
	case []any:
		items := make([]Value, len(t))
		for i, elem := range t {
			items[i] = FromJSON(elem)
		}
		return NewList(items)
	default:
		// bool, map[string]any, and anything else encoding/json can produce.
		return NewJson(t)
	}
}

func isWholeNumber(f float64) bool {
	return f == math.Trunc(f) && !math.IsInf(f, 0)
}

func withinInt32Range(f float64) bool {
	return f >= math.MinInt32 && f <= math.MaxInt32
}

// PlainJSON renders a Value as an untagged `any`, the shape a caller would
// expect from a "normal" JSON API, for comparing a Value against a plain
// JSON literal. It is the inverse of FromJSON and is used nowhere on the
// wire; no package in this module calls it (the CLI and the HTTP API print
// the tagged wire format).
func PlainJSON(v Value) any {
	switch v.kind {
	case KindNull:
		return nil
	case KindInteger:
		return v.integer
	case KindFloat:
		return v.float
	case KindText:
		return v.text
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = PlainJSON(item)
		}
		return out
	case KindJson:
		return v.json
	case KindChannel:
		return "OneConsumerChannel"
	default:
		return nil
	}
}
