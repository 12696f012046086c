package dagvalue

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON renders a Value using a tagged-variant wire format: Null as
// the unit string "Null"; Integer/Float/Text/List/Json as single-key
// newtype objects ({"Integer": 5}); Channel as the opaque unit string
// "OneConsumerChannel". This is the format used by both the execution
// response and the history log record.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return json.Marshal("Null")
	case KindInteger:
		return json.Marshal(newtype{"Integer": v.integer})
	case KindFloat:
		return json.Marshal(newtype{"Float": v.float})
	case KindText:
		return json.Marshal(newtype{"Text": v.text})
	case KindList:
		return json.Marshal(newtype{"List": v.list})
	case KindJson:
		return json.Marshal(newtype{"Json": v.json})
	case KindChannel:
		return json.Marshal("OneConsumerChannel")
	default:
		return nil, fmt.Errorf("dagvalue: value has unknown kind %d", v.kind)
	}
}

// newtype is a tiny single-key map used purely to get encoding/json to emit
// {"Variant": payload} without hand-building byte buffers.
type newtype map[string]any

// UnmarshalJSON decodes the tagged-variant wire format produced by
// MarshalJSON. A Channel value decoded off the wire is always already
// consumed, since a live channel has no serialized form to reconstruct.
func (v *Value) UnmarshalJSON(data []byte) error {
	var unit string
	if err := json.Unmarshal(data, &unit); err == nil {
		switch unit {
		case "Null":
			*v = NewNull()
			return nil
		case "OneConsumerChannel":
			closed := make(chan Value)
			close(closed)
			consumed := NewChannel(closed)
			consumed.channel.consumed = true
			*v = consumed
			return nil
		default:
			return fmt.Errorf("dagvalue: unknown unit variant %q", unit)
		}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("dagvalue: value is neither a unit variant nor an object: %w", err)
	}
	if len(obj) != 1 {
		return fmt.Errorf("dagvalue: newtype variant must have exactly one key, got %d", len(obj))
	}

	for variant, payload := range obj {
		switch variant {
		case "Integer":
			var n int32
			if err := json.Unmarshal(payload, &n); err != nil {
				return fmt.Errorf("dagvalue: decoding Integer: %w", err)
			}
			*v = NewInteger(n)
		case "Float":
			var f float64
			if err := json.Unmarshal(payload, &f); err != nil {
				return fmt.Errorf("dagvalue: decoding Float: %w", err)
			}
			*v = NewFloat(f)
		case "Text":
			var s string
			if err := json.Unmarshal(payload, &s); err != nil {
				return fmt.Errorf("dagvalue: decoding Text: %w", err)
			}
			*v = NewText(s)
		case "List":
			var items []Value
			if err := json.Unmarshal(payload, &items); err != nil {
				return fmt.Errorf("dagvalue: decoding List: %w", err)
			}
			*v = NewList(items)
		case "Json":
			var doc any
			if err := json.Unmarshal(payload, &doc); err != nil {
				return fmt.Errorf("dagvalue: decoding Json: %w", err)
			}
			*v = NewJson(doc)
		default:
			return fmt.Errorf("dagvalue: unknown newtype variant %q", variant)
		}
		return nil
	}
	return nil
}
