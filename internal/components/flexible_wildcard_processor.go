package components

import (
	"context"
	"encoding/json"

	"github.com/alexisbeaulieu97/dagflow/internal/component"
	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

// flexibleWildcardProcessor wraps any accepted input kind into a tagged
// Json document, so downstream PayloadTransformer-style JQ components can
// inspect a uniform shape regardless of what fed into it.
type flexibleWildcardProcessor struct{}

// NewFlexibleWildcardProcessor takes no configuration.
func NewFlexibleWildcardProcessor(json.RawMessage) (component.Component, error) {
	return flexibleWildcardProcessor{}, nil
}

func (flexibleWildcardProcessor) Execute(_ context.Context, input dagvalue.Value) (dagvalue.Value, error) {
	return dagvalue.NewJson(wrap(input)), nil
}

func wrap(v dagvalue.Value) any {
	switch v.Kind() {
	case dagvalue.KindNull:
		return map[string]any{"type": "null"}
	case dagvalue.KindJson:
		doc, _ := v.AsJson()
		return doc
	case dagvalue.KindInteger:
		n, _ := v.AsInteger()
		return map[string]any{"type": "integer", "value": n}
	case dagvalue.KindText:
		s, _ := v.AsText()
		return map[string]any{"type": "text", "value": s}
	case dagvalue.KindList:
		items, _ := v.AsList()
		values := make([]any, len(items))
		for i, item := range items {
			values[i] = wrapListElement(item)
		}
		return map[string]any{"type": "list", "values": values}
	case dagvalue.KindChannel:
		return map[string]any{"type": "one_consumer_channel"}
	default:
		return map[string]any{"type": "unknown"}
	}
}

// wrapListElement mirrors the narrower element wrapping used inside a
// List: only Integer and Text map to a tagged shape, everything else
// collapses to {"type": "unknown"}.
func wrapListElement(v dagvalue.Value) any {
	switch v.Kind() {
	case dagvalue.KindInteger:
		n, _ := v.AsInteger()
		return map[string]any{"type": "integer", "value": n}
	case dagvalue.KindText:
		s, _ := v.AsText()
		return map[string]any{"type": "text", "value": s}
	default:
		return map[string]any{"type": "unknown"}
	}
}

func (flexibleWildcardProcessor) InputType() dagvalue.Type {
	return dagvalue.UnionOf(
		dagvalue.Json,
		dagvalue.Integer,
		dagvalue.Text,
		dagvalue.List(dagvalue.UnionOf(dagvalue.Integer, dagvalue.Text)),
	)
}

func (flexibleWildcardProcessor) OutputType() dagvalue.Type { return dagvalue.Json }
