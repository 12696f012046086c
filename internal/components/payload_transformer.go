package components

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/alexisbeaulieu97/dagflow/internal/component"
	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

// payloadTransformerConfig is the PayloadTransformer component's
// configuration document. TransformationExpression defaults to "." (the
// identity transform) when absent. ValidationData, if present, is used
// only at configure time to smoke-test the compiled expression against a
// known input/output pair — it has no effect at execute time.
type payloadTransformerConfig struct {
	TransformationExpression string `json:"transformation_expression"`
	ValidationData           *struct {
		Input          json.RawMessage `json:"input"`
		ExpectedOutput json.RawMessage `json:"expected_output"`
	} `json:"validation_data"`
}

// payloadTransformer applies a compiled JQ expression to a Json input
// value, producing a Json output value.
type payloadTransformer struct {
	expression string
	query      *gojq.Query
}

// NewPayloadTransformer compiles transformation_expression at
// configuration time — an invalid JQ program fails the DAG build rather
// than every execution, surfacing as dagerrors.InvalidConfiguration. When
// validation_data is supplied, the compiled query is run against its input
// immediately; an evaluation error, or a result that differs from
// expected_output when one is given, also fails configuration, so a
// syntactically valid but semantically broken expression is caught before
// a single pipeline execution reaches it.
func NewPayloadTransformer(raw json.RawMessage) (component.Component, error) {
	var cfg payloadTransformerConfig
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("payload transformer: %w", err)
		}
	}
	if cfg.TransformationExpression == "" {
		cfg.TransformationExpression = "."
	}

	query, err := gojq.Parse(cfg.TransformationExpression)
	if err != nil {
		return nil, fmt.Errorf("JQ program validation failed: %w", err)
	}

	if cfg.ValidationData != nil {
		var input any
		if err := json.Unmarshal(cfg.ValidationData.Input, &input); err != nil {
			return nil, fmt.Errorf("payload transformer: invalid validation_data.input: %w", err)
		}
		got, err := runJQ(query, input)
		if err != nil {
			return nil, fmt.Errorf("JQ program validation failed against validation_data: %w", err)
		}
		if len(cfg.ValidationData.ExpectedOutput) > 0 {
			var expected any
			if err := json.Unmarshal(cfg.ValidationData.ExpectedOutput, &expected); err != nil {
				return nil, fmt.Errorf("payload transformer: invalid validation_data.expected_output: %w", err)
			}
			gotJSON, _ := json.Marshal(got)
			wantJSON, _ := json.Marshal(expected)
			if string(gotJSON) != string(wantJSON) {
				return nil, fmt.Errorf("JQ program validation failed against validation_data: got %s, expected %s", gotJSON, wantJSON)
			}
		}
	}

	return payloadTransformer{expression: cfg.TransformationExpression, query: query}, nil
}

func (t payloadTransformer) Execute(_ context.Context, input dagvalue.Value) (dagvalue.Value, error) {
	doc, ok := input.AsJson()
	if !ok {
		return dagvalue.Value{}, fmt.Errorf("payload transformer: expected Json input")
	}

	out, err := runJQ(t.query, doc)
	if err != nil {
		return dagvalue.Value{}, fmt.Errorf("payload transformer: %w", err)
	}
	return dagvalue.NewJson(out), nil
}

func (t payloadTransformer) InputType() dagvalue.Type  { return dagvalue.Json }
func (t payloadTransformer) OutputType() dagvalue.Type { return dagvalue.Json }

// runJQ runs a compiled query against a single decoded-JSON document,
// returning its first emitted value (PayloadTransformer always produces
// exactly one output per input, never a stream).
func runJQ(query *gojq.Query, input any) (any, error) {
	iter := query.Run(input)
	v, ok := iter.Next()
	if !ok {
		return nil, fmt.Errorf("JQ expression produced no output")
	}
	if err, ok := v.(error); ok {
		return nil, err
	}
	return v, nil
}
