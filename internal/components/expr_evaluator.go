package components

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/alexisbeaulieu97/dagflow/internal/component"
	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

// exprEvaluatorConfig configures an ExprEvaluator component.
type exprEvaluatorConfig struct {
	Expression string `json:"expression"`
}

// exprEvaluator evaluates a compiled expr-lang expression against a Json
// input document, treating the document's top-level object as the
// expression environment.
type exprEvaluator struct {
	program *vm.Program
}

// NewExprEvaluator compiles the expression at configuration time, so a
// syntax error fails the DAG build rather than every execution.
func NewExprEvaluator(raw json.RawMessage) (component.Component, error) {
	var cfg exprEvaluatorConfig
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("expr evaluator: %w", err)
		}
	}

	program, err := expr.Compile(cfg.Expression, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("expr program validation failed: %w", err)
	}
	return exprEvaluator{program: program}, nil
}

func (e exprEvaluator) Execute(_ context.Context, input dagvalue.Value) (dagvalue.Value, error) {
	doc, ok := input.AsJson()
	if !ok {
		return dagvalue.Value{}, fmt.Errorf("expr evaluator: expected Json input")
	}

	env, ok := doc.(map[string]any)
	if !ok {
		env = map[string]any{"value": doc}
	}

	out, err := vm.Run(e.program, env)
	if err != nil {
		return dagvalue.Value{}, fmt.Errorf("expr evaluator: %w", err)
	}
	return dagvalue.NewJson(out), nil
}

func (e exprEvaluator) InputType() dagvalue.Type  { return dagvalue.Json }
func (e exprEvaluator) OutputType() dagvalue.Type { return dagvalue.Json }
