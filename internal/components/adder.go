package components

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexisbeaulieu97/dagflow/internal/component"
	"github.com/alexisbeaulieu97/dagflow/internal/dagerrors"
	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

// adderConfig is the Adder component's configuration document.
type adderConfig struct {
	Value int32 `json:"value"`
}

// adder adds a fixed configured value to its input. Input is Null (treated
// as zero), Integer, or a List of Integer (summed before adding).
type adder struct {
	value int32
}

// NewAdder builds an Adder component's factory.
func NewAdder(raw json.RawMessage) (component.Component, error) {
	var cfg adderConfig
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("adder: %w", err)
		}
	}
	return adder{value: cfg.Value}, nil
}

func (a adder) Execute(_ context.Context, input dagvalue.Value) (dagvalue.Value, error) {
	sum, err := sumNumeric(input)
	if err != nil {
		return dagvalue.Value{}, err
	}
	return dagvalue.NewInteger(sum + a.value), nil
}

func (a adder) InputType() dagvalue.Type {
	return dagvalue.UnionOf(dagvalue.Null, dagvalue.Integer, dagvalue.List(dagvalue.Integer))
}

func (a adder) OutputType() dagvalue.Type { return dagvalue.Integer }

// sumNumeric implements the Null/Integer/List(Integer) input coercion
// shared by Adder and Multiplier: Null sums to zero, Integer passes
// through, and a List sums its Integer elements (non-Integer elements are
// skipped rather than erroring, matching the original's filter_map).
func sumNumeric(v dagvalue.Value) (int32, error) {
	switch v.Kind() {
	case dagvalue.KindNull:
		return 0, nil
	case dagvalue.KindInteger:
		n, _ := v.AsInteger()
		return n, nil
	case dagvalue.KindList:
		items, _ := v.AsList()
		var sum int32
		for _, item := range items {
			if n, ok := item.AsInteger(); ok {
				sum += n
			}
		}
		return sum, nil
	default:
		return 0, &dagerrors.TypeMismatch{
			Edge:     "adder/multiplier input",
			Expected: dagvalue.UnionOf(dagvalue.Null, dagvalue.Integer, dagvalue.List(dagvalue.Integer)),
			Got:      dagvalue.TypeOf(v),
		}
	}
}
