package components

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexisbeaulieu97/dagflow/internal/component"
	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

// multiplierConfig is the Multiplier component's configuration document.
type multiplierConfig struct {
	Multiplier *float64 `json:"multiplier"`
}

// multiplier scales its (Null/Integer/List(Integer)) input by a
// configured floating-point factor, truncating the product to Integer.
type multiplier struct {
	factor float64
}

// NewMultiplier builds a Multiplier component's factory. The multiplier
// field is required — a missing or non-numeric value fails configuration,
// surfacing as dagerrors.InvalidConfiguration at DAG build time.
func NewMultiplier(raw json.RawMessage) (component.Component, error) {
	var cfg multiplierConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("multiplier: %w", err)
	}
	if cfg.Multiplier == nil {
		return nil, fmt.Errorf("multiplier: multiplier is required")
	}
	return multiplier{factor: *cfg.Multiplier}, nil
}

func (m multiplier) Execute(_ context.Context, input dagvalue.Value) (dagvalue.Value, error) {
	sum, err := sumNumeric(input)
	if err != nil {
		return dagvalue.Value{}, err
	}
	return dagvalue.NewInteger(int32(float64(sum) * m.factor)), nil
}

func (m multiplier) InputType() dagvalue.Type {
	return dagvalue.UnionOf(dagvalue.Null, dagvalue.Integer, dagvalue.List(dagvalue.Integer))
}

func (m multiplier) OutputType() dagvalue.Type { return dagvalue.Integer }
