package components

import "github.com/alexisbeaulieu97/dagflow/internal/registry"

// RegisterAll wires every built-in component into reg under its wire
// component_type name. Called once at process startup by cmd/dagctl and
// internal/httpapi before any IR is parsed.
func RegisterAll(reg *registry.Registry) {
	reg.MustRegister("adder", NewAdder)
	reg.MustRegister("multiplier", NewMultiplier)
	reg.MustRegister("payload_transformer", NewPayloadTransformer)
	reg.MustRegister("flexible_wildcard_processor", NewFlexibleWildcardProcessor)
	reg.MustRegister("expr_evaluator", NewExprEvaluator)
	reg.MustRegister("git_revision", NewGitRevision)
	reg.MustRegister("shell_exec", NewShellExec)
}
