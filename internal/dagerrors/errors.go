// Package dagerrors defines the engine's error taxonomy: one concrete type
// per failure kind, each satisfying error so callers can use errors.As
// instead of string matching. The types that wrap a cause (MalformedIR,
// InvalidConfiguration, ComponentFailure) also implement Unwrap.
package dagerrors

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

// MalformedIR indicates the declarative pipeline document could not be
// parsed into IR: wrong shape, missing required field, duplicate id.
type MalformedIR struct {
	Message string
	Err     error
}

func (e *MalformedIR) Error() string {
	return fmt.Sprintf("malformed IR: %s", e.Message)
}

func (e *MalformedIR) Unwrap() error { return e.Err }

// InvalidConfiguration reports a bad node configuration: dag.Build returns
// it when a component factory rejects a node's config. The other build
// errors (UnknownComponent, UnknownDependency, CycleDetected, TypeMismatch)
// are returned as their own types and are not wrapped in it.
type InvalidConfiguration struct {
	Message string
	Err     error
}

func (e *InvalidConfiguration) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

func (e *InvalidConfiguration) Unwrap() error { return e.Err }

// UnknownComponent indicates a node's component_type is not registered.
type UnknownComponent struct {
	ComponentType string
}

func (e *UnknownComponent) Error() string {
	return fmt.Sprintf("unknown component type %q", e.ComponentType)
}

// UnknownDependency indicates a node's depends_on target does not exist.
type UnknownDependency struct {
	NodeID       string
	DependencyID string
}

func (e *UnknownDependency) Error() string {
	return fmt.Sprintf("node %q depends on unknown node %q", e.NodeID, e.DependencyID)
}

// CycleDetected indicates the dependency graph contains a cycle; Path lists
// the node ids participating in it, in traversal order.
type CycleDetected struct {
	Path []string
}

func (e *CycleDetected) Error() string {
	return fmt.Sprintf("cycle detected: %s", strings.Join(e.Path, " -> "))
}

// TypeMismatch indicates a declared input type is incompatible with the
// type actually flowing across an edge.
type TypeMismatch struct {
	Edge     string
	Expected dagvalue.Type
	Got      dagvalue.Type
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch on %s: expected %s, got %s", e.Edge, e.Expected, e.Got)
}

// ComponentFailure wraps an error returned by a component's Execute call
// during scheduling, carrying the failing node's id.
type ComponentFailure struct {
	NodeID string
	Err    error
}

func (e *ComponentFailure) Error() string {
	return fmt.Sprintf("component failure on node %q: %v", e.NodeID, e.Err)
}

func (e *ComponentFailure) Unwrap() error { return e.Err }
