package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/dagflow/internal/dagctxlog"
	"github.com/alexisbeaulieu97/dagflow/internal/registry"
	"github.com/alexisbeaulieu97/dagflow/internal/resultcache"
)

// AppContext bundles the long-lived services every subcommand shares: the
// component registry pipelines are built against, the memoization/replay
// cache, and the structured logger.
type AppContext struct {
	Logger   *dagctxlog.Logger
	Registry *registry.Registry
	Cache    *resultcache.Cache
}

// CommandContext returns the command's context (falling back to
// Background) together with a component-scoped logger.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, *dagctxlog.Logger) {
	ctx := context.Background()
	if cmd != nil && cmd.Context() != nil {
		ctx = cmd.Context()
	}
	return ctx, a.LoggerFor(component)
}

// LoggerFor derives a child logger scoped to the given component name.
func (a *AppContext) LoggerFor(component string) *dagctxlog.Logger {
	if a == nil || a.Logger == nil {
		return nil
	}
	return a.Logger.With("component", component)
}
