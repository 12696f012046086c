package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/dagflow/internal/dag"
	"github.com/alexisbeaulieu97/dagflow/internal/ir"
)

func newPlanCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <file>",
		Short: "Build a pipeline document into a graph and print its execution layers, without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(app, cmd, args[0])
		},
	}
	return cmd
}

func runPlan(app *AppContext, cmd *cobra.Command, path string) error {
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	parsed, err := ir.Parse(doc)
	if err != nil {
		return err
	}

	graph, err := dag.Build(parsed, app.Registry, dag.NewConfig())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if parsed.Alias != "" {
		fmt.Fprintf(out, "pipeline: %s\n", parsed.Alias)
	}
	fmt.Fprintf(out, "nodes: %d, layers: %d\n", len(graph.Nodes), len(graph.Levels))
	for i, level := range graph.Levels {
		fmt.Fprintf(out, "  layer %d: %s\n", i, strings.Join(level, ", "))
	}
	return nil
}
