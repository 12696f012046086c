package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/dagflow/internal/dag"
	"github.com/alexisbeaulieu97/dagflow/internal/dagctxlog"
	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
	"github.com/alexisbeaulieu97/dagflow/internal/fingerprint"
	"github.com/alexisbeaulieu97/dagflow/internal/ir"
	"github.com/alexisbeaulieu97/dagflow/internal/resultcache"
	"github.com/alexisbeaulieu97/dagflow/internal/scheduler"
)

type runOptions struct {
	noCache bool
}

func newRunCmd(app *AppContext) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a pipeline document and print its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(app, cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Bypass the memoization cache for this run")

	return cmd
}

func runRun(app *AppContext, cmd *cobra.Command, path string, opts runOptions) error {
	ctx, logger := app.CommandContext(cmd, "run")

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

	requestID := uuid.NewString()
	ctx = dagctxlog.WithRequestID(ctx, requestID)

	key := resultcache.Key{
		IRHash:     parsed.Hash(),
		InputsHash: fingerprint.SeedInputsHash(ir.SeedInputs(parsed)),
	}

	if !opts.noCache {
		if record, ok := app.Cache.Lookup(key); ok {
			logger.Info(ctx, "served from memoization cache", "request_id", record.RequestID)
			return printResults(cmd, record.NodeResults)
		}
	}

	results, err := scheduler.Execute(ctx, graph, scheduler.Options{RequestID: requestID})
	if err != nil {
		return err
	}

	record := resultcache.NewRecord(requestID, results)
	app.Cache.Store(key, record)
	logger.Info(ctx, "execution complete", "request_id", requestID)

	return printResults(cmd, record.NodeResults)
}

func printResults(cmd *cobra.Command, results map[string]dagvalue.Value) error {
	encoded, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}
