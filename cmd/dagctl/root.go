package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/dagflow/internal/resultcache"
)

const defaultCacheCapacity = 256

type rootFlags struct {
	historyFile string
	cacheSize   int
}

func newRootCmd(app *AppContext) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "dagctl",
		Short:         "dagctl builds and executes typed DAG dataflow pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Cache != nil {
				return nil
			}
			size := flags.cacheSize
			if size <= 0 {
				size = defaultCacheCapacity
			}
			cache, err := resultcache.New(size, flags.historyFile)
			if err != nil {
				return fmt.Errorf("build result cache: %w", err)
			}
			app.Cache = cache
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flags.historyFile, "history-file", "", "Path to a line-delimited JSON history log (enables replay across process restarts)")
	cmd.PersistentFlags().IntVar(&flags.cacheSize, "cache-size", defaultCacheCapacity, "Per-keyspace capacity of the in-memory memoization/replay cache")

	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newPlanCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newWatchCmd(app))
	cmd.AddCommand(newReplayCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
