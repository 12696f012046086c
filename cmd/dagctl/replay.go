package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReplayCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <request-id>",
		Short: "Print the stored result of a previous execution by its request id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID := args[0]
			record, ok := app.Cache.Replay(requestID)
			if !ok {
				return fmt.Errorf("no recorded execution for request id %q", requestID)
			}
			return printResults(cmd, record.NodeResults)
		},
	}
	return cmd
}
