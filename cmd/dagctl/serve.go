package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/dagflow/internal/httpapi"
)

func newServeCmd(app *AppContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline execution HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "serve")
			server := httpapi.NewServer(app.Registry, app.Cache, logger)
			logger.Info(ctx, "listening", "addr", addr)
			return http.ListenAndServe(addr, server.Routes())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")
	return cmd
}
