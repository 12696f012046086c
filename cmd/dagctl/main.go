package main

import (
	"fmt"
	"os"

	"github.com/alexisbeaulieu97/dagflow/internal/components"
	"github.com/alexisbeaulieu97/dagflow/internal/dagctxlog"
	"github.com/alexisbeaulieu97/dagflow/internal/registry"
)

func main() {
	appLogger, err := dagctxlog.New(dagctxlog.Options{Level: "info", Component: "cli"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	reg := registry.New()
	components.RegisterAll(reg)

	app := &AppContext{Logger: appLogger, Registry: reg}

	rootCmd := newRootCmd(app)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
