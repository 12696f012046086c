package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/dagflow/internal/dag"
	"github.com/alexisbeaulieu97/dagflow/internal/dagctxlog"
	"github.com/alexisbeaulieu97/dagflow/internal/fingerprint"
	"github.com/alexisbeaulieu97/dagflow/internal/ir"
	"github.com/alexisbeaulieu97/dagflow/internal/resultcache"
	"github.com/alexisbeaulieu97/dagflow/internal/scheduler"
	"github.com/alexisbeaulieu97/dagflow/internal/tui"
)

func newWatchCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Execute a pipeline document with a live per-node progress view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(app, cmd, args[0])
		},
	}
	return cmd
}

func runWatch(app *AppContext, cmd *cobra.Command, path string) error {
	ctx, logger := app.CommandContext(cmd, "watch")

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

	order := make([]string, len(parsed.Nodes))
	for i, n := range parsed.Nodes {
		order[i] = n.ID
	}

	title := parsed.Alias
	if title == "" {
		title = path
	}

	requestID := uuid.NewString()
	ctx = dagctxlog.WithRequestID(ctx, requestID)

	modelState := tui.NewModel(title, order)
	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	var program *tea.Program
	var programErr error
	done := make(chan struct{})

	if interactive {
		program = tea.NewProgram(modelState)
		go func() {
			_, programErr = program.Run()
			close(done)
		}()
	}

	results, execErr := scheduler.Execute(ctx, graph, scheduler.Options{
		RequestID: requestID,
		OnNodeDone: func(nodeID string, err error) {
			dispatchTuiMessage(interactive, program, &modelState, tui.NodeDoneMsg{ID: nodeID, Err: err})
		},
	})

	if interactive {
		if program != nil {
			program.Send(tea.QuitMsg{})
		}
		<-done
		if programErr != nil {
			return programErr
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), modelState.View())
	}

	if execErr != nil {
		return execErr
	}

	key := resultcache.Key{
		IRHash:     parsed.Hash(),
		InputsHash: fingerprint.SeedInputsHash(ir.SeedInputs(parsed)),
	}
	record := resultcache.NewRecord(requestID, results)
	app.Cache.Store(key, record)
	logger.Info(ctx, "execution complete", "request_id", requestID)

	return printResults(cmd, record.NodeResults)
}

func dispatchTuiMessage(interactive bool, program *tea.Program, state *tui.Model, msg tea.Msg) {
	if interactive {
		if program != nil {
			program.Send(msg)
		}
		return
	}

	updated, _ := state.Update(msg)
	if m, ok := updated.(tui.Model); ok {
		*state = m
	}
}
