package components

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/alexisbeaulieu97/dagflow/internal/component"
	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

// shellExecConfig configures a ShellExec component.
type shellExecConfig struct {
	Command string            `json:"command"`
	Shell   string            `json:"shell"`
	WorkDir string            `json:"work_dir"`
	Env     map[string]string `json:"env"`
}

// shellExec runs a fixed shell command per execution, feeding the Text
// input to the command's stdin and returning everything it wrote to
// stdout and stderr, combined and untrimmed, as Text. A non-zero exit is reported as a component failure
// rather than a successful Text result.
type shellExec struct {
	command string
	shell   string
	shellOp string
	workDir string
	env     map[string]string
}

// NewShellExec resolves the shell to invoke the command with at
// configuration time, the same precedence as determineShell: an explicit
// shell, else cmd on Windows, else bash, else sh.
func NewShellExec(raw json.RawMessage) (component.Component, error) {
	var cfg shellExecConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("shell exec: %w", err)
	}
	if cfg.Command == "" {
		return nil, fmt.Errorf("shell exec: command is required")
	}

	shell, shellOp, err := determineShell(cfg.Shell)
	if err != nil {
		return nil, fmt.Errorf("shell exec: %w", err)
	}

	return shellExec{
		command: cfg.Command,
		shell:   shell,
		shellOp: shellOp,
		workDir: cfg.WorkDir,
		env:     cfg.Env,
	}, nil
}

func (s shellExec) Execute(ctx context.Context, input dagvalue.Value) (dagvalue.Value, error) {
	cmd := exec.CommandContext(ctx, s.shell, s.shellOp, s.command)
	cmd.Env = buildShellEnv(s.env)
	if s.workDir != "" {
		cmd.Dir = s.workDir
	}
	if text, ok := input.AsText(); ok {
		cmd.Stdin = bytes.NewBufferString(text)
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return dagvalue.Value{}, fmt.Errorf("shell exec: %w: %s", err, out.String())
	}
	return dagvalue.NewText(out.String()), nil
}

func (s shellExec) InputType() dagvalue.Type  { return dagvalue.UnionOf(dagvalue.Null, dagvalue.Text) }
func (s shellExec) OutputType() dagvalue.Type { return dagvalue.Text }

// determineShell picks the interpreter and its "run this string" flag:
// an explicit shell always wins, then cmd on Windows, then bash, then sh.
func determineShell(explicit string) (string, string, error) {
	if explicit != "" {
		return explicit, "-c", nil
	}
	if runtime.GOOS == "windows" {
		return "cmd", "/C", nil
	}
	if path, err := exec.LookPath("bash"); err == nil {
		return path, "-c", nil
	}
	if path, err := exec.LookPath("sh"); err == nil {
		return path, "-c", nil
	}
	return "", "", fmt.Errorf("no suitable shell found")
}

func buildShellEnv(custom map[string]string) []string {
	env := os.Environ()
	for k, v := range custom {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}
