package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes an external CLI tool and returns its output streams.
// Adapters depend on this instead of os/exec directly so tests can stub the
// tool's behavior.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner is the real CommandRunner backed by os/exec.
type ExecRunner struct {
	// Dir is the working directory for every command; "" means inherit.
	Dir string
}

// NewExecRunner creates a runner that executes in the current directory.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and returns trimmed stdout and stderr.
func (it *ExecRunner) Run(
	ctx context.Context,
	name string,
	args ...string,
) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = it.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return strings.TrimRight(stdout.String(), "\n"),
			strings.TrimSpace(stderr.String()),
			fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}

	return strings.TrimRight(stdout.String(), "\n"), strings.TrimSpace(stderr.String()), nil
}
