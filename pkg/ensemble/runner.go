package ensemble

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Runner executes invocations sequentially, streaming tool output through.
// The first failing invocation aborts the rest.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner constructs a Runner wired to the process stdout/stderr.
func NewRunner() *Runner {
	return &Runner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes each invocation in order.
func (r *Runner) Run(ctx context.Context, invocations []Invocation) error {
	for _, inv := range invocations {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("ensemble: %s: %w", inv.String(), err)
		}
	}
	return nil
}
