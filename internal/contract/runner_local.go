package contract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long a cancelled tool may hold its output pipes open.
const waitDelay = 500 * time.Millisecond

// LocalToolRunner implements the ToolRunner interface by executing
// binaries installed on the machine.
type LocalToolRunner struct{}

var _ ToolRunner = &LocalToolRunner{} // Compile-time check

// NewLocalToolRunner creates a new instance of the local tool runner.
func NewLocalToolRunner() *LocalToolRunner {
	return &LocalToolRunner{}
}

// Run executes a tool and returns its standard output.
// A zero exit status with empty output is not an error.
func (r *LocalToolRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	target := dir
	if len(args) > 0 {
		target = args[len(args)-1]
	}
	if name == "" {
		return nil, &ToolError{Tool: name, Target: target, Detail: "tool name cannot be empty", Err: ErrToolExecutionFailed}
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return nil, &ToolError{Tool: name, Target: target, Err: ErrToolNotFound}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("running %s on %s: %w", name, target, ctxErr)
	}

	detail := strings.TrimSpace(stderr.String())
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if detail == "" {
			detail = exitErr.String()
		}
		return nil, &ToolError{Tool: name, Target: target, Detail: detail, Err: ErrToolExecutionFailed}
	}
	// Start failures such as a non-executable file or a missing working directory
	if detail == "" {
		detail = err.Error()
	}
	return nil, &ToolError{Tool: name, Target: target, Detail: detail, Err: ErrToolExecutionFailed}
}

// LookPath implements the ToolRunner interface.
func (r *LocalToolRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", &ToolError{Tool: name, Err: ErrToolNotFound}
	}
	return path, nil
}
