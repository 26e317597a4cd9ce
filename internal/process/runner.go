package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"ftpprobe/pkg/logging"
)

// Runner executes external commands and returns their captured standard output.
type Runner interface {
	// Run executes cmd and returns its standard output as text. When check is
	// true a non-zero exit status yields an *ExecutionError; otherwise whatever
	// output was captured is returned with a nil error. A command that cannot
	// be started at all is an *ExecutionError with exit code -1 either way.
	Run(ctx context.Context, cmd Command, check bool) (string, error)
}

// ExecutionError reports an external command that failed while its exit status
// was being checked.
type ExecutionError struct {
	Command  Command
	ExitCode int
	Stderr   string
	Err      error
}

// Error implements the error interface
func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("command %q exited with code %d", e.Command.String(), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + lastLine(stderr)
	}
	return msg
}

// Unwrap returns the underlying os/exec error
func (e *ExecutionError) Unwrap() error {
	return e.Err
}

func lastLine(s string) string {
	if idx := strings.LastIndex(s, "\n"); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// ProcessRunner runs commands as child processes.
type ProcessRunner struct {
	// Stderr receives the child's standard error in addition to the copy kept
	// for ExecutionError. Defaults to os.Stderr.
	Stderr io.Writer
	// Dir is the working directory for children; empty means the current one.
	Dir string
}

// NewProcessRunner creates a runner that mirrors child stderr to os.Stderr.
func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{Stderr: os.Stderr}
}

// Run implements Runner.
func (r *ProcessRunner) Run(ctx context.Context, cmd Command, check bool) (string, error) {
	logging.Info("Exec", "running command: %s", cmd.String())

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = r.Dir
	configureProcAttr(c)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	if r.Stderr != nil {
		c.Stderr = io.MultiWriter(&stderr, r.Stderr)
	} else {
		c.Stderr = &stderr
	}

	err := c.Run()
	output := stdout.String()
	if err == nil {
		if logging.Enabled(logging.LevelDebug) {
			logging.Debug("Exec", "output of %s:\n%s", cmd.Name, output)
		}
		return output, nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	started := errors.As(err, &exitErr)
	if started {
		exitCode = exitErr.ExitCode()
	}

	if !check && started {
		logging.Debug("Exec", "ignoring exit code %d of %s", exitCode, cmd.Name)
		return output, nil
	}

	execErr := &ExecutionError{
		Command:  cmd,
		ExitCode: exitCode,
		Stderr:   stderr.String(),
		Err:      err,
	}
	logging.Error("Exec", execErr, "command failed")
	return output, execErr
}
