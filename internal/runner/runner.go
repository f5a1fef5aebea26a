package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// CommandRunner runs name with args inside dir and reports the exit status.
// A non-nil error means the command could not be started or waited on; a
// command that ran and exited non-zero returns its code with a nil error.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, dir string) (int, error)
}

// Exec runs commands with os/exec. Streams default to the process's own
// stdin/stdout/stderr so the user sees live output.
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements CommandRunner. No timeout is applied beyond ctx.
func (e *Exec) Run(ctx context.Context, name string, args []string, dir string) (int, error) {
	bin, err := exec.LookPath(name)
	if err != nil {
		return -1, fmt.Errorf("%s not found on PATH: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Stdin = e.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = e.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = e.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("running %s: %w", name, err)
	}
	return 0, nil
}

// Check runs a command and turns a non-zero exit status into an error.
func Check(ctx context.Context, r CommandRunner, name string, args []string, dir string) error {
	code, err := r.Run(ctx, name, args, dir)
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Name: name, Code: code}
	}
	return nil
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Name string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}
