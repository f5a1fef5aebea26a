package postaction

import (
	"context"
	"errors"

	"github.com/agentx-labs/kickstart/internal/runner"
)

// Editor opens the project in an editor, passing the destination path as
// the last argument.
type Editor struct {
	Command []string // e.g. ["code"] or ["idea", "--wait"]
	Runner  runner.CommandRunner
}

func (e *Editor) Name() string { return "open editor" }

func (e *Editor) Prompt() string {
	if len(e.Command) == 0 {
		return "Open the project in your editor?"
	}
	return "Open the project in " + e.Command[0] + "?"
}

// Run implements Action.
func (e *Editor) Run(ctx context.Context, dir string) error {
	if len(e.Command) == 0 {
		return errors.New("no editor configured")
	}
	args := append(append([]string{}, e.Command[1:]...), dir)
	return runner.Check(ctx, e.Runner, e.Command[0], args, dir)
}
