package postaction

import (
	"context"
	"errors"
	"strings"

	"github.com/agentx-labs/kickstart/internal/runner"
)

// Install runs the ecosystem's dependency install command in the project.
// The command inherits the terminal so the user sees its output live.
type Install struct {
	Command []string
	Runner  runner.CommandRunner
}

func (i *Install) Name() string { return "install dependencies" }

func (i *Install) Prompt() string {
	return "Install dependencies (" + strings.Join(i.Command, " ") + ")?"
}

// Run implements Action.
func (i *Install) Run(ctx context.Context, dir string) error {
	if len(i.Command) == 0 {
		return errors.New("no install command configured")
	}
	return runner.Check(ctx, i.Runner, i.Command[0], i.Command[1:], dir)
}
