package postaction

import (
	"context"
	"fmt"

	"github.com/agentx-labs/kickstart/internal/logging"
	"github.com/agentx-labs/kickstart/internal/prompt"
)

// Action is one optional post-provision step. dir is always the project
// destination; actions never rely on the process working directory.
type Action interface {
	Name() string
	Prompt() string
	Run(ctx context.Context, dir string) error
}

// Status is where an action ended up.
type Status int

const (
	NotStarted Status = iota
	Running
	Succeeded
	Failed
	Skipped
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome records the final state of one action.
type Outcome struct {
	Name    string
	Status  Status
	Message string
}

// RunAll offers each action in order. A declined action is Skipped, an
// action returning an error is Failed and logged as a warning; neither stops
// the remaining actions. Only a prompt error (for example the user closing
// input) ends the sequence early, and it is returned with the outcomes so far.
func RunAll(ctx context.Context, src prompt.Source, actions []Action, dir string) ([]Outcome, error) {
	log := logging.FromContext(ctx)
	outcomes := make([]Outcome, 0, len(actions))

	for _, a := range actions {
		ok, err := src.Confirm(a.Prompt(), true)
		if err != nil {
			return outcomes, err
		}
		if !ok {
			outcomes = append(outcomes, Outcome{Name: a.Name(), Status: Skipped})
			continue
		}

		log.Debug("%s: %s", a.Name(), Running)
		if err := a.Run(ctx, dir); err != nil {
			log.Warn("%s failed: %v", a.Name(), err)
			outcomes = append(outcomes, Outcome{Name: a.Name(), Status: Failed, Message: err.Error()})
			continue
		}
		outcomes = append(outcomes, Outcome{Name: a.Name(), Status: Succeeded})
	}
	return outcomes, nil
}
