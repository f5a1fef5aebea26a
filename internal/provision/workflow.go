package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/agentx-labs/kickstart/internal/catalog"
	"github.com/agentx-labs/kickstart/internal/logging"
	"github.com/agentx-labs/kickstart/internal/postaction"
	"github.com/agentx-labs/kickstart/internal/prompt"
	"github.com/agentx-labs/kickstart/internal/runner"
	"github.com/agentx-labs/kickstart/internal/scaffold"
)

// ExitChoice is the menu value that ends the run without doing anything. It
// cannot collide with a catalog id.
const ExitChoice = ":exit"

// Prompt labels, exported so callers scripting answers can refer to them.
const (
	LabelProjectType = "Select a project template:"
	LabelProjectName = "Project name:"
)

// Settings carries the user configuration the workflow needs.
type Settings struct {
	Editor         []string
	InstallCommand []string // overrides manifest and ecosystem defaults when set
	GitCLI         bool     // use the git binary instead of go-git
	GitAuthorName  string
	GitAuthorEmail string
	ToolVersion    string
}

// Request is what one run will provision. It is fixed once the questions
// have been answered.
type Request struct {
	ProjectType string
	ProjectName string
	Destination string
}

// Result describes a finished run.
type Result struct {
	Success  bool
	Request  Request
	Template string
	Files    []string
	Manifest *catalog.Manifest
	Actions  []postaction.Outcome
}

// Workflow is a single interactive scaffolding run.
type Workflow struct {
	Catalog  *catalog.Catalog
	Prompts  prompt.Source
	Runner   runner.CommandRunner
	Observer scaffold.Observer
	WorkDir  string
	Settings Settings
}

// Run executes the workflow. It returns an error wrapping prompt.ErrCancelled
// when the user exits or declines to overwrite; the caller should treat that
// as a clean exit. *catalog.TemplateMissingError and
// *scaffold.MaterializationError are fatal. Post-action failures never
// surface as errors.
func (w *Workflow) Run(ctx context.Context) (*Result, error) {
	log := logging.FromContext(ctx)

	entry, err := w.askType()
	if err != nil {
		return nil, err
	}
	name, err := w.Prompts.Text(LabelProjectName, prompt.ValidateName)
	if err != nil {
		return nil, err
	}

	src, err := w.Catalog.Resolve(entry.ID)
	if err != nil {
		return nil, err
	}

	manifest, validation, err := catalog.LoadManifest(src)
	if err != nil {
		log.Warn("ignoring template manifest: %v", err)
	} else if validation != nil && !validation.Valid {
		for _, issue := range validation.Issues {
			log.Warn("%s/%s: %s", entry.ID, catalog.ManifestFile, issue)
		}
	}
	if err := manifest.CheckRequires(w.Settings.ToolVersion); err != nil {
		log.Warn("%v", err)
	}

	dest, err := scaffold.Plan(w.WorkDir, name)
	if err != nil {
		return nil, err
	}
	if err := scaffold.CheckOverlap(src, dest); err != nil {
		return nil, err
	}
	req := Request{ProjectType: entry.ID, ProjectName: name, Destination: dest}

	existed, err := scaffold.Prepare(dest, func() (bool, error) {
		return w.Prompts.Confirm(fmt.Sprintf("Directory %s already exists. Overwrite it?", name), false)
	})
	if errors.Is(err, scaffold.ErrDeclined) {
		return nil, fmt.Errorf("%w: %w", prompt.ErrCancelled, err)
	}
	if err != nil {
		return nil, err
	}
	if existed {
		log.Info("removed existing directory %s", name)
	}

	log.Debug("copying %s to %s", src, dest)
	copied, err := scaffold.Materialize(ctx, src, dest, w.Observer)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Success:  true,
		Request:  req,
		Template: src,
		Files:    copied.Files,
		Manifest: manifest,
	}

	outcomes, err := postaction.RunAll(ctx, w.Prompts, w.actions(entry, manifest), dest)
	result.Actions = outcomes
	if err != nil {
		// The project is on disk; an abandoned prompt only skips the rest.
		log.Warn("remaining post-provision steps skipped: %v", err)
	}
	return result, nil
}

func (w *Workflow) askType() (catalog.Entry, error) {
	entries := w.Catalog.Entries()
	options := make([]prompt.Option, 0, len(entries)+1)
	for _, e := range entries {
		options = append(options, prompt.Option{Value: e.ID, Label: e.Label})
	}
	options = append(options, prompt.Option{Value: ExitChoice, Label: "Exit"})

	choice, err := w.Prompts.Choice(LabelProjectType, options)
	if err != nil {
		return catalog.Entry{}, err
	}
	if choice == ExitChoice {
		return catalog.Entry{}, prompt.ErrCancelled
	}

	e, ok := w.Catalog.Lookup(choice)
	if !ok {
		return catalog.Entry{}, fmt.Errorf("%w %q", catalog.ErrUnknownType, choice)
	}
	return e, nil
}

// actions builds the post-provision steps in the order they are offered.
func (w *Workflow) actions(entry catalog.Entry, manifest *catalog.Manifest) []postaction.Action {
	git := &postaction.GitInit{
		AuthorName:  w.Settings.GitAuthorName,
		AuthorEmail: w.Settings.GitAuthorEmail,
	}
	if w.Settings.GitCLI {
		git.Runner = w.Runner
	}

	return []postaction.Action{
		git,
		&postaction.Install{Command: installCommand(w.Settings, entry, manifest), Runner: w.Runner},
		&postaction.Editor{Command: w.Settings.Editor, Runner: w.Runner},
	}
}

// installCommand picks the configured override, then the template's own
// command, then the ecosystem default.
func installCommand(s Settings, entry catalog.Entry, manifest *catalog.Manifest) []string {
	if len(s.InstallCommand) > 0 {
		return s.InstallCommand
	}
	if manifest != nil && len(manifest.Install) > 0 {
		return manifest.Install
	}
	return catalog.DefaultInstall(entry.Ecosystem)
}
