package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agentx-labs/kickstart/internal/branding"
	"github.com/agentx-labs/kickstart/internal/catalog"
	"github.com/agentx-labs/kickstart/internal/config"
	"github.com/agentx-labs/kickstart/internal/logging"
	"github.com/agentx-labs/kickstart/internal/postaction"
	"github.com/agentx-labs/kickstart/internal/progress"
	"github.com/agentx-labs/kickstart/internal/prompt"
	"github.com/agentx-labs/kickstart/internal/provision"
	"github.com/agentx-labs/kickstart/internal/runner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const spinnerInterval = 80 * time.Millisecond

func runCreate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	log := logging.New(cmd.ErrOrStderr(), logging.ParseLevel(config.LogLevel()))
	ctx := logging.WithLogger(cmd.Context(), log)

	cat, err := catalog.Default(catalog.DefaultRoot(config.TemplatesDir()))
	if err != nil {
		return err
	}
	log.Debug("templates root: %s", cat.Root())

	fmt.Fprintln(out, color.GreenString("Welcome to %s!", branding.DisplayName()))

	w := &provision.Workflow{
		Catalog:  cat,
		Prompts:  prompt.NewTerminal(cmd.InOrStdin(), out),
		Runner:   &runner.Exec{Stdin: cmd.InOrStdin(), Stdout: out, Stderr: cmd.ErrOrStderr()},
		Observer: progress.NewSpinner(cmd.ErrOrStderr(), "Copying template", spinnerInterval),
		WorkDir:  cwd,
		Settings: settingsFromConfig(),
	}

	result, err := w.Run(ctx)
	if errors.Is(err, prompt.ErrCancelled) {
		fmt.Fprintln(out, "\nCancelled. No changes were made.")
		return nil
	}
	if err != nil {
		var missing *catalog.TemplateMissingError
		if errors.As(err, &missing) {
			return fmt.Errorf("%w (set %s with '%s config set %s <dir>' if templates live elsewhere)",
				err, config.KeyTemplatesDir, branding.CLIName(), config.KeyTemplatesDir)
		}
		return err
	}

	printResult(out, cwd, result)
	return nil
}

func settingsFromConfig() provision.Settings {
	name, email := config.GitAuthor()
	return provision.Settings{
		Editor:         config.Editor(),
		InstallCommand: config.InstallCommand(),
		GitCLI:         config.GitBackend() == config.GitBackendCLI,
		GitAuthorName:  name,
		GitAuthorEmail: email,
		ToolVersion:    buildVersion,
	}
}

func printResult(w io.Writer, cwd string, result *provision.Result) {
	rel, err := filepath.Rel(cwd, result.Request.Destination)
	if err != nil {
		rel = result.Request.Destination
	}

	fmt.Fprintf(w, "\n%s Created %s project at %s/ (%d files)\n",
		color.GreenString("✔"), result.Request.ProjectType, rel, len(result.Files))

	if len(result.Actions) > 0 {
		fmt.Fprintln(w, "\nPost-provision:")
		for _, a := range result.Actions {
			status := a.Status.String()
			switch a.Status {
			case postaction.Succeeded:
				status = color.GreenString(status)
			case postaction.Failed:
				status = color.YellowString(status)
			}
			fmt.Fprintf(w, "  %-22s %s\n", a.Name, status)
		}
	}

	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintf(w, "  cd %s\n", rel)
	if result.Manifest != nil {
		for _, step := range result.Manifest.NextSteps {
			fmt.Fprintf(w, "  %s\n", step)
		}
	}
}
