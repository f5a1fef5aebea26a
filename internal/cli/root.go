package cli

import (
	"context"
	"io"
	"os"

	"github.com/agentx-labs/kickstart/internal/branding"
	"github.com/agentx-labs/kickstart/internal/config"
	"github.com/agentx-labs/kickstart/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` asks for a project type and a name, copies the matching bundled
template into ./<name>, and then offers to initialize git, install
dependencies and open your editor.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
	RunE: runCreate,
}

// Execute runs the root command with build info injected via ldflags.
// Errors are printed here; the caller only sets the exit status.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		reportError(os.Stderr, err)
		return err
	}
	return nil
}

func reportError(w io.Writer, err error) {
	logging.New(w, logging.ErrorLevel).Error("%v", err)
}
