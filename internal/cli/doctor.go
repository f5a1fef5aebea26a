package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/agentx-labs/kickstart/internal/branding"
	"github.com/agentx-labs/kickstart/internal/catalog"
	"github.com/agentx-labs/kickstart/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check templates and external tools",
	Long: `Verify that every bundled template is present with a valid manifest,
and that the tools used by the post-provision steps are on PATH.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		cat, err := catalog.Default(catalog.DefaultRoot(config.TemplatesDir()))
		if err != nil {
			return err
		}

		problems := checkTemplates(out, cat)
		checkTools(out, cat)

		if problems > 0 {
			return fmt.Errorf("%d template problem(s) found", problems)
		}
		return nil
	},
}

// checkTemplates reports each catalog entry and returns the number of
// entries that cannot be provisioned.
func checkTemplates(w io.Writer, cat *catalog.Catalog) int {
	fmt.Fprintf(w, "Templates (%s):\n", cat.Root())
	problems := 0
	for _, e := range cat.Entries() {
		dir, err := cat.Resolve(e.ID)
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %s: %v\n", e.ID, err)
			problems++
			continue
		}

		m, res, err := catalog.LoadManifest(dir)
		switch {
		case err != nil:
			fmt.Fprintf(w, "  [WARN] %s: %v\n", e.ID, err)
		case m == nil:
			fmt.Fprintf(w, "  [ OK ] %s (no %s)\n", e.ID, catalog.ManifestFile)
		case res != nil && !res.Valid:
			fmt.Fprintf(w, "  [WARN] %s: invalid %s\n", e.ID, catalog.ManifestFile)
			for _, issue := range res.Issues {
				fmt.Fprintf(w, "         %s\n", issue)
			}
		default:
			if err := m.CheckRequires(buildVersion); err != nil {
				fmt.Fprintf(w, "  [WARN] %s: %v\n", e.ID, err)
				continue
			}
			fmt.Fprintf(w, "  [ OK ] %s %s\n", e.ID, m.Version)
		}
	}
	return problems
}

// checkTools looks up the binaries the post-provision steps may run.
func checkTools(w io.Writer, cat *catalog.Catalog) {
	fmt.Fprintln(w, "Tools:")

	seen := map[string]bool{}
	check := func(name, purpose string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		path, err := exec.LookPath(name)
		if err != nil {
			fmt.Fprintf(w, "  [MISS] %s not found (%s)\n", name, purpose)
			return
		}
		fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
	}

	if config.GitBackend() == config.GitBackendCLI {
		check("git", "git.backend is cli")
	} else {
		fmt.Fprintf(w, "  [ OK ] git built into %s\n", branding.CLIName())
	}

	if cmd := config.InstallCommand(); len(cmd) > 0 {
		check(cmd[0], "install_command")
	} else {
		for _, e := range cat.Entries() {
			if cmd := catalog.DefaultInstall(e.Ecosystem); len(cmd) > 0 {
				check(cmd[0], "installs "+e.ID)
			}
		}
	}

	if cmd := config.Editor(); len(cmd) > 0 {
		check(cmd[0], "editor")
	}

	if _, err := os.Stat(config.FilePath()); err != nil {
		fmt.Fprintf(w, "Config: %s (not created, using defaults)\n", config.FilePath())
	} else {
		fmt.Fprintf(w, "Config: %s\n", config.FilePath())
	}
}
