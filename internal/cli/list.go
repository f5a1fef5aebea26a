package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/agentx-labs/kickstart/internal/catalog"
	"github.com/agentx-labs/kickstart/internal/config"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List bundled project templates",
	Long: `List the project templates this build ships with. An optional query
fuzzy-filters by id and label, best match first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry is a catalog entry prepared for display.
type listEntry struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Path        string `json:"path"`
	Available   bool   `json:"available"`
	Custom      bool   `json:"custom"`
}

func runList(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Default(catalog.DefaultRoot(config.TemplatesDir()))
	if err != nil {
		return err
	}

	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	matches := cat.Search(query)
	if len(matches) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No templates matching %q\n", query)
		return nil
	}

	entries := make([]listEntry, 0, len(matches))
	for _, e := range matches {
		entries = append(entries, describe(cat, e))
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	return printListTable(cmd, entries)
}

func describe(cat *catalog.Catalog, e catalog.Entry) listEntry {
	le := listEntry{ID: e.ID, Label: e.Label, Path: cat.Path(e), Custom: e.Custom}
	if info, err := os.Stat(le.Path); err == nil && info.IsDir() {
		le.Available = true
	}
	if m, _, err := catalog.LoadManifest(le.Path); err == nil && m != nil {
		le.Version = m.Version
		le.Description = m.Description
	}
	return le
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVERSION\tSTATUS")
	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		status := "ok"
		if !e.Available {
			status = "missing"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Label, version, status)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
