package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

// setupHome points the config file at a temporary home that uses the
// repository's templates.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	templates, err := filepath.Abs(filepath.Join("..", "..", "templates"))
	require.NoError(t, err)

	dir := filepath.Join(home, ".kickstart")
	require.NoError(t, os.MkdirAll(dir, 0755))
	cfg := "templates_dir: " + templates + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0644))
	return home
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	listJSON, versionShort, versionJSON = false, false, false

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestVersionShort(t *testing.T) {
	setupHome(t)
	buildVersion = "1.2.3"

	out, _, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)
}

func TestVersionJSON(t *testing.T) {
	setupHome(t)
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-01-01"

	out, _, err := execute(t, "", "version", "--json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "abc123", info["commit"])
}

func TestListTable(t *testing.T) {
	setupHome(t)

	out, _, err := execute(t, "", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, out, "react-vite")
	assert.Contains(t, out, "go-service")
	assert.NotContains(t, out, "missing")
}

func TestListQueryJSON(t *testing.T) {
	setupHome(t)

	out, _, err := execute(t, "", "list", "expo", "--json")
	require.NoError(t, err)

	var entries []listEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.NotEmpty(t, entries)
	assert.Equal(t, "react-native-expo", entries[0].ID)
	assert.True(t, entries[0].Available)
	assert.NotEmpty(t, entries[0].Version)
}

func TestListIncludesCustomTemplates(t *testing.T) {
	home := setupHome(t)
	templates := filepath.Join(home, "templates")
	require.NoError(t, os.MkdirAll(filepath.Join(templates, "acme-web"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".kickstart", "config.yaml"),
		[]byte("templates_dir: "+templates+"\n"), 0644))

	out, _, err := execute(t, "", "list", "acme", "--json")
	require.NoError(t, err)

	var entries []listEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "acme-web", entries[0].ID)
	assert.True(t, entries[0].Custom)
	assert.True(t, entries[0].Available)
}

func TestListNoMatch(t *testing.T) {
	setupHome(t)

	out, _, err := execute(t, "", "list", "zzzzqqq")
	require.NoError(t, err)
	assert.Contains(t, out, "No templates matching")
}

func TestListMissingTemplates(t *testing.T) {
	home := setupHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".kickstart", "config.yaml"),
		[]byte("templates_dir: "+filepath.Join(home, "nowhere")+"\n"), 0644))

	out, _, err := execute(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "missing")
}

func TestConfigSetGet(t *testing.T) {
	setupHome(t)

	_, _, err := execute(t, "", "config", "set", "editor", "vim")
	require.NoError(t, err)

	out, _, err := execute(t, "", "config", "get", "editor")
	require.NoError(t, err)
	assert.Equal(t, "vim\n", out)
}

func TestRootCreatesProject(t *testing.T) {
	setupHome(t)
	work := t.TempDir()
	chdir(t, work)

	// template 1, name, then decline git, install and editor
	out, _, err := execute(t, "1\nmy-app\nn\nn\nn\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Created react-vite project at my-app/")
	assert.Contains(t, out, "Next steps:")
	assert.FileExists(t, filepath.Join(work, "my-app", "package.json"))
	assert.NoDirExists(t, filepath.Join(work, "my-app", ".git"))
}

func TestRootExitChoice(t *testing.T) {
	setupHome(t)
	work := t.TempDir()
	chdir(t, work)

	out, _, err := execute(t, "6\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")

	entries, err := os.ReadDir(work)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRootClosedInputIsCancel(t *testing.T) {
	setupHome(t)
	chdir(t, t.TempDir())

	out, _, err := execute(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")
}

func TestRootMissingTemplateFails(t *testing.T) {
	home := setupHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".kickstart", "config.yaml"),
		[]byte("templates_dir: "+filepath.Join(home, "nowhere")+"\n"), 0644))
	work := t.TempDir()
	chdir(t, work)

	_, _, err := execute(t, "1\nmy-app\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoDirExists(t, filepath.Join(work, "my-app"))
}

func TestReportErrorLogsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, errors.New("template missing"))
	assert.Equal(t, "[ERROR] template missing\n", buf.String())
}

func TestRootRejectsArgs(t *testing.T) {
	setupHome(t)
	_, _, err := execute(t, "", "my-app")
	require.Error(t, err)
}

func TestDoctorReportsTemplates(t *testing.T) {
	setupHome(t)
	buildVersion = "dev"

	out, _, err := execute(t, "", "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "[ OK ] react-vite")
	assert.Contains(t, out, "git built into kickstart")
}

func TestDoctorFailsOnMissingTemplates(t *testing.T) {
	home := setupHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".kickstart", "config.yaml"),
		[]byte("templates_dir: "+filepath.Join(home, "nowhere")+"\n"), 0644))

	out, _, err := execute(t, "", "doctor")
	require.Error(t, err)
	assert.Contains(t, out, "[FAIL] react-vite")
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
