//go:build integration

package integration_test

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/kickstart/internal/catalog"
	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

// testEnv holds paths to isolated test directories.
type testEnv struct {
	WorkDir   string // where projects get created
	Templates string // the repository's bundled templates
}

// setupTestEnv creates an isolated working directory and resolves the
// shipped templates directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	templates, err := filepath.Abs(filepath.Join("..", "..", catalog.TemplatesDirName))
	if err != nil {
		t.Fatalf("resolving templates dir: %v", err)
	}
	assertDirExists(t, templates)

	return &testEnv{WorkDir: t.TempDir(), Templates: templates}
}

// newCatalog returns the built-in catalog rooted at the shipped templates.
func newCatalog(t *testing.T, env *testEnv) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default(env.Templates)
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	return cat
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Fatalf("expected directory to exist: %s", path)
	}
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %s to be a directory", path)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("expected %s to contain %q", path, substr)
	}
}

// assertTreesEqual compares every regular file under want with the file at
// the same relative path under got. Paths listed in ignore are skipped
// at the top level of got.
func assertTreesEqual(t *testing.T, want, got string, ignore ...string) {
	t.Helper()

	skip := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		skip[name] = true
	}

	seen := map[string]bool{}
	err := filepath.WalkDir(want, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(want, path)
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		seen[rel] = true

		wantData, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		gotData, err := os.ReadFile(filepath.Join(got, rel))
		if err != nil {
			t.Errorf("missing %s in destination: %v", rel, err)
			return nil
		}
		if !bytes.Equal(wantData, gotData) {
			t.Errorf("%s differs from template", rel)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", want, err)
	}

	err = filepath.WalkDir(got, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(got, path)
		if skip[strings.Split(filepath.ToSlash(rel), "/")[0]] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && !seen[rel] {
			t.Errorf("unexpected file %s in destination", rel)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", got, err)
	}
}
