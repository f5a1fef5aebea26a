package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Ecosystems determine the default dependency install command.
const (
	EcosystemNode = "node"
	EcosystemGo   = "go"
)

// TemplatesDirName is the directory holding bundled templates next to the binary.
const TemplatesDirName = "templates"

// Entry is one project type offered to the user.
type Entry struct {
	ID        string // e.g., "react-vite"
	Label     string // e.g., "React (Vite)"
	Dir       string // directory name under the templates root
	Ecosystem string // EcosystemNode or EcosystemGo
	Custom    bool   // found under the templates root rather than built in
}

// Builtin is the shipped set of project types, in menu order.
var Builtin = []Entry{
	{ID: "react-vite", Label: "React (Vite)", Dir: "react-vite", Ecosystem: EcosystemNode},
	{ID: "react-native-expo", Label: "React Native (Expo)", Dir: "react-native-expo", Ecosystem: EcosystemNode},
	{ID: "nextjs", Label: "Next.js", Dir: "nextjs", Ecosystem: EcosystemNode},
	{ID: "express-api", Label: "Express API", Dir: "express-api", Ecosystem: EcosystemNode},
	{ID: "go-service", Label: "Go service", Dir: "go-service", Ecosystem: EcosystemGo},
}

// Catalog is an immutable mapping from project-type ID to template directory.
type Catalog struct {
	root    string
	entries []Entry
	byID    map[string]int
}

// New builds a catalog rooted at root. Every entry needs a unique, non-empty
// ID and a non-empty Dir.
func New(root string, entries []Entry) (*Catalog, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving templates root %s: %w", root, err)
	}

	c := &Catalog{
		root:    absRoot,
		entries: make([]Entry, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	copy(c.entries, entries)

	for i, e := range c.entries {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if e.Dir == "" {
			return nil, fmt.Errorf("catalog entry %q has no template directory", e.ID)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", e.ID)
		}
		if e.Label == "" {
			c.entries[i].Label = e.ID
		}
		c.byID[e.ID] = i
	}
	return c, nil
}

// Default builds the catalog rooted at root: the Builtin entries followed
// by any custom templates found there.
func Default(root string) (*Catalog, error) {
	entries := append(append([]Entry{}, Builtin...), Discover(root)...)
	return New(root, entries)
}

var customIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Discover lists the directories under root that no Builtin entry claims,
// sorted by name. Hidden directories and names that are not usable ids are
// ignored; a missing root yields nothing. Labels come from the template
// manifest's name when it has one.
func Discover(root string) []Entry {
	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	claimed := make(map[string]bool, len(Builtin)*2)
	for _, e := range Builtin {
		claimed[e.ID] = true
		claimed[e.Dir] = true
	}

	var out []Entry
	for _, d := range dirs {
		name := d.Name()
		if !d.IsDir() || claimed[name] || !customIDPattern.MatchString(name) {
			continue
		}

		dir := filepath.Join(root, name)
		label := name
		if m, _, err := LoadManifest(dir); err == nil && m != nil && m.Name != "" {
			label = m.Name
		}
		ecosystem := EcosystemNode
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			ecosystem = EcosystemGo
		}

		out = append(out, Entry{
			ID:        name,
			Label:     label + " (custom)",
			Dir:       name,
			Ecosystem: ecosystem,
			Custom:    true,
		})
	}
	return out
}

// Root returns the absolute templates root.
func (c *Catalog) Root() string {
	return c.root
}

// Entries returns the entries in menu order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Path returns the template directory for e, whether or not it exists.
func (c *Catalog) Path(e Entry) string {
	if filepath.IsAbs(e.Dir) {
		return e.Dir
	}
	return filepath.Join(c.root, e.Dir)
}

// ErrUnknownType is returned for an id that is not in the catalog.
var ErrUnknownType = errors.New("unknown project type")

// TemplateMissingError reports a catalog entry whose directory is not on disk.
type TemplateMissingError struct {
	ID    string
	Label string
	Path  string
	Err   error
}

func (e *TemplateMissingError) Error() string {
	return fmt.Sprintf("template %q (%s) not found at %s", e.Label, e.ID, e.Path)
}

func (e *TemplateMissingError) Unwrap() error {
	return e.Err
}

// Resolve returns the template directory for id. It fails with
// *TemplateMissingError when the directory is absent or not a directory.
func (c *Catalog) Resolve(id string) (string, error) {
	e, ok := c.Lookup(id)
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownType, id)
	}

	path := c.Path(e)
	info, err := os.Stat(path)
	if err != nil {
		return "", &TemplateMissingError{ID: e.ID, Label: e.Label, Path: path, Err: err}
	}
	if !info.IsDir() {
		return "", &TemplateMissingError{
			ID: e.ID, Label: e.Label, Path: path,
			Err: fmt.Errorf("%s is not a directory", path),
		}
	}
	return path, nil
}

// Search ranks entries by fuzzy match of query against "<id> <label>".
// An empty query returns every entry in menu order.
func (c *Catalog) Search(query string) []Entry {
	if query == "" {
		return c.Entries()
	}

	targets := make([]string, len(c.entries))
	for i, e := range c.entries {
		targets[i] = e.ID + " " + e.Label
	}

	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Stable(ranks)

	out := make([]Entry, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, c.entries[r.OriginalIndex])
	}
	return out
}

// DefaultInstall returns the dependency install argv for an ecosystem.
func DefaultInstall(ecosystem string) []string {
	switch ecosystem {
	case EcosystemGo:
		return []string{"go", "mod", "download"}
	default:
		return []string{"npm", "install"}
	}
}

// DefaultRoot picks the templates root: the configured directory when set,
// else "templates" next to the executable, else "templates" in the working
// directory (running from a source checkout).
func DefaultRoot(configured string) string {
	if configured != "" {
		return configured
	}
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		candidate := filepath.Join(filepath.Dir(exe), TemplatesDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return TemplatesDirName
}
