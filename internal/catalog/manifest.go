package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ManifestFile is the optional per-template metadata file.
const ManifestFile = "template.yaml"

//go:embed schema/template.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Manifest describes a template.
type Manifest struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Version     string   `yaml:"version"`
	Requires    string   `yaml:"requires,omitempty"` // semver constraint on the tool version
	Install     []string `yaml:"install,omitempty"`  // argv, e.g. ["pnpm", "install"]
	NextSteps   []string `yaml:"next_steps,omitempty"`
}

// ValidationResult contains the outcome of a manifest validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is a single problem found in a manifest.
type ValidationIssue struct {
	Path    string // instance location, e.g. "/install/0"
	Message string
	Keyword string // failing schema keyword
}

// String renders the issue as "path: message".
func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("template.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("template.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ValidateManifest checks raw YAML against the template schema and checks
// that version and requires parse as semver. The error return is reserved
// for unreadable YAML or schema failures.
func ValidateManifest(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	// Round-trip through JSON so the validator sees JSON-compatible types.
	jsonData, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	var issues []ValidationIssue
	if err := schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		issues = append(issues, extractIssues(ve)...)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err == nil {
		issues = append(issues, semverIssues(&m)...)
	}

	return &ValidationResult{Valid: len(issues) == 0, Issues: issues}, nil
}

// normalizeYAML recursively converts YAML-decoded values to JSON-compatible
// types. Mappings with non-string keys get their keys rendered as strings so
// the schema reports them instead of the JSON encoder failing.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, v := range val {
			m[k] = normalizeYAML(v)
		}
		return m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(val))
		for i, v := range val {
			a[i] = normalizeYAML(v)
		}
		return a
	default:
		return val
	}
}

func semverIssues(m *Manifest) []ValidationIssue {
	var issues []ValidationIssue
	if m.Version != "" {
		if _, err := semver.NewVersion(m.Version); err != nil {
			issues = append(issues, ValidationIssue{
				Path:    "/version",
				Message: fmt.Sprintf("%q is not a semantic version", m.Version),
				Keyword: "semver",
			})
		}
	}
	if m.Requires != "" {
		if _, err := semver.NewConstraint(m.Requires); err != nil {
			issues = append(issues, ValidationIssue{
				Path:    "/requires",
				Message: fmt.Sprintf("%q is not a version constraint", m.Requires),
				Keyword: "semver",
			})
		}
	}
	return issues
}

func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return dedupe(issues)
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	keyword, msg := "", ""
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	if keyword == "allOf" || keyword == "$ref" || keyword == "" {
		return
	}

	*issues = append(*issues, ValidationIssue{Path: path, Message: msg, Keyword: keyword})
}

func dedupe(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var out []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			out = append(out, issue)
		}
	}
	return out
}

// LoadManifest reads and validates dir/template.yaml. It returns (nil, nil,
// nil) when the template has no manifest. An invalid manifest is still
// returned alongside its issues so callers can decide how loud to be.
func LoadManifest(dir string) (*Manifest, *ValidationResult, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := ValidateManifest(data)
	if err != nil {
		return nil, nil, fmt.Errorf("validating %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, result, nil
}

// CheckRequires reports whether toolVersion satisfies the manifest's
// requires constraint. Development builds ("dev" or any non-semver string)
// and manifests without a constraint always pass.
func (m *Manifest) CheckRequires(toolVersion string) error {
	if m == nil || m.Requires == "" {
		return nil
	}
	v, err := semver.NewVersion(strings.TrimPrefix(toolVersion, "v"))
	if err != nil {
		return nil
	}
	c, err := semver.NewConstraint(m.Requires)
	if err != nil {
		return fmt.Errorf("template %s: invalid requires constraint %q: %w", m.Name, m.Requires, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("template %s requires version %s, running %s", m.Name, m.Requires, v)
	}
	return nil
}
