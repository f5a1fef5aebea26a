package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestValidateName(t *testing.T) {
	valid := []string{"app", "my-app", "my_app", "App2", "a", "UPPER-lower_123", "-lead", "__"}
	for _, name := range valid {
		assert.NoError(t, ValidateName(name), "name %q should be accepted", name)
	}

	invalid := []string{"", " ", "my app", "app!", "dir/app", "../escape", "app.js", "ünïcode", "tab\tname"}
	for _, name := range invalid {
		err := ValidateName(name)
		require.Error(t, err, "name %q should be rejected", name)
		var ve *ValidationError
		assert.True(t, errors.As(err, &ve), "error for %q should be a ValidationError", name)
	}
}

var typeOptions = []Option{
	{Value: "react-vite", Label: "React (Vite)"},
	{Value: "nextjs", Label: "Next.js"},
}

func TestTerminalChoice(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("2\n"), &out)

	got, err := term.Choice("Select a project template:", typeOptions)
	require.NoError(t, err)
	assert.Equal(t, "nextjs", got)
	assert.Contains(t, out.String(), "1) React (Vite)")
	assert.Contains(t, out.String(), "2) Next.js")
}

func TestTerminalChoiceReprompts(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("9\nabc\n1\n"), &out)

	got, err := term.Choice("Pick:", typeOptions)
	require.NoError(t, err)
	assert.Equal(t, "react-vite", got)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid selection"))
}

func TestTerminalChoiceEOFCancels(t *testing.T) {
	term := NewTerminal(strings.NewReader(""), &bytes.Buffer{})
	_, err := term.Choice("Pick:", typeOptions)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestTerminalTextRepromptsUntilValid(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("bad name\n\nmy-app\n"), &out)

	got, err := term.Text("Project name:", ValidateName)
	require.NoError(t, err)
	assert.Equal(t, "my-app", got)
	assert.Contains(t, out.String(), `invalid name "bad name"`)
	assert.Contains(t, out.String(), "project name cannot be empty")
}

func TestTerminalTextRejectsSurroundingWhitespace(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("  my-app\t\r\nmy-app\r\n"), &out)

	got, err := term.Text("Project name:", ValidateName)
	require.NoError(t, err)
	assert.Equal(t, "my-app", got)
	assert.Equal(t, 1, strings.Count(out.String(), "invalid name"))
}

func TestTerminalChoiceAndConfirmTolerateSpaces(t *testing.T) {
	term := NewTerminal(strings.NewReader(" 2 \n  y\n"), &bytes.Buffer{})

	got, err := term.Choice("Pick:", typeOptions)
	require.NoError(t, err)
	assert.Equal(t, "nextjs", got)

	ok, err := term.Confirm("Sure?", false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTerminalTextAcceptsFinalLineWithoutNewline(t *testing.T) {
	term := NewTerminal(strings.NewReader("last"), &bytes.Buffer{})
	got, err := term.Text("Name:", nil)
	require.NoError(t, err)
	assert.Equal(t, "last", got)
}

func TestTerminalConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"maybe\ny\n", false, true},
	}
	for _, tt := range tests {
		term := NewTerminal(strings.NewReader(tt.input), &bytes.Buffer{})
		got, err := term.Confirm("Continue?", tt.def)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestScripted(t *testing.T) {
	s := NewScripted("nextjs", "bad name", "good-name", "n")

	choice, err := s.Choice("type", typeOptions)
	require.NoError(t, err)
	assert.Equal(t, "nextjs", choice)

	name, err := s.Text("name", ValidateName)
	require.NoError(t, err)
	assert.Equal(t, "good-name", name)
	assert.Equal(t, []string{"bad name"}, s.Rejected)

	ok, err := s.Confirm("sure?", true)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []string{"type", "name", "name", "sure?"}, s.Asked)
	assert.Equal(t, 0, s.Remaining())

	_, err = s.Confirm("again?", true)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestScriptedChoiceRejectsUnknownValue(t *testing.T) {
	s := NewScripted("angular")
	_, err := s.Choice("type", typeOptions)
	assert.Error(t, err)
}
