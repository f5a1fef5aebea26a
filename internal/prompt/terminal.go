package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Terminal asks questions with numbered menus on a reader/writer pair.
type Terminal struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewTerminal returns a Terminal reading answers from r and writing prompts to w.
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{reader: bufio.NewReader(r), w: w}
}

var (
	questionColor = color.New(color.FgCyan, color.Bold)
	problemColor  = color.New(color.FgRed)
)

// readLine returns the next line without its line ending. Other whitespace
// is kept so Text validates exactly what was typed. End of input with
// nothing typed is treated as cancellation.
func (t *Terminal) readLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Choice implements Source.
func (t *Terminal) Choice(label string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to choose from for %q", label)
	}

	for {
		fmt.Fprintf(t.w, "\n%s\n", questionColor.Sprint(label))
		for i, opt := range options {
			fmt.Fprintf(t.w, "  %d) %s\n", i+1, opt.Label)
		}
		fmt.Fprintf(t.w, "Enter number [1-%d]: ", len(options))

		line, err := t.readLine()
		if err != nil {
			return "", err
		}

		num, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || num < 1 || num > len(options) {
			fmt.Fprintln(t.w, problemColor.Sprintf("Invalid selection %q: choose 1-%d.", line, len(options)))
			continue
		}
		return options[num-1].Value, nil
	}
}

// Text implements Source.
func (t *Terminal) Text(label string, validate func(string) error) (string, error) {
	for {
		fmt.Fprintf(t.w, "\n%s ", questionColor.Sprint(label))

		line, err := t.readLine()
		if err != nil {
			return "", err
		}
		if validate != nil {
			if verr := validate(line); verr != nil {
				fmt.Fprintln(t.w, problemColor.Sprint(verr.Error()))
				continue
			}
		}
		return line, nil
	}
}

// Confirm implements Source.
func (t *Terminal) Confirm(label string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}

	for {
		fmt.Fprintf(t.w, "\n%s %s ", questionColor.Sprint(label), hint)

		line, err := t.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(t.w, problemColor.Sprint("Please answer y or n."))
	}
}
