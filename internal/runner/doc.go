// Package runner defines the CommandRunner used to invoke external tools
// (package managers, editors, git) and an os/exec backed implementation.
// Only the exit status is inspected; output goes straight to the terminal.
package runner
