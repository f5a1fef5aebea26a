// Package cli defines the Cobra command tree for the kickstart CLI. The root
// command runs the interactive scaffolding workflow; subcommands list the
// bundled templates, print version information and manage settings.
// Commands only wire collaborators together and format output; the work is
// done in the internal packages.
package cli
