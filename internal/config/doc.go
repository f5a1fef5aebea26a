// Package config manages user-level settings stored at ~/.kickstart/config.yaml.
// It provides functions to load, read, and write keys such as the templates
// root, the editor command, and the git backend used after scaffolding.
package config
