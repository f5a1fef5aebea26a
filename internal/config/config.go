package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/kickstart/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyTemplatesDir   = "templates_dir"
	KeyEditor         = "editor"
	KeyInstallCommand = "install_command"
	KeyGitBackend     = "git.backend"
	KeyGitAuthorName  = "git.author_name"
	KeyGitAuthorEmail = "git.author_email"
	KeyLogLevel       = "log_level"
)

// Git backends.
const (
	GitBackendNative = "native"
	GitBackendCLI    = "cli"
)

// Dir returns the path to the config directory (~/.kickstart/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.kickstart/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the default config file.
func Load() {
	LoadFile(FilePath())
}

// LoadFile initializes Viper to read from path. Only the file is consulted;
// environment variables are not bound.
func LoadFile(path string) {
	viper.Reset()
	setDefaults()
	viper.SetConfigFile(path)
	viper.SetConfigType(fileType)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

func setDefaults() {
	viper.SetDefault(KeyEditor, "code")
	viper.SetDefault(KeyGitBackend, GitBackendNative)
	viper.SetDefault(KeyGitAuthorName, branding.DisplayName())
	viper.SetDefault(KeyGitAuthorEmail, branding.CLIName()+"@localhost")
	viper.SetDefault(KeyLogLevel, "info")
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}
	return setIn(FilePath(), key, value)
}

func setIn(configFile, key, value string) error {
	viper.Set(key, value)

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// TemplatesDir returns the configured templates root, or "" when unset.
func TemplatesDir() string {
	return expandHome(viper.GetString(KeyTemplatesDir))
}

// Editor returns the editor command split into argv form.
func Editor() []string {
	return strings.Fields(viper.GetString(KeyEditor))
}

// InstallCommand returns the configured install override, or nil when unset.
func InstallCommand() []string {
	return strings.Fields(viper.GetString(KeyInstallCommand))
}

// GitBackend returns "native" or "cli". Unknown values fall back to native.
func GitBackend() string {
	if strings.EqualFold(viper.GetString(KeyGitBackend), GitBackendCLI) {
		return GitBackendCLI
	}
	return GitBackendNative
}

// GitAuthor returns the name and email recorded on the initial commit.
func GitAuthor() (name, email string) {
	return viper.GetString(KeyGitAuthorName), viper.GetString(KeyGitAuthorEmail)
}

// LogLevel returns the configured log level name.
func LogLevel() string {
	return viper.GetString(KeyLogLevel)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
