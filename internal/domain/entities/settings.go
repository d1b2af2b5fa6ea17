package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultBranchFallback is the trunk name used when none is configured.
	DefaultBranchFallback = "main"
	// DefaultRemote is the remote pushes go to when none is configured.
	DefaultRemote = "origin"
	// DataDirName is ship's private directory inside a repository.
	DataDirName = ".ship"
	// WorkspacesFileName is the workspace metadata file inside the data dir.
	WorkspacesFileName = "workspaces.yaml"
)

// Settings is the top-level configuration for ship.
type Settings struct {
	// DefaultBranch is the trunk branch PRs ultimately target.
	DefaultBranch string `yaml:"default_branch"`
	// Remote is the VCS remote bookmarks are pushed to.
	Remote string `yaml:"remote"`
	// AutoCleanup enables bookmark-triggered workspace cleanup. Defaults to true.
	AutoCleanup *bool `yaml:"auto_cleanup"`
	// Tracker configures the issue-tracker client.
	Tracker TrackerSettings `yaml:"tracker"`
	// Agent configures the local agent-daemon client.
	Agent AgentSettings `yaml:"agent"`
}

// TrackerSettings holds issue-tracker connection settings.
type TrackerSettings struct {
	APIURL string `yaml:"api_url"`
	Token  string `yaml:"token"` // inline, ${ENV_VAR}, or file path
}

// AgentSettings holds agent-daemon connection settings.
type AgentSettings struct {
	URL string `yaml:"url"` // defaults to http://127.0.0.1:4519
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables and resolving token file paths. A missing file yields defaults.
func NewSettings(path string) (*Settings, error) {
	settings := defaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Tracker.Token = resolveToken(settings.Tracker.Token)
	applyDefaults(settings)

	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns "" (not an error) when none exists, because ship runs fine on
// defaults.
func FindConfigFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	candidates := []string{
		filepath.Join(DataDirName, "config.yaml"),
		"ship.yaml",
		".ship.yaml",
	}
	if homeDir != "" {
		candidates = append(
			candidates,
			filepath.Join(homeDir, ".config", "ship", "config.yaml"),
		)
	}

	for _, candidate := range candidates {
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate
		}
	}

	return ""
}

// AutoCleanupEnabled returns the auto_cleanup flag with its default applied.
func (s *Settings) AutoCleanupEnabled() bool {
	if s.AutoCleanup == nil {
		return true
	}
	return *s.AutoCleanup
}

// WorkspacesFilePath returns the path of the workspace metadata file under
// the repository's data dir.
func (s *Settings) WorkspacesFilePath(repoRoot string) string {
	return filepath.Join(repoRoot, DataDirName, WorkspacesFileName)
}

func defaultSettings() *Settings {
	return &Settings{
		DefaultBranch: DefaultBranchFallback,
		Remote:        DefaultRemote,
		Agent: AgentSettings{
			URL: "http://127.0.0.1:4519",
		},
	}
}

func applyDefaults(settings *Settings) {
	if settings.DefaultBranch == "" {
		settings.DefaultBranch = DefaultBranchFallback
	}
	if settings.Remote == "" {
		settings.Remote = DefaultRemote
	}
	if settings.Agent.URL == "" {
		settings.Agent.URL = "http://127.0.0.1:4519"
	}
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		return strings.TrimSpace(string(data))
	}

	return resolved
}
