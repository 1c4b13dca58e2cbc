package bootstrap

import (
	"strings"
)

const (
	configurationWorkingDirectoryKeyConstant    = "working_directory"
	configurationDefaultBranchKeyConstant       = "default_branch"
	configurationIgnoreFileKeyConstant          = "ignore_file"
	configurationStagedPathsKeyConstant         = "staged_paths"
	configurationCommitMessageKeyConstant       = "commit_message"
	configurationRepositoryHostKeyConstant      = "repository.host"
	configurationRepositoryOwnerKeyConstant     = "repository.owner"
	configurationRepositoryNameKeyConstant      = "repository.name"
	configurationRepositoryProtocolKeyConstant  = "repository.protocol"
	configurationRepositoryRawHostKeyConstant   = "repository.raw_host"
	configurationRepositoryDataFileKeyConstant  = "repository.data_file"
	configurationKeySeparatorConstant           = "."
	githubUsernameEnvironmentVariableConstant   = "GITHUB_USERNAME"
	githubRepositoryEnvironmentVariableConstant = "GITHUB_REPO"

	// DefaultWorkingDirectory is bootstrapped when no directory is configured.
	DefaultWorkingDirectory = "."
	// DefaultBranchName is the primary branch created by git init.
	DefaultBranchName = "main"
	// DefaultIgnoreFileName names the ignore-list file.
	DefaultIgnoreFileName = ".gitignore"
	// DefaultRepositoryHost hosts the remote repository.
	DefaultRepositoryHost = "github.com"
	// DefaultRepositoryOwner is the placeholder owner shown in the instructions.
	DefaultRepositoryOwner = "VOTRE_USERNAME"
	// DefaultRepositoryName is the placeholder repository name shown in the instructions.
	DefaultRepositoryName = "wikirace-events"
	// DefaultRepositoryProtocol selects the remote URL form.
	DefaultRepositoryProtocol = "https"
	// DefaultRawContentHost serves published files of public repositories.
	DefaultRawContentHost = "raw.githubusercontent.com"
	// DefaultDataFile is the published events file.
	DefaultDataFile = "events.json"
	// DefaultCommitMessage records the initial import.
	DefaultCommitMessage = "Initial commit: WikiRace events scraper\n\n" +
		"- Python scraper aggregating RunSignup, ITRA and UltraSignup events\n" +
		"- GitHub Actions workflow for daily updates\n" +
		"- Generated events.json data file"
)

// DefaultStagedPaths lists the path groups committed by the bootstrapper.
func DefaultStagedPaths() []string {
	return []string{".github/", "scraper/", DefaultDataFile, DefaultIgnoreFileName}
}

// Configuration captures persisted settings for the bootstrapper.
type Configuration struct {
	WorkingDirectory string                  `mapstructure:"working_directory"`
	DefaultBranch    string                  `mapstructure:"default_branch"`
	IgnoreFile       string                  `mapstructure:"ignore_file"`
	StagedPaths      []string                `mapstructure:"staged_paths"`
	CommitMessage    string                  `mapstructure:"commit_message"`
	Repository       RepositoryConfiguration `mapstructure:"repository"`
}

// RepositoryConfiguration describes the remote repository referenced by the instructions.
type RepositoryConfiguration struct {
	Host     string `mapstructure:"host"`
	Owner    string `mapstructure:"owner"`
	Name     string `mapstructure:"name"`
	Protocol string `mapstructure:"protocol"`
	RawHost  string `mapstructure:"raw_host"`
	DataFile string `mapstructure:"data_file"`
}

// DefaultConfiguration returns baseline configuration values.
func DefaultConfiguration() Configuration {
	return Configuration{
		WorkingDirectory: DefaultWorkingDirectory,
		DefaultBranch:    DefaultBranchName,
		IgnoreFile:       DefaultIgnoreFileName,
		StagedPaths:      DefaultStagedPaths(),
		CommitMessage:    DefaultCommitMessage,
		Repository: RepositoryConfiguration{
			Host:     DefaultRepositoryHost,
			Owner:    DefaultRepositoryOwner,
			Name:     DefaultRepositoryName,
			Protocol: DefaultRepositoryProtocol,
			RawHost:  DefaultRawContentHost,
			DataFile: DefaultDataFile,
		},
	}
}

// DefaultConfigurationValues exposes the defaults as Viper keys beneath the provided prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		qualifyKey(prefix, configurationWorkingDirectoryKeyConstant):   defaults.WorkingDirectory,
		qualifyKey(prefix, configurationDefaultBranchKeyConstant):      defaults.DefaultBranch,
		qualifyKey(prefix, configurationIgnoreFileKeyConstant):         defaults.IgnoreFile,
		qualifyKey(prefix, configurationStagedPathsKeyConstant):        defaults.StagedPaths,
		qualifyKey(prefix, configurationCommitMessageKeyConstant):      defaults.CommitMessage,
		qualifyKey(prefix, configurationRepositoryHostKeyConstant):     defaults.Repository.Host,
		qualifyKey(prefix, configurationRepositoryOwnerKeyConstant):    defaults.Repository.Owner,
		qualifyKey(prefix, configurationRepositoryNameKeyConstant):     defaults.Repository.Name,
		qualifyKey(prefix, configurationRepositoryProtocolKeyConstant): defaults.Repository.Protocol,
		qualifyKey(prefix, configurationRepositoryRawHostKeyConstant):  defaults.Repository.RawHost,
		qualifyKey(prefix, configurationRepositoryDataFileKeyConstant): defaults.Repository.DataFile,
	}
}

// EnvironmentAliases maps configuration keys beneath the prefix to the
// unprefixed variables the scraper deployment already uses.
func EnvironmentAliases(prefix string) map[string][]string {
	return map[string][]string{
		qualifyKey(prefix, configurationRepositoryOwnerKeyConstant): {githubUsernameEnvironmentVariableConstant},
		qualifyKey(prefix, configurationRepositoryNameKeyConstant):  {githubRepositoryEnvironmentVariableConstant},
	}
}

// Sanitize trims values, drops blank or duplicate staged paths, and restores defaults for empty fields.
// A staged DefaultIgnoreFileName entry is replaced by the configured ignore-list file.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := Configuration{
		WorkingDirectory: valueOrDefault(configuration.WorkingDirectory, defaults.WorkingDirectory),
		DefaultBranch:    valueOrDefault(configuration.DefaultBranch, defaults.DefaultBranch),
		IgnoreFile:       valueOrDefault(configuration.IgnoreFile, defaults.IgnoreFile),
		CommitMessage:    defaults.CommitMessage,
		Repository: RepositoryConfiguration{
			Host:     valueOrDefault(configuration.Repository.Host, defaults.Repository.Host),
			Owner:    valueOrDefault(configuration.Repository.Owner, defaults.Repository.Owner),
			Name:     valueOrDefault(configuration.Repository.Name, defaults.Repository.Name),
			Protocol: valueOrDefault(configuration.Repository.Protocol, defaults.Repository.Protocol),
			RawHost:  valueOrDefault(configuration.Repository.RawHost, defaults.Repository.RawHost),
			DataFile: valueOrDefault(configuration.Repository.DataFile, defaults.Repository.DataFile),
		},
	}

	if len(strings.TrimSpace(configuration.CommitMessage)) > 0 {
		sanitized.CommitMessage = strings.TrimSpace(configuration.CommitMessage)
	}

	sanitized.StagedPaths = sanitizeStagedPaths(configuration.StagedPaths, sanitized.IgnoreFile)
	if len(sanitized.StagedPaths) == 0 {
		sanitized.StagedPaths = sanitizeStagedPaths(defaults.StagedPaths, sanitized.IgnoreFile)
	}

	return sanitized
}

func sanitizeStagedPaths(stagedPaths []string, ignoreFileName string) []string {
	var sanitizedPaths []string
	seenPaths := make(map[string]struct{}, len(stagedPaths))
	for _, stagedPath := range stagedPaths {
		trimmedPath := strings.TrimSpace(stagedPath)
		if len(trimmedPath) == 0 {
			continue
		}
		if trimmedPath == DefaultIgnoreFileName {
			trimmedPath = ignoreFileName
		}
		if _, duplicate := seenPaths[trimmedPath]; duplicate {
			continue
		}
		seenPaths[trimmedPath] = struct{}{}
		sanitizedPaths = append(sanitizedPaths, trimmedPath)
	}
	return sanitizedPaths
}

func valueOrDefault(value string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}

func qualifyKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}
