package bootstrap_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repo-bootstrap/internal/bootstrap"
	"github.com/temirov/repo-bootstrap/internal/execshell"
	"github.com/temirov/repo-bootstrap/internal/ui"
	pathutils "github.com/temirov/repo-bootstrap/internal/utils/path"
)

const (
	gitExecutableNameConstant        = "git"
	gitGlobalConfigEnvironmentName   = "GIT_CONFIG_GLOBAL"
	gitNoSystemConfigEnvironment     = "GIT_CONFIG_NOSYSTEM"
	gitCeilingDirectoriesEnvironment = "GIT_CEILING_DIRECTORIES"
	testGitIdentityConfiguration     = "[user]\n\temail = runner@example.com\n\tname = Bootstrap Runner\n[commit]\n\tgpgsign = false\n"
	testGitEmptyConfiguration        = "[commit]\n\tgpgsign = false\n"
	testGitConfigFileName            = "gitconfig"
)

func requireGit(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(gitExecutableNameConstant); lookupError != nil {
		testInstance.Skip("git executable not available")
	}
}

func isolateGitConfiguration(testInstance *testing.T, identityConfigured bool) {
	testInstance.Helper()

	configurationContent := testGitEmptyConfiguration
	if identityConfigured {
		configurationContent = testGitIdentityConfiguration
	}

	configurationPath := filepath.Join(testInstance.TempDir(), testGitConfigFileName)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), 0o600))
	testInstance.Setenv(gitGlobalConfigEnvironmentName, configurationPath)
	testInstance.Setenv(gitNoSystemConfigEnvironment, "1")
}

func newRepositoryDirectory(testInstance *testing.T) string {
	testInstance.Helper()
	parentDirectory := testInstance.TempDir()
	testInstance.Setenv(gitCeilingDirectoriesEnvironment, parentDirectory)
	repositoryPath := filepath.Join(parentDirectory, "events")
	require.NoError(testInstance, os.Mkdir(repositoryPath, 0o755))
	return repositoryPath
}

func runGit(testInstance *testing.T, repositoryPath string, arguments ...string) string {
	testInstance.Helper()
	command := exec.Command(gitExecutableNameConstant, arguments...)
	command.Dir = repositoryPath
	output, runError := command.CombinedOutput()
	require.NoError(testInstance, runError, string(output))
	return strings.TrimSpace(string(output))
}

func commitCount(testInstance *testing.T, repositoryPath string) int {
	testInstance.Helper()
	command := exec.Command(gitExecutableNameConstant, "rev-list", "--count", "HEAD")
	command.Dir = repositoryPath
	output, runError := command.Output()
	if runError != nil {
		return 0
	}
	count, parseError := strconv.Atoi(strings.TrimSpace(string(output)))
	require.NoError(testInstance, parseError)
	return count
}

func runBootstrapCommand(testInstance *testing.T, configuration bootstrap.Configuration) (string, error) {
	testInstance.Helper()

	builder := bootstrap.CommandBuilder{
		InstructionPrinter: ui.NewPlainInstructionPrinter(),
		HomeExpander:       pathutils.NewHomeExpanderWithProvider(func() (string, error) { return testInstance.TempDir(), nil }),
		ConfigurationProvider: func() bootstrap.Configuration {
			return configuration
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetArgs([]string{})
	command.SetContext(context.Background())

	executionError := command.Execute()
	return outputBuffer.String(), executionError
}

func configurationFor(repositoryPath string) bootstrap.Configuration {
	configuration := bootstrap.DefaultConfiguration()
	configuration.WorkingDirectory = repositoryPath
	return configuration
}

func TestBootstrapCommandEndToEnd(testInstance *testing.T) {
	requireGit(testInstance)
	isolateGitConfiguration(testInstance, true)
	repositoryPath := newRepositoryDirectory(testInstance)
	createStagedPaths(testInstance, repositoryPath)

	output, executionError := runBootstrapCommand(testInstance, configurationFor(repositoryPath))
	require.NoError(testInstance, executionError)

	require.DirExists(testInstance, filepath.Join(repositoryPath, ".git"))
	require.FileExists(testInstance, filepath.Join(repositoryPath, ".gitignore"))
	require.Equal(testInstance, 1, commitCount(testInstance, repositoryPath))
	require.Equal(testInstance, "main", runGit(testInstance, repositoryPath, "symbolic-ref", "--short", "HEAD"))

	trackedFiles := runGit(testInstance, repositoryPath, "ls-files")
	for _, expectedFile := range []string{".github/workflows/update.yml", ".gitignore", "events.json", "scraper/main.py"} {
		require.Contains(testInstance, trackedFiles, expectedFile)
	}

	require.Equal(testInstance, bootstrap.DefaultCommitMessage, runGit(testInstance, repositoryPath, "log", "-1", "--format=%B"))

	require.Contains(testInstance, output, "wikirace-events")
	require.Contains(testInstance, output, "git remote add origin https://github.com/VOTRE_USERNAME/wikirace-events.git")
	require.Contains(testInstance, output, "git push -u origin main")
	require.Contains(testInstance, output, "https://raw.githubusercontent.com/VOTRE_USERNAME/wikirace-events/main/events.json")
}

func TestBootstrapCommandSecondRunFailsAtCommit(testInstance *testing.T) {
	requireGit(testInstance)
	isolateGitConfiguration(testInstance, true)
	repositoryPath := newRepositoryDirectory(testInstance)
	createStagedPaths(testInstance, repositoryPath)

	_, firstError := runBootstrapCommand(testInstance, configurationFor(repositoryPath))
	require.NoError(testInstance, firstError)

	ignoreFilePath := filepath.Join(repositoryPath, ".gitignore")
	firstIgnoreContent, readError := os.ReadFile(ignoreFilePath)
	require.NoError(testInstance, readError)

	output, secondError := runBootstrapCommand(testInstance, configurationFor(repositoryPath))
	require.Error(testInstance, secondError)

	var stepError bootstrap.StepError
	require.ErrorAs(testInstance, secondError, &stepError)
	require.Equal(testInstance, "commit", stepError.StepName)

	var commandFailure execshell.CommandFailedError
	require.ErrorAs(testInstance, secondError, &commandFailure)
	require.NotZero(testInstance, commandFailure.Result.ExitCode)

	secondIgnoreContent, readError := os.ReadFile(ignoreFilePath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, firstIgnoreContent, secondIgnoreContent)
	require.Equal(testInstance, 1, commitCount(testInstance, repositoryPath))
	require.Empty(testInstance, output)
}

func TestBootstrapCommandRequiresCommitterEmail(testInstance *testing.T) {
	requireGit(testInstance)
	isolateGitConfiguration(testInstance, false)
	repositoryPath := newRepositoryDirectory(testInstance)
	createStagedPaths(testInstance, repositoryPath)

	output, executionError := runBootstrapCommand(testInstance, configurationFor(repositoryPath))
	require.Error(testInstance, executionError)

	var identityError bootstrap.IdentityConfigurationError
	require.True(testInstance, errors.As(executionError, &identityError))
	require.Contains(testInstance, identityError.Error(), "user.email")

	require.DirExists(testInstance, filepath.Join(repositoryPath, ".git"))
	require.NoFileExists(testInstance, filepath.Join(repositoryPath, ".gitignore"))
	require.Equal(testInstance, 0, commitCount(testInstance, repositoryPath))
	require.Empty(testInstance, output)
}

func TestBootstrapCommandHonorsRepositoryConfiguration(testInstance *testing.T) {
	requireGit(testInstance)
	isolateGitConfiguration(testInstance, true)
	repositoryPath := newRepositoryDirectory(testInstance)
	createStagedPaths(testInstance, repositoryPath)

	configuration := configurationFor(repositoryPath)
	configuration.DefaultBranch = "publish"
	configuration.Repository.Owner = "octocat"
	configuration.Repository.Name = "race-feed"
	configuration.Repository.Protocol = "ssh"

	output, executionError := runBootstrapCommand(testInstance, configuration)
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, "publish", runGit(testInstance, repositoryPath, "symbolic-ref", "--short", "HEAD"))
	require.Contains(testInstance, output, "git remote add origin git@github.com:octocat/race-feed.git")
	require.Contains(testInstance, output, "git push -u origin publish")
	require.Contains(testInstance, output, "https://raw.githubusercontent.com/octocat/race-feed/publish/events.json")
	require.NotContains(testInstance, output, "VOTRE_USERNAME")
}

func TestBootstrapCommandCommitsConfiguredIgnoreFile(testInstance *testing.T) {
	requireGit(testInstance)
	isolateGitConfiguration(testInstance, true)
	repositoryPath := newRepositoryDirectory(testInstance)
	createStagedPaths(testInstance, repositoryPath)

	configuration := configurationFor(repositoryPath)
	configuration.IgnoreFile = ".myignore"

	_, executionError := runBootstrapCommand(testInstance, configuration)
	require.NoError(testInstance, executionError)

	require.FileExists(testInstance, filepath.Join(repositoryPath, ".myignore"))
	require.NoFileExists(testInstance, filepath.Join(repositoryPath, ".gitignore"))
	trackedFiles := strings.Split(runGit(testInstance, repositoryPath, "ls-files"), "\n")
	require.Contains(testInstance, trackedFiles, ".myignore")
	require.Empty(testInstance, runGit(testInstance, repositoryPath, "status", "--porcelain"))
}

func TestBootstrapCommandRejectsArgumentsAndUnknownProtocol(testInstance *testing.T) {
	testInstance.Run("positional_arguments", func(testInstance *testing.T) {
		builder := bootstrap.CommandBuilder{}
		command, buildError := builder.Build()
		require.NoError(testInstance, buildError)
		command.SetArgs([]string{"unexpected"})
		command.SetOut(&bytes.Buffer{})
		command.SetErr(&bytes.Buffer{})
		require.Error(testInstance, command.Execute())
	})

	testInstance.Run("unknown_protocol", func(testInstance *testing.T) {
		configuration := configurationFor(testInstance.TempDir())
		configuration.Repository.Protocol = "ftp"
		_, executionError := runBootstrapCommand(testInstance, configuration)
		require.ErrorContains(testInstance, executionError, "invalid repository protocol")
	})
}
