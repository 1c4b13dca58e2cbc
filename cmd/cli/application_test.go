package cli_test

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/repo-bootstrap/cmd/cli"
	"github.com/temirov/repo-bootstrap/internal/bootstrap"
	"github.com/temirov/repo-bootstrap/internal/execshell"
)

const (
	testConfigurationFileNameConstant          = "config.yaml"
	testConfigurationSearchPathEnvironmentName = "REPOBOOTSTRAP_CONFIG_SEARCH_PATH"
	testWorkingDirectoryEnvironmentName        = "REPOBOOTSTRAP_BOOTSTRAP_WORKING_DIRECTORY"
	testGitHubUsernameEnvironmentName          = "GITHUB_USERNAME"
	testGitHubRepositoryEnvironmentName        = "GITHUB_REPO"
	testGitIdentityConfiguration               = "[user]\n\temail = runner@example.com\n\tname = Bootstrap Runner\n[commit]\n\tgpgsign = false\n"
	testConfigurationFileContent               = "common:\n  log_level: error\nbootstrap:\n  default_branch: publish\n  repository:\n    owner: file-owner\n    protocol: ssh\n"
	testLogLevelArgument                       = "--log-level"
	testLogLevelErrorValue                     = "error"
)

func TestEmbeddedDefaultConfigurationMatchesBootstrapDefaults(testInstance *testing.T) {
	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	require.Equal(testInstance, "yaml", configurationType)

	testInstance.Run("viper", func(testInstance *testing.T) {
		viperInstance := viper.New()
		viperInstance.SetConfigType(configurationType)
		require.NoError(testInstance, viperInstance.ReadConfig(bytes.NewReader(configurationData)))

		var configuration cli.ApplicationConfiguration
		require.NoError(testInstance, viperInstance.Unmarshal(&configuration))
		require.Equal(testInstance, bootstrap.DefaultConfiguration(), configuration.Bootstrap.Sanitize())
		require.Equal(testInstance, "info", configuration.Common.LogLevel)
		require.Equal(testInstance, "console", configuration.Common.LogFormat)
	})

	testInstance.Run("yaml_and_mapstructure", func(testInstance *testing.T) {
		var rawConfiguration map[string]any
		require.NoError(testInstance, yaml.Unmarshal(configurationData, &rawConfiguration))

		var configuration cli.ApplicationConfiguration
		decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: &configuration})
		require.NoError(testInstance, decoderError)
		require.NoError(testInstance, decoder.Decode(rawConfiguration))

		require.Equal(testInstance, bootstrap.DefaultConfiguration(), configuration.Bootstrap)
	})
}

func TestEmbeddedDefaultConfigurationReturnsCopy(testInstance *testing.T) {
	firstData, _ := cli.EmbeddedDefaultConfiguration()
	firstData[0] = '#'

	secondData, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEqual(testInstance, byte('#'), secondData[0])
}

func TestExitCodeAndErrorMessage(testInstance *testing.T) {
	identityError := bootstrap.StepError{StepName: "identity-check", Cause: bootstrap.IdentityConfigurationError{ConfigurationKey: "user.email"}}
	commandFailure := bootstrap.StepError{
		StepName: "commit",
		Cause: execshell.CommandFailedError{
			Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: []string{"commit"}}},
			Result:  execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"},
		},
	}

	testCases := []struct {
		name             string
		executionError   error
		expectedExitCode int
		expectedMessage  string
	}{
		{name: "success", expectedExitCode: 0, expectedMessage: ""},
		{name: "identity", executionError: identityError, expectedExitCode: 1, expectedMessage: bootstrap.IdentityConfigurationError{ConfigurationKey: "user.email"}.Error()},
		{name: "git_failure", executionError: commandFailure, expectedExitCode: 128, expectedMessage: "bootstrap step commit failed: git commit failed with exit code 128: fatal: not a git repository"},
		{name: "generic", executionError: errors.New("boom"), expectedExitCode: 1, expectedMessage: "boom"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedExitCode, cli.ExitCode(testCase.executionError))
			require.Equal(testInstance, testCase.expectedMessage, cli.ErrorMessage(testCase.executionError))
		})
	}
}

func TestApplicationBootstrapsWorkingDirectory(testInstance *testing.T) {
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		testInstance.Skip("git executable not available")
	}
	color.NoColor = true

	testCases := []struct {
		name              string
		configurationFile string
		environment       map[string]string
		expectedBranch    string
		expectedFragments []string
	}{
		{
			name:           "defaults",
			expectedBranch: "main",
			expectedFragments: []string{
				"git remote add origin https://github.com/VOTRE_USERNAME/wikirace-events.git",
				"https://raw.githubusercontent.com/VOTRE_USERNAME/wikirace-events/main/events.json",
			},
		},
		{
			name: "github_environment_aliases",
			environment: map[string]string{
				testGitHubUsernameEnvironmentName:   "octocat",
				testGitHubRepositoryEnvironmentName: "race-feed",
			},
			expectedBranch: "main",
			expectedFragments: []string{
				"Nom du dépôt : race-feed",
				"git remote add origin https://github.com/octocat/race-feed.git",
				"https://raw.githubusercontent.com/octocat/race-feed/main/events.json",
			},
		},
		{
			name:              "configuration_file",
			configurationFile: testConfigurationFileContent,
			expectedBranch:    "publish",
			expectedFragments: []string{
				"git remote add origin git@github.com:file-owner/wikirace-events.git",
				"git push -u origin publish",
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			gitConfigurationPath := filepath.Join(testInstance.TempDir(), "gitconfig")
			require.NoError(testInstance, os.WriteFile(gitConfigurationPath, []byte(testGitIdentityConfiguration), 0o600))
			testInstance.Setenv("GIT_CONFIG_GLOBAL", gitConfigurationPath)
			testInstance.Setenv("GIT_CONFIG_NOSYSTEM", "1")

			parentDirectory := testInstance.TempDir()
			testInstance.Setenv("GIT_CEILING_DIRECTORIES", parentDirectory)
			repositoryPath := filepath.Join(parentDirectory, "events")
			require.NoError(testInstance, os.MkdirAll(filepath.Join(repositoryPath, "scraper"), 0o755))
			require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryPath, "scraper", "main.py"), []byte("print('events')\n"), 0o644))
			require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryPath, "events.json"), []byte("[]\n"), 0o644))

			configurationDirectory := testInstance.TempDir()
			if len(testCase.configurationFile) > 0 {
				require.NoError(testInstance, os.WriteFile(filepath.Join(configurationDirectory, testConfigurationFileNameConstant), []byte(testCase.configurationFile), 0o600))
			}
			testInstance.Setenv(testConfigurationSearchPathEnvironmentName, configurationDirectory)
			testInstance.Setenv(testWorkingDirectoryEnvironmentName, repositoryPath)
			for _, environmentName := range []string{testGitHubUsernameEnvironmentName, testGitHubRepositoryEnvironmentName} {
				testInstance.Setenv(environmentName, "")
				require.NoError(testInstance, os.Unsetenv(environmentName))
			}
			for environmentName, environmentValue := range testCase.environment {
				testInstance.Setenv(environmentName, environmentValue)
			}

			outputBuffer := &bytes.Buffer{}
			application := cli.NewApplication()
			application.SetOutput(outputBuffer)
			application.SetArguments([]string{testLogLevelArgument, testLogLevelErrorValue})

			require.NoError(testInstance, application.Execute())
			require.Equal(testInstance, testCase.expectedBranch, application.Configuration().Bootstrap.DefaultBranch)

			output := outputBuffer.String()
			for _, expectedFragment := range testCase.expectedFragments {
				require.Contains(testInstance, output, expectedFragment)
			}

			branchCommand := exec.Command("git", "symbolic-ref", "--short", "HEAD")
			branchCommand.Dir = repositoryPath
			branchOutput, branchError := branchCommand.Output()
			require.NoError(testInstance, branchError)
			require.Equal(testInstance, testCase.expectedBranch+"\n", string(branchOutput))
		})
	}
}

func TestApplicationRejectsPositionalArguments(testInstance *testing.T) {
	testInstance.Setenv(testConfigurationSearchPathEnvironmentName, testInstance.TempDir())
	application := cli.NewApplication()
	application.SetOutput(&bytes.Buffer{})
	application.SetArguments([]string{"unexpected"})

	executionError := application.Execute()
	require.Error(testInstance, executionError)
	require.Equal(testInstance, 1, cli.ExitCode(executionError))
}
