package execshell_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repo-bootstrap/internal/execshell"
)

func TestOSCommandRunnerReportsExitCodes(testInstance *testing.T) {
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		testInstance.Skip("git executable not available")
	}

	runner := execshell.NewOSCommandRunner()
	temporaryDirectory := testInstance.TempDir()

	successResult, successError := runner.Run(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"--version"}},
	})
	require.NoError(testInstance, successError)
	require.Equal(testInstance, 0, successResult.ExitCode)
	require.Contains(testInstance, successResult.StandardOutput, "git version")

	failureResult, failureError := runner.Run(context.Background(), execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"rev-parse", "--is-inside-work-tree"},
			WorkingDirectory: temporaryDirectory,
			EnvironmentVariables: map[string]string{
				"GIT_CEILING_DIRECTORIES": filepath.Dir(temporaryDirectory),
			},
		},
	})
	require.NoError(testInstance, failureError)
	require.NotEqual(testInstance, 0, failureResult.ExitCode)
	require.NotEmpty(testInstance, failureResult.StandardError)
}

func TestOSCommandRunnerHonorsCanceledContext(testInstance *testing.T) {
	executionContext, cancel := context.WithCancel(context.Background())
	cancel()

	_, runError := execshell.NewOSCommandRunner().Run(executionContext, execshell.ShellCommand{Name: execshell.CommandGit})
	require.ErrorIs(testInstance, runError, context.Canceled)
}
