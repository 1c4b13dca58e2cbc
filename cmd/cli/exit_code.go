package cli

import (
	"errors"

	"github.com/temirov/repo-bootstrap/internal/bootstrap"
	"github.com/temirov/repo-bootstrap/internal/execshell"
)

const (
	successExitCodeConstant = 0
	failureExitCodeConstant = 1
)

// ExitCode maps an execution error to a process exit status. A failing git
// command propagates its own exit status; any other failure yields 1.
func ExitCode(executionError error) int {
	if executionError == nil {
		return successExitCodeConstant
	}

	var commandFailure execshell.CommandFailedError
	if errors.As(executionError, &commandFailure) && commandFailure.Result.ExitCode > 0 {
		return commandFailure.Result.ExitCode
	}

	return failureExitCodeConstant
}

// ErrorMessage returns the text reported to the user for an execution error.
// A missing committer identity is reported with its corrective instruction only.
func ErrorMessage(executionError error) string {
	if executionError == nil {
		return ""
	}

	var identityError bootstrap.IdentityConfigurationError
	if errors.As(executionError, &identityError) {
		return identityError.Error()
	}

	return executionError.Error()
}
