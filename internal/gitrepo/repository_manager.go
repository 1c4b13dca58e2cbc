package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/repo-bootstrap/internal/execshell"
)

const (
	gitInitSubcommandConstant            = "init"
	gitInitialBranchFlagTemplateConstant = "--initial-branch=%s"
	gitConfigSubcommandConstant          = "config"
	gitConfigGetFlagConstant             = "--get"
	gitAddSubcommandConstant             = "add"
	gitPathSeparatorArgumentConstant     = "--"
	gitCommitSubcommandConstant          = "commit"
	gitMessageFlagConstant               = "-m"
	gitSymbolicRefSubcommandConstant     = "symbolic-ref"
	gitShortFlagConstant                 = "--short"
	gitHeadReferenceConstant             = "HEAD"
	gitConfigMissingExitCodeConstant     = 1
	executorNotConfiguredMessageConstant = "repository manager requires a git executor"
	branchNameRequiredMessageConstant    = "branch name required"
	pathsRequiredMessageConstant         = "at least one path required"
	commitMessageRequiredMessageConstant = "commit message required"
	configurationKeyRequiredMessage      = "configuration key required"
)

// ErrGitExecutorNotConfigured indicates the manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs git operations on a working directory.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager backed by the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// InitializeRepository creates repository metadata with the given initial branch.
func (manager *RepositoryManager) InitializeRepository(executionContext context.Context, repositoryPath string, branchName string) error {
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return errors.New(branchNameRequiredMessageConstant)
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitInitSubcommandConstant, fmt.Sprintf(gitInitialBranchFlagTemplateConstant, trimmedBranchName)},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// ReadConfigValue returns the effective value of a git configuration key.
// The boolean is false when the key is not set.
func (manager *RepositoryManager) ReadConfigValue(executionContext context.Context, repositoryPath string, configurationKey string) (string, bool, error) {
	trimmedKey := strings.TrimSpace(configurationKey)
	if len(trimmedKey) == 0 {
		return "", false, errors.New(configurationKeyRequiredMessage)
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitConfigSubcommandConstant, gitConfigGetFlagConstant, trimmedKey},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) && commandFailure.Result.ExitCode == gitConfigMissingExitCodeConstant {
			return "", false, nil
		}
		return "", false, executionError
	}

	configuredValue := strings.TrimSpace(executionResult.StandardOutput)
	if len(configuredValue) == 0 {
		return "", false, nil
	}
	return configuredValue, true, nil
}

// StagePaths adds the provided paths to the index.
func (manager *RepositoryManager) StagePaths(executionContext context.Context, repositoryPath string, paths []string) error {
	if len(paths) == 0 {
		return errors.New(pathsRequiredMessageConstant)
	}
	arguments := append([]string{gitAddSubcommandConstant, gitPathSeparatorArgumentConstant}, paths...)
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// Commit records the staged changes with the supplied message.
func (manager *RepositoryManager) Commit(executionContext context.Context, repositoryPath string, message string) error {
	if len(strings.TrimSpace(message)) == 0 {
		return errors.New(commitMessageRequiredMessageConstant)
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCommitSubcommandConstant, gitMessageFlagConstant, message},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// GetCurrentBranch resolves the branch HEAD points to, including unborn branches.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitSymbolicRefSubcommandConstant, gitShortFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}
